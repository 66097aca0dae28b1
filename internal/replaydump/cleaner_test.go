package replaydump

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"rocketreplay/internal/logging"
)

func TestCleanerEnforcesMaxBundles(t *testing.T) {
	tmp := t.TempDir()
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	//1.- Seed three synthetic bundles so the cleaner has something to prune.
	writeBundle(t, tmp, "alpha", now.Add(-3*time.Hour), 64)
	writeBundle(t, tmp, "bravo", now.Add(-2*time.Hour), 32)
	writeBundle(t, tmp, "charlie", now.Add(-time.Hour), 48)

	cleaner := NewCleaner(tmp, RetentionPolicy{MaxBundles: 2}, logging.NewTestLogger())
	cleaner.now = func() time.Time { return now }
	//2.- Trigger a single sweep to enforce the retention policy immediately.
	cleaner.RunOnce()

	remaining := listBundles(t, tmp)
	if len(remaining) != 2 {
		t.Fatalf("expected 2 bundles retained, got %d (%v)", len(remaining), remaining)
	}
	expected := []string{"bravo", "charlie"}
	if remaining[0] != expected[0] || remaining[1] != expected[1] {
		t.Fatalf("unexpected retained bundles: %v", remaining)
	}

	stats := cleaner.Stats()
	if stats.Bundles != 2 {
		t.Fatalf("expected stats to report 2 bundles, got %d", stats.Bundles)
	}
	if stats.Bytes != int64(48+32) {
		t.Fatalf("expected byte total 80, got %d", stats.Bytes)
	}
	if stats.LastSweep.IsZero() {
		t.Fatalf("expected last sweep timestamp to be recorded")
	}
}

func TestCleanerPrunesByAge(t *testing.T) {
	tmp := t.TempDir()
	now := time.Date(2024, 7, 16, 9, 0, 0, 0, time.UTC)
	//1.- Mix an old and a fresh bundle so only the former is pruned.
	writeBundle(t, tmp, "delta", now.Add(-72*time.Hour), 16)
	writeBundle(t, tmp, "foxtrot", now.Add(-time.Hour), 5)

	cleaner := NewCleaner(tmp, RetentionPolicy{MaxAge: 36 * time.Hour, MaxBundles: 5}, logging.NewTestLogger())
	cleaner.now = func() time.Time { return now }
	//2.- Execute a sweep so the age threshold applies to the seeded bundles.
	cleaner.RunOnce()

	remaining := listBundles(t, tmp)
	for _, name := range remaining {
		if name == "delta" {
			t.Fatalf("expected delta bundle to be pruned due to age")
		}
	}
	foundFoxtrot := false
	for _, name := range remaining {
		if name == "foxtrot" {
			foundFoxtrot = true
		}
	}
	if !foundFoxtrot {
		t.Fatalf("expected foxtrot bundle to remain: %v", remaining)
	}
}

func TestCleanerIgnoresDirectoriesWithoutManifest(t *testing.T) {
	tmp := t.TempDir()
	now := time.Date(2024, 7, 17, 9, 0, 0, 0, time.UTC)
	//1.- A scratch directory with no manifest.json should never be swept away.
	scratch := filepath.Join(tmp, "scratch")
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	cleaner := NewCleaner(tmp, RetentionPolicy{MaxBundles: 0}, logging.NewTestLogger())
	cleaner.now = func() time.Time { return now }
	cleaner.RunOnce()

	if _, err := os.Stat(scratch); err != nil {
		t.Fatalf("expected scratch directory to survive: %v", err)
	}
	if stats := cleaner.Stats(); stats.Bundles != 0 {
		t.Fatalf("expected 0 bundles counted, got %d", stats.Bundles)
	}
}

// writeBundle seeds a minimal WriteNDArrayDump/WriteTimelineDump-shaped
// directory: a manifest.json marker plus a payload file of the requested
// size, with mtimes backdated to mod.
func writeBundle(t *testing.T, dir, name string, mod time.Time, payload int) {
	t.Helper()
	bundleDir := filepath.Join(dir, name)
	if err := os.MkdirAll(bundleDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(bundleDir, manifestFile), []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFile manifest: %v", err)
	}
	data := make([]byte, payload)
	dataPath := filepath.Join(bundleDir, ndarrayDataFile)
	if err := os.WriteFile(dataPath, data, 0o644); err != nil {
		t.Fatalf("WriteFile data: %v", err)
	}
	if err := os.Chtimes(dataPath, mod, mod); err != nil {
		t.Fatalf("Chtimes data: %v", err)
	}
	if err := os.Chtimes(bundleDir, mod, mod); err != nil {
		t.Fatalf("Chtimes dir: %v", err)
	}
}

func listBundles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}
