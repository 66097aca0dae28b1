package replaycatalog

import (
	"os"
	"path/filepath"
	"testing"

	"rocketreplay/internal/replaydump"
)

func TestListCollectsHeaders(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "alpha")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	header := replaydump.Header{
		SchemaVersion:  replaydump.HeaderSchemaVersion,
		SourceReplay:   "alpha.replay",
		CollectorKind:  replaydump.KindNDArray,
		ArchivePointer: "matrix.bin.zst",
	}
	headerPath := filepath.Join(dataDir, "header.json")
	if err := replaydump.WriteHeader(headerPath, header); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}

	entries, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected single entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Header.SourceReplay != "alpha.replay" {
		t.Fatalf("unexpected source replay: %q", entry.Header.SourceReplay)
	}
	if entry.ArchivePath != filepath.Join(dataDir, "matrix.bin.zst") {
		t.Fatalf("unexpected archive path: %q", entry.ArchivePath)
	}

	payload, err := MarshalEntries(entries)
	if err != nil {
		t.Fatalf("MarshalEntries: %v", err)
	}
	if len(payload) == 0 {
		t.Fatalf("expected JSON payload to be non-empty")
	}
}
