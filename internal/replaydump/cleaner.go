package replaydump

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"rocketreplay/internal/logging"
)

// RetentionPolicy bounds how many replaydump bundles, and for how long, are
// kept under a dump directory. A zero MaxBundles or MaxAge disables that
// bound.
type RetentionPolicy struct {
	MaxBundles int
	MaxAge     time.Duration
}

// StorageStats summarises the disk footprint of persisted bundles after a
// sweep.
type StorageStats struct {
	Bundles   int
	Bytes     int64
	LastSweep time.Time
}

// Cleaner periodically prunes replaydump bundles according to a retention
// policy. Grounded on the teacher's internal/replay/cleaner.go Cleaner, but
// reworked around this package's bundle layout: WriteNDArrayDump and
// WriteTimelineDump each emit one self-contained directory per source
// replay (manifest.json + header.json + a compressed archive), so a sweep
// here walks bundle directories directly instead of reassembling artefacts
// from a file/header-suffix naming convention.
type Cleaner struct {
	mu     sync.RWMutex
	dir    string
	policy RetentionPolicy
	log    *logging.Logger
	now    func() time.Time
	stats  StorageStats
}

// NewCleaner constructs a cleaner for the provided dump directory.
func NewCleaner(dir string, policy RetentionPolicy, logger *logging.Logger) *Cleaner {
	if logger == nil {
		logger = logging.L()
	}
	return &Cleaner{dir: dir, policy: policy, log: logger, now: time.Now}
}

// Run executes retention sweeps until the context is cancelled.
func (c *Cleaner) Run(ctx context.Context, interval time.Duration) {
	if c == nil || ctx == nil {
		return
	}
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	//1.- Sweep eagerly on startup so a long-lived process doesn't wait a
	// full interval before the first prune.
	c.sweep()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			//2.- Re-sweep on every tick while the context remains active.
			c.sweep()
		}
	}
}

// RunOnce performs a single retention sweep. Used by replayctl's -prune flag
// and by tests.
func (c *Cleaner) RunOnce() {
	if c == nil {
		return
	}
	c.sweep()
}

// Stats returns the storage statistics recorded by the last sweep.
func (c *Cleaner) Stats() StorageStats {
	if c == nil {
		return StorageStats{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	//1.- Return a copy so callers cannot mutate internal state.
	return c.stats
}

type bundle struct {
	name    string
	path    string
	size    int64
	modTime time.Time
}

func (c *Cleaner) sweep() {
	if c == nil || strings.TrimSpace(c.dir) == "" {
		return
	}
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		c.log.Warn("replaydump retention scan failed", logging.Error(err), logging.String("directory", c.dir))
		return
	}
	//1.- Only subdirectories carrying a manifest.json are bundles; anything
	// else under the dump directory is left untouched.
	bundles := c.collect(entries)
	now := c.now()
	kept := 0
	stats := StorageStats{LastSweep: now}
	for _, b := range bundles {
		shouldRemove, reason := c.shouldRemove(b, now, kept)
		if shouldRemove {
			if err := os.RemoveAll(b.path); err != nil {
				c.log.Warn("replaydump retention removal failed", logging.Error(err), logging.String("bundle", b.name))
				stats.Bundles++
				stats.Bytes += b.size
				kept++
				continue
			}
			c.log.Info("replaydump retention removed bundle", logging.String("bundle", b.name), logging.String("reason", reason))
			continue
		}
		kept++
		stats.Bundles++
		stats.Bytes += b.size
	}
	c.mu.Lock()
	//2.- Publish refreshed statistics so operators can inspect dump-directory
	// footprint between sweeps.
	c.stats = stats
	c.mu.Unlock()
}

func (c *Cleaner) collect(entries []os.DirEntry) []*bundle {
	bundles := make([]*bundle, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(c.dir, entry.Name())
		if _, err := os.Stat(filepath.Join(path, manifestFile)); err != nil {
			//1.- Skip directories that aren't WriteNDArrayDump/WriteTimelineDump
			// output, e.g. stray scratch directories left by operators.
			continue
		}
		info, err := entry.Info()
		if err != nil {
			c.log.Warn("replaydump retention stat failed", logging.Error(err), logging.String("path", path))
			continue
		}
		size, err := directorySize(path)
		if err != nil {
			c.log.Warn("replaydump retention size failed", logging.Error(err), logging.String("path", path))
			continue
		}
		bundles = append(bundles, &bundle{name: entry.Name(), path: path, size: size, modTime: info.ModTime()})
	}
	//2.- Sort newest-first so MaxBundles favours the most recently written
	// bundles.
	sort.Slice(bundles, func(i, j int) bool { return bundles[i].modTime.After(bundles[j].modTime) })
	return bundles
}

func (c *Cleaner) shouldRemove(b *bundle, now time.Time, kept int) (bool, string) {
	reasons := make([]string, 0, 2)
	if c.policy.MaxAge > 0 && now.Sub(b.modTime) > c.policy.MaxAge {
		//1.- Flag bundles older than the configured age budget.
		reasons = append(reasons, fmt.Sprintf("age>%s", c.policy.MaxAge))
	}
	if c.policy.MaxBundles > 0 && kept >= c.policy.MaxBundles {
		//2.- Enforce the maximum retained bundle count after age-based removals.
		reasons = append(reasons, fmt.Sprintf(">=%d bundles", c.policy.MaxBundles))
	}
	return len(reasons) > 0, strings.Join(reasons, ", ")
}

func directorySize(root string) (int64, error) {
	var total int64
	walkErr := filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		//1.- Accumulate file sizes to compute the bundle's disk footprint.
		total += info.Size()
		return nil
	})
	return total, walkErr
}
