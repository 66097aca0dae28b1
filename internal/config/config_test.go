package config

import (
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"REPLAYCTL_DUMP_DIR",
		"REPLAYCTL_DISCOVERY_CUTOFF_FRAMES",
		"REPLAYCTL_COLLECTOR_FPS",
		"REPLAYCTL_LOG_LEVEL",
		"REPLAYCTL_LOG_PATH",
		"REPLAYCTL_LOG_MAX_SIZE_MB",
		"REPLAYCTL_LOG_MAX_BACKUPS",
		"REPLAYCTL_LOG_MAX_AGE_DAYS",
		"REPLAYCTL_LOG_COMPRESS",
		"REPLAYCTL_PRUNE_MAX_BUNDLES",
		"REPLAYCTL_PRUNE_MAX_AGE_DAYS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.DiscoveryCutoffFrames != DefaultDiscoveryCutoffFrames {
		t.Fatalf("expected default discovery cutoff %d, got %d", DefaultDiscoveryCutoffFrames, cfg.DiscoveryCutoffFrames)
	}
	if cfg.CollectorFPS != DefaultCollectorFPS {
		t.Fatalf("expected default collector fps %v, got %v", DefaultCollectorFPS, cfg.CollectorFPS)
	}
	if cfg.DumpDir != DefaultDumpDir {
		t.Fatalf("expected default dump dir %q, got %q", DefaultDumpDir, cfg.DumpDir)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Fatalf("expected default log level %q, got %q", DefaultLogLevel, cfg.Logging.Level)
	}
	if cfg.Logging.Path != DefaultLogPath {
		t.Fatalf("expected default log path %q, got %q", DefaultLogPath, cfg.Logging.Path)
	}
	if cfg.Logging.MaxSizeMB != DefaultLogMaxSizeMB {
		t.Fatalf("expected default log max size %d, got %d", DefaultLogMaxSizeMB, cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.Compress != DefaultLogCompress {
		t.Fatalf("expected default log compress %t, got %t", DefaultLogCompress, cfg.Logging.Compress)
	}
	if cfg.PruneMaxBundles != DefaultPruneMaxBundles {
		t.Fatalf("expected default prune max bundles %d, got %d", DefaultPruneMaxBundles, cfg.PruneMaxBundles)
	}
	if cfg.PruneMaxAgeDays != DefaultPruneMaxAgeDays {
		t.Fatalf("expected default prune max age days %d, got %d", DefaultPruneMaxAgeDays, cfg.PruneMaxAgeDays)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPLAYCTL_DUMP_DIR", "/tmp/dumps")
	t.Setenv("REPLAYCTL_DISCOVERY_CUTOFF_FRAMES", "150")
	t.Setenv("REPLAYCTL_COLLECTOR_FPS", "10")
	t.Setenv("REPLAYCTL_LOG_LEVEL", "debug")
	t.Setenv("REPLAYCTL_LOG_PATH", "/var/log/replayctl.log")
	t.Setenv("REPLAYCTL_LOG_MAX_SIZE_MB", "512")
	t.Setenv("REPLAYCTL_LOG_MAX_BACKUPS", "4")
	t.Setenv("REPLAYCTL_LOG_MAX_AGE_DAYS", "2")
	t.Setenv("REPLAYCTL_LOG_COMPRESS", "false")
	t.Setenv("REPLAYCTL_PRUNE_MAX_BUNDLES", "25")
	t.Setenv("REPLAYCTL_PRUNE_MAX_AGE_DAYS", "14")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.DumpDir != "/tmp/dumps" {
		t.Fatalf("unexpected dump dir %q", cfg.DumpDir)
	}
	if cfg.DiscoveryCutoffFrames != 150 {
		t.Fatalf("expected discovery cutoff 150, got %d", cfg.DiscoveryCutoffFrames)
	}
	if cfg.CollectorFPS != 10 {
		t.Fatalf("expected collector fps 10, got %v", cfg.CollectorFPS)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected overridden log level debug, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.MaxSizeMB != 512 {
		t.Fatalf("expected log max size 512, got %d", cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.MaxBackups != 4 {
		t.Fatalf("expected log max backups 4, got %d", cfg.Logging.MaxBackups)
	}
	if cfg.Logging.MaxAgeDays != 2 {
		t.Fatalf("expected log max age 2, got %d", cfg.Logging.MaxAgeDays)
	}
	if cfg.Logging.Compress {
		t.Fatalf("expected log compression disabled")
	}
	if cfg.PruneMaxBundles != 25 {
		t.Fatalf("expected prune max bundles 25, got %d", cfg.PruneMaxBundles)
	}
	if cfg.PruneMaxAgeDays != 14 {
		t.Fatalf("expected prune max age days 14, got %d", cfg.PruneMaxAgeDays)
	}
}

func TestLoadReturnsValidationErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPLAYCTL_DISCOVERY_CUTOFF_FRAMES", "-5")
	t.Setenv("REPLAYCTL_COLLECTOR_FPS", "-1")
	t.Setenv("REPLAYCTL_LOG_MAX_SIZE_MB", "-1")
	t.Setenv("REPLAYCTL_LOG_MAX_BACKUPS", "-2")
	t.Setenv("REPLAYCTL_LOG_MAX_AGE_DAYS", "-3")
	t.Setenv("REPLAYCTL_LOG_COMPRESS", "notabool")
	t.Setenv("REPLAYCTL_PRUNE_MAX_BUNDLES", "-1")
	t.Setenv("REPLAYCTL_PRUNE_MAX_AGE_DAYS", "-1")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error from invalid configuration, got nil")
	}

	for _, want := range []string{
		"REPLAYCTL_DISCOVERY_CUTOFF_FRAMES",
		"REPLAYCTL_COLLECTOR_FPS",
		"REPLAYCTL_LOG_MAX_SIZE_MB",
		"REPLAYCTL_LOG_MAX_BACKUPS",
		"REPLAYCTL_LOG_MAX_AGE_DAYS",
		"REPLAYCTL_LOG_COMPRESS",
		"REPLAYCTL_PRUNE_MAX_BUNDLES",
		"REPLAYCTL_PRUNE_MAX_AGE_DAYS",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %s, got %q", want, err.Error())
		}
	}
}

func TestLoadAllowsZeroFPSForUnboundedSampling(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPLAYCTL_COLLECTOR_FPS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.CollectorFPS != 0 {
		t.Fatalf("expected zero fps to be accepted, got %v", cfg.CollectorFPS)
	}
}
