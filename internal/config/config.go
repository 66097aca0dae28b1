package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultDiscoveryCutoffFrames bounds the player-order discovery pre-pass.
	DefaultDiscoveryCutoffFrames = 300

	// DefaultCollectorFPS is the frame-rate decorator's default sampling rate
	// when no explicit override is configured.
	DefaultCollectorFPS = 30.0

	// DefaultDumpDir is where replay-dump archives are written.
	DefaultDumpDir = "replay-dumps"

	// DefaultLogLevel controls verbosity for replayctl logs.
	DefaultLogLevel = "info"
	// DefaultLogPath is where structured logs are written.
	DefaultLogPath = "replayctl.log"
	// DefaultLogMaxSizeMB caps the size of a single log file before rotation.
	DefaultLogMaxSizeMB = 100
	// DefaultLogMaxBackups limits retained rotated log files.
	DefaultLogMaxBackups = 10
	// DefaultLogMaxAgeDays controls how long rotated log files are kept on disk.
	DefaultLogMaxAgeDays = 7
	// DefaultLogCompress toggles gzip compression for rotated log files.
	DefaultLogCompress = true

	// DefaultPruneMaxBundles is the default cap on retained replaydump
	// bundles per dump directory. 0 disables count-based pruning.
	DefaultPruneMaxBundles = 0
	// DefaultPruneMaxAgeDays controls how long replaydump bundles are kept
	// before a -prune sweep removes them. 0 disables age-based pruning.
	DefaultPruneMaxAgeDays = 0
)

// Config captures all runtime tunables for a replayctl invocation.
type Config struct {
	DiscoveryCutoffFrames int
	CollectorFPS          float64
	DumpDir               string
	PruneMaxBundles       int
	PruneMaxAgeDays       int
	Logging               LoggingConfig
}

// LoggingConfig captures structured logging configuration options.
type LoggingConfig struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Load reads the replayctl configuration from environment variables, applying
// sane defaults and returning descriptive errors for invalid overrides.
func Load() (*Config, error) {
	cfg := &Config{
		DiscoveryCutoffFrames: DefaultDiscoveryCutoffFrames,
		CollectorFPS:          DefaultCollectorFPS,
		DumpDir:               getString("REPLAYCTL_DUMP_DIR", DefaultDumpDir),
		PruneMaxBundles:       DefaultPruneMaxBundles,
		PruneMaxAgeDays:       DefaultPruneMaxAgeDays,
		Logging: LoggingConfig{
			Level:      strings.TrimSpace(getString("REPLAYCTL_LOG_LEVEL", DefaultLogLevel)),
			Path:       strings.TrimSpace(getString("REPLAYCTL_LOG_PATH", DefaultLogPath)),
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
			MaxAgeDays: DefaultLogMaxAgeDays,
			Compress:   DefaultLogCompress,
		},
	}

	var problems []string

	if raw := strings.TrimSpace(os.Getenv("REPLAYCTL_DISCOVERY_CUTOFF_FRAMES")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("REPLAYCTL_DISCOVERY_CUTOFF_FRAMES must be a positive integer, got %q", raw))
		} else {
			cfg.DiscoveryCutoffFrames = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("REPLAYCTL_COLLECTOR_FPS")); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("REPLAYCTL_COLLECTOR_FPS must be a non-negative number, got %q", raw))
		} else {
			cfg.CollectorFPS = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("REPLAYCTL_PRUNE_MAX_BUNDLES")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("REPLAYCTL_PRUNE_MAX_BUNDLES must be a non-negative integer, got %q", raw))
		} else {
			cfg.PruneMaxBundles = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("REPLAYCTL_PRUNE_MAX_AGE_DAYS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("REPLAYCTL_PRUNE_MAX_AGE_DAYS must be a non-negative integer, got %q", raw))
		} else {
			cfg.PruneMaxAgeDays = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("REPLAYCTL_LOG_MAX_SIZE_MB")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("REPLAYCTL_LOG_MAX_SIZE_MB must be a positive integer, got %q", raw))
		} else {
			cfg.Logging.MaxSizeMB = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("REPLAYCTL_LOG_MAX_BACKUPS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("REPLAYCTL_LOG_MAX_BACKUPS must be a non-negative integer, got %q", raw))
		} else {
			cfg.Logging.MaxBackups = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("REPLAYCTL_LOG_MAX_AGE_DAYS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("REPLAYCTL_LOG_MAX_AGE_DAYS must be a non-negative integer, got %q", raw))
		} else {
			cfg.Logging.MaxAgeDays = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("REPLAYCTL_LOG_COMPRESS")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("REPLAYCTL_LOG_COMPRESS must be a boolean value, got %q", raw))
		} else {
			cfg.Logging.Compress = value
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf(strings.Join(problems, "; "))
	}

	return cfg, nil
}

// DiscoveryCutoffDuration is a convenience accessor used by callers that
// reason in wall-clock rather than frame-count terms.
func (c *Config) DiscoveryCutoffDuration(avgFrameInterval time.Duration) time.Duration {
	if c == nil {
		return 0
	}
	return avgFrameInterval * time.Duration(c.DiscoveryCutoffFrames)
}

func getString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
