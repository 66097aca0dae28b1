// Command replayctl runs the replay processor and a chosen collector over
// one or more pre-decoded replay JSON dumps, persisting the result as a
// replaydump bundle. Grounded on the teacher's tools/replay_player (single-
// replay driver) and tools/replay_catalog (batch-of-replays driver): this
// command folds both modes into one binary gated by -dir. -prune and
// -prune-only run a replaydump.Cleaner retention sweep over the output
// directory, either after ingestion or standalone.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"rocketreplay/internal/config"
	"rocketreplay/internal/logging"
	"rocketreplay/internal/replaydump"
)

func main() {
	path := flag.String("replay", "", "path to a single pre-decoded replay JSON dump")
	dir := flag.String("dir", "", "directory of pre-decoded replay JSON dumps to process as a batch")
	out := flag.String("out", "", "output directory for replaydump bundles (defaults to the configured dump dir)")
	collector := flag.String("collector", "ndarray", "collector to run: ndarray or timeline")
	prune := flag.Bool("prune", false, "run a retention sweep over the dump directory after processing")
	pruneOnly := flag.Bool("prune-only", false, "run a retention sweep over the dump directory and exit, skipping ingestion")
	flag.Parse()

	if !*pruneOnly && (*path == "") == (*dir == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -replay or -dir is required unless -prune-only is set")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize structured logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	outDir := *out
	if outDir == "" {
		outDir = cfg.DumpDir
	}

	if *pruneOnly {
		runPruneSweep(outDir, cfg, log)
		return
	}

	var kind collectorKind
	switch *collector {
	case "ndarray":
		kind = collectorNDArray
	case "timeline":
		kind = collectorTimeline
	default:
		fmt.Fprintf(os.Stderr, "unknown collector %q: want ndarray or timeline\n", *collector)
		os.Exit(1)
	}

	if *path != "" {
		manifestPath, err := processOne(*path, outDir, kind, cfg, log)
		if err != nil {
			log.Fatal("failed to process replay", logging.String("path", *path), logging.Error(err))
		}
		fmt.Println(manifestPath)
		if *prune {
			runPruneSweep(outDir, cfg, log)
		}
		return
	}

	manifests, err := processBatch(*dir, outDir, kind, cfg, log)
	if err != nil {
		log.Fatal("failed to process replay batch", logging.String("dir", *dir), logging.Error(err))
	}
	for _, manifestPath := range manifests {
		fmt.Println(manifestPath)
	}
	if *prune {
		runPruneSweep(outDir, cfg, log)
	}
}

// runPruneSweep runs a single replaydump retention sweep over dir using the
// configured policy, logging the resulting storage stats. A zero policy
// (both bounds disabled) still runs but removes nothing, matching
// RetentionPolicy's documented semantics.
func runPruneSweep(dir string, cfg *config.Config, log *logging.Logger) {
	policy := replaydump.RetentionPolicy{
		MaxBundles: cfg.PruneMaxBundles,
		MaxAge:     time.Duration(cfg.PruneMaxAgeDays) * 24 * time.Hour,
	}
	cleaner := replaydump.NewCleaner(dir, policy, log)
	cleaner.RunOnce()
	stats := cleaner.Stats()
	log.Info("replaydump retention sweep complete",
		logging.String("dir", dir),
		logging.Int("bundles_retained", stats.Bundles),
		logging.Int64("bytes_retained", stats.Bytes))
}
