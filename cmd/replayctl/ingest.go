package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rocketreplay/internal/attribute"
	"rocketreplay/internal/collectors/ndarray"
	"rocketreplay/internal/collectors/timeline"
	"rocketreplay/internal/config"
	"rocketreplay/internal/logging"
	"rocketreplay/internal/replaydump"
	"rocketreplay/internal/replayproc"
)

// collectorKind selects which collector processes a replay.
type collectorKind string

const (
	collectorNDArray  collectorKind = "ndarray"
	collectorTimeline collectorKind = "timeline"
)

// loadReplay reads a pre-decoded replay JSON dump from path, the boundary
// contract spec.md §1 draws between this module and the external binary
// parser.
func loadReplay(path string) (*attribute.Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay %s: %w", path, err)
	}
	var replay attribute.Replay
	if err := json.Unmarshal(data, &replay); err != nil {
		return nil, fmt.Errorf("decode replay %s: %w", path, err)
	}
	return &replay, nil
}

// processOne runs the full pipeline over one replay file: decode, build the
// processor, drive it with the chosen collector at the configured sampling
// rate, and persist the result under outDir via internal/replaydump.
func processOne(path string, outDir string, kind collectorKind, cfg *config.Config, log *logging.Logger) (string, error) {
	replay, err := loadReplay(path)
	if err != nil {
		return "", err
	}

	proc, err := replayproc.NewProcessor(replay, cfg.DiscoveryCutoffFrames)
	if err != nil {
		return "", fmt.Errorf("build processor for %s: %w", path, err)
	}

	var inner replayproc.Collector
	var ndarrayCollector *ndarray.Collector
	var timelineCollector *timeline.Collector

	switch kind {
	case collectorNDArray:
		ndarrayCollector = ndarray.NewCollector(nil, nil)
		inner = ndarrayCollector
	case collectorTimeline:
		timelineCollector = timeline.NewCollector(timeline.Config{IncludeNameAndTeam: true})
		inner = timelineCollector
	default:
		return "", fmt.Errorf("unknown collector kind %q", kind)
	}

	decorated := replayproc.NewFrameRateDecorator(inner, cfg.CollectorFPS)
	if err := proc.Run(decorated); err != nil {
		return "", fmt.Errorf("process %s: %w", path, err)
	}

	sourceName := filepath.Base(path)
	dumpDir := filepath.Join(outDir, strings.TrimSuffix(sourceName, filepath.Ext(sourceName)))

	switch kind {
	case collectorNDArray:
		meta, data, err := ndarrayCollector.GetMetaAndNDArray()
		if err != nil {
			return "", fmt.Errorf("collect ndarray for %s: %w", path, err)
		}
		manifestPath, err := replaydump.WriteNDArrayDump(dumpDir, meta, data, sourceName)
		if err != nil {
			return "", fmt.Errorf("write ndarray dump for %s: %w", path, err)
		}
		log.Info("wrote ndarray dump", logging.String("source", sourceName), logging.String("manifest", manifestPath), logging.Int("frames", meta.FramesAdded))
		return manifestPath, nil
	case collectorTimeline:
		result := timelineCollector.Result()
		manifestPath, err := replaydump.WriteTimelineDump(dumpDir, result, sourceName)
		if err != nil {
			return "", fmt.Errorf("write timeline dump for %s: %w", path, err)
		}
		log.Info("wrote timeline dump", logging.String("source", sourceName), logging.String("manifest", manifestPath), logging.Int("frames", len(result.Metadata)))
		return manifestPath, nil
	default:
		return "", fmt.Errorf("unknown collector kind %q", kind)
	}
}

// processBatch walks dir for files with a .json extension and runs each
// through processOne, mirroring the teacher's directory-of-replays tooling
// split between a single-file driver and a batch catalog driver.
func processBatch(dir string, outDir string, kind collectorKind, cfg *config.Config, log *logging.Logger) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var manifests []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		manifestPath, err := processOne(path, outDir, kind, cfg, log)
		if err != nil {
			log.Error("failed to process replay", logging.String("path", path), logging.Error(err))
			continue
		}
		manifests = append(manifests, manifestPath)
	}
	return manifests, nil
}
