// Package replayplayer loads a replaydump bundle (an NDArray matrix or a
// structured-timeline archive) back into memory for inspection, grounded on
// the teacher's bundle loader (tools/replay_player/player.go) but reading
// this domain's manifest/header/archive triple instead of a recorded match.
package replayplayer

import (
	"fmt"
	"path/filepath"

	"rocketreplay/internal/collectors/ndarray"
	"rocketreplay/internal/replaydump"
)

// Bundle is the fully decoded contents of a replaydump archive, with at
// most one of NDArray/Timeline populated depending on the manifest's Kind.
type Bundle struct {
	Manifest replaydump.Manifest
	Header   replaydump.Header

	NDArrayMeta ndarray.Meta
	NDArrayData []float32

	Timeline []replaydump.TimelineRecord
}

// LoadBundle reads the manifest at path (or path/manifest.json if path is a
// directory), then decodes the archive it points at according to its Kind.
func LoadBundle(path string) (Bundle, error) {
	if path == "" {
		return Bundle{}, fmt.Errorf("path is required")
	}

	manifest, dir, err := replaydump.ReadManifest(path)
	if err != nil {
		return Bundle{}, err
	}

	header, err := replaydump.ReadHeader(filepath.Join(dir, manifest.HeaderPath))
	if err != nil {
		return Bundle{}, err
	}

	bundle := Bundle{Manifest: manifest, Header: header}
	switch manifest.Kind {
	case replaydump.KindNDArray:
		meta, data, err := replaydump.ReadNDArrayDump(dir)
		if err != nil {
			return Bundle{}, err
		}
		bundle.NDArrayMeta = meta
		bundle.NDArrayData = data
	case replaydump.KindTimeline:
		records, err := replaydump.ReadTimelineDump(dir)
		if err != nil {
			return Bundle{}, err
		}
		bundle.Timeline = records
	default:
		return Bundle{}, fmt.Errorf("unknown bundle kind %q", manifest.Kind)
	}
	return bundle, nil
}
