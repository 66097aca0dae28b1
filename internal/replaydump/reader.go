package replaydump

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"

	"rocketreplay/internal/collectors/ndarray"
	"rocketreplay/internal/collectors/timeline"
)

// ReadManifest loads the manifest.json at path, or at path/manifest.json if
// path is a directory, mirroring the teacher's loader convention of
// accepting either form (internal/replay/loader.go).
func ReadManifest(path string) (Manifest, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Manifest{}, "", err
	}
	manifestPath := path
	dir := filepath.Dir(path)
	if info.IsDir() {
		manifestPath = filepath.Join(path, manifestFile)
		dir = path
	}
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return Manifest{}, "", err
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return Manifest{}, "", err
	}
	if manifest.Version != HeaderSchemaVersion {
		return Manifest{}, "", fmt.Errorf("unsupported manifest version %d", manifest.Version)
	}
	return manifest, dir, nil
}

// ReadNDArrayDump decodes an NDArray dump previously written by
// WriteNDArrayDump, returning its meta sidecar and the flat row-major
// matrix.
func ReadNDArrayDump(dir string) (ndarray.Meta, []float32, error) {
	metaBytes, err := os.ReadFile(filepath.Join(dir, "meta.json"))
	if err != nil {
		return ndarray.Meta{}, nil, err
	}
	var meta ndarray.Meta
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return ndarray.Meta{}, nil, err
	}

	file, err := os.Open(filepath.Join(dir, ndarrayDataFile))
	if err != nil {
		return ndarray.Meta{}, nil, err
	}
	defer file.Close()

	decoder, err := zstd.NewReader(file)
	if err != nil {
		return ndarray.Meta{}, nil, err
	}
	defer decoder.Close()

	want := meta.FramesAdded * (meta.GlobalWidth + meta.PlayerCount*meta.PlayerWidth)
	data := make([]float32, 0, want)
	buf := make([]byte, 4)
	for {
		if _, err := io.ReadFull(decoder, buf); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return ndarray.Meta{}, nil, err
		}
		data = append(data, math.Float32frombits(binary.LittleEndian.Uint32(buf)))
	}
	return meta, data, nil
}

// TimelineRecord is one decoded, index-aligned sample from a structured-
// timeline dump.
type TimelineRecord struct {
	Index    int                                   `json:"index"`
	Metadata timeline.MetadataFrame                `json:"metadata"`
	Ball     timeline.BallFrame                    `json:"ball"`
	Players  map[string]timeline.PlayerFrame       `json:"players"`
}

// ReadTimelineDump decodes a structured-timeline dump previously written by
// WriteTimelineDump, returning every aligned record in index order.
func ReadTimelineDump(dir string) ([]TimelineRecord, error) {
	file, err := os.Open(filepath.Join(dir, timelineDataFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := snappy.NewReader(file)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var records []TimelineRecord
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record TimelineRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
