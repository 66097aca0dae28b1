package replaydump

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"

	"rocketreplay/internal/collectors/ndarray"
	"rocketreplay/internal/collectors/timeline"
)

// Manifest describes a dump bundle's on-disk layout, mirroring the
// teacher's replay Manifest (internal/replay/writer.go) but pointing at an
// NDArray matrix or a structured-timeline event log instead of a live match
// recording.
type Manifest struct {
	Version      int    `json:"version"`
	Kind         string `json:"kind"` // "ndarray" or "timeline"
	DataPath     string `json:"data_path"`
	HeaderPath   string `json:"header_path"`
}

const (
	// KindNDArray identifies an NDArray matrix dump.
	KindNDArray = "ndarray"
	// KindTimeline identifies a structured-timeline dump.
	KindTimeline = "timeline"

	ndarrayDataFile  = "matrix.bin.zst"
	timelineDataFile = "timeline.jsonl.sz"
	headerFile       = "header.json"
	manifestFile     = "manifest.json"
)

// WriteNDArrayDump persists an NDArray matrix as a zstd-compressed, row-major
// little-endian float32 stream, alongside a JSON meta sidecar and the common
// Header/Manifest pair. Grounded on the teacher's zstd frame stream
// (internal/replay/writer.go's frameStream), reworked from length-prefixed
// simulation frames to a flat numeric matrix.
func WriteNDArrayDump(dir string, meta ndarray.Meta, data []float32, sourceReplay string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dataPath := filepath.Join(dir, ndarrayDataFile)
	file, err := os.Create(dataPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	encoder, err := zstd.NewWriter(file)
	if err != nil {
		return "", err
	}
	buf := make([]byte, 4)
	for _, v := range data {
		binary.LittleEndian.PutUint32(buf, float32bits(v))
		if _, err := encoder.Write(buf); err != nil {
			encoder.Close()
			return "", err
		}
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}

	metaPath := filepath.Join(dir, "meta.json")
	metaBytes, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(metaPath, metaBytes, 0o644); err != nil {
		return "", err
	}

	header := Header{
		SchemaVersion:  HeaderSchemaVersion,
		SourceReplay:   sourceReplay,
		CollectorKind:  KindNDArray,
		FrameCount:     meta.FramesAdded,
		TeamZero:       meta.TeamZero,
		TeamOne:        meta.TeamOne,
		ArchivePointer: ndarrayDataFile,
	}
	headerPath := filepath.Join(dir, headerFile)
	if err := WriteHeader(headerPath, header); err != nil {
		return "", err
	}

	manifest := Manifest{Version: HeaderSchemaVersion, Kind: KindNDArray, DataPath: ndarrayDataFile, HeaderPath: headerFile}
	manifestPath := filepath.Join(dir, manifestFile)
	manifestBytes, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(manifestPath, manifestBytes, 0o644); err != nil {
		return "", err
	}
	return manifestPath, nil
}

// timelineRecord is one line of the snappy-compressed JSONL event log: a
// fully aligned metadata/ball/player record set for a single sample index.
type timelineRecord struct {
	Index    int                                       `json:"index"`
	Metadata timeline.MetadataFrame                    `json:"metadata"`
	Ball     timeline.BallFrame                        `json:"ball"`
	Players  map[string]timeline.PlayerFrame           `json:"players"`
}

// WriteTimelineDump persists a structured-timeline Result as a
// snappy-compressed JSONL stream, one record per aligned sample, alongside
// the common Header/Manifest pair. Grounded on the teacher's snappy event
// stream (internal/replay/writer.go's eventStream).
func WriteTimelineDump(dir string, result timeline.Result, sourceReplay string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dataPath := filepath.Join(dir, timelineDataFile)
	file, err := os.Create(dataPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	stream := snappy.NewBufferedWriter(file)
	writer := bufio.NewWriter(stream)

	for i := range result.Metadata {
		playerFrames := make(map[string]timeline.PlayerFrame, len(result.Players))
		for _, series := range result.Players {
			if i < len(series.Frames) {
				playerFrames[series.Player.DebugForm()] = series.Frames[i]
			} else {
				playerFrames[series.Player.DebugForm()] = timeline.PlayerFrame{Empty: true}
			}
		}
		ball := timeline.BallFrame{Empty: true}
		if i < len(result.Ball) {
			ball = result.Ball[i]
		}
		record := timelineRecord{Index: i, Metadata: result.Metadata[i], Ball: ball, Players: playerFrames}
		line, err := json.Marshal(record)
		if err != nil {
			return "", err
		}
		if _, err := writer.Write(line); err != nil {
			return "", err
		}
		if err := writer.WriteByte('\n'); err != nil {
			return "", err
		}
	}

	if err := writer.Flush(); err != nil {
		return "", err
	}
	if err := stream.Flush(); err != nil {
		return "", err
	}
	if err := stream.Close(); err != nil {
		return "", err
	}

	teamZero, teamOne := rosterNames(result)
	header := Header{
		SchemaVersion:  HeaderSchemaVersion,
		SourceReplay:   sourceReplay,
		CollectorKind:  KindTimeline,
		FrameCount:     len(result.Metadata),
		TeamZero:       teamZero,
		TeamOne:        teamOne,
		ArchivePointer: timelineDataFile,
	}
	headerPath := filepath.Join(dir, headerFile)
	if err := WriteHeader(headerPath, header); err != nil {
		return "", err
	}

	manifest := Manifest{Version: HeaderSchemaVersion, Kind: KindTimeline, DataPath: timelineDataFile, HeaderPath: headerFile}
	manifestPath := filepath.Join(dir, manifestFile)
	manifestBytes, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(manifestPath, manifestBytes, 0o644); err != nil {
		return "", err
	}
	return manifestPath, nil
}

func float32bits(v float32) uint32 {
	return math.Float32bits(v)
}

// rosterNames recovers team-zero/team-one name lists from a timeline
// result's player series, using each player's first non-empty frame. Absent
// IncludeNameAndTeam data (PlayerFrame.Name/IsTeamZero unset), both slices
// come back empty rather than guessed at.
func rosterNames(result timeline.Result) (teamZero, teamOne []string) {
	for _, series := range result.Players {
		for _, frame := range series.Frames {
			if frame.Empty || frame.Name == "" {
				continue
			}
			if frame.IsTeamZero {
				teamZero = append(teamZero, frame.Name)
			} else {
				teamOne = append(teamOne, frame.Name)
			}
			break
		}
	}
	return teamZero, teamOne
}
