package replaydump

import (
	"path/filepath"
	"testing"

	"rocketreplay/internal/attribute"
	"rocketreplay/internal/collectors/ndarray"
	"rocketreplay/internal/collectors/timeline"
)

func TestWriteReadNDArrayDumpRoundTrips(t *testing.T) {
	dir := t.TempDir()
	meta := ndarray.Meta{
		TeamZero:      []string{"alpha"},
		TeamOne:       []string{"bravo"},
		GlobalHeaders: []string{"ball_x", "ball_y"},
		FramesAdded:   2,
		GlobalWidth:   2,
		PlayerWidth:   1,
		PlayerCount:   2,
	}
	data := []float32{1, 2, 3, 4, 5, 6}

	manifestPath, err := WriteNDArrayDump(dir, meta, data, "sample.replay")
	if err != nil {
		t.Fatalf("WriteNDArrayDump: %v", err)
	}
	if filepath.Dir(manifestPath) != dir {
		t.Fatalf("unexpected manifest path: %s", manifestPath)
	}

	manifest, resolvedDir, err := ReadManifest(manifestPath)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if manifest.Kind != KindNDArray {
		t.Fatalf("unexpected manifest kind: %s", manifest.Kind)
	}

	gotMeta, gotData, err := ReadNDArrayDump(resolvedDir)
	if err != nil {
		t.Fatalf("ReadNDArrayDump: %v", err)
	}
	if gotMeta.FramesAdded != meta.FramesAdded {
		t.Fatalf("frames added mismatch: %d vs %d", gotMeta.FramesAdded, meta.FramesAdded)
	}
	if len(gotData) != len(data) {
		t.Fatalf("data length mismatch: %d vs %d", len(gotData), len(data))
	}
	for i, v := range data {
		if gotData[i] != v {
			t.Fatalf("data[%d] = %v, want %v", i, gotData[i], v)
		}
	}

	header, err := ReadHeader(filepath.Join(resolvedDir, headerFile))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if header.SourceReplay != "sample.replay" {
		t.Fatalf("unexpected source replay: %s", header.SourceReplay)
	}
}

func TestWriteReadTimelineDumpRoundTrips(t *testing.T) {
	dir := t.TempDir()
	player := attribute.PlayerId{Platform: attribute.PlatformSteam, Numeric: 42}
	result := timeline.Result{
		Metadata: []timeline.MetadataFrame{{Time: 0, SecondsRemaining: 300}, {Time: 1, SecondsRemaining: 299}},
		Ball:     []timeline.BallFrame{{Empty: true}, {Location: attribute.Vector3f{X: 1}}},
		Players: []*timeline.PlayerSeries{
			{
				Player: player,
				Frames: []timeline.PlayerFrame{
					{Empty: true},
					{Location: attribute.Vector3f{X: 2}, Name: "alpha", IsTeamZero: true},
				},
			},
		},
	}

	manifestPath, err := WriteTimelineDump(dir, result, "sample.replay")
	if err != nil {
		t.Fatalf("WriteTimelineDump: %v", err)
	}

	manifest, resolvedDir, err := ReadManifest(manifestPath)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if manifest.Kind != KindTimeline {
		t.Fatalf("unexpected manifest kind: %s", manifest.Kind)
	}

	records, err := ReadTimelineDump(resolvedDir)
	if err != nil {
		t.Fatalf("ReadTimelineDump: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Ball.Empty != true {
		t.Fatalf("expected first ball frame empty")
	}
	key := player.DebugForm()
	if records[1].Players[key].Location.X != 2 {
		t.Fatalf("unexpected player location: %+v", records[1].Players[key])
	}

	header, err := ReadHeader(filepath.Join(resolvedDir, headerFile))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if len(header.TeamZero) != 1 || header.TeamZero[0] != "alpha" {
		t.Fatalf("unexpected team zero roster: %v", header.TeamZero)
	}
}
