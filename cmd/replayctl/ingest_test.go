package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"rocketreplay/internal/attribute"
	"rocketreplay/internal/config"
	"rocketreplay/internal/logging"
)

func objID(objects []string, name string) attribute.ObjectId {
	for i, n := range objects {
		if n == name {
			return attribute.ObjectId(i)
		}
	}
	panic("name not found: " + name)
}

// writeMinimalReplay builds a two-frame, single-player replay and serializes it
// to a temp-dir JSON file, exercising the same wire shape an external
// decoder would hand to replayctl.
func writeMinimalReplay(t *testing.T, dir, name string) string {
	t.Helper()
	objects := []string{
		attribute.ArchetypePRI,
		attribute.ArchetypeCarDefault,
		attribute.ArchetypeCarComponentBoost,
		attribute.ArchetypeBallDefault,
		attribute.ArchetypeGameEventSoccar,
		attribute.PropUniqueId,
		attribute.PropPlayerTeam,
		attribute.PropPlayerReplicationInfo,
		attribute.PropComponentVehicle,
		attribute.PropRigidBodyState,
		attribute.PropSecondsRemaining,
		attribute.PropPlayerName,
		attribute.PropComponentActive,
		attribute.PropReplicatedBoost,
		attribute.PropDemolishGoalExplosion,
	}

	const (
		actorGame   attribute.ActorId = 1
		actorPRIA   attribute.ActorId = 2
		actorCarA   attribute.ActorId = 3
		actorBoostA attribute.ActorId = 4
		actorTeamA  attribute.ActorId = 5
		actorBall   attribute.ActorId = 6
	)
	playerA := attribute.PlayerId{Platform: attribute.PlatformSteam, Numeric: 7}

	frame0 := attribute.Frame{
		Time:  0,
		Delta: 0.1,
		NewActors: []attribute.NewActor{
			{ActorId: actorGame, ObjectId: objID(objects, attribute.ArchetypeGameEventSoccar)},
			{ActorId: actorPRIA, ObjectId: objID(objects, attribute.ArchetypePRI)},
			{ActorId: actorCarA, ObjectId: objID(objects, attribute.ArchetypeCarDefault)},
			{ActorId: actorBoostA, ObjectId: objID(objects, attribute.ArchetypeCarComponentBoost)},
			{ActorId: actorTeamA, ObjectId: objID(objects, attribute.ArchetypePRI)},
			{ActorId: actorBall, ObjectId: objID(objects, attribute.ArchetypeBallDefault)},
		},
		UpdatedActors: []attribute.UpdatedAttribute{
			{ActorId: actorPRIA, ObjectId: objID(objects, attribute.PropUniqueId), Attribute: attribute.UniqueIdAttr{RemoteId: playerA}},
			{ActorId: actorPRIA, ObjectId: objID(objects, attribute.PropPlayerTeam), Attribute: attribute.ActiveActorAttr{Actor: actorTeamA}},
			{ActorId: actorCarA, ObjectId: objID(objects, attribute.PropPlayerReplicationInfo), Attribute: attribute.ActiveActorAttr{Actor: actorPRIA}},
			{ActorId: actorBoostA, ObjectId: objID(objects, attribute.PropComponentVehicle), Attribute: attribute.ActiveActorAttr{Actor: actorCarA}},
			{ActorId: actorGame, ObjectId: objID(objects, attribute.PropSecondsRemaining), Attribute: attribute.IntAttr{Value: 300}},
		},
	}
	frame1 := attribute.Frame{
		Time:  0.1,
		Delta: 0.1,
		UpdatedActors: []attribute.UpdatedAttribute{
			{ActorId: actorCarA, ObjectId: objID(objects, attribute.PropRigidBodyState), Attribute: attribute.RigidBodyAttr{Value: attribute.RigidBody{Rotation: attribute.IdentityQuaternion}}},
		},
	}

	replay := attribute.Replay{Objects: objects, Frames: []attribute.Frame{frame0, frame1}}
	data, err := json.Marshal(replay)
	if err != nil {
		t.Fatalf("Marshal replay: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func testConfig(dumpDir string) *config.Config {
	return &config.Config{
		DiscoveryCutoffFrames: config.DefaultDiscoveryCutoffFrames,
		CollectorFPS:          0,
		DumpDir:               dumpDir,
	}
}

func TestProcessOneNDArray(t *testing.T) {
	dir := t.TempDir()
	replayPath := writeMinimalReplay(t, dir, "sample.json")
	outDir := filepath.Join(dir, "out")

	manifestPath, err := processOne(replayPath, outDir, collectorNDArray, testConfig(outDir), logging.NewTestLogger())
	if err != nil {
		t.Fatalf("processOne: %v", err)
	}
	if _, err := os.Stat(manifestPath); err != nil {
		t.Fatalf("expected manifest at %s: %v", manifestPath, err)
	}
}

func TestProcessOneTimeline(t *testing.T) {
	dir := t.TempDir()
	replayPath := writeMinimalReplay(t, dir, "sample.json")
	outDir := filepath.Join(dir, "out")

	manifestPath, err := processOne(replayPath, outDir, collectorTimeline, testConfig(outDir), logging.NewTestLogger())
	if err != nil {
		t.Fatalf("processOne: %v", err)
	}
	if _, err := os.Stat(manifestPath); err != nil {
		t.Fatalf("expected manifest at %s: %v", manifestPath, err)
	}
}

func TestProcessBatch(t *testing.T) {
	dir := t.TempDir()
	writeMinimalReplay(t, dir, "one.json")
	writeMinimalReplay(t, dir, "two.json")
	outDir := filepath.Join(dir, "out")

	manifests, err := processBatch(dir, outDir, collectorNDArray, testConfig(outDir), logging.NewTestLogger())
	if err != nil {
		t.Fatalf("processBatch: %v", err)
	}
	if len(manifests) != 2 {
		t.Fatalf("expected 2 manifests, got %d", len(manifests))
	}
}

func TestRunPruneSweepRemovesOldBundles(t *testing.T) {
	dir := t.TempDir()
	writeMinimalReplay(t, dir, "one.json")
	writeMinimalReplay(t, dir, "two.json")
	outDir := filepath.Join(dir, "out")

	if _, err := processBatch(dir, outDir, collectorNDArray, testConfig(outDir), logging.NewTestLogger()); err != nil {
		t.Fatalf("processBatch: %v", err)
	}

	cfg := testConfig(outDir)
	cfg.PruneMaxBundles = 1
	runPruneSweep(outDir, cfg, logging.NewTestLogger())

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 bundle to remain after pruning, got %d", len(entries))
	}
}
