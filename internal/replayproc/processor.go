package replayproc

import (
	"rocketreplay/internal/actorstate"
	"rocketreplay/internal/attribute"
	"rocketreplay/internal/derived"
	"rocketreplay/internal/relationships"
	"rocketreplay/internal/replayerr"
)

// propertyKeys caches the ObjectIds of every wire property the processor
// resolves by name, computed once at construction so hot-path lookups never
// touch the name table.
type propertyKeys struct {
	rigidBodyState   attribute.ObjectId
	hasRigidBody     bool
	secondsRemaining attribute.ObjectId
	hasSeconds       bool
	playerName       attribute.ObjectId
	hasPlayerName    bool
	demolishFx       attribute.ObjectId
	hasDemolishFx    bool
}

func resolvePropertyKeys(replay *attribute.Replay) propertyKeys {
	var keys propertyKeys
	keys.rigidBodyState, keys.hasRigidBody = replay.ObjectID(attribute.PropRigidBodyState)
	keys.secondsRemaining, keys.hasSeconds = replay.ObjectID(attribute.PropSecondsRemaining)
	keys.playerName, keys.hasPlayerName = replay.ObjectID(attribute.PropPlayerName)
	keys.demolishFx, keys.hasDemolishFx = replay.ObjectID(attribute.PropDemolishGoalExplosion)
	return keys
}

// Processor is the replay processor and derived-state engine: it owns the
// actor-state modeler, relationship indexes, and demolition log for the
// lifetime of one replay, and exposes a read-only query API to collectors.
type Processor struct {
	replay *attribute.Replay
	props  propertyKeys

	modeler     *actorstate.Modeler
	indexes     *relationships.Indexes
	demolishLog *derived.DemolishLog

	discoveryCutoffFrames int
}

// carOwnerAdapter lets the Processor's PlayerToCar index satisfy
// derived.PlayerCarResolver without exposing internal maps.
type carOwnerAdapter struct{ p *Processor }

func (a carOwnerAdapter) CarOwner(car attribute.ActorId) (attribute.ActorId, bool) {
	for player, c := range a.p.indexes.PlayerToCar {
		if c == car {
			return player, true
		}
	}
	return 0, false
}

func (a carOwnerAdapter) PlayerIDOf(player attribute.ActorId) (attribute.PlayerId, bool) {
	for id, actor := range a.p.indexes.PlayerToActorID {
		if actor == player {
			return id, true
		}
	}
	return attribute.PlayerId{}, false
}

// NewProcessor validates the replay, runs the player-order discovery
// pre-pass, resets all accumulated mutable state, and returns a Processor
// ready for the main loop. discoveryCutoffFrames bounds the pre-pass per
// spec.md §4.6 (pass attribute.DiscoveryCutoffFrames for the default).
func NewProcessor(replay *attribute.Replay, discoveryCutoffFrames int) (*Processor, error) {
	if len(replay.Frames) == 0 {
		return nil, replayerr.New(replayerr.NoNetworkFrames, "replay has no network frames")
	}

	p := &Processor{
		replay:                replay,
		props:                 resolvePropertyKeys(replay),
		discoveryCutoffFrames: discoveryCutoffFrames,
	}

	teamZero, teamOne, err := p.discoverRosters()
	if err != nil {
		return nil, err
	}

	// Reset all accumulated mutable state before the main loop, per
	// spec.md §4.6: the discovery pass must not leak into real processing.
	p.modeler = actorstate.NewModeler()
	p.indexes = relationships.NewIndexes()
	p.indexes.TeamZero = teamZero
	p.indexes.TeamOne = teamOne
	p.demolishLog = derived.NewDemolishLog()

	return p, nil
}

// discoverRosters runs the bounded pre-pass described in spec.md §4.6,
// advancing a scratch modeler/indexes pair for at most discoveryCutoffFrames
// frames (or until the replay ends) and returning the sorted team rosters.
func (p *Processor) discoverRosters() ([]attribute.PlayerId, []attribute.PlayerId, error) {
	modeler := actorstate.NewModeler()
	indexes := relationships.NewIndexes()

	limit := p.discoveryCutoffFrames
	if limit <= 0 || limit > len(p.replay.Frames) {
		limit = len(p.replay.Frames)
	}

	// Team actors carry no canonical "team 0 vs team 1" tag on the wire, only
	// an ActorId pointer from each player. Replays always create the blue
	// (team zero) team actor before the orange (team one) one, so the first
	// two distinct team-actor ids encountered, in order of first appearance,
	// are treated as team zero and team one respectively.
	var teamOrder []attribute.ActorId
	teamOrderSeen := make(map[attribute.ActorId]bool)

	for i := 0; i < limit; i++ {
		frame := p.replay.Frames[i]
		if err := modeler.ApplyFrame(frame, i); err != nil {
			return nil, nil, err
		}
		indexes.UpdateRelationships(frame, p.replay, modeler)
		indexes.UpdateBallID(frame, p.replay)

		for _, update := range frame.UpdatedActors {
			teamActor, ok := indexes.PlayerToTeam[update.ActorId]
			if !ok || p.replay.ObjectName(update.ObjectId) != attribute.PropPlayerTeam {
				continue
			}
			if !teamOrderSeen[teamActor] {
				teamOrderSeen[teamActor] = true
				teamOrder = append(teamOrder, teamActor)
			}
		}
	}

	teamZeroSet := make(map[attribute.PlayerId]struct{})
	teamOneSet := make(map[attribute.PlayerId]struct{})

	var teamZeroActor, teamOneActor attribute.ActorId
	hasTeamZero, hasTeamOne := false, false
	if len(teamOrder) > 0 {
		teamZeroActor, hasTeamZero = teamOrder[0], true
	}
	if len(teamOrder) > 1 {
		teamOneActor, hasTeamOne = teamOrder[1], true
	}

	for playerID, actorID := range indexes.PlayerToActorID {
		teamActor, ok := indexes.PlayerToTeam[actorID]
		if !ok {
			continue
		}
		switch {
		case hasTeamZero && teamActor == teamZeroActor:
			teamZeroSet[playerID] = struct{}{}
		case hasTeamOne && teamActor == teamOneActor:
			teamOneSet[playerID] = struct{}{}
		}
	}

	zero, one := relationships.FinalizeRosters(teamZeroSet, teamOneSet)
	return zero, one, nil
}
