package replayproc

import (
	"rocketreplay/internal/attribute"
	"rocketreplay/internal/derived"
	"rocketreplay/internal/replayerr"
	"rocketreplay/internal/rigidbody"
)

// GetSecondsRemaining reads the current SecondsRemaining property off the
// game-event actor.
func (p *Processor) GetSecondsRemaining() (float32, error) {
	if !p.props.hasSeconds {
		return 0, replayerr.New(replayerr.PropertyNotFoundInState, "SecondsRemaining property not in name table")
	}
	gameActors := p.modeler.ActorsOfType(p.gameEventObjectID())
	if len(gameActors) == 0 {
		return 0, replayerr.New(replayerr.NoGameActor, "no game event actor present")
	}
	state, ok := p.modeler.Get(gameActors[0])
	if !ok {
		return 0, replayerr.New(replayerr.NoGameActor, "game event actor has no state")
	}
	record, ok := state.Attributes[p.props.secondsRemaining]
	if !ok {
		return 0, replayerr.New(replayerr.PropertyNotFoundInState, "SecondsRemaining not yet observed")
	}
	switch v := record.Value.(type) {
	case attribute.IntAttr:
		return float32(v.Value), nil
	case attribute.FloatAttr:
		return v.Value, nil
	default:
		return 0, replayerr.New(replayerr.UnexpectedAttributeType, "SecondsRemaining has unexpected type %s", record.Value.Kind())
	}
}

func (p *Processor) gameEventObjectID() attribute.ObjectId {
	id, _ := p.replay.ObjectID(attribute.ArchetypeGameEventSoccar)
	return id
}

// GetBallRigidBody returns the ball's current rigid body.
func (p *Processor) GetBallRigidBody() (attribute.RigidBody, error) {
	if !p.indexes.HasBall {
		return attribute.RigidBody{}, replayerr.New(replayerr.BallActorNotFound, "ball actor not yet discovered")
	}
	return p.actorRigidBody(p.indexes.BallActorID)
}

// GetPlayerRigidBody returns the current rigid body of the car belonging to
// player.
func (p *Processor) GetPlayerRigidBody(player attribute.PlayerId) (attribute.RigidBody, error) {
	car, err := p.playerCar(player)
	if err != nil {
		return attribute.RigidBody{}, err
	}
	return p.actorRigidBody(car)
}

func (p *Processor) playerCar(player attribute.PlayerId) (attribute.ActorId, error) {
	playerActor, ok := p.indexes.PlayerToActorID[player]
	if !ok {
		return 0, replayerr.New(replayerr.NoMatchingPlayerId, "no actor for player %v", player)
	}
	car, ok := p.indexes.PlayerToCar[playerActor]
	if !ok {
		return 0, replayerr.New(replayerr.ActorNotFound, "no car for player %v", player)
	}
	return car, nil
}

func (p *Processor) actorRigidBody(actor attribute.ActorId) (attribute.RigidBody, error) {
	if !p.props.hasRigidBody {
		return attribute.RigidBody{}, replayerr.New(replayerr.PropertyNotFoundInState, "RigidBodyState property not in name table")
	}
	state, ok := p.modeler.Get(actor)
	if !ok {
		return attribute.RigidBody{}, replayerr.New(replayerr.NoStateForActorId, "actor %d has no state", actor)
	}
	record, ok := state.Attributes[p.props.rigidBodyState]
	if !ok {
		return attribute.RigidBody{}, replayerr.New(replayerr.PropertyNotFoundInState, "actor %d has no rigid body yet", actor)
	}
	rb, ok := record.Value.(attribute.RigidBodyAttr)
	if !ok {
		return attribute.RigidBody{}, replayerr.New(replayerr.UnexpectedAttributeType, "actor %d rigid body has unexpected type %s", actor, record.Value.Kind())
	}
	return rb.Value, nil
}

func (p *Processor) actorRigidBodyAt(actor attribute.ActorId) (attribute.RigidBody, int, float32, bool) {
	state, ok := p.modeler.Get(actor)
	if !ok || !p.props.hasRigidBody {
		return attribute.RigidBody{}, 0, 0, false
	}
	record, ok := state.Attributes[p.props.rigidBodyState]
	if !ok {
		return attribute.RigidBody{}, 0, 0, false
	}
	rb, ok := record.Value.(attribute.RigidBodyAttr)
	if !ok {
		return attribute.RigidBody{}, 0, 0, false
	}
	frameTime := float32(0)
	if record.FrameIndex >= 0 && record.FrameIndex < len(p.replay.Frames) {
		frameTime = p.replay.Frames[record.FrameIndex].Time
	}
	return rb.Value, record.FrameIndex, frameTime, true
}

// GetPlayerBoostLevel returns the player's continuous derived boost level.
func (p *Processor) GetPlayerBoostLevel(player attribute.PlayerId) (float32, error) {
	playerActor, ok := p.indexes.PlayerToActorID[player]
	if !ok {
		return 0, replayerr.New(replayerr.NoMatchingPlayerId, "no actor for player %v", player)
	}
	car, ok := p.indexes.PlayerToCar[playerActor]
	if !ok {
		return 0, replayerr.New(replayerr.ActorNotFound, "no car for player %v", player)
	}
	boostActor, ok := p.indexes.CarToBoost[car]
	if !ok {
		return 0, replayerr.New(replayerr.ActorNotFound, "no boost component for player %v", player)
	}
	return derived.BoostLevel(p.modeler, boostActor), nil
}

func (p *Processor) componentActiveByte(componentMap map[attribute.ActorId]attribute.ActorId, car attribute.ActorId) (byte, error) {
	componentActor, ok := componentMap[car]
	if !ok {
		return 0, replayerr.New(replayerr.ActorNotFound, "no component for car %d", car)
	}
	state, ok := p.modeler.Get(componentActor)
	if !ok {
		return 0, replayerr.New(replayerr.NoStateForActorId, "component actor %d has no state", componentActor)
	}
	activeKey, hasActiveKey := p.replay.ObjectID(attribute.PropComponentActive)
	if !hasActiveKey {
		return 0, replayerr.New(replayerr.PropertyNotFoundInState, "ReplicatedActive property not in name table")
	}
	record, ok := state.Attributes[activeKey]
	if !ok {
		return 0, nil
	}
	b, ok := record.Value.(attribute.ByteAttr)
	if !ok {
		return 0, replayerr.New(replayerr.UnexpectedAttributeType, "component active flag has unexpected type %s", record.Value.Kind())
	}
	return b.Value, nil
}

// GetBoostActive returns the boost component's raw active byte (low bit is
// the active flag) for player's car.
func (p *Processor) GetBoostActive(player attribute.PlayerId) (byte, error) {
	car, err := p.playerCar(player)
	if err != nil {
		return 0, err
	}
	return p.componentActiveByte(p.indexes.CarToBoost, car)
}

// GetJumpActive returns the jump component's raw active byte for player's
// car.
func (p *Processor) GetJumpActive(player attribute.PlayerId) (byte, error) {
	car, err := p.playerCar(player)
	if err != nil {
		return 0, err
	}
	return p.componentActiveByte(p.indexes.CarToJump, car)
}

// GetDoubleJumpActive returns the double-jump component's raw active byte
// for player's car.
func (p *Processor) GetDoubleJumpActive(player attribute.PlayerId) (byte, error) {
	car, err := p.playerCar(player)
	if err != nil {
		return 0, err
	}
	return p.componentActiveByte(p.indexes.CarToDoubleJump, car)
}

// GetDodgeActive returns the dodge component's raw active byte for player's
// car.
func (p *Processor) GetDodgeActive(player attribute.PlayerId) (byte, error) {
	car, err := p.playerCar(player)
	if err != nil {
		return 0, err
	}
	return p.componentActiveByte(p.indexes.CarToDodge, car)
}

// GetPlayerName reads the player actor's PlayerName property.
func (p *Processor) GetPlayerName(player attribute.PlayerId) (string, error) {
	playerActor, ok := p.indexes.PlayerToActorID[player]
	if !ok {
		return "", replayerr.New(replayerr.NoMatchingPlayerId, "no actor for player %v", player)
	}
	if !p.props.hasPlayerName {
		return "", replayerr.New(replayerr.PropertyNotFoundInState, "PlayerName property not in name table")
	}
	state, ok := p.modeler.Get(playerActor)
	if !ok {
		return "", replayerr.New(replayerr.NoStateForActorId, "player actor %d has no state", playerActor)
	}
	record, ok := state.Attributes[p.props.playerName]
	if !ok {
		return "", replayerr.New(replayerr.PropertyNotFoundInState, "PlayerName not yet observed for %v", player)
	}
	name, ok := record.Value.(attribute.StringAttr)
	if !ok {
		return "", replayerr.New(replayerr.UnexpectedAttributeType, "PlayerName has unexpected type %s", record.Value.Kind())
	}
	return name.Value, nil
}

// GetPlayerIsTeamZero reports whether player belongs to the team-zero
// roster.
func (p *Processor) GetPlayerIsTeamZero(player attribute.PlayerId) (bool, error) {
	for _, id := range p.indexes.TeamZero {
		if id == player {
			return true, nil
		}
	}
	for _, id := range p.indexes.TeamOne {
		if id == player {
			return false, nil
		}
	}
	return false, replayerr.New(replayerr.UnknownPlayerTeam, "player %v not in either roster", player)
}

// IterPlayerIDsInOrder returns every player id, team-zero roster first, then
// team-one, matching the canonical NDArray/timeline column ordering.
func (p *Processor) IterPlayerIDsInOrder() []attribute.PlayerId {
	out := make([]attribute.PlayerId, 0, len(p.indexes.TeamZero)+len(p.indexes.TeamOne))
	out = append(out, p.indexes.TeamZero...)
	out = append(out, p.indexes.TeamOne...)
	return out
}

// GetVelocityAppliedBallRigidBody extrapolates the ball's current rigid body
// forward by t - currentFrameTime seconds (clamped to never go negative).
func (p *Processor) GetVelocityAppliedBallRigidBody(t float32) (attribute.RigidBody, error) {
	if !p.indexes.HasBall {
		return attribute.RigidBody{}, replayerr.New(replayerr.BallActorNotFound, "ball actor not yet discovered")
	}
	return p.velocityAppliedRigidBody(p.indexes.BallActorID, t)
}

// GetVelocityAppliedPlayerRigidBody extrapolates player's car rigid body
// forward to t.
func (p *Processor) GetVelocityAppliedPlayerRigidBody(player attribute.PlayerId, t float32) (attribute.RigidBody, error) {
	car, err := p.playerCar(player)
	if err != nil {
		return attribute.RigidBody{}, err
	}
	return p.velocityAppliedRigidBody(car, t)
}

func (p *Processor) velocityAppliedRigidBody(actor attribute.ActorId, t float32) (attribute.RigidBody, error) {
	rb, _, rbTime, ok := p.actorRigidBodyAt(actor)
	if !ok {
		return attribute.RigidBody{}, replayerr.New(replayerr.PropertyNotFoundInState, "actor %d has no rigid body yet", actor)
	}
	dt := t - rbTime
	if dt < 0 {
		dt = 0
	}
	return rigidbody.ApplyVelocities(rb, dt), nil
}

// GetInterpolatedBallRigidBody returns the ball's rigid body interpolated to
// time t within epsilon. It does not extrapolate: when no sample exists on
// the far side of t, it returns an error.
func (p *Processor) GetInterpolatedBallRigidBody(t, epsilon float32) (attribute.RigidBody, error) {
	if !p.indexes.HasBall {
		return attribute.RigidBody{}, replayerr.New(replayerr.BallActorNotFound, "ball actor not yet discovered")
	}
	return p.GetInterpolatedActorRigidBody(p.indexes.BallActorID, t, epsilon)
}

// GetInterpolatedPlayerRigidBody returns player's car rigid body interpolated
// to time t within epsilon.
func (p *Processor) GetInterpolatedPlayerRigidBody(player attribute.PlayerId, t, epsilon float32) (attribute.RigidBody, error) {
	car, err := p.playerCar(player)
	if err != nil {
		return attribute.RigidBody{}, err
	}
	return p.GetInterpolatedActorRigidBody(car, t, epsilon)
}

// GetInterpolatedActorRigidBody implements the time-targeted query in
// spec.md §4.5: if the actor's last-known sample is within epsilon of t,
// return it verbatim; otherwise scan forward or backward through replay
// frames (in the direction of t relative to the known sample) for the
// neighboring RigidBodyState update and slerp/lerp between the two.
func (p *Processor) GetInterpolatedActorRigidBody(actor attribute.ActorId, t, epsilon float32) (attribute.RigidBody, error) {
	rb0, frameIndex0, t0, ok := p.actorRigidBodyAt(actor)
	if !ok {
		return attribute.RigidBody{}, replayerr.New(replayerr.PropertyNotFoundInState, "actor %d has no rigid body yet", actor)
	}
	if absF(t-t0) <= epsilon {
		return rb0, nil
	}

	direction := 1
	if t < t0 {
		direction = -1
	}

	rb1, t1, found := p.scanForRigidBody(actor, frameIndex0, direction)
	if !found {
		return attribute.RigidBody{}, replayerr.New(replayerr.NoUpdateAfterFrame, "no rigid body update for actor %d in requested direction", actor)
	}
	if absF(t1-t) <= epsilon {
		return rb1, nil
	}

	if direction > 0 {
		return rigidbody.LerpRigidBody(rb0, t0, rb1, t1, t)
	}
	return rigidbody.LerpRigidBody(rb1, t1, rb0, t0, t)
}

func (p *Processor) scanForRigidBody(actor attribute.ActorId, fromFrame, direction int) (attribute.RigidBody, float32, bool) {
	if !p.props.hasRigidBody {
		return attribute.RigidBody{}, 0, false
	}
	for i := fromFrame + direction; i >= 0 && i < len(p.replay.Frames); i += direction {
		for _, update := range p.replay.Frames[i].UpdatedActors {
			if update.ActorId != actor || update.ObjectId != p.props.rigidBodyState {
				continue
			}
			if rb, ok := update.Attribute.(attribute.RigidBodyAttr); ok {
				return rb.Value, p.replay.Frames[i].Time, true
			}
		}
	}
	return attribute.RigidBody{}, 0, false
}

func absF(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// DemolishedWithin reports whether player was demolished within the last
// windowFrames frames as of currentFrame, returning the attacker if so.
func (p *Processor) DemolishedWithin(player attribute.PlayerId, currentFrame, windowFrames int) (attribute.PlayerId, bool) {
	return p.demolishLog.DemolishedWithin(player, currentFrame, windowFrames)
}

// DemolishLog exposes the accumulated demolition entries for collectors that
// need the full log rather than a single lookback query.
func (p *Processor) DemolishLog() []derived.DemolishInfo {
	return p.demolishLog.Entries
}
