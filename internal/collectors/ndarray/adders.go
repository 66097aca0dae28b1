package ndarray

import (
	"rocketreplay/internal/attribute"
	"rocketreplay/internal/replayproc"
)

// DefaultGlobalAdders returns the default global adder configuration from
// spec.md §4.9: {BallRigidBody}.
func DefaultGlobalAdders() []FeatureAdder {
	return []FeatureAdder{BallRigidBody{}}
}

// DefaultPlayerAdders returns the default per-player adder configuration
// from spec.md §4.9: {PlayerRigidBody, PlayerBoost, PlayerAnyJump}.
func DefaultPlayerAdders() []PlayerFeatureAdder {
	return []PlayerFeatureAdder{PlayerRigidBody{}, PlayerBoost{}, PlayerAnyJump{}}
}

func appendRigidBody(row []float32, rb attribute.RigidBody, withVelocities bool) []float32 {
	row = append(row, rb.Location.X, rb.Location.Y, rb.Location.Z)
	row = append(row, rb.Rotation.X, rb.Rotation.Y, rb.Rotation.Z, rb.Rotation.W)
	if withVelocities {
		row = append(row, rb.LinearVelocity.X, rb.LinearVelocity.Y, rb.LinearVelocity.Z)
		row = append(row, rb.AngularVelocity.X, rb.AngularVelocity.Y, rb.AngularVelocity.Z)
	}
	return row
}

// BallRigidBody emits the ball's current rigid body (location + rotation),
// zero-filled when the ball or its rigid body is not yet known.
type BallRigidBody struct{}

func (BallRigidBody) ColumnHeaders() []string {
	return []string{"ball_x", "ball_y", "ball_z", "ball_rot_x", "ball_rot_y", "ball_rot_z", "ball_rot_w"}
}
func (BallRigidBody) FeaturesAdded() int { return 7 }
func (BallRigidBody) AddFeatures(p *replayproc.Processor, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32 {
	rb, err := p.GetBallRigidBody()
	if err != nil {
		return appendRigidBody(row, attribute.ZeroRigidBody, false)
	}
	return appendRigidBody(row, rb, false)
}

// BallRigidBodyWithVelocities additionally emits linear and angular
// velocity.
type BallRigidBodyWithVelocities struct{}

func (BallRigidBodyWithVelocities) ColumnHeaders() []string {
	return []string{
		"ball_x", "ball_y", "ball_z", "ball_rot_x", "ball_rot_y", "ball_rot_z", "ball_rot_w",
		"ball_lvel_x", "ball_lvel_y", "ball_lvel_z", "ball_avel_x", "ball_avel_y", "ball_avel_z",
	}
}
func (BallRigidBodyWithVelocities) FeaturesAdded() int { return 13 }
func (BallRigidBodyWithVelocities) AddFeatures(p *replayproc.Processor, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32 {
	rb, err := p.GetBallRigidBody()
	if err != nil {
		return appendRigidBody(row, attribute.ZeroRigidBody, true)
	}
	return appendRigidBody(row, rb, true)
}

// BallVelocityExtrapolated emits the ball's rigid body extrapolated forward
// to currentTime via apply_velocities.
type BallVelocityExtrapolated struct{}

func (BallVelocityExtrapolated) ColumnHeaders() []string {
	return []string{"ball_extrap_x", "ball_extrap_y", "ball_extrap_z", "ball_extrap_rot_x", "ball_extrap_rot_y", "ball_extrap_rot_z", "ball_extrap_rot_w"}
}
func (BallVelocityExtrapolated) FeaturesAdded() int { return 7 }
func (BallVelocityExtrapolated) AddFeatures(p *replayproc.Processor, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32 {
	rb, err := p.GetVelocityAppliedBallRigidBody(currentTime)
	if err != nil {
		return appendRigidBody(row, attribute.ZeroRigidBody, false)
	}
	return appendRigidBody(row, rb, false)
}

// BallInterpolated emits the ball's rigid body interpolated to currentTime
// with a zero epsilon.
type BallInterpolated struct{}

func (BallInterpolated) ColumnHeaders() []string {
	return []string{"ball_interp_x", "ball_interp_y", "ball_interp_z", "ball_interp_rot_x", "ball_interp_rot_y", "ball_interp_rot_z", "ball_interp_rot_w"}
}
func (BallInterpolated) FeaturesAdded() int { return 7 }
func (BallInterpolated) AddFeatures(p *replayproc.Processor, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32 {
	rb, err := p.GetInterpolatedBallRigidBody(currentTime, 0)
	if err != nil {
		return appendRigidBody(row, attribute.ZeroRigidBody, false)
	}
	return appendRigidBody(row, rb, false)
}

// BallHasBeenHit emits 1.0 once the ball's rigid body has ever been
// observed moving (non-zero linear velocity), else 0.0. Grounded on seed
// scenario 5 (spec.md §8): must take both 0.0 and 1.0 values across a full
// replay, including during kickoff when the ball is sleeping — hence it
// never depends on the (now-lifted) sleeping gate.
type BallHasBeenHit struct {
	hit bool
}

func (*BallHasBeenHit) ColumnHeaders() []string { return []string{"ball_has_been_hit"} }
func (*BallHasBeenHit) FeaturesAdded() int       { return 1 }
func (a *BallHasBeenHit) AddFeatures(p *replayproc.Processor, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32 {
	if !a.hit {
		if rb, err := p.GetBallRigidBody(); err == nil && !rb.LinearVelocity.IsZero() {
			a.hit = true
		}
	}
	if a.hit {
		return append(row, 1.0)
	}
	return append(row, 0.0)
}

// PlayerRigidBody emits a player's current rigid body.
type PlayerRigidBody struct{}

func (PlayerRigidBody) ColumnHeaders() []string {
	return []string{"x", "y", "z", "rot_x", "rot_y", "rot_z", "rot_w"}
}
func (PlayerRigidBody) FeaturesAdded() int { return 7 }
func (PlayerRigidBody) AddPlayerFeatures(p *replayproc.Processor, player attribute.PlayerId, playerIndex int, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32 {
	rb, err := p.GetPlayerRigidBody(player)
	if err != nil {
		return appendRigidBody(row, attribute.ZeroRigidBody, false)
	}
	return appendRigidBody(row, rb, false)
}

// PlayerRigidBodyWithVelocities additionally emits linear/angular velocity.
type PlayerRigidBodyWithVelocities struct{}

func (PlayerRigidBodyWithVelocities) ColumnHeaders() []string {
	return []string{"x", "y", "z", "rot_x", "rot_y", "rot_z", "rot_w", "lvel_x", "lvel_y", "lvel_z", "avel_x", "avel_y", "avel_z"}
}
func (PlayerRigidBodyWithVelocities) FeaturesAdded() int { return 13 }
func (PlayerRigidBodyWithVelocities) AddPlayerFeatures(p *replayproc.Processor, player attribute.PlayerId, playerIndex int, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32 {
	rb, err := p.GetPlayerRigidBody(player)
	if err != nil {
		return appendRigidBody(row, attribute.ZeroRigidBody, true)
	}
	return appendRigidBody(row, rb, true)
}

// PlayerVelocityExtrapolated emits a player's rigid body extrapolated
// forward to currentTime.
type PlayerVelocityExtrapolated struct{}

func (PlayerVelocityExtrapolated) ColumnHeaders() []string {
	return []string{"extrap_x", "extrap_y", "extrap_z", "extrap_rot_x", "extrap_rot_y", "extrap_rot_z", "extrap_rot_w"}
}
func (PlayerVelocityExtrapolated) FeaturesAdded() int { return 7 }
func (PlayerVelocityExtrapolated) AddPlayerFeatures(p *replayproc.Processor, player attribute.PlayerId, playerIndex int, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32 {
	rb, err := p.GetVelocityAppliedPlayerRigidBody(player, currentTime)
	if err != nil {
		return appendRigidBody(row, attribute.ZeroRigidBody, false)
	}
	return appendRigidBody(row, rb, false)
}

// PlayerInterpolated emits a player's rigid body interpolated to
// currentTime with a zero epsilon.
type PlayerInterpolated struct{}

func (PlayerInterpolated) ColumnHeaders() []string {
	return []string{"interp_x", "interp_y", "interp_z", "interp_rot_x", "interp_rot_y", "interp_rot_z", "interp_rot_w"}
}
func (PlayerInterpolated) FeaturesAdded() int { return 7 }
func (PlayerInterpolated) AddPlayerFeatures(p *replayproc.Processor, player attribute.PlayerId, playerIndex int, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32 {
	rb, err := p.GetInterpolatedPlayerRigidBody(player, currentTime, 0)
	if err != nil {
		return appendRigidBody(row, attribute.ZeroRigidBody, false)
	}
	return appendRigidBody(row, rb, false)
}

// PlayerBoost emits the player's continuous derived boost level, falling
// back to 0.0 when unavailable, per spec.md §7's local-recovery policy.
type PlayerBoost struct{}

func (PlayerBoost) ColumnHeaders() []string { return []string{"boost"} }
func (PlayerBoost) FeaturesAdded() int       { return 1 }
func (PlayerBoost) AddPlayerFeatures(p *replayproc.Processor, player attribute.PlayerId, playerIndex int, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32 {
	level, err := p.GetPlayerBoostLevel(player)
	if err != nil {
		return append(row, 0.0)
	}
	return append(row, level)
}

func activeBit(p *replayproc.Processor, player attribute.PlayerId, query func(*replayproc.Processor, attribute.PlayerId) (byte, error)) float32 {
	b, err := query(p, player)
	if err != nil {
		return 0
	}
	return float32(b & 1)
}

// PlayerJumpActive emits the jump component's active bit.
type PlayerJumpActive struct{}

func (PlayerJumpActive) ColumnHeaders() []string { return []string{"jump_active"} }
func (PlayerJumpActive) FeaturesAdded() int       { return 1 }
func (PlayerJumpActive) AddPlayerFeatures(p *replayproc.Processor, player attribute.PlayerId, playerIndex int, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32 {
	return append(row, activeBit(p, player, (*replayproc.Processor).GetJumpActive))
}

// PlayerDoubleJumpActive emits the double-jump component's active bit.
type PlayerDoubleJumpActive struct{}

func (PlayerDoubleJumpActive) ColumnHeaders() []string { return []string{"double_jump_active"} }
func (PlayerDoubleJumpActive) FeaturesAdded() int       { return 1 }
func (PlayerDoubleJumpActive) AddPlayerFeatures(p *replayproc.Processor, player attribute.PlayerId, playerIndex int, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32 {
	return append(row, activeBit(p, player, (*replayproc.Processor).GetDoubleJumpActive))
}

// PlayerDodgeActive emits the dodge component's active bit.
type PlayerDodgeActive struct{}

func (PlayerDodgeActive) ColumnHeaders() []string { return []string{"dodge_active"} }
func (PlayerDodgeActive) FeaturesAdded() int       { return 1 }
func (PlayerDodgeActive) AddPlayerFeatures(p *replayproc.Processor, player attribute.PlayerId, playerIndex int, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32 {
	return append(row, activeBit(p, player, (*replayproc.Processor).GetDodgeActive))
}

// PlayerAnyJump packs dodge/jump/double-jump active bits into a single
// bitmask column: dodge is bit 0, jump is bit 1, double-jump is bit 2,
// matching seed scenario 2 (spec.md §8): {dodge=0,jump=1,double_jump=0} -> 2;
// {1,1,1} -> 7.
type PlayerAnyJump struct{}

func (PlayerAnyJump) ColumnHeaders() []string { return []string{"any_jump"} }
func (PlayerAnyJump) FeaturesAdded() int       { return 1 }
func (PlayerAnyJump) AddPlayerFeatures(p *replayproc.Processor, player attribute.PlayerId, playerIndex int, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32 {
	dodge := activeBit(p, player, (*replayproc.Processor).GetDodgeActive)
	jump := activeBit(p, player, (*replayproc.Processor).GetJumpActive)
	doubleJump := activeBit(p, player, (*replayproc.Processor).GetDoubleJumpActive)
	packed := int(dodge)*1 + int(jump)*2 + int(doubleJump)*4
	return append(row, float32(packed))
}

// PlayerDemolishedBy emits the roster index of the attacker if player was
// demolished within the last DemolishAppearanceFrameCount frames, else -1.
type PlayerDemolishedBy struct{}

func (PlayerDemolishedBy) ColumnHeaders() []string { return []string{"demolished_by"} }
func (PlayerDemolishedBy) FeaturesAdded() int       { return 1 }
func (PlayerDemolishedBy) AddPlayerFeatures(p *replayproc.Processor, player attribute.PlayerId, playerIndex int, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32 {
	attacker, ok := p.DemolishedWithin(player, frameIndex, attribute.DemolishAppearanceFrameCount)
	if !ok {
		return append(row, -1)
	}
	for i, candidate := range p.IterPlayerIDsInOrder() {
		if candidate == attacker {
			return append(row, float32(i))
		}
	}
	return append(row, -1)
}

// SecondsRemaining emits the game event's current SecondsRemaining value.
type SecondsRemaining struct{}

func (SecondsRemaining) ColumnHeaders() []string { return []string{"seconds_remaining"} }
func (SecondsRemaining) FeaturesAdded() int       { return 1 }
func (SecondsRemaining) AddFeatures(p *replayproc.Processor, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32 {
	seconds, err := p.GetSecondsRemaining()
	if err != nil {
		return append(row, 0)
	}
	return append(row, seconds)
}

// CurrentTime emits the collector's current sample timestamp.
type CurrentTime struct{}

func (CurrentTime) ColumnHeaders() []string { return []string{"current_time"} }
func (CurrentTime) FeaturesAdded() int       { return 1 }
func (CurrentTime) AddFeatures(p *replayproc.Processor, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32 {
	return append(row, currentTime)
}

// FrameTime emits the owning frame's delta time.
type FrameTime struct{}

func (FrameTime) ColumnHeaders() []string { return []string{"frame_time"} }
func (FrameTime) FeaturesAdded() int       { return 1 }
func (FrameTime) AddFeatures(p *replayproc.Processor, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32 {
	return append(row, frame.Delta)
}
