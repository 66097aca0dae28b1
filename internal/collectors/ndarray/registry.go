package ndarray

import "rocketreplay/internal/replayerr"

// Built-in feature-adder names, resolvable through the registry functions
// below. Each lookup returns a new adder instance; BallHasBeenHit keeps
// mutable per-instance state.
const (
	NameBallRigidBody                = "BallRigidBody"
	NameBallRigidBodyWithVelocities   = "BallRigidBodyWithVelocities"
	NameBallVelocityExtrapolated      = "BallVelocityExtrapolated"
	NameBallInterpolated              = "BallInterpolated"
	NameBallHasBeenHit                = "BallHasBeenHit"
	NameSecondsRemaining              = "SecondsRemaining"
	NameCurrentTime                   = "CurrentTime"
	NameFrameTime                     = "FrameTime"

	NamePlayerRigidBody               = "PlayerRigidBody"
	NamePlayerRigidBodyWithVelocities = "PlayerRigidBodyWithVelocities"
	NamePlayerVelocityExtrapolated    = "PlayerVelocityExtrapolated"
	NamePlayerInterpolated            = "PlayerInterpolated"
	NamePlayerBoost                   = "PlayerBoost"
	NamePlayerJumpActive               = "PlayerJumpActive"
	NamePlayerDoubleJumpActive         = "PlayerDoubleJumpActive"
	NamePlayerDodgeActive              = "PlayerDodgeActive"
	NamePlayerAnyJump                 = "PlayerAnyJump"
	NamePlayerDemolishedBy            = "PlayerDemolishedBy"
)

// ResolveGlobalAdder looks up a built-in global FeatureAdder by name.
func ResolveGlobalAdder(name string) (FeatureAdder, error) {
	switch name {
	case NameBallRigidBody:
		return BallRigidBody{}, nil
	case NameBallRigidBodyWithVelocities:
		return BallRigidBodyWithVelocities{}, nil
	case NameBallVelocityExtrapolated:
		return BallVelocityExtrapolated{}, nil
	case NameBallInterpolated:
		return BallInterpolated{}, nil
	case NameBallHasBeenHit:
		return &BallHasBeenHit{}, nil
	case NameSecondsRemaining:
		return SecondsRemaining{}, nil
	case NameCurrentTime:
		return CurrentTime{}, nil
	case NameFrameTime:
		return FrameTime{}, nil
	default:
		return nil, replayerr.New(replayerr.UnknownFeatureAdderName, "unknown global feature adder %q", name)
	}
}

// ResolvePlayerAdder looks up a built-in PlayerFeatureAdder by name.
func ResolvePlayerAdder(name string) (PlayerFeatureAdder, error) {
	switch name {
	case NamePlayerRigidBody:
		return PlayerRigidBody{}, nil
	case NamePlayerRigidBodyWithVelocities:
		return PlayerRigidBodyWithVelocities{}, nil
	case NamePlayerVelocityExtrapolated:
		return PlayerVelocityExtrapolated{}, nil
	case NamePlayerInterpolated:
		return PlayerInterpolated{}, nil
	case NamePlayerBoost:
		return PlayerBoost{}, nil
	case NamePlayerJumpActive:
		return PlayerJumpActive{}, nil
	case NamePlayerDoubleJumpActive:
		return PlayerDoubleJumpActive{}, nil
	case NamePlayerDodgeActive:
		return PlayerDodgeActive{}, nil
	case NamePlayerAnyJump:
		return PlayerAnyJump{}, nil
	case NamePlayerDemolishedBy:
		return PlayerDemolishedBy{}, nil
	default:
		return nil, replayerr.New(replayerr.UnknownFeatureAdderName, "unknown per-player feature adder %q", name)
	}
}
