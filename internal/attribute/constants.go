package attribute

// Archetype names. These strings must match the wire's class table exactly;
// they are the only names the core recognizes when classifying actors.
const (
	ArchetypeBallDefault    = "Archetypes.Ball.Ball_Default"
	ArchetypeBallBasketball = "Archetypes.Ball.Ball_Basketball"
	ArchetypeBallPuck       = "Archetypes.Ball.Ball_Puck"
	ArchetypeCubeBall       = "Archetypes.Ball.CubeBall"
	ArchetypeBallBreakout   = "Archetypes.Ball.Ball_Breakout"

	ArchetypeCarComponentBoost      = "Archetypes.CarComponents.CarComponent_Boost"
	ArchetypeCarComponentJump       = "Archetypes.CarComponents.CarComponent_Jump"
	ArchetypeCarComponentDoubleJump = "Archetypes.CarComponents.CarComponent_DoubleJump"
	ArchetypeCarComponentDodge      = "Archetypes.CarComponents.CarComponent_Dodge"

	ArchetypeCarDefault      = "Archetypes.Car.Car_Default"
	ArchetypeGameEventSoccar = "Archetypes.GameEvent.GameEvent_Soccar"
	ArchetypePRI             = "TAGame.Default__PRI_TA"
)

// BallArchetypes is the closed set of object names recognized as the ball.
var BallArchetypes = map[string]bool{
	ArchetypeBallDefault:    true,
	ArchetypeBallBasketball: true,
	ArchetypeBallPuck:       true,
	ArchetypeCubeBall:       true,
	ArchetypeBallBreakout:   true,
}

// Property (attribute-key) names.
const (
	PropPlayerReplicationInfo = "Engine.Pawn:PlayerReplicationInfo"

	PropBoostAmountLegacy    = "TAGame.CarComponent_Boost_TA:ReplicatedBoostAmount"
	PropBoostAmountLegacyLst = "TAGame.CarComponent_Boost_TA:ReplicatedBoostAmount.Last"
	PropReplicatedBoost      = "TAGame.CarComponent_Boost_TA:ReplicatedBoost"
	PropComponentActive      = "TAGame.CarComponent_TA:ReplicatedActive"
	PropComponentVehicle     = "TAGame.CarComponent_TA:Vehicle"

	PropDemolishGoalExplosion = "TAGame.Car_TA:ReplicatedDemolishGoalExplosion"

	PropRigidBodyState  = "TAGame.RBActor_TA:ReplicatedRBState"
	PropIgnoreSyncing   = "TAGame.RBActor_TA:bIgnoreSyncing"
	PropSecondsRemaining = "TAGame.GameEvent_Soccar_TA:SecondsRemaining"

	PropPlayerName = "Engine.PlayerReplicationInfo:PlayerName"
	PropPlayerTeam = "Engine.PlayerReplicationInfo:Team"
	PropUniqueId   = "Engine.PlayerReplicationInfo:UniqueId"
)

// Derived-attribute keys, stored in ActorState.Derived.
const (
	DerivedBoostAmount     = "BoostAmount"
	DerivedBoostAmountLast = "BoostAmount.Last"
)

// Tuning constants from spec.md §6.
const (
	// BoostUsedPerSecond is the fixed drain rate applied while a boost
	// component's active flag is set, in boost units per second.
	BoostUsedPerSecond = 80.0 / 0.93

	// DemolishAppearanceFrameCount bounds how many frames a
	// PlayerDemolishedBy feature adder looks back for a recent demolition.
	DemolishAppearanceFrameCount = 30

	// MaxDemolishKnownFramesPassed is the dedup window width for the
	// demolition log, in frames.
	MaxDemolishKnownFramesPassed = 100

	// DiscoveryCutoffFrames bounds the player-order discovery pre-pass.
	DiscoveryCutoffFrames = 300
)
