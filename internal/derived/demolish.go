package derived

import (
	"rocketreplay/internal/attribute"
	"rocketreplay/internal/logging"
)

// DemolishInfo is one resolved demolition event, ready for timeline/ndarray
// consumption.
type DemolishInfo struct {
	Time             float32
	SecondsRemaining float32
	Frame            int
	Attacker         attribute.PlayerId
	Victim           attribute.PlayerId
	AttackVelocity   attribute.Vector3f
	VictimVelocity   attribute.Vector3f
}

type dedupEntry struct {
	value attribute.DemolishFxAttr
	frame int
}

// DemolishLog accumulates resolved demolitions plus the wire-level dedup
// window described in spec.md §3/§4.4.
type DemolishLog struct {
	Entries []DemolishInfo
	window  []dedupEntry
}

// NewDemolishLog returns an empty log.
func NewDemolishLog() *DemolishLog {
	return &DemolishLog{}
}

// PlayerCarResolver resolves a car actor back to the player actor that owns
// it, and a player actor to its stable PlayerId.
type PlayerCarResolver interface {
	CarOwner(car attribute.ActorId) (player attribute.ActorId, ok bool)
	PlayerIDOf(player attribute.ActorId) (attribute.PlayerId, bool)
}

// UpdateDemolishes scans the DemolishFx values in demolishFx (keyed by car
// actor) for new events not already present in the dedup window, resolving
// and appending each to the log. It examines only the values it is given;
// the processor passes those carried by the current frame's updates, so a
// car whose DemolishFx did not change this frame is not rescanned.
// Unresolved demolishes (car without a known owning player) are logged at
// Warn and skipped, not fatal, per spec.md §4.4 step 1.
func UpdateDemolishes(log *DemolishLog, demolishFx map[attribute.ActorId]attribute.DemolishFxAttr, resolver PlayerCarResolver, secondsRemaining float32, frame attribute.Frame, frameIndex int) {
	log.pruneWindow(frameIndex)

	for _, fx := range demolishFx {
		if log.isKnown(fx, frameIndex) {
			continue
		}
		log.window = append(log.window, dedupEntry{value: fx, frame: frameIndex})

		attackerCar, ok := resolver.CarOwner(fx.Attacker)
		if !ok {
			logging.L().Warn("skipping demolish: attacker car has no owning player", logging.Int("frame", frameIndex), logging.Int("car", int(fx.Attacker)))
			continue
		}
		victimCar, ok := resolver.CarOwner(fx.Victim)
		if !ok {
			logging.L().Warn("skipping demolish: victim car has no owning player", logging.Int("frame", frameIndex), logging.Int("car", int(fx.Victim)))
			continue
		}
		attackerID, ok := resolver.PlayerIDOf(attackerCar)
		if !ok {
			logging.L().Warn("skipping demolish: attacker player has no PlayerId", logging.Int("frame", frameIndex), logging.Int("player_actor", int(attackerCar)))
			continue
		}
		victimID, ok := resolver.PlayerIDOf(victimCar)
		if !ok {
			logging.L().Warn("skipping demolish: victim player has no PlayerId", logging.Int("frame", frameIndex), logging.Int("player_actor", int(victimCar)))
			continue
		}

		log.Entries = append(log.Entries, DemolishInfo{
			Time:             frame.Time,
			SecondsRemaining: secondsRemaining,
			Frame:            frameIndex,
			Attacker:         attackerID,
			Victim:           victimID,
			AttackVelocity:   fx.AttackVelocity,
			VictimVelocity:   fx.VictimVelocity,
		})
	}
}

// isKnown reports whether an equal DemolishFx value already lives in the
// dedup window within MaxDemolishKnownFramesPassed frames.
func (log *DemolishLog) isKnown(fx attribute.DemolishFxAttr, frameIndex int) bool {
	for _, entry := range log.window {
		if entry.value == fx && abs(frameIndex-entry.frame) < attribute.MaxDemolishKnownFramesPassed {
			return true
		}
	}
	return false
}

// pruneWindow drops window entries older than the dedup horizon, bounding
// memory use over a long replay.
func (log *DemolishLog) pruneWindow(frameIndex int) {
	kept := log.window[:0]
	for _, entry := range log.window {
		if abs(frameIndex-entry.frame) < attribute.MaxDemolishKnownFramesPassed {
			kept = append(kept, entry)
		}
	}
	log.window = kept
}

// DemolishedWithin reports whether victim was demolished within the last
// windowFrames frames as of currentFrame, returning the attacker's PlayerId
// if so. Grounded on the PlayerDemolishedBy feature adder's 30-frame lookback
// in spec.md §4.9.
func (log *DemolishLog) DemolishedWithin(victim attribute.PlayerId, currentFrame, windowFrames int) (attribute.PlayerId, bool) {
	for i := len(log.Entries) - 1; i >= 0; i-- {
		entry := log.Entries[i]
		if entry.Victim != victim {
			continue
		}
		if currentFrame-entry.Frame < 0 {
			continue
		}
		if currentFrame-entry.Frame <= windowFrames {
			return entry.Attacker, true
		}
	}
	return attribute.PlayerId{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
