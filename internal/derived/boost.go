// Package derived computes state the wire never carries directly: continuous
// boost level (by integrating drain while a boost component is active) and
// demolition events (by diffing DemolishFx attributes against a
// deduplication window). Grounded on the teacher's tick-diff accumulation
// pattern (internal/state/world.go's AdvanceTick), reworked from "diff
// against the previous tick" to "integrate against a fixed drain rate".
package derived

import (
	"rocketreplay/internal/actorstate"
	"rocketreplay/internal/attribute"
)

// PropertyResolver resolves a wire property name to the ObjectId it is keyed
// under in an actor's attribute map. *attribute.Replay satisfies this via its
// cached reverse name index.
type PropertyResolver interface {
	ObjectID(name string) (attribute.ObjectId, bool)
}

// UpdateBoost recomputes the continuous boost derived attribute for every
// live boost-component actor, per spec.md §4.3.
func UpdateBoost(modeler *actorstate.Modeler, props PropertyResolver, carToBoost map[attribute.ActorId]attribute.ActorId, frame attribute.Frame, frameIndex int) error {
	replicatedBoostKey, hasReplicatedBoostKey := props.ObjectID(attribute.PropReplicatedBoost)
	legacyAmountKey, hasLegacyAmountKey := props.ObjectID(attribute.PropBoostAmountLegacy)
	activeKey, hasActiveKey := props.ObjectID(attribute.PropComponentActive)

	for _, boostActor := range carToBoost {
		state, ok := modeler.Get(boostActor)
		if !ok {
			continue
		}

		wireAmount, hasWire := wireBoostAmount(state, replicatedBoostKey, hasReplicatedBoostKey, legacyAmountKey, hasLegacyAmountKey)
		lastWire, hasLast := lastWireAmount(modeler, boostActor)
		if !hasLast {
			lastWire = wireAmount
		}

		current, hasCurrent := currentDerivedBoost(modeler, boostActor)
		if !hasCurrent {
			current = wireAmount
		}
		if hasWire && wireAmount != lastWire {
			current = wireAmount
		}

		if hasActiveKey && isBoostActive(state, activeKey) {
			current -= frame.Delta * attribute.BoostUsedPerSecond
		}
		if current < 0 {
			current = 0
		}

		if err := modeler.DerivedSet(boostActor, attribute.DerivedBoostAmount, attribute.FloatAttr{Value: current}, frameIndex); err != nil {
			return err
		}
		if err := modeler.DerivedSet(boostActor, attribute.DerivedBoostAmountLast, attribute.ByteAttr{Value: byte(clampByte(wireAmount))}, frameIndex); err != nil {
			return err
		}
	}
	return nil
}

// wireBoostAmount prefers the newer ReplicatedBoost float reading over the
// legacy byte snapshot, per spec.md §8's boundary behavior.
func wireBoostAmount(state *actorstate.ActorState, replicatedKey attribute.ObjectId, hasReplicatedKey bool, legacyKey attribute.ObjectId, hasLegacyKey bool) (float32, bool) {
	if hasReplicatedKey {
		if record, ok := state.Attributes[replicatedKey]; ok {
			if f, ok := record.Value.(attribute.FloatAttr); ok {
				return f.Value, true
			}
		}
	}
	if hasLegacyKey {
		if record, ok := state.Attributes[legacyKey]; ok {
			if b, ok := record.Value.(attribute.ByteAttr); ok {
				return float32(b.Value), true
			}
		}
	}
	return 0, false
}

func isBoostActive(state *actorstate.ActorState, activeKey attribute.ObjectId) bool {
	record, ok := state.Attributes[activeKey]
	if !ok {
		return false
	}
	switch v := record.Value.(type) {
	case attribute.ByteAttr:
		return v.Value&1 == 1
	case attribute.BooleanAttr:
		return v.Value
	default:
		return false
	}
}

func lastWireAmount(modeler *actorstate.Modeler, actor attribute.ActorId) (float32, bool) {
	record, ok := modeler.DerivedGet(actor, attribute.DerivedBoostAmountLast)
	if !ok {
		return 0, false
	}
	if b, ok := record.Value.(attribute.ByteAttr); ok {
		return float32(b.Value), true
	}
	return 0, false
}

func currentDerivedBoost(modeler *actorstate.Modeler, actor attribute.ActorId) (float32, bool) {
	record, ok := modeler.DerivedGet(actor, attribute.DerivedBoostAmount)
	if !ok {
		return 0, false
	}
	if f, ok := record.Value.(attribute.FloatAttr); ok {
		return f.Value, true
	}
	return 0, false
}

func clampByte(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// BoostLevel reads the current derived boost Float for actor, or 0 if none
// has been computed yet.
func BoostLevel(modeler *actorstate.Modeler, actor attribute.ActorId) float32 {
	level, _ := currentDerivedBoost(modeler, actor)
	return level
}
