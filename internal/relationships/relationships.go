// Package relationships maintains the cross-actor index tables — ball
// identity, player/car/component linkage, and team rosters — that the wire
// format encodes only as scattered ActiveActor attribute updates. Grounded
// on the teacher's side-table approach to actor linkage
// (internal/state/world.go keeps cross-entity links in maps rather than
// owning pointers); here the cycles are player<->car<->components<->player.
package relationships

import (
	"sort"

	"rocketreplay/internal/attribute"
)

// Indexes holds every relationship table described by the data model. All
// maps are owned exclusively by the replay processor; this type carries no
// synchronization of its own (single-threaded per the concurrency model).
type Indexes struct {
	BallActorID attribute.ActorId
	HasBall     bool

	PlayerToActorID map[attribute.PlayerId]attribute.ActorId
	PlayerToTeam    map[attribute.ActorId]attribute.ActorId
	PlayerToCar     map[attribute.ActorId]attribute.ActorId
	CarToBoost      map[attribute.ActorId]attribute.ActorId
	CarToJump       map[attribute.ActorId]attribute.ActorId
	CarToDoubleJump map[attribute.ActorId]attribute.ActorId
	CarToDodge      map[attribute.ActorId]attribute.ActorId

	TeamZero []attribute.PlayerId
	TeamOne  []attribute.PlayerId
}

// NewIndexes returns an Indexes with every map initialized and no ball
// discovered yet.
func NewIndexes() *Indexes {
	return &Indexes{
		PlayerToActorID: make(map[attribute.PlayerId]attribute.ActorId),
		PlayerToTeam:    make(map[attribute.ActorId]attribute.ActorId),
		PlayerToCar:     make(map[attribute.ActorId]attribute.ActorId),
		CarToBoost:      make(map[attribute.ActorId]attribute.ActorId),
		CarToJump:       make(map[attribute.ActorId]attribute.ActorId),
		CarToDoubleJump: make(map[attribute.ActorId]attribute.ActorId),
		CarToDodge:      make(map[attribute.ActorId]attribute.ActorId),
	}
}

// ObjectNamer resolves an ObjectId against the replay's object dictionary, or
// "" if out of bounds.
type ObjectNamer interface {
	ObjectName(id attribute.ObjectId) string
}

// actorObjectLookup resolves the object-type id of the actor an update belongs
// to (distinct from the update's own ObjectId, which names the property
// being written).
type actorObjectLookup interface {
	ActorObjectID(actor attribute.ActorId) (attribute.ObjectId, bool)
}

// UpdateRelationships scans one frame's updates against the link patterns in
// spec.md §4.2, refreshing every table. namer resolves object/property names;
// actorObjects resolves the object-type of the actor owning an update (used
// to distinguish e.g. PlayerType.UniqueId from a like-named property on a
// different archetype).
func (idx *Indexes) UpdateRelationships(frame attribute.Frame, namer ObjectNamer, actorObjects actorObjectLookup) {
	for _, update := range frame.UpdatedActors {
		propertyName := namer.ObjectName(update.ObjectId)
		actorType, ok := actorObjects.ActorObjectID(update.ActorId)
		if !ok {
			continue
		}
		actorTypeName := namer.ObjectName(actorType)

		switch propertyName {
		case attribute.PropUniqueId:
			if uid, ok := update.Attribute.(attribute.UniqueIdAttr); ok && actorTypeName == attribute.ArchetypePRI {
				idx.PlayerToActorID[uid.RemoteId] = update.ActorId
			}
		case attribute.PropPlayerTeam:
			if active, ok := update.Attribute.(attribute.ActiveActorAttr); ok && actorTypeName == attribute.ArchetypePRI {
				idx.PlayerToTeam[update.ActorId] = active.Actor
			}
		case attribute.PropPlayerReplicationInfo:
			if active, ok := update.Attribute.(attribute.ActiveActorAttr); ok {
				idx.PlayerToCar[active.Actor] = update.ActorId
			}
		case attribute.PropComponentVehicle:
			if active, ok := update.Attribute.(attribute.ActiveActorAttr); ok {
				switch actorTypeName {
				case attribute.ArchetypeCarComponentBoost:
					idx.CarToBoost[active.Actor] = update.ActorId
				case attribute.ArchetypeCarComponentJump:
					idx.CarToJump[active.Actor] = update.ActorId
				case attribute.ArchetypeCarComponentDoubleJump:
					idx.CarToDoubleJump[active.Actor] = update.ActorId
				case attribute.ArchetypeCarComponentDodge:
					idx.CarToDodge[active.Actor] = update.ActorId
				}
			}
		}
	}

	for _, deleted := range frame.DeletedActors {
		if idx.HasBall && idx.BallActorID == deleted {
			idx.HasBall = false
		}
		for player, car := range idx.PlayerToCar {
			if car == deleted {
				delete(idx.PlayerToCar, player)
			}
		}
	}
}

// UpdateBallID discovers the ball actor by scanning newly created actors for
// a recognized ball archetype name, when none is currently known.
func (idx *Indexes) UpdateBallID(frame attribute.Frame, namer ObjectNamer) {
	if idx.HasBall {
		return
	}
	for _, created := range frame.NewActors {
		name := namer.ObjectName(created.ObjectId)
		if attribute.BallArchetypes[name] {
			idx.BallActorID = created.ActorId
			idx.HasBall = true
			return
		}
	}
}

// FinalizeRosters sorts the accumulated per-team player sets by debug form
// and freezes them into TeamZero/TeamOne, per the player-order stability
// invariant.
func FinalizeRosters(teamZero, teamOne map[attribute.PlayerId]struct{}) (zero, one []attribute.PlayerId) {
	zero = sortedRoster(teamZero)
	one = sortedRoster(teamOne)
	return zero, one
}

func sortedRoster(set map[attribute.PlayerId]struct{}) []attribute.PlayerId {
	out := make([]attribute.PlayerId, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DebugForm() < out[j].DebugForm()
	})
	return out
}
