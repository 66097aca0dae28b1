// Package actorstate maintains per-actor attribute maps and an inverse
// object-type index as replay frames stream by.
package actorstate

import (
	"rocketreplay/internal/attribute"
	"rocketreplay/internal/replayerr"
)

// AttributeRecord pairs an attribute value with the index of the frame that
// last set it.
type AttributeRecord struct {
	Value      attribute.Attribute
	FrameIndex int
}

// ActorState is the per-actor attribute map maintained by the modeler.
type ActorState struct {
	ObjectId   attribute.ObjectId
	NameId     *int32
	Attributes map[attribute.ObjectId]AttributeRecord
	Derived    map[string]AttributeRecord
}

func newActorState(objectId attribute.ObjectId, nameId *int32) *ActorState {
	return &ActorState{
		ObjectId:   objectId,
		NameId:     nameId,
		Attributes: make(map[attribute.ObjectId]AttributeRecord),
		Derived:    make(map[string]AttributeRecord),
	}
}

// Modeler owns every live actor's state plus the inverse object-type index.
// It is exercised from a single goroutine (the replay processor's driver
// loop) and carries no internal locking, matching spec.md §5's
// single-threaded concurrency model.
type Modeler struct {
	actors  map[attribute.ActorId]*ActorState
	byType  map[attribute.ObjectId][]attribute.ActorId
}

// NewModeler constructs an empty actor-state modeler.
func NewModeler() *Modeler {
	return &Modeler{
		actors: make(map[attribute.ActorId]*ActorState),
		byType: make(map[attribute.ObjectId][]attribute.ActorId),
	}
}

// Get returns the actor's state, or (nil, false) if it does not exist.
func (m *Modeler) Get(id attribute.ActorId) (*ActorState, bool) {
	state, ok := m.actors[id]
	return state, ok
}

// ActorObjectID returns the object-type id of a live actor, or (0, false) if
// it does not exist. Used by relationship indexing to classify the actor an
// update belongs to.
func (m *Modeler) ActorObjectID(id attribute.ActorId) (attribute.ObjectId, bool) {
	state, ok := m.actors[id]
	if !ok {
		return 0, false
	}
	return state.ObjectId, true
}

// ActorsOfType returns the live actor ids whose object id matches objectId.
// The returned slice is owned by the caller and safe to mutate.
func (m *Modeler) ActorsOfType(objectId attribute.ObjectId) []attribute.ActorId {
	src := m.byType[objectId]
	out := make([]attribute.ActorId, len(src))
	copy(out, src)
	return out
}

// Delete removes id's state and purges the inverse index.
func (m *Modeler) Delete(id attribute.ActorId) error {
	state, ok := m.actors[id]
	if !ok {
		return replayerr.New(replayerr.NoStateForActorId, "delete: actor %d has no state", id)
	}
	delete(m.actors, id)
	m.removeFromIndex(state.ObjectId, id)
	return nil
}

func (m *Modeler) removeFromIndex(objectId attribute.ObjectId, id attribute.ActorId) {
	ids := m.byType[objectId]
	for i, existing := range ids {
		if existing == id {
			m.byType[objectId] = append(ids[:i], ids[i+1:]...)
			return
		}
	}
}

// Create inserts a fresh ActorState for id, or validates idempotent
// re-creation when id already exists.
func (m *Modeler) Create(id attribute.ActorId, objectId attribute.ObjectId, nameId *int32) error {
	if existing, ok := m.actors[id]; ok {
		if existing.ObjectId != objectId {
			return replayerr.New(replayerr.ActorIdAlreadyExists,
				"actor %d recreated with object id %d, previously %d", id, objectId, existing.ObjectId)
		}
		// Idempotent re-creation resets the attribute map, per spec.md §4.1.
		existing.Attributes = make(map[attribute.ObjectId]AttributeRecord)
		existing.Derived = make(map[string]AttributeRecord)
		existing.NameId = nameId
		return nil
	}
	m.actors[id] = newActorState(objectId, nameId)
	m.byType[objectId] = append(m.byType[objectId], id)
	return nil
}

// Update applies an attribute mutation, returning the previous record (if
// any).
func (m *Modeler) Update(id attribute.ActorId, key attribute.ObjectId, value attribute.Attribute, frameIndex int) (*AttributeRecord, error) {
	state, ok := m.actors[id]
	if !ok {
		return nil, replayerr.New(replayerr.UpdatedActorIdDoesNotExist, "update: actor %d has no state", id)
	}
	var previous *AttributeRecord
	if prev, ok := state.Attributes[key]; ok {
		cp := prev
		previous = &cp
	}
	state.Attributes[key] = AttributeRecord{Value: value, FrameIndex: frameIndex}
	return previous, nil
}

// ApplyFrame processes a frame's deletions, then creations, then attribute
// updates, in that order — matching spec.md §4.1's ordering requirement so
// an actor deleted and recreated within the same frame is handled correctly.
func (m *Modeler) ApplyFrame(frame attribute.Frame, frameIndex int) error {
	for _, id := range frame.DeletedActors {
		if err := m.Delete(id); err != nil {
			return err
		}
	}
	for _, created := range frame.NewActors {
		if err := m.Create(created.ActorId, created.ObjectId, created.NameId); err != nil {
			return err
		}
	}
	for _, updated := range frame.UpdatedActors {
		if _, err := m.Update(updated.ActorId, updated.ObjectId, updated.Attribute, frameIndex); err != nil {
			return err
		}
	}
	return nil
}

// DerivedSet stores a derived (non-wire) attribute on an actor.
func (m *Modeler) DerivedSet(id attribute.ActorId, key string, value attribute.Attribute, frameIndex int) error {
	state, ok := m.actors[id]
	if !ok {
		return replayerr.New(replayerr.NoStateForActorId, "derived set: actor %d has no state", id)
	}
	state.Derived[key] = AttributeRecord{Value: value, FrameIndex: frameIndex}
	return nil
}

// DerivedGet reads a derived attribute previously stored via DerivedSet.
func (m *Modeler) DerivedGet(id attribute.ActorId, key string) (AttributeRecord, bool) {
	state, ok := m.actors[id]
	if !ok {
		return AttributeRecord{}, false
	}
	rec, ok := state.Derived[key]
	return rec, ok
}
