package attribute

// Attribute is the closed tagged union of wire attribute payloads the core
// consumes. Every concrete type below implements attr() as an unexported
// marker method, so the set of implementations is closed to this package —
// mirroring a sum type the way icza-screp's repcmd.Cmd interface closes
// over its concrete command structs.
type Attribute interface {
	attr()
	// Kind returns a stable name for error messages and type-mismatch
	// reporting (UnexpectedAttributeType).
	Kind() string
}

type ByteAttr struct{ Value byte }
type IntAttr struct{ Value int32 }
type FloatAttr struct{ Value float32 }
type BooleanAttr struct{ Value bool }
type StringAttr struct{ Value string }

// RigidBodyAttr carries a rigid body sample; its sleeping flag is the
// Sleeping field of the RigidBody value.
type RigidBodyAttr struct{ Value RigidBody }

type Vector3fAttr struct{ Value Vector3f }
type QuaternionAttr struct{ Value Quaternion }

// ActiveActorAttr references another actor, optionally flagged inactive.
type ActiveActorAttr struct {
	Actor  ActorId
	Active bool
}

// UniqueIdAttr carries a player's remote identity plus the local system id
// of the reporting connection.
type UniqueIdAttr struct {
	RemoteId PlayerId
	SystemId byte
}

// DemolishFxAttr records a demolition event as observed on the wire.
type DemolishFxAttr struct {
	Attacker       ActorId
	Victim         ActorId
	AttackVelocity Vector3f
	VictimVelocity Vector3f
}

func (ByteAttr) attr()        {}
func (IntAttr) attr()         {}
func (FloatAttr) attr()       {}
func (BooleanAttr) attr()     {}
func (StringAttr) attr()      {}
func (RigidBodyAttr) attr()   {}
func (Vector3fAttr) attr()    {}
func (QuaternionAttr) attr()  {}
func (ActiveActorAttr) attr() {}
func (UniqueIdAttr) attr()    {}
func (DemolishFxAttr) attr()  {}

func (ByteAttr) Kind() string        { return "Byte" }
func (IntAttr) Kind() string         { return "Int" }
func (FloatAttr) Kind() string       { return "Float" }
func (BooleanAttr) Kind() string     { return "Boolean" }
func (StringAttr) Kind() string      { return "String" }
func (RigidBodyAttr) Kind() string   { return "RigidBody" }
func (Vector3fAttr) Kind() string    { return "Vector3f" }
func (QuaternionAttr) Kind() string  { return "Quaternion" }
func (ActiveActorAttr) Kind() string { return "ActiveActor" }
func (UniqueIdAttr) Kind() string    { return "UniqueId" }
func (DemolishFxAttr) Kind() string  { return "DemolishFx" }
