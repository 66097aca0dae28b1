package attribute

import (
	"encoding/json"
	"fmt"
)

// jsonAttribute is the wire envelope for the closed Attribute union: a kind
// tag plus whichever single field that kind populates. This is the JSON
// shape the external replay decoder (spec.md §1's out-of-scope boundary)
// is expected to emit for each UpdatedAttribute.
type jsonAttribute struct {
	Kind string `json:"kind"`

	Byte    *byte    `json:"byte,omitempty"`
	Int     *int32   `json:"int,omitempty"`
	Float   *float32 `json:"float,omitempty"`
	Boolean *bool    `json:"boolean,omitempty"`
	String  *string  `json:"string,omitempty"`

	RigidBody  *RigidBody  `json:"rigid_body,omitempty"`
	Vector3f   *Vector3f   `json:"vector3f,omitempty"`
	Quaternion *Quaternion `json:"quaternion,omitempty"`

	Actor  *ActorId `json:"actor,omitempty"`
	Active *bool    `json:"active,omitempty"`

	RemoteId *PlayerId `json:"remote_id,omitempty"`
	SystemId *byte     `json:"system_id,omitempty"`

	Attacker       *ActorId  `json:"attacker,omitempty"`
	Victim         *ActorId  `json:"victim,omitempty"`
	AttackVelocity *Vector3f `json:"attack_velocity,omitempty"`
	VictimVelocity *Vector3f `json:"victim_velocity,omitempty"`
}

func marshalAttribute(a Attribute) (jsonAttribute, error) {
	switch v := a.(type) {
	case ByteAttr:
		val := v.Value
		return jsonAttribute{Kind: v.Kind(), Byte: &val}, nil
	case IntAttr:
		val := v.Value
		return jsonAttribute{Kind: v.Kind(), Int: &val}, nil
	case FloatAttr:
		val := v.Value
		return jsonAttribute{Kind: v.Kind(), Float: &val}, nil
	case BooleanAttr:
		val := v.Value
		return jsonAttribute{Kind: v.Kind(), Boolean: &val}, nil
	case StringAttr:
		val := v.Value
		return jsonAttribute{Kind: v.Kind(), String: &val}, nil
	case RigidBodyAttr:
		val := v.Value
		return jsonAttribute{Kind: v.Kind(), RigidBody: &val}, nil
	case Vector3fAttr:
		val := v.Value
		return jsonAttribute{Kind: v.Kind(), Vector3f: &val}, nil
	case QuaternionAttr:
		val := v.Value
		return jsonAttribute{Kind: v.Kind(), Quaternion: &val}, nil
	case ActiveActorAttr:
		actor, active := v.Actor, v.Active
		return jsonAttribute{Kind: v.Kind(), Actor: &actor, Active: &active}, nil
	case UniqueIdAttr:
		remote, sys := v.RemoteId, v.SystemId
		return jsonAttribute{Kind: v.Kind(), RemoteId: &remote, SystemId: &sys}, nil
	case DemolishFxAttr:
		attacker, victim := v.Attacker, v.Victim
		atkVel, vicVel := v.AttackVelocity, v.VictimVelocity
		return jsonAttribute{Kind: v.Kind(), Attacker: &attacker, Victim: &victim, AttackVelocity: &atkVel, VictimVelocity: &vicVel}, nil
	default:
		return jsonAttribute{}, fmt.Errorf("attribute: cannot marshal %T", a)
	}
}

func unmarshalAttribute(j jsonAttribute) (Attribute, error) {
	switch j.Kind {
	case "Byte":
		if j.Byte == nil {
			return nil, fmt.Errorf("attribute: Byte attribute missing byte field")
		}
		return ByteAttr{Value: *j.Byte}, nil
	case "Int":
		if j.Int == nil {
			return nil, fmt.Errorf("attribute: Int attribute missing int field")
		}
		return IntAttr{Value: *j.Int}, nil
	case "Float":
		if j.Float == nil {
			return nil, fmt.Errorf("attribute: Float attribute missing float field")
		}
		return FloatAttr{Value: *j.Float}, nil
	case "Boolean":
		if j.Boolean == nil {
			return nil, fmt.Errorf("attribute: Boolean attribute missing boolean field")
		}
		return BooleanAttr{Value: *j.Boolean}, nil
	case "String":
		if j.String == nil {
			return nil, fmt.Errorf("attribute: String attribute missing string field")
		}
		return StringAttr{Value: *j.String}, nil
	case "RigidBody":
		if j.RigidBody == nil {
			return nil, fmt.Errorf("attribute: RigidBody attribute missing rigid_body field")
		}
		return RigidBodyAttr{Value: *j.RigidBody}, nil
	case "Vector3f":
		if j.Vector3f == nil {
			return nil, fmt.Errorf("attribute: Vector3f attribute missing vector3f field")
		}
		return Vector3fAttr{Value: *j.Vector3f}, nil
	case "Quaternion":
		if j.Quaternion == nil {
			return nil, fmt.Errorf("attribute: Quaternion attribute missing quaternion field")
		}
		return QuaternionAttr{Value: *j.Quaternion}, nil
	case "ActiveActor":
		if j.Actor == nil || j.Active == nil {
			return nil, fmt.Errorf("attribute: ActiveActor attribute missing actor/active fields")
		}
		return ActiveActorAttr{Actor: *j.Actor, Active: *j.Active}, nil
	case "UniqueId":
		if j.RemoteId == nil || j.SystemId == nil {
			return nil, fmt.Errorf("attribute: UniqueId attribute missing remote_id/system_id fields")
		}
		return UniqueIdAttr{RemoteId: *j.RemoteId, SystemId: *j.SystemId}, nil
	case "DemolishFx":
		if j.Attacker == nil || j.Victim == nil || j.AttackVelocity == nil || j.VictimVelocity == nil {
			return nil, fmt.Errorf("attribute: DemolishFx attribute missing one or more fields")
		}
		return DemolishFxAttr{Attacker: *j.Attacker, Victim: *j.Victim, AttackVelocity: *j.AttackVelocity, VictimVelocity: *j.VictimVelocity}, nil
	default:
		return nil, fmt.Errorf("attribute: unknown kind %q", j.Kind)
	}
}

// wireUpdatedAttribute is UpdatedAttribute's on-disk shape; it exists because
// UpdatedAttribute.Attribute is an interface and cannot round-trip through
// encoding/json without an explicit envelope.
type wireUpdatedAttribute struct {
	ActorId   ActorId       `json:"actor_id"`
	ObjectId  ObjectId      `json:"object_id"`
	Attribute jsonAttribute `json:"attribute"`
}

// MarshalJSON implements json.Marshaler for UpdatedAttribute.
func (u UpdatedAttribute) MarshalJSON() ([]byte, error) {
	jv, err := marshalAttribute(u.Attribute)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireUpdatedAttribute{ActorId: u.ActorId, ObjectId: u.ObjectId, Attribute: jv})
}

// UnmarshalJSON implements json.Unmarshaler for UpdatedAttribute.
func (u *UpdatedAttribute) UnmarshalJSON(data []byte) error {
	var wire wireUpdatedAttribute
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	attr, err := unmarshalAttribute(wire.Attribute)
	if err != nil {
		return err
	}
	u.ActorId = wire.ActorId
	u.ObjectId = wire.ObjectId
	u.Attribute = attr
	return nil
}
