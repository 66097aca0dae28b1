package attribute

import (
	"encoding/json"
	"testing"
)

func TestUpdatedAttributeJSONRoundTrip(t *testing.T) {
	cases := []UpdatedAttribute{
		{ActorId: 1, ObjectId: 2, Attribute: ByteAttr{Value: 7}},
		{ActorId: 1, ObjectId: 2, Attribute: IntAttr{Value: -42}},
		{ActorId: 1, ObjectId: 2, Attribute: FloatAttr{Value: 3.5}},
		{ActorId: 1, ObjectId: 2, Attribute: BooleanAttr{Value: true}},
		{ActorId: 1, ObjectId: 2, Attribute: StringAttr{Value: "alpha"}},
		{ActorId: 1, ObjectId: 2, Attribute: RigidBodyAttr{Value: RigidBody{Sleeping: true}}},
		{ActorId: 1, ObjectId: 2, Attribute: Vector3fAttr{Value: Vector3f{X: 1, Y: 2, Z: 3}}},
		{ActorId: 1, ObjectId: 2, Attribute: QuaternionAttr{Value: Quaternion{X: 1, Y: 0, Z: 0, W: 0}}},
		{ActorId: 1, ObjectId: 2, Attribute: ActiveActorAttr{Actor: 9, Active: true}},
		{ActorId: 1, ObjectId: 2, Attribute: UniqueIdAttr{RemoteId: PlayerId{Platform: PlatformSteam, Numeric: 99}, SystemId: 1}},
		{ActorId: 1, ObjectId: 2, Attribute: DemolishFxAttr{Attacker: 3, Victim: 4, AttackVelocity: Vector3f{X: 1}, VictimVelocity: Vector3f{X: -1}}},
	}

	for _, want := range cases {
		data, err := json.Marshal(want)
		if err != nil {
			t.Fatalf("Marshal(%T): %v", want.Attribute, err)
		}
		var got UpdatedAttribute
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%T): %v", want.Attribute, err)
		}
		if got.ActorId != want.ActorId || got.ObjectId != want.ObjectId {
			t.Fatalf("ids changed across round trip: got %+v, want %+v", got, want)
		}
		if got.Attribute.Kind() != want.Attribute.Kind() {
			t.Fatalf("kind changed across round trip: got %s, want %s", got.Attribute.Kind(), want.Attribute.Kind())
		}
		if got.Attribute != want.Attribute {
			t.Fatalf("attribute changed across round trip: got %#v, want %#v", got.Attribute, want.Attribute)
		}
	}
}

func TestUpdatedAttributeUnmarshalUnknownKind(t *testing.T) {
	var got UpdatedAttribute
	if err := json.Unmarshal([]byte(`{"actor_id":1,"object_id":2,"attribute":{"kind":"Bogus"}}`), &got); err == nil {
		t.Fatalf("expected error for unknown attribute kind")
	}
}
