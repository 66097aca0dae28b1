package ndarray

import (
	"testing"

	"rocketreplay/internal/attribute"
)

func TestPlayerAnyJumpPacking(t *testing.T) {
	// Seed scenario 2 (spec.md §8) exercises the bit-packing formula
	// directly, since it is pure arithmetic independent of the processor.
	cases := []struct {
		dodge, jump, doubleJump float32
		want                    float32
	}{
		{0, 1, 0, 2},
		{1, 1, 1, 7},
	}
	for _, tc := range cases {
		packed := int(tc.dodge)*1 + int(tc.jump)*2 + int(tc.doubleJump)*4
		if float32(packed) != tc.want {
			t.Fatalf("packing(%v,%v,%v) = %v, want %v", tc.dodge, tc.jump, tc.doubleJump, packed, tc.want)
		}
	}
}

func TestResolveGlobalAdderUnknownName(t *testing.T) {
	if _, err := ResolveGlobalAdder("NotARealAdder"); err == nil {
		t.Fatal("expected error for unknown global adder name")
	}
}

func TestResolvePlayerAdderKnownNames(t *testing.T) {
	for _, name := range []string{NamePlayerRigidBody, NamePlayerBoost, NamePlayerAnyJump} {
		if _, err := ResolvePlayerAdder(name); err != nil {
			t.Fatalf("expected %s to resolve, got %v", name, err)
		}
	}
}

func TestGetMetaAndNDArrayShapeInvariant(t *testing.T) {
	c := &Collector{
		globals:      []FeatureAdder{BallRigidBody{}},
		perPlayer:    []PlayerFeatureAdder{PlayerBoost{}},
		framesAdded:  2,
		metaCaptured: true,
		meta: Meta{
			GlobalWidth: 7,
			PlayerWidth: 1,
			PlayerCount: 2,
		},
	}
	c.data = make([]float32, 2*(7+2*1))
	meta, data, err := c.GetMetaAndNDArray()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) != meta.FramesAdded*(meta.GlobalWidth+meta.PlayerCount*meta.PlayerWidth) {
		t.Fatalf("shape invariant violated: len=%d", len(data))
	}
}

func TestGetMetaAndNDArrayDetectsShapeMismatch(t *testing.T) {
	c := &Collector{
		framesAdded:  2,
		metaCaptured: true,
		meta:         Meta{GlobalWidth: 7, PlayerWidth: 1, PlayerCount: 2},
		data:         make([]float32, 3),
	}
	if _, _, err := c.GetMetaAndNDArray(); err == nil {
		t.Fatal("expected shape mismatch error")
	}
}

func TestAppendRigidBodyWidths(t *testing.T) {
	row := appendRigidBody(nil, attribute.ZeroRigidBody, false)
	if len(row) != 7 {
		t.Fatalf("expected 7 columns without velocities, got %d", len(row))
	}
	row = appendRigidBody(nil, attribute.ZeroRigidBody, true)
	if len(row) != 13 {
		t.Fatalf("expected 13 columns with velocities, got %d", len(row))
	}
}
