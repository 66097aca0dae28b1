// Package rigidbody implements extrapolation and interpolation of rigid-body
// samples between observed replay frames, grounded on the teacher's
// integrator.go Euler-integration approach (internal/physics/integrator.go,
// rewritten for this domain's Vector3f/Quaternion types) and its
// state/world.go fixed-step advance pattern.
package rigidbody

import (
	"math"

	"rocketreplay/internal/attribute"
	"rocketreplay/internal/replayerr"
)

// ApplyVelocities extrapolates rb forward by dt seconds using its current
// linear and angular velocities. With dt == 0 the input is returned
// unchanged. Angular integration is skipped when the angular velocity is
// zero, matching spec.md §4.5.
func ApplyVelocities(rb attribute.RigidBody, dt float32) attribute.RigidBody {
	out := rb
	if dt == 0 {
		return out
	}
	out.Location = rb.Location.Add(rb.LinearVelocity.Scale(dt))
	if !rb.AngularVelocity.IsZero() {
		axis, angle := axisAngle(rb.AngularVelocity, dt)
		out.Rotation = multiplyQuaternion(rb.Rotation, quaternionFromAxisAngle(axis, angle))
	}
	return out
}

func axisAngle(angularVelocity attribute.Vector3f, dt float32) (attribute.Vector3f, float32) {
	magnitude := vectorMagnitude(angularVelocity)
	if magnitude == 0 {
		return attribute.Vector3f{}, 0
	}
	unit := angularVelocity.Scale(1 / magnitude)
	return unit, magnitude * dt
}

func vectorMagnitude(v attribute.Vector3f) float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

func quaternionFromAxisAngle(axis attribute.Vector3f, angle float32) attribute.Quaternion {
	half := angle / 2
	s := float32(math.Sin(float64(half)))
	return attribute.Quaternion{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(float64(half))),
	}
}

func multiplyQuaternion(a, b attribute.Quaternion) attribute.Quaternion {
	return attribute.Quaternion{
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
	}
}

// LerpRigidBody interpolates between two timestamped samples. It requires
// ta <= t <= tb; callers needing extrapolation outside the sampled range
// must use ApplyVelocities instead.
func LerpRigidBody(a attribute.RigidBody, ta float32, b attribute.RigidBody, tb float32, t float32) (attribute.RigidBody, error) {
	if t < ta || t > tb {
		return attribute.RigidBody{}, replayerr.New(replayerr.InterpolationTimeOrderError,
			"t=%f outside [%f, %f]", t, ta, tb)
	}
	if tb == ta {
		return a, nil
	}
	frac := (t - ta) / (tb - ta)
	return attribute.RigidBody{
		Location:        lerpVector(a.Location, b.Location, frac),
		Rotation:        slerpQuaternion(a.Rotation, b.Rotation, frac),
		LinearVelocity:  a.LinearVelocity,
		HasLinearVel:    a.HasLinearVel,
		AngularVelocity: a.AngularVelocity,
		HasAngularVel:   a.HasAngularVel,
		Sleeping:        a.Sleeping,
	}, nil
}

func lerpVector(a, b attribute.Vector3f, frac float32) attribute.Vector3f {
	return attribute.Vector3f{
		X: a.X + (b.X-a.X)*frac,
		Y: a.Y + (b.Y-a.Y)*frac,
		Z: a.Z + (b.Z-a.Z)*frac,
	}
}

func dotQuaternion(a, b attribute.Quaternion) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

func scaleQuaternion(q attribute.Quaternion, s float32) attribute.Quaternion {
	return attribute.Quaternion{X: q.X * s, Y: q.Y * s, Z: q.Z * s, W: q.W * s}
}

func addQuaternion(a, b attribute.Quaternion) attribute.Quaternion {
	return attribute.Quaternion{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z, W: a.W + b.W}
}

func normalizeQuaternion(q attribute.Quaternion) attribute.Quaternion {
	norm := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if norm == 0 {
		return attribute.IdentityQuaternion
	}
	return attribute.Quaternion{X: q.X / norm, Y: q.Y / norm, Z: q.Z / norm, W: q.W / norm}
}

// slerpQuaternion spherically interpolates between two unit quaternions,
// falling back to normalized linear interpolation when they are nearly
// parallel to avoid division-by-zero instability near t=0/1.
func slerpQuaternion(a, b attribute.Quaternion, frac float32) attribute.Quaternion {
	cosHalfTheta := dotQuaternion(a, b)
	if cosHalfTheta < 0 {
		b = scaleQuaternion(b, -1)
		cosHalfTheta = -cosHalfTheta
	}
	if cosHalfTheta > 0.9995 {
		return normalizeQuaternion(addQuaternion(a, scaleQuaternion(addQuaternion(b, scaleQuaternion(a, -1)), frac)))
	}
	halfTheta := float32(math.Acos(float64(cosHalfTheta)))
	sinHalfTheta := float32(math.Sin(float64(halfTheta)))
	ratioA := float32(math.Sin(float64((1-frac)*halfTheta))) / sinHalfTheta
	ratioB := float32(math.Sin(float64(frac*halfTheta))) / sinHalfTheta
	return addQuaternion(scaleQuaternion(a, ratioA), scaleQuaternion(b, ratioB))
}
