package constraints

import (
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/vec"
)

// RigidRod holds a body at a fixed distance from Pivot. The rod's tension
// absorbs the radial part of the external force and supplies the
// centripetal force. A rod belongs to one body.
type RigidRod struct {
	Pivot  vec.Vec3
	Length float64

	// radial direction when the force was last resolved
	before vec.Vec3
}

func (r *RigidRod) Kind() Kind { return RodKind }

func (r *RigidRod) radial(b *dynamo.Body) (vec.Vec3, error) {
	u, ok := b.Pos.Sub(r.Pivot).UnitChecked()
	if !ok {
		return vec.Vec3{}, &dynamo.SingularForceError{Law: "rigid-rod", Body: dynamo.NoBody, Detail: "body at the pivot"}
	}
	return u, nil
}

func (r *RigidRod) ResolveForce(b *dynamo.Body, force vec.Vec3) (vec.Vec3, error) {
	u, err := r.radial(b)
	if err != nil {
		return force, err
	}
	r.before = u
	tangential := force.Reject(u)
	centripetal := u.Scale(-b.Mass * b.Vel.Mag2() / r.Length)
	return tangential.Add(centripetal), nil
}

// ResolvePosition puts the body back on the sphere of radius Length and
// turns its velocity onto the new tangent plane, keeping the tangential
// speed it had against the radial direction from before the move.
func (r *RigidRod) ResolvePosition(b *dynamo.Body) error {
	u, err := r.radial(b)
	if err != nil {
		return err
	}
	speed := b.Vel.Reject(u).Mag()
	if r.before != (vec.Vec3{}) {
		speed = b.Vel.Reject(r.before).Mag()
	}
	b.Pos = r.Pivot.Add(u.Scale(r.Length))
	dir, ok := b.Vel.Reject(u).UnitChecked()
	if !ok {
		b.Vel = vec.Zero()
		return nil
	}
	b.Vel = dir.Scale(speed)
	return nil
}

// Extension is the distance from the pivot minus the rod length.
func (r *RigidRod) Extension(b *dynamo.Body) float64 {
	return vec.Distance(b.Pos, r.Pivot) - r.Length
}
