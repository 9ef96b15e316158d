// Package physics provides the force laws acting on the bodies of a
// [dynamo.World] and the assembler that sums them.
//
// Every law adds its contribution into a net force slice indexed by
// body handle. Laws never move bodies; the [Assembler] evaluates all
// laws for all bodies first and hands the complete slice to the caller,
// so neighbouring bodies never see each other half-updated:
//
//	a := physics.NewAssembler(
//	    physics.Gravity(9.81),
//	    &physics.Spring{Body: ball, K: 1, Relaxed: 10},
//	)
//	net, err := a.Net(world, nil)
//
// The laws available are:
//
//   - [UniformField]: constant acceleration field such as surface gravity
//   - [InverseSquare]: attraction towards a source body, with optional anchoring
//   - [Lorentz]: q·v×B for charged bodies in a [MagneticField]
//   - [Spring]: Hookean spring from a fixed point to a body
//   - [Damping]: linear drag −c·v
//
// Laws that have a potential implement [Potential] so diagnostics can
// compute total mechanical energy.
package physics
