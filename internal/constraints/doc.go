// Package constraints restricts the motion of bodies after the free
// force update.
//
// A constraint is attached to a body once at setup and keeps its kind for
// the whole run. Depending on what it needs, it resolves at one or more
// points of a step:
//
//   - [ForceResolver]: rewrites the net force before the velocity update ([RigidRod])
//   - [VelocityResolver]: rewrites the velocity before the position update ([Rail], [EnergyRail], [SpringNetwork] dissipation)
//   - [PositionResolver]: corrects the state after the position update ([RigidRod], [Wall])
//
// Rails follow a parametric [Curve]. Mapping a position back onto the
// curve parameter is done by an [Inverter] chosen per rail: [ClosedForm]
// and [Sided] are exact but only valid on part of the curve, [Search]
// works everywhere at the cost of a nested bisection each step.
package constraints
