// Package dynamo provides the state primitives every simulation is built on.
//
// The package defines the physical state that integrators, force laws and
// constraint resolvers operate on, kept apart from anything a renderer owns:
//
//   - [Body]: point mass with position, velocity, mass and optional charge
//   - [World]: fixed-size arena of bodies addressed by [Handle]
//   - [Clock]: simulation time, step size and limit for one run
//
// # Example
//
//	w := dynamo.NewWorld()
//	h, _ := w.Add(dynamo.Body{ID: "ball", Mass: 1, Vel: vec.New(1, 0, 0)})
//	w.Freeze()
//	clock, _ := dynamo.NewClock(0.001, 10)
//	for !clock.Done() {
//	    // assemble forces, step w.Body(h) ...
//	    clock.Advance()
//	}
//
// # Thread Safety
//
// A World is owned by exactly one run. Worlds are NOT thread-safe; use
// [World.Clone] to hand an independent copy to another goroutine.
package dynamo
