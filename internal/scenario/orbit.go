package scenario

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/metrics"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sim"
	"github.com/san-kum/physlab/internal/sink"
	"github.com/san-kum/physlab/internal/vec"
)

// SI values.
const (
	earthMass   = 5.97e24
	sunMass     = 1.99e30
	earthOrbit  = 1.496e11
	year        = 3.154e7
	day         = 86400.0
	gravityG    = 6.674e-11
	curvePoints = 100
)

// planetSystem is several planets sharing one sun. Each planet starts at
// the same radius with the circular-orbit tangential momentum and its own
// radial momentum. The sun is anchored so the two-body problems stay
// independent.
type planetSystem struct {
	G          float64
	SunMass    float64
	PlanetMass float64
	Radius     float64
	// Radial is the initial radial momentum of each planet.
	Radial []float64
	Graph  sink.Graph
	// CurveStep is the radius spacing of the effective potential curves.
	CurveStep float64
	Defaults  sim.Config
}

// circularMomentum is the tangential momentum of a circular orbit at
// radius r.
func (p planetSystem) circularMomentum() float64 {
	f := p.G * p.PlanetMass * p.SunMass / (p.Radius * p.Radius)
	return math.Sqrt(p.Radius * p.PlanetMass * f)
}

func (p planetSystem) build() (*sim.Model, error) {
	w := dynamo.NewWorld()
	sun, err := w.Add(dynamo.Body{Mass: p.SunMass, Fixed: true})
	if err != nil {
		return nil, err
	}

	tangential := p.circularMomentum()
	start := vec.New(0, p.Radius, 0)
	scene := []sink.Object{sink.Ball(sun, vec.Zero(), 0.1*p.Radius, "yellow")}

	var planets []dynamo.Handle
	for i, pr := range p.Radial {
		b := dynamo.Body{Pos: start, Mass: p.PlanetMass}
		b.SetMomentum(vec.New(tangential, pr, 0))
		h, err := w.Add(b)
		if err != nil {
			return nil, err
		}
		planets = append(planets, h)
		ball := sink.Ball(h, start, 0.05*p.Radius, colorAt(i))
		ball.Trail = true
		scene = append(scene, ball)
	}

	gravity := &physics.InverseSquare{Source: sun, Targets: planets, G: p.G, Anchor: true}

	var series []metrics.Series
	for i, h := range planets {
		series = append(series, metrics.Series{
			Graph: p.Graph,
			Label: fmt.Sprintf("planet %d", i+1),
			X: func(w *dynamo.World, _ dynamo.Clock) float64 {
				return vec.Distance(w.Body(h).Pos, w.Body(sun).Pos)
			},
			Y: func(w *dynamo.World, _ dynamo.Clock) float64 {
				b, s := w.Body(h), w.Body(sun)
				r := vec.Distance(b.Pos, s.Pos)
				return metrics.Kinetic(b) + metrics.Kinetic(s) + physics.GravityPotential(r, p.G, s.Mass, b.Mass)
			},
		})
	}

	angular := p.Radius * tangential
	setup := func(_ *dynamo.World, sinks sim.Sinks) error {
		ug := sinks.Plot.Series(p.Graph, "U_g")
		ucf := sinks.Plot.Series(p.Graph, "U_cf")
		ueff := sinks.Plot.Series(p.Graph, "U_eff")
		for i := 1; i < curvePoints; i++ {
			r := p.CurveStep * float64(i)
			g := physics.GravityPotential(r, p.G, p.SunMass, p.PlanetMass)
			cf := physics.CentrifugalPotential(r, angular, p.PlanetMass)
			sinks.Plot.Add(ug, r, g)
			sinks.Plot.Add(ucf, r, cf)
			sinks.Plot.Add(ueff, r, g+cf)
		}
		return nil
	}

	return &sim.Model{
		World:    w,
		Forces:   physics.NewAssembler(gravity),
		Series:   series,
		Scene:    scene,
		Hooks:    sim.Hooks{Setup: setup},
		Defaults: p.Defaults,
	}, nil
}

// EarthOrbit launches planets from Earth's orbit with increasing radial
// momentum and plots system energy against separation over the
// effective potential. Units are Earth orbit radii, years and Earth
// masses.
type EarthOrbit struct {
	params
}

func NewEarthOrbit() *EarthOrbit {
	return &EarthOrbit{params: newParams("earth-orbit", map[string]float64{
		"planets": 5,
	})}
}

func (s *EarthOrbit) Build() (*sim.Model, error) {
	const (
		kilogram = 1 / earthMass
		meter    = 1 / earthOrbit
		second   = 1 / year
	)
	sys := planetSystem{
		G:          gravityG * meter * meter * meter / kilogram / (second * second),
		SunMass:    sunMass * kilogram,
		PlanetMass: 1,
		Radius:     1,
		Graph:      sink.Graph{Title: "Energy of Planetary Orbits", XLabel: "r (Earth orbit radii)", YLabel: "U"},
		CurveStep:  1.0 / 20,
		Defaults:   sim.Config{Dt: 0.001, TMax: 10, SampleEvery: 1},
	}
	n := s.count("planets")
	p := sys.circularMomentum()
	for i := 0; i < n; i++ {
		sys.Radial = append(sys.Radial, float64(i)*p/float64(n))
	}
	return sys.build()
}

// OrbitStart is EarthOrbit in SI units with planets launched at angles
// to the circular orbit.
type OrbitStart struct {
	params
}

func NewOrbitStart() *OrbitStart {
	return &OrbitStart{params: newParams("orbit-start", map[string]float64{
		"planets": 5,
		// angle_step is the launch angle increment in degrees.
		"angle_step": 10,
	})}
}

func (s *OrbitStart) Build() (*sim.Model, error) {
	sys := planetSystem{
		G:          gravityG,
		SunMass:    sunMass,
		PlanetMass: earthMass,
		Radius:     earthOrbit,
		Graph:      sink.Graph{Title: "Energy Trajectories of Planetary Orbits", XLabel: "Planet-Sun Separation (m)", YLabel: "System Energy (J)"},
		CurveStep:  earthOrbit / 15,
		Defaults:   sim.Config{Dt: 0.001 * year, TMax: 10 * year, SampleEvery: 20},
	}
	p := sys.circularMomentum()
	for i := 0; i < s.count("planets"); i++ {
		launch := metrics.Radians(float64(i) * s.get("angle_step"))
		sys.Radial = append(sys.Radial, p*math.Tan(launch))
	}
	return sys.build()
}

// Orbit is the coupled Earth and Sun. Both bodies move, so momentum is
// exchanged through the reaction force.
type Orbit struct {
	params
}

func NewOrbit() *Orbit {
	return &Orbit{params: newParams("orbit", map[string]float64{
		// speed is Earth's starting speed as a fraction of its mean
		// orbital speed.
		"speed": 0.8,
	})}
}

func (s *Orbit) Build() (*sim.Model, error) {
	const (
		au        = 1.496e11
		sunMassSI = 1.988e30
		yearSI    = 365 * day
	)
	w := dynamo.NewWorld()
	sun, err := w.Add(dynamo.Body{Mass: sunMassSI})
	if err != nil {
		return nil, err
	}
	v := 2 * math.Pi * au / yearSI * s.get("speed")
	earth, err := w.Add(dynamo.Body{Pos: vec.New(au, 0, 0), Vel: vec.New(0, v, 0), Mass: earthMass})
	if err != nil {
		return nil, err
	}

	gravity := &physics.InverseSquare{Source: sun, Targets: []dynamo.Handle{earth}, G: gravityG}
	graph := sink.Graph{Title: "Energy of Earth's Orbit", XLabel: "Time (days)", YLabel: "Energy (J)"}
	days := func(_ *dynamo.World, c dynamo.Clock) float64 { return c.T / day }
	potential := func(w *dynamo.World, _ dynamo.Clock) float64 { return gravity.Potential(w) }
	kinetic := func(w *dynamo.World, _ dynamo.Clock) float64 { return metrics.KineticTotal(w) }

	earthBall := sink.Ball(earth, vec.New(au, 0, 0), 0.02*au, "green")
	earthBall.Trail = true

	return &sim.Model{
		World:  w,
		Forces: physics.NewAssembler(gravity),
		Series: []metrics.Series{
			{Graph: graph, Label: "potential", X: days, Y: potential},
			{Graph: graph, Label: "kinetic", X: days, Y: kinetic},
			{Graph: graph, Label: "total", X: days, Y: func(w *dynamo.World, c dynamo.Clock) float64 {
				return potential(w, c) + kinetic(w, c)
			}},
		},
		Scene: []sink.Object{
			sink.Ball(sun, vec.Zero(), 0.1*au, "yellow"),
			earthBall,
		},
		Defaults: sim.Config{Dt: day, TMax: 5 * yearSI},
	}, nil
}
