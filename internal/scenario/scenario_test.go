package scenario_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physlab/internal/constraints"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/scenario"
	"github.com/san-kum/physlab/internal/sim"
	"github.com/san-kum/physlab/internal/sink"
	"github.com/san-kum/physlab/internal/vec"
)

// run builds name with params and runs it with cfg over the defaults.
func run(name string, params map[string]float64, cfg sim.Config, sinks sim.Sinks) (*sim.Model, *sim.Result, error) {
	s, err := scenario.NewRegistry().Configure(name, params)
	Expect(err).NotTo(HaveOccurred())
	m, err := s.Build()
	Expect(err).NotTo(HaveOccurred())
	res, err := sim.NewRunner(sim.WithSinks(sinks)).RunModel(context.Background(), m, cfg)
	return m, res, err
}

var _ = Describe("Registry", func() {
	var r *scenario.Registry

	BeforeEach(func() {
		r = scenario.NewRegistry()
	})

	It("lists every scenario in order", func() {
		Expect(r.Names()).To(HaveLen(14))
		Expect(r.Names()).To(ContainElements("ball-box", "hanging-chain", "solenoid"))
		Expect(r.Names()[0]).To(Equal("ball-box"))
	})

	It("rejects unknown scenarios", func() {
		_, err := r.Get("perpetual-motion")
		Expect(err).To(MatchError("unknown scenario: perpetual-motion"))
	})

	It("rejects unknown params", func() {
		_, err := r.Configure("oscillator", map[string]float64{"bogus": 1})
		Expect(err).To(MatchError(ContainSubstring("unknown param: bogus")))
	})

	It("hands out independent scenarios", func() {
		a, _ := r.Get("oscillator")
		b, _ := r.Get("oscillator")
		Expect(a.SetParam("k", 4)).To(Succeed())
		Expect(a.GetParams()["k"]).To(Equal(4.0))
		Expect(b.GetParams()["k"]).To(Equal(1.0))

		params := a.GetParams()
		params["k"] = 9
		Expect(a.GetParams()["k"]).To(Equal(4.0))
	})

	DescribeTable("every scenario builds and steps",
		func(name string) {
			s, err := r.Get(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Name()).To(Equal(name))

			m, err := s.Build()
			Expect(err).NotTo(HaveOccurred())
			rec := sink.NewRecorder()
			res, err := sim.NewRunner(sim.WithSinks(sim.Sinks{Render: rec, Plot: rec})).
				RunModel(context.Background(), m, sim.Config{TMax: 20 * m.Defaults.Dt})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Steps).To(BeNumerically(">", 0))
		},
		Entry(nil, "ball-box"),
		Entry(nil, "brachistochrone-energy"),
		Entry(nil, "brachistochrone-force"),
		Entry(nil, "dipole"),
		Entry(nil, "earth-orbit"),
		Entry(nil, "orbit-start"),
		Entry(nil, "orbit"),
		Entry(nil, "oscillator"),
		Entry(nil, "springy-pendulum"),
		Entry(nil, "rigid-pendulum"),
		Entry(nil, "three-springs"),
		Entry(nil, "hanging-chain"),
		Entry(nil, "fourier-waves"),
		Entry(nil, "solenoid"),
	)
})

var _ = Describe("Conservative scenarios", func() {
	DescribeTable("keep energy within one percent",
		func(name string, params map[string]float64, cfg sim.Config) {
			_, res, err := run(name, params, cfg, sim.Sinks{})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Reason).To(Equal(sim.ReasonTMax))
			Expect(res.EnergyDrift).To(BeNumerically("<", 0.01))
		},
		Entry("oscillator at a finer step", "oscillator", nil, sim.Config{Dt: 0.01}),
		Entry("rigid pendulum", "rigid-pendulum", nil, sim.Config{}),
		Entry("three springs", "three-springs", nil, sim.Config{TMax: 30}),
		Entry("a circular orbit", "earth-orbit", map[string]float64{"planets": 1}, sim.Config{TMax: 3}),
	)

	It("keeps the rigid pendulum rod at its length", func() {
		_, res, err := run("rigid-pendulum", map[string]float64{"angle": 80}, sim.Config{TMax: 10}, sim.Sinks{})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics["rod_extension"]).To(BeNumerically("<", 1e-9))
	})

	It("conserves momentum in the coupled orbit", func() {
		m, _, err := run("orbit", nil, sim.Config{TMax: 100 * 86400}, sim.Sinks{})
		Expect(err).NotTo(HaveOccurred())

		var p vec.Vec3
		for _, h := range m.World.Handles() {
			p = p.Add(m.World.Body(h).Momentum())
		}
		earth := m.World.Body(1)
		initial := earth.Mass * 0.8 * 2 * math.Pi * 1.496e11 / (365 * 86400)
		Expect(p.X / initial).To(BeNumerically("~", 0, 1e-9))
		Expect(p.Y / initial).To(BeNumerically("~", 1, 1e-9))
	})
})

var _ = Describe("Ball in a box", func() {
	It("bounces off the walls and stays inside", func() {
		m, res, err := run("ball-box", nil, sim.Config{}, sim.Sinks{})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics["wall_hits"]).To(BeNumerically(">", 0))

		ball := m.World.Body(0)
		Expect(ball.Pos.X).To(BeNumerically(">", -5))
		Expect(ball.Pos.X).To(BeNumerically("<", 5))
		Expect(ball.Pos.Y).To(BeNumerically(">", -5))
	})
})

var _ = Describe("Brachistochrone", func() {
	It("brings the energy beads to the bottom together", func() {
		_, res, err := run("brachistochrone-energy", nil, sim.Config{}, sim.Sinks{})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Reason).To(Equal(sim.ReasonDone))
		// π·√(R/g) for R = 100
		Expect(res.Time).To(BeNumerically("~", 10, 3))
	})

	DescribeTable("holds force-driven beads on the wire",
		func(search float64) {
			s, err := scenario.NewRegistry().Configure("brachistochrone-force", map[string]float64{"search": search})
			Expect(err).NotTo(HaveOccurred())
			m, err := s.Build()
			Expect(err).NotTo(HaveOccurred())
			rec := sink.NewRecorder()
			sess, err := sim.NewRunner(sim.WithSinks(sim.Sinks{Plot: rec, Capture: rec})).Start(m, sim.Config{})
			Expect(err).NotTo(HaveOccurred())

			curve := constraints.Cycloid{Radius: 1}
			for !sess.Done() {
				Expect(sess.Step()).To(Succeed())
				for _, h := range m.World.Handles() {
					b := m.World.Body(h)
					theta, _ := constraints.Search{}.Invert(curve, b.Pos)
					Expect(vec.Distance(curve.Point(theta), b.Pos)).To(BeNumerically("<", 1e-6),
						"bead %d at t=%v", h, sess.Clock().T)
				}
			}

			res := sess.Result()
			Expect(res.Reason).To(Equal(sim.ReasonTMax))
			Expect(rec.Snapshots()).To(HaveLen(41))
			Expect(rec.Snapshots()[1]).To(Equal("050"))
		},
		Entry("sided inverse", 0.0),
		Entry("numerical search", 1.0),
	)
})

var _ = Describe("Dipole", func() {
	DescribeTable("stays bounded at the default step",
		func(midpoint float64) {
			_, res, err := run("dipole", map[string]float64{"midpoint": midpoint}, sim.Config{}, sim.Sinks{})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Reason).To(Equal(sim.ReasonTMax))
		},
		Entry("semi-implicit", 0.0),
		Entry("midpoint", 1.0),
	)

	It("stops once the ion speeds up", func() {
		_, res, err := run("dipole", map[string]float64{"runaway": 1.0001}, sim.Config{}, sim.Sinks{})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Reason).To(Equal(sim.ReasonDone))
		Expect(res.Time).To(BeNumerically("<", 1))
	})
})

var _ = Describe("Hanging chain", func() {
	var res *sim.Result
	var rec *sink.Recorder

	BeforeEach(func() {
		rec = sink.NewRecorder()
		var err error
		_, res, err = run("hanging-chain", nil, sim.Config{}, sim.Sinks{Plot: rec})
		Expect(err).NotTo(HaveOccurred())
	})

	It("relaxes", func() {
		Expect(res.Metrics["kinetic_rise"]).To(BeNumerically("<=", 1e-6))
		Expect(res.Metrics["length_change"]).To(BeNumerically("<", 1e-4))
		// springs in tension are longer than relaxed
		Expect(res.Metrics["length"]).To(BeNumerically(">", 40))
	})

	It("is closer to a catenary than a parabola", func() {
		Expect(res.Metrics["catenary_residual"]).To(BeNumerically("<", 1e-9))
		Expect(res.Metrics["catenary_rms"]).To(BeNumerically("<", res.Metrics["parabola_rms"]))

		chain, ok := rec.Find("Chain")
		Expect(ok).To(BeTrue())
		Expect(chain.Points).To(HaveLen(21))
		catenary, _ := rec.Find("Catenary")
		Expect(catenary.Points).To(HaveLen(1000))
	})
})

var _ = Describe("Fourier waves", func() {
	It("approaches the pulse with more terms", func() {
		w := scenario.NewWave(1, 10, 100, 20, 2, 3)
		pulse := func(x float64) float64 {
			if x < 2 {
				return 3 * math.Pow(math.Sin(math.Pi*x/2), 2)
			}
			return 0
		}
		rms := func(terms int) float64 {
			sum := 0.0
			for i, u := range w.Displacement(0, terms) {
				d := u - pulse(w.X[i])
				sum += d * d
			}
			return math.Sqrt(sum / float64(len(w.X)))
		}
		Expect(rms(20)).To(BeNumerically("<", rms(10)))
		Expect(rms(10)).To(BeNumerically("<", rms(3)))
	})

	It("clears and redraws every step", func() {
		rec := sink.NewRecorder()
		_, res, err := run("fourier-waves", nil, sim.Config{TMax: 0.5}, sim.Sinks{Plot: rec})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Steps).To(Equal(5))

		series := rec.AllSeries()
		Expect(series).To(HaveLen(3))
		Expect(series[2].Graph.Title).To(Equal("1D Wave with 20 Fourier Terms"))
		for _, s := range series {
			Expect(s.Points).To(HaveLen(100))
			Expect(s.Clears).To(Equal(6))
		}
	})
})

var _ = Describe("Solenoid", func() {
	It("winds the coil from end to end", func() {
		rec := sink.NewRecorder()
		_, _, err := run("solenoid", nil, sim.Config{}, sim.Sinks{Render: rec})
		Expect(err).NotTo(HaveOccurred())

		objs := rec.Objects()
		Expect(objs).To(HaveLen(1440))
		first, last := objs[0], objs[len(objs)-1]
		Expect(first.Body).To(Equal(dynamo.NoBody))
		Expect(first.Pos.Add(first.Axis).X).To(BeNumerically("~", -5, 1e-9))
		Expect(last.Pos.X).To(BeNumerically("~", 5, 1e-9))
	})

	It("rejects a zero winding step", func() {
		s := scenario.NewSolenoid()
		Expect(s.SetParam("step", 0)).To(Succeed())
		_, err := s.Build()
		Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
	})
})
