package scenario

import (
	"fmt"
	"sort"

	"github.com/san-kum/physlab/internal/sim"
)

// Tunable is a scenario whose physical parameters can be changed before
// it is built.
type Tunable interface {
	sim.Scenario
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Registry struct {
	factories map[string]func() Tunable
}

func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]func() Tunable)}

	r.Register("ball-box", func() Tunable { return NewBallBox() })
	r.Register("brachistochrone-energy", func() Tunable { return NewBrachistochroneEnergy() })
	r.Register("brachistochrone-force", func() Tunable { return NewBrachistochroneForce() })
	r.Register("dipole", func() Tunable { return NewDipole() })
	r.Register("earth-orbit", func() Tunable { return NewEarthOrbit() })
	r.Register("orbit-start", func() Tunable { return NewOrbitStart() })
	r.Register("orbit", func() Tunable { return NewOrbit() })
	r.Register("oscillator", func() Tunable { return NewOscillator() })
	r.Register("springy-pendulum", func() Tunable { return NewSpringyPendulum() })
	r.Register("rigid-pendulum", func() Tunable { return NewRigidPendulum() })
	r.Register("three-springs", func() Tunable { return NewThreeSprings() })
	r.Register("hanging-chain", func() Tunable { return NewHangingChain() })
	r.Register("fourier-waves", func() Tunable { return NewFourierWaves() })
	r.Register("solenoid", func() Tunable { return NewSolenoid() })

	return r
}

func (r *Registry) Register(name string, f func() Tunable) {
	r.factories[name] = f
}

// Get returns a new scenario with its default parameters.
func (r *Registry) Get(name string) (Tunable, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s", name)
	}
	return f(), nil
}

// Configure returns a new scenario with params applied over the defaults.
func (r *Registry) Configure(name string, params map[string]float64) (Tunable, error) {
	s, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	for k, v := range params {
		if err := s.SetParam(k, v); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return s, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// params backs GetParams and SetParam for every scenario. Only keys
// present at construction can be set.
type params struct {
	name   string
	values map[string]float64
}

func newParams(name string, values map[string]float64) params {
	return params{name: name, values: values}
}

func (p *params) Name() string { return p.name }

func (p *params) GetParams() map[string]float64 {
	out := make(map[string]float64, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

func (p *params) SetParam(name string, value float64) error {
	if _, ok := p.values[name]; !ok {
		return fmt.Errorf("unknown param: %s", name)
	}
	p.values[name] = value
	return nil
}

func (p *params) get(name string) float64 { return p.values[name] }

func (p *params) flag(name string) bool { return p.values[name] != 0 }

func (p *params) count(name string) int { return int(p.values[name]) }
