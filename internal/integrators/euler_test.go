package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/vec"
)

// oscillatorDrift integrates a unit mass on a unit spring and returns the
// largest relative energy error seen over the run.
func oscillatorDrift(t *testing.T, mode Mode, dt float64, steps int) float64 {
	t.Helper()
	s := New(mode)
	b := &dynamo.Body{Mass: 1, Pos: vec.New(1, 0, 0)}
	energy := func() float64 { return 0.5*b.Vel.Mag2() + 0.5*b.Pos.Mag2() }

	e0 := energy()
	maxDrift := 0.0
	for i := 0; i < steps; i++ {
		if err := s.Step(0, b, b.Pos.Scale(-1), dt); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		maxDrift = math.Max(maxDrift, math.Abs(energy()-e0)/e0)
	}
	return maxDrift
}

func TestSemiImplicit_EnergyBounded(t *testing.T) {
	drift := oscillatorDrift(t, SemiImplicit, 0.01, 10000)
	if drift > 0.01 {
		t.Errorf("semi-implicit energy drift too high: %e", drift)
	}
}

func TestSemiImplicit_DriftLinearInDt(t *testing.T) {
	coarse := oscillatorDrift(t, SemiImplicit, 0.02, 5000)
	fine := oscillatorDrift(t, SemiImplicit, 0.01, 10000)

	ratio := coarse / fine
	if ratio < 1.6 || ratio > 2.4 {
		t.Errorf("halving dt changed drift by %.3f, want about 2 (coarse %e, fine %e)", ratio, coarse, fine)
	}
}

func TestExplicit_EnergyGrows(t *testing.T) {
	drift := oscillatorDrift(t, Explicit, 0.01, 10000)
	if drift < 0.5 {
		t.Errorf("explicit Euler should gain energy on an oscillator, drift %e", drift)
	}
}

func TestStep_Ordering(t *testing.T) {
	force := vec.New(2, 0, 0)
	dt := 0.5

	tests := []struct {
		mode    Mode
		wantPos float64
	}{
		{SemiImplicit, 0.5},
		{Midpoint, 0.5},
		{Explicit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			b := &dynamo.Body{Mass: 1}
			if err := New(tt.mode).Step(0, b, force, dt); err != nil {
				t.Fatalf("step: %v", err)
			}
			if b.Vel.X != 1 {
				t.Errorf("velocity %v, want 1", b.Vel.X)
			}
			if b.Pos.X != tt.wantPos {
				t.Errorf("position %v, want %v", b.Pos.X, tt.wantPos)
			}
		})
	}
}

func TestStep_FixedBody(t *testing.T) {
	b := &dynamo.Body{Mass: 1, Fixed: true, Pos: vec.New(1, 2, 3)}
	if err := NewSemiImplicit().Step(0, b, vec.New(100, 0, 0), 0.1); err != nil {
		t.Fatalf("step: %v", err)
	}
	if b.Pos != vec.New(1, 2, 3) || b.Vel != vec.Zero() {
		t.Errorf("fixed body moved: pos %v vel %v", b.Pos, b.Vel)
	}
}

func TestStep_SingularForce(t *testing.T) {
	b := &dynamo.Body{Mass: 1}
	err := NewSemiImplicit().Step(3, b, vec.New(math.Inf(1), 0, 0), 0.1)

	var sf *dynamo.SingularForceError
	if !errors.As(err, &sf) {
		t.Fatalf("expected SingularForceError, got %v", err)
	}
	if sf.Body != 3 {
		t.Errorf("error names body %d, want 3", sf.Body)
	}
	if b.Vel != vec.Zero() {
		t.Error("body was modified by a rejected force")
	}
}

func TestStep_FiltersRunBeforeDrift(t *testing.T) {
	b := &dynamo.Body{Mass: 1}
	zeroY := func(b *dynamo.Body) error {
		b.Vel.Y = 0
		return nil
	}
	if err := NewSemiImplicit().Step(0, b, vec.New(1, 1, 0), 1, zeroY); err != nil {
		t.Fatalf("step: %v", err)
	}
	if b.Pos != vec.New(1, 0, 0) {
		t.Errorf("position %v, want filter applied before drift", b.Pos)
	}

	boom := errors.New("boom")
	err := NewSemiImplicit().Step(0, b, vec.Zero(), 1, func(*dynamo.Body) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("filter error not propagated: %v", err)
	}
}

func TestMidpoint_ForceVelocity(t *testing.T) {
	s := New(Midpoint)
	b := &dynamo.Body{Mass: 1, Vel: vec.New(1, 0, 0)}

	if got := s.ForceVelocity(0, b); got != b.Vel {
		t.Errorf("first step should use current velocity, got %v", got)
	}

	if err := s.Step(0, b, vec.New(2, 0, 0), 0.5); err != nil {
		t.Fatalf("step: %v", err)
	}
	// v is now 2, previous 1: 1.5*2 - 0.5*1 = 2.5
	if got := s.ForceVelocity(0, b); math.Abs(got.X-2.5) > 1e-12 {
		t.Errorf("interpolated velocity %v, want 2.5", got.X)
	}

	if got := NewSemiImplicit().ForceVelocity(0, b); got != b.Vel {
		t.Errorf("semi-implicit should not interpolate, got %v", got)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"semi-implicit", SemiImplicit, false},
		{"", SemiImplicit, false},
		{"midpoint", Midpoint, false},
		{"explicit", Explicit, false},
		{"rk4", SemiImplicit, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
