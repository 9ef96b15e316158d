package vec

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-12)

func TestArithmetic(t *testing.T) {
	a := New(1, 2, 3)
	b := New(4, 5, 6)

	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"add", a.Add(b), New(5, 7, 9)},
		{"sub", b.Sub(a), New(3, 3, 3)},
		{"scale", a.Scale(2), New(2, 4, 6)},
		{"neg", a.Neg(), New(-1, -2, -3)},
		{"cross", XHat.Cross(YHat), ZHat},
		{"cross anticommutes", YHat.Cross(XHat), ZHat.Neg()},
		{"cross general", a.Cross(b), New(-3, 6, -3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got, approx); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDotAndMag(t *testing.T) {
	if got := New(1, 2, 3).Dot(New(4, 5, 6)); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := New(3, 4, 0).Mag(); got != 5 {
		t.Errorf("Mag = %v, want 5", got)
	}
	if got := New(3, 4, 0).Mag2(); got != 25 {
		t.Errorf("Mag2 = %v, want 25", got)
	}
	if got := Distance(New(1, 1, 1), New(1, 1, 3)); got != 2 {
		t.Errorf("Distance = %v, want 2", got)
	}
}

func TestUnit(t *testing.T) {
	u := New(0, 3, 4).Unit()
	if diff := cmp.Diff(New(0, 0.6, 0.8), u, approx); diff != "" {
		t.Errorf("Unit mismatch (-want +got):\n%s", diff)
	}
	if math.Abs(u.Mag()-1) > 1e-12 {
		t.Errorf("unit vector has length %v", u.Mag())
	}
}

func TestUnitZeroVector(t *testing.T) {
	if got := Zero().Unit(); got != Zero() {
		t.Errorf("Unit of zero = %v, want zero vector", got)
	}
	if _, ok := Zero().UnitChecked(); ok {
		t.Error("UnitChecked reported a direction for the zero vector")
	}
	if _, ok := New(math.NaN(), 0, 0).UnitChecked(); ok {
		t.Error("UnitChecked accepted a NaN vector")
	}
}

func TestProjectReject(t *testing.T) {
	v := New(2, 3, 0)
	d := New(5, 0, 0)

	if diff := cmp.Diff(New(2, 0, 0), v.Project(d), approx); diff != "" {
		t.Errorf("Project mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(New(0, 3, 0), v.Reject(d), approx); diff != "" {
		t.Errorf("Reject mismatch (-want +got):\n%s", diff)
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		v    Vec3
		want bool
	}{
		{New(1, 2, 3), true},
		{New(math.NaN(), 0, 0), false},
		{New(0, math.Inf(1), 0), false},
		{New(0, 0, math.Inf(-1)), false},
	}
	for _, tt := range tests {
		if got := tt.v.IsFinite(); got != tt.want {
			t.Errorf("IsFinite(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
