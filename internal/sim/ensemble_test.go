package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/physlab/internal/dynamo"
)

func TestEnsemble_DriftLinearInDt(t *testing.T) {
	dts := Halving(0.02, 3)
	require.Equal(t, []float64{0.02, 0.01, 0.005}, dts)

	results, err := NewEnsemble(oscillator{}, nil).Run(context.Background(), Config{TMax: 20}, dts)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, dts[i], r.Dt)
	}

	order, err := DriftOrder(results)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, order, 0.2)
}

type broken struct{}

func (broken) Name() string { return "broken" }

func (broken) Build() (*Model, error) { return nil, errors.New("no world today") }

func TestEnsemble_Error(t *testing.T) {
	_, err := NewEnsemble(broken{}, nil).Run(context.Background(), Config{TMax: 1}, []float64{0.1, 0.2})
	assert.Error(t, err)

	_, err = DriftOrder([]*Result{{Dt: 0.1, EnergyDrift: 0.01}})
	assert.Error(t, err)
}

func TestConfig_Merge(t *testing.T) {
	got := Config{Dt: 0.5}.Merge(Config{Dt: 0.1, TMax: 10, SampleEvery: 3, Mode: "midpoint"})
	assert.Equal(t, Config{Dt: 0.5, TMax: 10, SampleEvery: 3, Mode: "midpoint"}, got)
	assert.NoError(t, got.Validate())
	assert.ErrorIs(t, Config{Dt: 1}.Validate(), dynamo.ErrInvalidConfig)
}
