package register

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/arbitrary-number/quantix/internal/testutil"
)

func superposition(t *testing.T) *Register {
	t.Helper()
	r, err := FromAmplitudes(complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0))
	require.NoError(t, err)
	return r
}

func TestMeasureFrequencies(t *testing.T) {
	const trials = 10000
	src := testutil.NewSeededSource(20251015)
	r := superposition(t)

	var counts [2]float64
	for range trials {
		res, err := Measure(r, []int{0}, src)
		require.NoError(t, err)
		counts[res.Outcome]++
		require.InDelta(t, 1.0, res.Register.TotalProbability(), Tolerance)
	}

	expected := trials / 2.0
	chi2 := 0.0
	for _, c := range counts {
		chi2 += (c - expected) * (c - expected) / expected
	}
	critical := distuv.ChiSquared{K: 1}.Quantile(0.999)
	assert.Less(t, chi2, critical, "counts %v", counts)
	assert.InDelta(t, 0.5, counts[0]/trials, 0.03)
}

func TestMeasureSelectsByCumulativeProbability(t *testing.T) {
	tests := []struct {
		sample float64
		want   int
	}{
		{0, 0},
		{0.3, 0},
		{0.5, 0},
		{0.6, 1},
		{0.999999, 1},
	}
	for _, tt := range tests {
		res, err := Measure(superposition(t), []int{0}, testutil.NewSequenceSource(tt.sample))
		require.NoError(t, err)
		assert.Equal(t, tt.want, res.Outcome, "sample %v", tt.sample)
		assert.InDelta(t, 0.5, res.Probability, 1e-12)
	}
}

func TestMeasureCollapsesCopy(t *testing.T) {
	r := superposition(t)

	res, err := Measure(r, []int{0}, testutil.NewSequenceSource(0.9))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Outcome)
	assert.Equal(t, []float64{0, 1}, roundAll(res.Register.Probabilities()))
	assert.InDelta(t, 1.0, res.Register.TotalProbability(), Tolerance)

	assert.InDelta(t, 0.5, r.Probabilities()[0], 1e-12, "input must not change")
}

func TestMeasureSkipsZeroMassOutcome(t *testing.T) {
	r, _ := FromAmplitudes(0, 1)

	res, err := Measure(r, []int{0}, testutil.NewSequenceSource(0))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Outcome)
	assert.Equal(t, 1.0, res.Probability)
}

func TestMeasureDegenerate(t *testing.T) {
	r, _ := New(2)
	src := testutil.NewSequenceSource(0.5)

	_, err := Measure(r, []int{0}, src)
	require.Error(t, err)
	assert.True(t, IsDegenerate(err))
	assert.Equal(t, 0, src.Drawn(), "no sample is drawn for a degenerate register")
}

func TestMeasureTargetOrder(t *testing.T) {
	// Basis state |01⟩: qubit 0 is 0, qubit 1 is 1.
	r, _ := FromAmplitudes(0, 1, 0, 0)

	res, err := Measure(r, []int{1, 0}, testutil.NewSequenceSource(0))
	require.NoError(t, err)
	assert.Equal(t, 0b10, res.Outcome)

	res, err = Measure(r, []int{0, 1}, testutil.NewSequenceSource(0))
	require.NoError(t, err)
	assert.Equal(t, 0b01, res.Outcome)
}

func TestMeasureJointOutcomeOfEntangledPair(t *testing.T) {
	r, _ := FromAmplitudes(complex(1/math.Sqrt2, 0), 0, 0, complex(1/math.Sqrt2, 0))

	res, err := Measure(r, []int{0, 1}, testutil.NewSequenceSource(0.7))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Outcome)
	assert.Equal(t, []float64{0, 0, 0, 1}, roundAll(res.Register.Probabilities()))
}

func TestMeasureQubitsSequential(t *testing.T) {
	r, _ := FromAmplitudes(complex(1/math.Sqrt2, 0), 0, 0, complex(1/math.Sqrt2, 0))
	src := testutil.NewSequenceSource(0.1, 0.99)

	bits, err := MeasureQubits(r, src, 0, 1)
	require.NoError(t, err)

	// The first collapse fixes the second qubit, whatever the second sample.
	assert.Equal(t, []int{0, 0}, bits)
	assert.Equal(t, 2, src.Drawn())
	assert.Equal(t, []float64{1, 0, 0, 0}, roundAll(r.Probabilities()))
}

func TestMeasureQubitInPlace(t *testing.T) {
	r := superposition(t)

	bit, err := MeasureQubit(r, 0, testutil.NewSequenceSource(0.75))
	require.NoError(t, err)
	assert.Equal(t, 1, bit)
	assert.True(t, r.IsNormalized())
	assert.Equal(t, []float64{0, 1}, roundAll(r.Probabilities()))
}

func TestMeasureInvalidTargets(t *testing.T) {
	r, _ := WithZeroState(2)
	for _, targets := range [][]int{nil, {2}, {-1}, {0, 0}} {
		_, err := Measure(r, targets, testutil.NewSequenceSource(0))
		assert.True(t, HasCode(err, ErrCodeInvalidQubitIndex), "%v", targets)
	}
}

func TestMeasureSourceFailures(t *testing.T) {
	r := superposition(t)

	boom := errors.New("boom")
	_, err := Measure(r, []int{0}, SourceFunc(func() (float64, error) { return 0, boom }))
	assert.ErrorIs(t, err, boom)

	_, err = Measure(r, []int{0}, SourceFunc(func() (float64, error) { return 1, nil }))
	assert.True(t, HasCode(err, ErrCodeEntropyUnavailable))
}

func TestCryptoSourceRange(t *testing.T) {
	for range 100 {
		v, err := CryptoSource{}.Float64()
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}

	res, err := Measure(superposition(t), []int{0}, nil)
	require.NoError(t, err)
	assert.Contains(t, []int{0, 1}, res.Outcome)
}

func roundAll(p []float64) []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = math.Round(v*1e9) / 1e9
	}
	return out
}
