package register

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/arbitrary-number/quantix/internal/cnumber"
)

// Result is the outcome of Measure.
type Result struct {
	// Outcome packs the measured bits, first target most significant.
	Outcome int

	// Probability is the mass the selected outcome had before collapse.
	Probability float64

	// Register is the collapsed, renormalized copy.
	Register *Register
}

// Measure samples one joint outcome of the target qubits and returns it with
// a collapsed copy of r. r itself is not modified.
//
// Outcome probabilities are the summed squared norms of the consistent
// amplitudes. The outcome chosen is the first, in ascending order, whose
// cumulative probability reaches the sample. Outcomes with no mass are never
// chosen. A register with no mass fails with DEGENERATE_MEASUREMENT.
func Measure(r *Register, targets []int, src RandomSource) (Result, error) {
	if err := r.checkTargets(targets); err != nil {
		return Result{}, err
	}

	probs := r.outcomeProbabilities(targets)
	total := floats.Sum(probs)
	if total == 0 || math.IsNaN(total) {
		return Result{}, errorf(ErrCodeDegenerateMeasurement, "targets %v have zero probability mass", targets)
	}

	u, err := sample(src)
	if err != nil {
		return Result{}, err
	}
	outcome := selectOutcome(probs, u*total)

	c := r.Clone()
	if err := c.collapse(targets, outcome); err != nil {
		return Result{}, err
	}
	return Result{Outcome: outcome, Probability: probs[outcome] / total, Register: c}, nil
}

// MeasureQubit measures a single qubit and collapses r in place.
func MeasureQubit(r *Register, qubit int, src RandomSource) (int, error) {
	res, err := Measure(r, []int{qubit}, src)
	if err != nil {
		return 0, err
	}
	r.amps = res.Register.amps
	return res.Outcome, nil
}

// MeasureQubits measures each qubit in turn, collapsing and renormalizing r
// in place before the next one. Each measurement draws its own sample.
func MeasureQubits(r *Register, src RandomSource, qubits ...int) ([]int, error) {
	out := make([]int, 0, len(qubits))
	for _, q := range qubits {
		bit, err := MeasureQubit(r, q, src)
		if err != nil {
			return out, err
		}
		out = append(out, bit)
	}
	return out, nil
}

func (r *Register) checkTargets(targets []int) error {
	if len(targets) == 0 {
		return errorf(ErrCodeInvalidQubitIndex, "no target qubits")
	}
	seen := make(map[int]bool, len(targets))
	for _, q := range targets {
		if err := r.checkQubit(q); err != nil {
			return err
		}
		if seen[q] {
			return errorf(ErrCodeInvalidQubitIndex, "qubit %d targeted twice", q)
		}
		seen[q] = true
	}
	return nil
}

// outcomeOf packs the target bits of basis index i.
func (r *Register) outcomeOf(i int, targets []int) int {
	o := 0
	for _, q := range targets {
		o = o<<1 | r.bit(i, q)
	}
	return o
}

func (r *Register) outcomeProbabilities(targets []int) []float64 {
	probs := make([]float64, 1<<len(targets))
	for i, a := range r.amps {
		probs[r.outcomeOf(i, targets)] += a.NormSquared()
	}
	return probs
}

// selectOutcome returns the first outcome with positive mass whose cumulative
// mass reaches threshold. Rounding can leave the threshold above the final
// cumulative sum; the last outcome with mass is chosen then.
func selectOutcome(probs []float64, threshold float64) int {
	cum := make([]float64, len(probs))
	floats.CumSum(cum, probs)

	last := -1
	for i, p := range probs {
		if p <= 0 {
			continue
		}
		last = i
		if cum[i] >= threshold {
			return i
		}
	}
	return last
}

// collapse zeroes every amplitude inconsistent with outcome and renormalizes
// the rest.
func (r *Register) collapse(targets []int, outcome int) error {
	var mass float64
	for i := range r.amps {
		if r.outcomeOf(i, targets) != outcome {
			r.amps[i] = cnumber.Zero()
			continue
		}
		mass += r.amps[i].NormSquared()
	}
	if mass == 0 {
		return errorf(ErrCodeDegenerateMeasurement, "outcome %d has zero probability mass", outcome)
	}
	r.scale(1 / math.Sqrt(mass))
	return nil
}
