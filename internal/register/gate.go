package register

import (
	"fmt"
	"math"
)

// Gate is a 2×2 complex matrix acting on one qubit.
type Gate [2][2]complex128

// Single-qubit gates.
var (
	Hadamard = Gate{
		{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
		{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
	}
	PauliX = Gate{{0, 1}, {1, 0}}
	PauliZ = Gate{{1, 0}, {0, -1}}
)

// GateByName returns one of the named gates: "h", "x" or "z".
func GateByName(name string) (Gate, error) {
	switch name {
	case "h", "H", "hadamard":
		return Hadamard, nil
	case "x", "X":
		return PauliX, nil
	case "z", "Z":
		return PauliZ, nil
	}
	return Gate{}, fmt.Errorf("unknown gate %q", name)
}

// Apply applies g to qubit in place.
func (r *Register) Apply(g Gate, qubit int) error {
	if err := r.checkQubit(qubit); err != nil {
		return err
	}
	mask := 1 << (r.qubits - 1 - qubit)
	for i := range r.amps {
		if i&mask != 0 {
			continue
		}
		a0, a1 := r.amps[i], r.amps[i|mask]
		r.amps[i] = a0.Mul(g[0][0]).Add(a1.Mul(g[0][1]))
		r.amps[i|mask] = a0.Mul(g[1][0]).Add(a1.Mul(g[1][1]))
	}
	return nil
}
