package register

import (
	"github.com/arbitrary-number/quantix/internal/cnumber"
	"github.com/arbitrary-number/quantix/internal/number"
)

// Snapshot is the serializable form of a register. Each amplitude is stored
// as 24 floats: the real and imaginary parts of coefficients a..l.
type Snapshot struct {
	Qubits     int         `msgpack:"qubits"`
	Amplitudes [][]float64 `msgpack:"amplitudes"`
}

// Snapshot captures the current state.
func (r *Register) Snapshot() Snapshot {
	s := Snapshot{Qubits: r.qubits, Amplitudes: make([][]float64, len(r.amps))}
	for i, a := range r.amps {
		c := a.Coefficients()
		row := make([]float64, 2*number.NumOrdinals)
		for k, v := range c {
			row[2*k], row[2*k+1] = real(v), imag(v)
		}
		s.Amplitudes[i] = row
	}
	return s
}

// Restore rebuilds a register from a snapshot.
func Restore(s Snapshot) (*Register, error) {
	r, err := New(s.Qubits)
	if err != nil {
		return nil, err
	}
	if len(s.Amplitudes) != len(r.amps) {
		return nil, errorf(ErrCodeInvalidAmplitudeIndex, "snapshot has %d amplitudes, want %d", len(s.Amplitudes), len(r.amps))
	}
	for i, row := range s.Amplitudes {
		if len(row) != 2*number.NumOrdinals {
			return nil, errorf(ErrCodeInvalidAmplitudeIndex, "amplitude %d has %d parts, want %d", i, len(row), 2*number.NumOrdinals)
		}
		var c [number.NumOrdinals]complex128
		for k := range c {
			c[k] = complex(row[2*k], row[2*k+1])
		}
		r.amps[i] = cnumber.FromCoefficients(c)
	}
	return r, nil
}
