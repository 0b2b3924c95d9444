package register

import (
	"crypto/rand"
	"encoding/binary"
)

// RandomSource supplies uniform samples in [0, 1).
//
// Measurement draws exactly one sample per collapse. Tests substitute a
// deterministic source here.
type RandomSource interface {
	Float64() (float64, error)
}

// CryptoSource draws from crypto/rand. It is the default source.
type CryptoSource struct{}

// Float64 returns 53 random bits scaled into [0, 1).
func (CryptoSource) Float64() (float64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, &Error{Code: ErrCodeEntropyUnavailable, Message: "read crypto/rand", Err: err}
	}
	return float64(binary.LittleEndian.Uint64(b[:])>>11) / (1 << 53), nil
}

// SourceFunc adapts a function to RandomSource.
type SourceFunc func() (float64, error)

// Float64 calls f.
func (f SourceFunc) Float64() (float64, error) { return f() }

func sample(src RandomSource) (float64, error) {
	if src == nil {
		src = CryptoSource{}
	}
	v, err := src.Float64()
	if err != nil {
		return 0, err
	}
	if v < 0 || v >= 1 {
		return 0, errorf(ErrCodeEntropyUnavailable, "sample %v outside [0, 1)", v)
	}
	return v, nil
}
