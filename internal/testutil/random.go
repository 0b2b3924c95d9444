// Package testutil provides deterministic stand-ins for the nondeterministic
// parts of quantix.
package testutil

import (
	"math/rand/v2"
	"sync"
)

// SequenceSource replays a fixed list of samples, one per call.
//
// It satisfies register.RandomSource. It panics when the list is exhausted
// so a test that draws more often than expected fails loudly.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequenceSource struct {
	mu      sync.Mutex
	samples []float64
	next    int
}

// NewSequenceSource returns a source that yields samples in order.
func NewSequenceSource(samples ...float64) *SequenceSource {
	return &SequenceSource{samples: samples}
}

// Float64 returns the next sample.
func (s *SequenceSource) Float64() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.samples) {
		panic("testutil: SequenceSource exhausted")
	}
	v := s.samples[s.next]
	s.next++
	return v, nil
}

// Drawn returns how many samples have been consumed.
func (s *SequenceSource) Drawn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// Reset rewinds to the first sample.
func (s *SequenceSource) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next = 0
}

// SeededSource is a reproducible pseudo-random source for statistical tests.
type SeededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a PCG-backed source with a fixed seed.
func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 returns the next pseudo-random sample in [0, 1).
func (s *SeededSource) Float64() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64(), nil
}
