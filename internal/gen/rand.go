package gen

import "math/rand"

// RandomSource abstracts the source of randomness. Exactly one instance is
// threaded as an explicit parameter through an entire generation pass,
// never ambient state, so a (seed, options) pair always reproduces the
// same program.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// RandSource wraps math/rand.
type RandSource struct {
	*rand.Rand
}

// NewRandSource returns a seeded RandomSource.
func NewRandSource(seed int64) *RandSource {
	return &RandSource{rand.New(rand.NewSource(seed))}
}

// ByteSource uses a byte slice as a source of randomness. It lets the fuzz
// engine drive generation: each decision consumes one input byte, and an
// exhausted slice degenerates to zeroes so generation still terminates.
type ByteSource struct {
	data []byte
	pos  int
}

// NewByteSource returns a RandomSource reading decisions from data.
func NewByteSource(data []byte) *ByteSource {
	return &ByteSource{data: data}
}

func (s *ByteSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if s.pos >= len(s.data) {
		return 0
	}
	v := int(s.data[s.pos])
	s.pos++
	return v % n
}

func (s *ByteSource) Float64() float64 {
	if s.pos >= len(s.data) {
		return 0.0
	}
	v := int(s.data[s.pos])
	s.pos++
	return float64(v) / 255.0
}

// intRange samples uniformly from the inclusive range [lo, hi].
func intRange(rng RandomSource, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
