package hatch

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource supplies uniform integer draws for the randomizer.
type RandomSource interface {
	// IntN returns a uniform int in [0, n).
	IntN(n int) int
}

// cryptoRNG is the production source, backed by crypto/rand.
type cryptoRNG struct{}

func (cryptoRNG) IntN(n int) int {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.IntN(n)
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return int(u % uint64(n))
}

// DefaultRNG returns the crypto-backed source used in production.
func DefaultRNG() RandomSource { return cryptoRNG{} }

// seededRNG is deterministic, for tests and simulations.
type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a reproducible source for a seed.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) IntN(n int) int { return s.r.IntN(n) }
