// Package random provides the uniform random service consumed by the
// generator and the activation engine, plus the identity-keyed seed used for
// cosmetic choices.
//
// Structural randomness (tree shape, neighbour choice) always flows through a
// Source. The flavour seed is derived from an artifact owner's identity and
// never feeds a Source, so visuals stay stable when the graph is re-rolled.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Source is a uniform random source.
type Source interface {
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
	// IntRange returns a value in [min, max], both inclusive.
	IntRange(min, max int) int
}

// Rand is the default Source, backed by a PCG generator.
type Rand struct {
	r *rand.Rand
}

// NewSeeded returns a deterministic source.
func NewSeeded(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))}
}

// New returns a source seeded from crypto/rand.
func New() (*Rand, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewSeeded(seed), nil
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

func (s *Rand) Intn(n int) int {
	return s.r.IntN(n)
}

func (s *Rand) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.r.IntN(max-min+1)
}

// Pick returns a uniformly chosen element of items. ok is false for an
// empty slice.
func Pick[T any](src Source, items []T) (v T, ok bool) {
	if len(items) == 0 {
		return v, false
	}
	return items[src.Intn(len(items))], true
}

// SeedFor derives the flavour seed of an owner from its identity.
func SeedFor(id uuid.UUID) int {
	h := fnv.New32a()
	_, _ = h.Write(id[:])
	return int(h.Sum32() & 0x7fffffff)
}
