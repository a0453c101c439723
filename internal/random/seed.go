// Package random provides seed generation and seeded random sources.
//
// Every random draw made while generating a tree comes from the single
// *rand.Rand built here, so a run is reproducible from its seed.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewSeededRNG returns a generator for seed together with the seed actually
// used. A zero seed is replaced by a fresh one from NewSeed.
func NewSeededRNG(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		fresh, err := NewSeed()
		if err != nil {
			return nil, 0, err
		}
		seed = fresh
	}
	return rand.New(rand.NewSource(seed)), seed, nil
}

// IntBetween returns a uniform integer in [lo, hi]. When hi < lo it returns lo.
func IntBetween(rng *rand.Rand, lo, hi int) int {
	if lo >= hi {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
