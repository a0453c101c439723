package person

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/louisbranch/familytree/internal/random"
)

// deathYearJitter bounds the symmetric random offset around expected death.
const deathYearJitter = 10

// ReferenceData is the subset of the reference tables the generator draws on.
type ReferenceData interface {
	LifeExpectancyAt(year int) (float64, error)
	SampleFirstName(year int) (string, error)
	SampleLastName(year int) (string, error)
}

// Generator synthesizes individuals from reference data.
type Generator struct {
	ref ReferenceData
	rng *rand.Rand
}

// NewGenerator creates a Generator drawing from ref and rng.
func NewGenerator(ref ReferenceData, rng *rand.Rand) *Generator {
	return &Generator{ref: ref, rng: rng}
}

// Synthesize creates an individual born in birthYear. An empty lastName is
// sampled for the birth decade; otherwise it is used as given.
func (g *Generator) Synthesize(birthYear int, lastName string) (*Individual, error) {
	gender := g.Gender()
	first, err := g.ref.SampleFirstName(birthYear)
	if err != nil {
		return nil, fmt.Errorf("first name for %d: %w", birthYear, err)
	}
	if lastName == "" {
		if lastName, err = g.ref.SampleLastName(birthYear); err != nil {
			return nil, fmt.Errorf("last name for %d: %w", birthYear, err)
		}
	}
	died, err := g.DeathYear(birthYear)
	if err != nil {
		return nil, err
	}
	return NewIndividual(first, lastName, gender, birthYear, died), nil
}

// Gender picks male or female with equal probability.
func (g *Generator) Gender() Gender {
	if g.rng.Intn(2) == 0 {
		return Male
	}
	return Female
}

// DeathYear is the birth year plus life expectancy, truncated, then moved by
// a uniform offset in [-10, 10].
func (g *Generator) DeathYear(birthYear int) (int, error) {
	expectancy, err := g.ref.LifeExpectancyAt(birthYear)
	if err != nil {
		return 0, fmt.Errorf("death year for %d: %w", birthYear, err)
	}
	expected := int(math.Trunc(float64(birthYear) + expectancy))
	return random.IntBetween(g.rng, expected-deathYearJitter, expected+deathYearJitter), nil
}
