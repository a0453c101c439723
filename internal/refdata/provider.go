package refdata

import (
	"math/rand"
)

// Provider answers reference queries and samples names with the run's
// random source.
type Provider struct {
	*Tables
	rng *rand.Rand
}

// NewProvider binds tables to rng. The provider does not own either.
func NewProvider(tables *Tables, rng *rand.Rand) *Provider {
	return &Provider{Tables: tables, rng: rng}
}

// SampleFirstName picks a first name for year's decade, weighted by recorded
// frequency.
func (p *Provider) SampleFirstName(year int) (string, error) {
	decade := DecadeOf(year)
	w, ok := p.firstNames[decade]
	if !ok || w.total() <= 0 {
		return "", lookupMiss(TableFirstNames, decade, "no first names for decade %ds", decade)
	}
	return w.values[w.index(p.rng.Float64()*w.total())], nil
}

// SampleLastName picks a surname for year's decade. The rank weights are
// shared by every decade; only the candidate list changes.
func (p *Provider) SampleLastName(year int) (string, error) {
	decade := DecadeOf(year)
	surnames, ok := p.lastNames[decade]
	if !ok {
		return "", lookupMiss(TableLastNames, decade, "no last names for decade %ds", decade)
	}
	if p.ranks.total() <= 0 {
		return "", lookupMiss(TableLastNames, decade, "rank weights sum to zero")
	}
	return surnames[p.ranks.index(p.rng.Float64()*p.ranks.total())], nil
}
