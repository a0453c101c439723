package familytree

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/louisbranch/familytree/internal/person"
	apperrors "github.com/louisbranch/familytree/internal/platform/errors"
	"github.com/louisbranch/familytree/internal/refdata"
	"github.com/louisbranch/familytree/internal/refdata/refdatatest"
)

func newFixtureTree(t *testing.T, cfg Config, opts refdatatest.Options, seed int64) *Tree {
	t.Helper()
	tables, err := refdata.Load(context.Background(), refdatatest.Build(opts), refdata.DefaultFiles())
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(seed))
	provider := refdata.NewProvider(tables, rng)
	return New(cfg, provider, person.NewGenerator(provider, rng), rng, nil)
}

func generate(t *testing.T, seed int64) *Tree {
	t.Helper()
	tree := newFixtureTree(t, DefaultConfig(), refdatatest.DefaultOptions(), seed)
	require.NoError(t, tree.Generate(context.Background()))
	return tree
}

func TestGenerateProducesConsistentPopulation(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42} {
		tree := generate(t, seed)
		people := tree.People()
		require.GreaterOrEqual(t, len(people), 2)

		founders := people[:2]
		assert.Equal(t, "Desmond Jones", founders[0].FullName())
		assert.Equal(t, "Molly Jones", founders[1].FullName())
		assert.Same(t, founders[1], founders[0].Partner())

		for _, p := range people {
			assert.LessOrEqual(t, p.BirthYear, 2120, p.String())
			assert.NotZero(t, p.DeathYear, p.String())

			if partner := p.Partner(); partner != nil {
				assert.Same(t, p, partner.Partner(), "partner link must be symmetric")
				assert.Equal(t, p.Children(), partner.Children())
			}
			elder := p.BirthYear
			if partner := p.Partner(); partner != nil {
				elder = min(elder, partner.BirthYear)
			}
			for _, child := range p.Children() {
				assert.Greater(t, child.BirthYear, elder)
				assert.Equal(t, "Jones", child.LastName)
			}
		}
	}
}

func TestGenerateIsBreadthFirst(t *testing.T) {
	tree := generate(t, 7)
	index := map[*person.Individual]int{}
	for i, p := range tree.People() {
		index[p] = i
	}
	for i, p := range tree.People() {
		for _, child := range p.Children() {
			assert.Greater(t, index[child], i)
		}
	}
	// Founders' children are created before any grandchild.
	founderKids := tree.People()[0].Children()
	for _, kid := range founderKids {
		for _, grandkid := range kid.Children() {
			for _, sibling := range founderKids {
				assert.Greater(t, index[grandkid], index[sibling])
			}
		}
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	a := generate(t, 99).People()
	b := generate(t, 99).People()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].String(), b[i].String())
		assert.Equal(t, a[i].Gender, b[i].Gender)
	}
}

func TestGenerateOnlyOnce(t *testing.T) {
	tree := generate(t, 1)
	total := tree.CountTotal()

	assert.ErrorIs(t, tree.Generate(context.Background()), ErrAlreadyGenerated)
	assert.Equal(t, total, tree.CountTotal())
}

func TestExpandIsNoOpOnceChildrenAssigned(t *testing.T) {
	tree := generate(t, 5)
	founder := tree.People()[0]
	before := founder.Children()
	total := tree.CountTotal()

	require.NoError(t, tree.expand(founder))
	require.NoError(t, tree.expand(founder.Partner()))
	assert.Equal(t, before, founder.Children())
	assert.Equal(t, total, tree.CountTotal())
}

func TestGenerateHorizonDropsLateChildren(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HorizonYear = 1960
	tree := newFixtureTree(t, cfg, refdatatest.DefaultOptions(), 3)

	require.NoError(t, tree.Generate(context.Background()))
	assert.Equal(t, 2, tree.CountTotal())
	assert.True(t, tree.People()[0].ChildrenGenerated())
	assert.Empty(t, tree.People()[0].Children())
}

func TestGenerateHorizonGuardStopsRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HorizonYear = 1940
	tree := newFixtureTree(t, cfg, refdatatest.DefaultOptions(), 3)

	require.NoError(t, tree.Generate(context.Background()))
	assert.Equal(t, 2, tree.CountTotal())
	assert.False(t, tree.People()[0].ChildrenGenerated())
	assert.Equal(t, 1, tree.head, "only the first founder is dequeued")
}

func TestGenerateWithoutMarriagesStillHasChildren(t *testing.T) {
	opts := refdatatest.DefaultOptions()
	opts.MarriageRate = 0
	opts.BirthRate = 3
	tree := newFixtureTree(t, DefaultConfig(), opts, 8)

	require.NoError(t, tree.Generate(context.Background()))
	for _, p := range tree.People()[2:] {
		assert.Nil(t, p.Partner(), p.String())
		assert.Equal(t, "Jones", p.LastName)
	}
	assert.Greater(t, tree.CountTotal(), 2)
}

func TestGeneratePropagatesLookupMiss(t *testing.T) {
	opts := refdatatest.DefaultOptions()
	opts.LastYear = 1979
	opts.BirthRate = 3
	tree := newFixtureTree(t, DefaultConfig(), opts, 1)

	err := tree.Generate(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeLookupMiss), "got %v", err)
}

func TestGenerateHonoursCancellation(t *testing.T) {
	tree := newFixtureTree(t, DefaultConfig(), refdatatest.DefaultOptions(), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tree.Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, tree.CountTotal())
}

type stubRates struct {
	marriage, birth float64
	err             error
}

func (s stubRates) MarriageRate(int) (float64, error) { return s.marriage, s.err }
func (s stubRates) BirthRate(int) (float64, error)    { return s.birth, s.err }

type stubPeople struct{ created int }

func (s *stubPeople) Synthesize(year int, last string) (*person.Individual, error) {
	s.created++
	if last == "" {
		last = "Partner"
	}
	return person.NewIndividual("Kid", last, person.Female, year, year+70), nil
}

func (s *stubPeople) DeathYear(year int) (int, error) { return year + 70, nil }

func TestGenerateWrapsRateErrors(t *testing.T) {
	boom := errors.New("rates offline")
	people := &stubPeople{}
	tree := New(DefaultConfig(), stubRates{err: boom}, people, rand.New(rand.NewSource(1)), nil)

	err := tree.Generate(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Desmond Jones")
	assert.Zero(t, people.created)
}

func TestGenerateCreatesPartnersWhenMarriageIsCertain(t *testing.T) {
	people := &stubPeople{}
	cfg := DefaultConfig()
	cfg.HorizonYear = 2000
	tree := New(cfg, stubRates{marriage: 1, birth: 2}, people, rand.New(rand.NewSource(4)), nil)

	require.NoError(t, tree.Generate(context.Background()))
	for _, p := range tree.People()[2:] {
		if p.LastName == "Partner" {
			assert.NotNil(t, p.Partner())
			assert.InDelta(t, p.Partner().BirthYear, p.BirthYear, partnerAgeGap)
			continue
		}
		// Lineage children were all dequeued; those whose partner could not
		// be born past the horizon are certain to be partnered.
		if p.BirthYear+partnerAgeGap <= cfg.HorizonYear {
			assert.NotNil(t, p.Partner(), p.String())
		}
	}
	assert.Equal(t, people.created, tree.CountTotal()-2)
}
