package familytree

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/louisbranch/familytree/internal/person"
)

func treeOf(people ...*person.Individual) *Tree {
	return &Tree{population: people}
}

func TestCountByDecadePartitionsPopulation(t *testing.T) {
	tree := generate(t, 21)

	sum := 0
	for _, n := range tree.CountByDecade() {
		sum += n
	}
	assert.Equal(t, tree.CountTotal(), sum)

	decades := tree.Decades()
	assert.IsIncreasing(t, decades)
	assert.Equal(t, 1950, decades[0])
}

func TestCountByDecadeBuckets(t *testing.T) {
	tree := treeOf(
		person.NewIndividual("A", "X", person.Male, 1950, 2020),
		person.NewIndividual("B", "X", person.Female, 1959, 2020),
		person.NewIndividual("C", "X", person.Female, 1960, 2020),
		person.NewIndividual("D", "X", person.Male, 1987, 2060),
	)
	assert.Equal(t, map[int]int{1950: 2, 1960: 1, 1980: 1}, tree.CountByDecade())
	assert.Equal(t, []int{1950, 1960, 1980}, tree.Decades())
	assert.Equal(t, 4, tree.CountTotal())
}

func TestDuplicateFullNames(t *testing.T) {
	tree := treeOf(
		person.NewIndividual("Ada", "Jones", person.Female, 1975, 2050),
		person.NewIndividual("Ben", "Jones", person.Male, 1976, 2050),
		person.NewIndividual("Ada", "Jones", person.Female, 2001, 2080),
		person.NewIndividual("Ada", "Jones", person.Female, 2003, 2080),
		person.NewIndividual("Ben", "Okafor", person.Male, 1978, 2050),
		person.NewIndividual("Cora", "Lee", person.Female, 1990, 2070),
		person.NewIndividual("Cora", "Lee", person.Female, 1991, 2070),
	)
	assert.Equal(t, []string{"Ada Jones", "Cora Lee"}, tree.DuplicateFullNames())
}

func TestDuplicateFullNamesEmptyWhenUnique(t *testing.T) {
	tree := treeOf(
		person.NewIndividual("Ada", "Jones", person.Female, 1975, 2050),
		person.NewIndividual("Ada", "Okafor", person.Female, 1975, 2050),
		person.NewIndividual("Ben", "Jones", person.Male, 1975, 2050),
	)
	assert.Empty(t, tree.DuplicateFullNames())
	assert.Empty(t, treeOf().DuplicateFullNames())
}

func TestPeopleReturnsCopy(t *testing.T) {
	tree := treeOf(person.NewIndividual("Ada", "Jones", person.Female, 1975, 2050))
	people := tree.People()
	people[0] = nil
	assert.NotNil(t, tree.People()[0])
}
