package familytree

import (
	"sort"

	"github.com/louisbranch/familytree/internal/person"
	"github.com/louisbranch/familytree/internal/refdata"
)

// People returns the population in creation order.
func (t *Tree) People() []*person.Individual {
	out := make([]*person.Individual, len(t.population))
	copy(out, t.population)
	return out
}

// CountTotal returns the population size.
func (t *Tree) CountTotal() int {
	return len(t.population)
}

// CountByDecade buckets the population by birth decade.
func (t *Tree) CountByDecade() map[int]int {
	counts := make(map[int]int)
	for _, p := range t.population {
		counts[refdata.DecadeOf(p.BirthYear)]++
	}
	return counts
}

// Decades returns the populated birth decades in ascending order.
func (t *Tree) Decades() []int {
	counts := t.CountByDecade()
	decades := make([]int, 0, len(counts))
	for d := range counts {
		decades = append(decades, d)
	}
	sort.Ints(decades)
	return decades
}

// DuplicateFullNames returns, sorted, every "first last" name carried by two
// or more individuals.
func (t *Tree) DuplicateFullNames() []string {
	seen := make(map[string]int, len(t.population))
	var dupes []string
	for _, p := range t.population {
		name := p.FullName()
		seen[name]++
		if seen[name] == 2 {
			dupes = append(dupes, name)
		}
	}
	sort.Strings(dupes)
	return dupes
}
