package refdata

import (
	"fmt"
	"sort"
	"strconv"

	apperrors "github.com/louisbranch/familytree/internal/platform/errors"
)

// Table names reported in lookup error metadata.
const (
	TableFirstNames     = "first_names"
	TableLastNames      = "last_names"
	TableLifeExpectancy = "life_expectancy"
	TableRates          = "birth_and_marriage_rates"
)

// Rates holds the per-decade marriage and birth rates.
type Rates struct {
	Marriage float64
	Birth    float64
}

// weighted is a candidate list with cumulative weights for sampling.
type weighted struct {
	values     []string
	cumulative []float64
}

func newWeighted(values []string, weights []float64) weighted {
	w := weighted{
		values:     values,
		cumulative: make([]float64, len(weights)),
	}
	var total float64
	for i, wt := range weights {
		total += wt
		w.cumulative[i] = total
	}
	return w
}

func (w weighted) total() float64 {
	if len(w.cumulative) == 0 {
		return 0
	}
	return w.cumulative[len(w.cumulative)-1]
}

// index maps a draw in [0, total) to the first entry whose cumulative
// weight exceeds it. Zero-weight entries are never selected.
func (w weighted) index(draw float64) int {
	i := sort.Search(len(w.cumulative), func(i int) bool { return w.cumulative[i] > draw })
	if i == len(w.cumulative) {
		i--
	}
	return i
}

// Tables holds every reference table in memory.
type Tables struct {
	firstNames     map[int]weighted
	lastNames      map[int][]string
	ranks          weighted
	lifeExpectancy map[int]float64
	rates          map[int]Rates
}

// DecadeOf rounds year down to its decade bucket, e.g. 1956 -> 1950.
func DecadeOf(year int) int {
	d := year / 10
	if year < 0 && year%10 != 0 {
		d--
	}
	return d * 10
}

// LifeExpectancyAt returns the period life expectancy at birth for the exact
// year.
func (t *Tables) LifeExpectancyAt(year int) (float64, error) {
	v, ok := t.lifeExpectancy[year]
	if !ok {
		return 0, lookupMiss(TableLifeExpectancy, year, "no life expectancy for year %d", year)
	}
	return v, nil
}

// RatesAt returns the marriage and birth rates for year's decade.
func (t *Tables) RatesAt(year int) (Rates, error) {
	decade := DecadeOf(year)
	r, ok := t.rates[decade]
	if !ok {
		return Rates{}, lookupMiss(TableRates, decade, "no rates for decade %ds", decade)
	}
	return r, nil
}

// MarriageRate returns the marriage rate for year's decade.
func (t *Tables) MarriageRate(year int) (float64, error) {
	r, err := t.RatesAt(year)
	if err != nil {
		return 0, err
	}
	return r.Marriage, nil
}

// BirthRate returns the average number of children for year's decade.
func (t *Tables) BirthRate(year int) (float64, error) {
	r, err := t.RatesAt(year)
	if err != nil {
		return 0, err
	}
	return r.Birth, nil
}

// FirstNameDecades returns the decades with first-name rows, ascending.
func (t *Tables) FirstNameDecades() []int {
	return sortedKeys(t.firstNames)
}

// LastNameDecades returns the decades with surname rows, ascending.
func (t *Tables) LastNameDecades() []int {
	return sortedKeys(t.lastNames)
}

// YearSpan returns the first and last years with a life expectancy row.
func (t *Tables) YearSpan() (first, last int) {
	years := sortedKeys(t.lifeExpectancy)
	if len(years) == 0 {
		return 0, 0
	}
	return years[0], years[len(years)-1]
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func lookupMiss(table string, key int, format string, args ...any) error {
	return apperrors.WithMetadata(apperrors.CodeLookupMiss, fmt.Sprintf(format, args...), map[string]string{
		"table": table,
		"key":   strconv.Itoa(key),
	})
}
