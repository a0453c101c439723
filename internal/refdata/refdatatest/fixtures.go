// Package refdatatest builds in-memory reference tables for tests.
package refdatatest

import (
	"fmt"
	"strings"
	"testing/fstest"
)

// Options shapes the generated fixture.
type Options struct {
	// FirstYear and LastYear bound every table (decades are derived).
	FirstYear int
	LastYear  int
	// MarriageRate and BirthRate apply to every decade.
	MarriageRate float64
	BirthRate    float64
	// LifeExpectancy applies to every year.
	LifeExpectancy float64
	// FirstNames and Surnames are the candidates for every decade.
	FirstNames []string
	Surnames   []string
}

// DefaultOptions covers 1900 to 2200 with rates that keep trees small.
func DefaultOptions() Options {
	return Options{
		FirstYear:      1900,
		LastYear:       2200,
		MarriageRate:   0.7,
		BirthRate:      1.5,
		LifeExpectancy: 72.5,
		FirstNames:     []string{"Ada", "Ben", "Cora", "Dev"},
		Surnames:       []string{"Smith", "Okafor", "Tanaka"},
	}
}

// FS returns the default fixture.
func FS() fstest.MapFS {
	return Build(DefaultOptions())
}

// Build renders the five reference files for opts.
func Build(opts Options) fstest.MapFS {
	var first, last, life, rates strings.Builder
	first.WriteString("decade,name,frequency\n")
	last.WriteString("Decade,LastName\n")
	life.WriteString("Year,Period life expectancy at birth\n")
	rates.WriteString("decade,marriage_rate,birth_rate\n")

	for decade := opts.FirstYear / 10 * 10; decade <= opts.LastYear; decade += 10 {
		for i, name := range opts.FirstNames {
			fmt.Fprintf(&first, "%d,%s,%d\n", decade, name, (i+1)*100)
		}
		for _, name := range opts.Surnames {
			fmt.Fprintf(&last, "%ds,%s\n", decade, name)
		}
		fmt.Fprintf(&rates, "%ds,%g,%g\n", decade, opts.MarriageRate, opts.BirthRate)
	}
	for year := opts.FirstYear; year <= opts.LastYear; year++ {
		fmt.Fprintf(&life, "%d,%g\n", year, opts.LifeExpectancy)
	}

	ranks := make([]string, len(opts.Surnames))
	for i := range opts.Surnames {
		ranks[i] = fmt.Sprintf("%g", 1/float64(i+1))
	}

	return fstest.MapFS{
		"first_names.csv":              {Data: []byte(first.String())},
		"last_names.csv":               {Data: []byte(last.String())},
		"rank_to_probability.csv":      {Data: []byte(strings.Join(ranks, ",") + "\n")},
		"life_expectancy.csv":          {Data: []byte(life.String())},
		"birth_and_marriage_rates.csv": {Data: []byte(rates.String())},
	}
}
