// Package refdata loads the decade-indexed reference tables that drive tree
// generation and answers lookups against them.
//
// Five CSV sources are read once by Load:
//
//   - first names: decade, name, frequency
//   - last names: Decade, LastName (rank order within a decade)
//   - rank to probability: one row of floats shared by every decade
//   - life expectancy: Year, Period life expectancy at birth
//   - birth and marriage rates: decade ("1950s"), marriage_rate, birth_rate
//
// Tables is immutable after Load. Provider pairs it with the run's random
// source for weighted name sampling.
//
// Every lookup that finds no row returns a LookupMiss error
// (errors.CodeLookupMiss); there is no silent zero fallback.
package refdata
