// Package person holds the individuals of a generated tree and the generator
// that synthesizes them from reference data.
package person

import (
	"errors"
	"fmt"
)

// Gender of an individual.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

var (
	// ErrAlreadyPartnered is returned when pairing an individual who already
	// has a partner.
	ErrAlreadyPartnered = errors.New("individual already has a partner")
	// ErrChildrenAssigned is returned when a family is given children twice.
	ErrChildrenAssigned = errors.New("children already assigned")
)

// Individual is one generated person. Identity fields are fixed at creation;
// relationships are reached through the individual's Family.
type Individual struct {
	FirstName string
	LastName  string
	Gender    Gender
	BirthYear int
	DeathYear int

	family *Family
}

// NewIndividual returns an unpartnered individual.
func NewIndividual(first, last string, gender Gender, born, died int) *Individual {
	return &Individual{
		FirstName: first,
		LastName:  last,
		Gender:    gender,
		BirthYear: born,
		DeathYear: died,
	}
}

// FullName is "first last".
func (p *Individual) FullName() string {
	return p.FirstName + " " + p.LastName
}

func (p *Individual) String() string {
	return fmt.Sprintf("%s (%d-%d)", p.FullName(), p.BirthYear, p.DeathYear)
}

// Family returns the individual's family, creating a single-parent one on
// first use.
func (p *Individual) Family() *Family {
	if p.family == nil {
		p.family = &Family{parents: [2]*Individual{p}}
	}
	return p.family
}

// Partner returns the other parent of the individual's family, or nil.
func (p *Individual) Partner() *Individual {
	if p.family == nil {
		return nil
	}
	return p.family.other(p)
}

// Children returns the family's children. Both partners see the same slice.
func (p *Individual) Children() []*Individual {
	if p.family == nil {
		return nil
	}
	return p.family.children
}

// ChildrenGenerated reports whether the individual's family has had its
// children assigned.
func (p *Individual) ChildrenGenerated() bool {
	return p.family != nil && p.family.childrenGenerated
}

// Family is a couple (or a single parent) and the children they share.
type Family struct {
	parents           [2]*Individual
	children          []*Individual
	childrenGenerated bool
}

// Parents returns the family's parents; the second is nil for a single
// parent.
func (f *Family) Parents() [2]*Individual {
	return f.parents
}

// ElderBirthYear is the birth year of the earlier-born parent.
func (f *Family) ElderBirthYear() int {
	year := f.parents[0].BirthYear
	if f.parents[1] != nil {
		year = min(year, f.parents[1].BirthYear)
	}
	return year
}

// AssignChildren records the family's children. It succeeds once.
func (f *Family) AssignChildren(children []*Individual) error {
	if f.childrenGenerated {
		return ErrChildrenAssigned
	}
	f.children = children
	f.childrenGenerated = true
	return nil
}

func (f *Family) other(p *Individual) *Individual {
	switch p {
	case f.parents[0]:
		return f.parents[1]
	case f.parents[1]:
		return f.parents[0]
	}
	return nil
}

// Pair makes a and b partners in a new shared family. Neither may already
// have a partner or assigned children.
func Pair(a, b *Individual) error {
	if a == nil || b == nil || a == b {
		return fmt.Errorf("pair %v and %v: invalid partners", a, b)
	}
	for _, p := range []*Individual{a, b} {
		if p.Partner() != nil {
			return fmt.Errorf("pair %s: %w", p.FullName(), ErrAlreadyPartnered)
		}
		if p.ChildrenGenerated() {
			return fmt.Errorf("pair %s: %w", p.FullName(), ErrChildrenAssigned)
		}
	}
	f := &Family{parents: [2]*Individual{a, b}}
	a.family = f
	b.family = f
	return nil
}
