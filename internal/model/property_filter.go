package model

import "strings"

// PropertyFilter narrows the property listing. All criteria are optional and
// conjunctive; price and year bounds are inclusive. Pagination is 1-based.
type PropertyFilter struct {
	Name       string
	Address    string
	MinPrice   *float64
	MaxPrice   *float64
	MinYear    *int
	MaxYear    *int
	OwnerID    *uint
	Enabled    *bool
	PageNumber int
	PageSize   int
}

// Offset returns the row offset for the current page.
func (f PropertyFilter) Offset() int {
	return (f.PageNumber - 1) * f.PageSize
}

// Matches reports whether a property satisfies every set criterion. This is
// the reference semantics for the SQL the repository builds; it also backs
// in-memory stores in tests.
func (f PropertyFilter) Matches(p *Property) bool {
	if f.Name != "" && !strings.Contains(p.Name, f.Name) {
		return false
	}
	if f.Address != "" && !strings.Contains(p.Address, f.Address) {
		return false
	}
	if f.MinPrice != nil && (p.Price == nil || *p.Price < *f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && (p.Price == nil || *p.Price > *f.MaxPrice) {
		return false
	}
	if f.MinYear != nil && (p.Year == nil || *p.Year < *f.MinYear) {
		return false
	}
	if f.MaxYear != nil && (p.Year == nil || *p.Year > *f.MaxYear) {
		return false
	}
	if f.OwnerID != nil && p.OwnerID != *f.OwnerID {
		return false
	}
	if f.Enabled != nil && p.Enabled != *f.Enabled {
		return false
	}
	return true
}
