// Package directory turns cleaned search output into a typed, sorted
// collection of business records.
package directory

import (
	"sort"

	"github.com/bytedance/sonic"
)

// Business is one normalized record. Missing fields are nil and marshal as
// explicit nulls; the json field names are the interchange contract shared
// with the cleaning prompt and must not change.
type Business struct {
	Name       string   `json:"-"`
	Number     *string  `json:"number"`
	Hours      *string  `json:"hours"`
	Stars      *float64 `json:"stars"`
	PriceRange *string  `json:"price_range"`
}

// Directory maps business name to record. Ordering is a presentation-time
// property of Sorted, never a storage invariant.
type Directory struct {
	Businesses map[string]*Business
}

// MarshalJSON serializes in the interchange shape: name -> record object.
func (d *Directory) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(d.Businesses)
}

// Sorted returns the records ordered by descending stars with unrated
// entries after all rated ones; ties break by ascending name (ordinal).
// The order is recomputed on every call.
func (d *Directory) Sorted() []*Business {
	out := make([]*Business, 0, len(d.Businesses))
	for _, b := range d.Businesses {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		bi, bj := out[i], out[j]
		switch {
		case bi.Stars != nil && bj.Stars == nil:
			return true
		case bi.Stars == nil && bj.Stars != nil:
			return false
		case bi.Stars != nil && bj.Stars != nil && *bi.Stars != *bj.Stars:
			return *bi.Stars > *bj.Stars
		}
		return bi.Name < bj.Name
	})
	return out
}
