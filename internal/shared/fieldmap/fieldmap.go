// Package fieldmap translates the provider's camelCase field names into the
// snake_case column names used in storage.
package fieldmap

import "strings"

// Pair replaces every occurrence of From with To.
type Pair struct {
	From string
	To   string
}

// Mapper applies an ordered table of substring replacements. Pairs are applied
// one after the other, so a later pair sees the output of the earlier ones;
// the table order is part of the mapping.
type Mapper struct {
	pairs []Pair
}

// New builds a Mapper from pairs in application order.
func New(pairs ...Pair) Mapper {
	return Mapper{pairs: append([]Pair(nil), pairs...)}
}

// Map returns the storage name for a provider field name. Names matched by no
// pair pass through unchanged.
func (m Mapper) Map(name string) string {
	for _, p := range m.pairs {
		if p.From == "" {
			continue
		}
		name = strings.ReplaceAll(name, p.From, p.To)
	}
	return name
}

// Pairs returns a copy of the replacement table.
func (m Mapper) Pairs() []Pair {
	return append([]Pair(nil), m.pairs...)
}
