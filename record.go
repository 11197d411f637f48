package structread

import (
	"fmt"
	"hash/maphash"
	"strings"

	"github.com/aristanetworks/gomap"
)

// Dict is the "mapping from name to value" surface promised by the
// ReturnDict option (§6): a string-keyed, order-independent view over a
// Record's fields. It is adapted from ogórek's Dict — the teacher already
// reaches for github.com/aristanetworks/gomap to give Python-pickle's dict a
// proper Go home — but simplified: this domain's keys are always plain
// field names, so none of the cross-numeric-type Python equality machinery
// that ogórek.Dict needs applies here. Equality and hashing are just
// ordinary string comparison/hashing.
type Dict struct {
	m *gomap.Map[string, any]
}

func newDict(size int) Dict {
	seed := maphash.MakeSeed()
	return Dict{m: gomap.NewHint[string, any](size,
		func(a, b string) bool { return a == b },
		func(_ maphash.Seed, s string) uint64 {
			var h maphash.Hash
			h.SetSeed(seed)
			h.WriteString(s)
			return h.Sum64()
		},
	)}
}

// Get returns the value associated with name, and whether it was present.
func (d Dict) Get(name string) (any, bool) { return d.m.Get(name) }

// Len returns the number of entries in the dict.
func (d Dict) Len() int { return d.m.Len() }

// Iter returns an iterator over all (name, value) pairs. Order is arbitrary;
// use Record.Iterate for declaration order.
func (d Dict) Iter() func(yield func(string, any) bool) {
	it := d.m.Iter()
	return func(yield func(string, any) bool) {
		for it.Next() {
			if !yield(it.Key(), it.Elem()) {
				break
			}
		}
	}
}

// Record is the keyed output shape described in §4.5: a named record with
// one attribute per non-anonymous field, in declared order. It is the value
// captured for every Nested opcode and is what the top-level entry point
// returns when Options.ReturnDict is false.
type Record struct {
	names  []string
	values []any
	index  map[string]int
}

// NewRecord builds a Record from parallel name/value slices already in
// declared order. Anonymous slots (from Seek) must be omitted by the caller
// before this is called.
func NewRecord(names []string, values []any) *Record {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		idx[n] = i
	}
	return &Record{names: names, values: values, index: idx}
}

// Get returns the value captured for name, and whether it was present.
func (r *Record) Get(name string) (any, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Names returns the field names in declared order.
func (r *Record) Names() []string { return r.names }

// Tuple returns the positional output shape: the ordered sequence of
// non-anonymous values, per §4.5.
func (r *Record) Tuple() Tuple {
	t := make(Tuple, len(r.values))
	copy(t, r.values)
	return t
}

// Iterate yields (name, value) pairs in declared order.
func (r *Record) Iterate() func(yield func(name string, value any) bool) {
	return func(yield func(name string, value any) bool) {
		for i, n := range r.names {
			if !yield(n, r.values[i]) {
				break
			}
		}
	}
}

// Dict materializes the record as a Dict, per the ReturnDict option.
func (r *Record) Dict() Dict {
	d := newDict(len(r.names))
	for i, n := range r.names {
		d.m.Set(n, r.values[i])
	}
	return d
}

// String renders a Go-syntax-ish representation, mirroring ogórek's
// Dict.String for debugging/test failure output.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, n := range r.names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", n, r.values[i])
	}
	b.WriteByte('}')
	return b.String()
}

// Tuple represents the positional output shape for a frame's values — it is
// what Record.Tuple returns, and the captured value of List/Group results.
// ParseStruct itself never returns a Tuple at the top level.
type Tuple []any
