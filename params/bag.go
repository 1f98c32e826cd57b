// Package params holds named parameter values bound alongside SQL text.
package params

import (
	"iter"
	"strings"
)

// Bag is an ordered mapping from parameter name to value.
//
// Names keep the position of their first insertion. Setting a name that is
// already present overwrites the value in place, so merging two bags that
// share a name is "last merge wins".
//
// The zero value is not usable; create bags with New. Read methods accept a
// nil *Bag and treat it as empty.
type Bag struct {
	names  []string
	values map[string]any
}

// New creates an empty Bag.
func New() *Bag {
	return &Bag{values: make(map[string]any)}
}

// From creates a Bag from any value accepted by AddObject.
func From(obj any) (*Bag, error) {
	b := New()
	if err := b.AddObject(obj); err != nil {
		return nil, err
	}
	return b, nil
}

// Set binds value to name. A single leading '@', ':' or '?' is dropped from
// the name so "@id" and "id" address the same parameter.
func (b *Bag) Set(name string, value any) *Bag {
	name = Clean(name)
	if _, ok := b.values[name]; !ok {
		b.names = append(b.names, name)
	}
	b.values[name] = value
	return b
}

// Get returns the value bound to name.
func (b *Bag) Get(name string) (any, bool) {
	if b == nil {
		return nil, false
	}
	v, ok := b.values[Clean(name)]
	return v, ok
}

// Len returns the number of distinct names in the bag.
func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.names)
}

// Names returns the parameter names in insertion order.
func (b *Bag) Names() []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// All iterates name/value pairs in insertion order.
func (b *Bag) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if b == nil {
			return
		}
		for _, name := range b.names {
			if !yield(name, b.values[name]) {
				return
			}
		}
	}
}

// Merge copies every pair of other into b, overwriting names b already has.
func (b *Bag) Merge(other *Bag) *Bag {
	for name, v := range other.All() {
		b.Set(name, v)
	}
	return b
}

// Clone returns a shallow copy of b.
func (b *Bag) Clone() *Bag {
	return New().Merge(b)
}

// Map returns the pairs as a plain map.
func (b *Bag) Map() map[string]any {
	out := make(map[string]any, b.Len())
	for name, v := range b.All() {
		out[name] = v
	}
	return out
}

// Clean strips one leading parameter prefix character from name.
func Clean(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	switch name[0] {
	case '@', ':', '?':
		return name[1:]
	}
	return name
}
