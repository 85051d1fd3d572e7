// SPDX-License-Identifier: MIT

// Package equation - immutable registries.
//
// A Registry is built once from a fixed list of descriptors and never mutated;
// it is safe to share between goroutines and between calls.

package equation

import (
	"fmt"
	"slices"
	"sort"
)

const (
	opNewRegistry = "NewRegistry"
	opLookup      = "Lookup"
)

// Registry maps equation IDs of one Kind to descriptors.
type Registry struct {
	kind Kind
	byID map[string]Descriptor
	ids  []string // sorted
}

// NewRegistry validates descs and builds a registry of the given kind.
//
// Stage 1: reject unknown kinds.
// Stage 2: per descriptor, require a non-empty ID, a body and a matching kind.
// Stage 3: reject duplicate IDs.
//
// Errors: ErrInvalidDescriptor, ErrDuplicateEquation.
func NewRegistry(kind Kind, descs ...Descriptor) (*Registry, error) {
	if !kind.valid() {
		return nil, equationErrorf(opNewRegistry, fmt.Errorf("%v: %w", kind, ErrInvalidDescriptor))
	}
	r := &Registry{kind: kind, byID: make(map[string]Descriptor, len(descs))}
	for _, d := range descs {
		switch {
		case d.ID == "":
			return nil, equationErrorf(opNewRegistry, fmt.Errorf("empty id: %w", ErrInvalidDescriptor))
		case d.Body == nil:
			return nil, equationErrorf(opNewRegistry, fmt.Errorf("%s: nil body: %w", d.ID, ErrInvalidDescriptor))
		case d.Kind != kind:
			return nil, equationErrorf(opNewRegistry, fmt.Errorf("%s is %v, registry is %v: %w", d.ID, d.Kind, kind, ErrInvalidDescriptor))
		}
		if _, dup := r.byID[d.ID]; dup {
			return nil, equationErrorf(opNewRegistry, fmt.Errorf("%s: %w", d.ID, ErrDuplicateEquation))
		}
		d.Requires = slices.Clone(d.Requires)
		r.byID[d.ID] = d
		r.ids = append(r.ids, d.ID)
	}
	sort.Strings(r.ids)

	return r, nil
}

// MustRegistry is NewRegistry that panics on error; for static catalogues only.
func MustRegistry(kind Kind, descs ...Descriptor) *Registry {
	r, err := NewRegistry(kind, descs...)
	if err != nil {
		panic(err)
	}

	return r
}

// Lookup returns the descriptor registered under id.
//
// Errors: ErrUnknownEquation.
func (r *Registry) Lookup(id string) (Descriptor, error) {
	d, ok := r.byID[id]
	if !ok {
		return Descriptor{}, equationErrorf(opLookup, fmt.Errorf("%q is not a valid %v equation: %w", id, r.kind, ErrUnknownEquation))
	}
	d.Requires = slices.Clone(d.Requires)

	return d, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// IDs returns every registered ID in lexicographic order.
func (r *Registry) IDs() []string { return slices.Clone(r.ids) }

// Len returns the number of registered equations.
func (r *Registry) Len() int { return len(r.ids) }

// Kind returns the registry's kind.
func (r *Registry) Kind() Kind { return r.kind }
