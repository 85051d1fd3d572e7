// SPDX-License-Identifier: MIT

package equation

import (
	"fmt"
	"sync"
)

// Catalog groups the four registries the engine dispatches into.
type Catalog struct {
	AmpOnlyP *Registry
	AmpOnlyT *Registry
	AmpLiqP  *Registry
	AmpLiqT  *Registry
}

// NewCatalog builds a catalog from freshly constructed registries.
//
// Errors: ErrInvalidDescriptor, ErrDuplicateEquation.
func NewCatalog() (*Catalog, error) {
	var (
		c   Catalog
		err error
	)
	if c.AmpOnlyP, err = NewRegistry(AmpOnlyPressure, ampOnlyPressure()...); err != nil {
		return nil, err
	}
	if c.AmpOnlyT, err = NewRegistry(AmpOnlyTemperature, ampOnlyTemperature()...); err != nil {
		return nil, err
	}
	if c.AmpLiqP, err = NewRegistry(AmpLiqPressure, ampLiqPressure()...); err != nil {
		return nil, err
	}
	if c.AmpLiqT, err = NewRegistry(AmpLiqTemperature, ampLiqTemperature()...); err != nil {
		return nil, err
	}

	return &c, nil
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := NewCatalog()
	if err != nil {
		panic(fmt.Sprintf("equation: built-in catalogue is invalid: %v", err))
	}
	return c
})

// DefaultCatalog returns the built-in catalogue. It is built on first use and
// shared afterwards; registries are read-only so sharing is safe.
func DefaultCatalog() *Catalog { return defaultCatalog() }

// Registry returns the registry of the given kind, or nil for an unknown kind.
func (c *Catalog) Registry(k Kind) *Registry {
	switch k {
	case AmpOnlyPressure:
		return c.AmpOnlyP
	case AmpOnlyTemperature:
		return c.AmpOnlyT
	case AmpLiqPressure:
		return c.AmpLiqP
	case AmpLiqTemperature:
		return c.AmpLiqT
	default:
		return nil
	}
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{AmpOnlyPressure, AmpOnlyTemperature, AmpLiqPressure, AmpLiqTemperature}
}
