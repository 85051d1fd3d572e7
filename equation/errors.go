// SPDX-License-Identifier: MIT
// Package equation: sentinel errors.

package equation

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEquation is returned by Lookup for an ID that is not registered.
	ErrUnknownEquation = errors.New("equation: unknown equation")

	// ErrDuplicateEquation indicates two descriptors with the same ID in one registry.
	ErrDuplicateEquation = errors.New("equation: duplicate equation id")

	// ErrInvalidDescriptor indicates a descriptor without ID or body, or of the wrong kind.
	ErrInvalidDescriptor = errors.New("equation: invalid descriptor")
)

func equationErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
