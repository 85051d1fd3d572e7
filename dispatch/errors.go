// SPDX-License-Identifier: MIT
// Package dispatch: sentinel errors.

package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDependentVariable indicates a calibration that needs P or T was
	// called with neither a value nor Solve.
	ErrMissingDependentVariable = errors.New("dispatch: missing dependent variable")

	// ErrLengthMismatch indicates a per-sample dependent vector whose length
	// differs from the feature table's row count.
	ErrLengthMismatch = errors.New("dispatch: length mismatch")

	// ErrNilRegistry indicates a Dispatcher built without a registry.
	ErrNilRegistry = errors.New("dispatch: nil registry")
)

func dispatchErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
