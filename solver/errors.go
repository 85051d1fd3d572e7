// SPDX-License-Identifier: MIT
// Package solver: sentinel errors.

package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIterations indicates an iteration budget below one.
	ErrInvalidIterations = errors.New("solver: iterations must be positive")

	// ErrInvalidInitial indicates a NaN or infinite initial temperature.
	ErrInvalidInitial = errors.New("solver: invalid initial temperature")

	// ErrLengthMismatch indicates P and T sides (or the initial vector) with
	// different sample counts.
	ErrLengthMismatch = errors.New("solver: length mismatch")
)

func solverErrorf(tag string, err error) error {
	return fmt.Errorf("solver.%s: %w", tag, err)
}
