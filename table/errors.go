// SPDX-License-Identifier: MIT
// Package table: sentinel errors.
//
// All functions return these sentinels (possibly wrapped with context via %w);
// tests and callers match them with errors.Is.

package table

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRequiredFeature is returned when a column needed by a caller is absent.
	ErrMissingRequiredFeature = errors.New("table: missing required feature")

	// ErrLengthMismatch indicates columns (or joined tables) with different row counts.
	ErrLengthMismatch = errors.New("table: length mismatch")

	// ErrDuplicateColumn indicates the same column name was supplied twice.
	ErrDuplicateColumn = errors.New("table: duplicate column")

	// ErrEmptyName indicates a column with an empty name.
	ErrEmptyName = errors.New("table: empty column name")

	// ErrNilTable indicates a nil *Table argument.
	ErrNilTable = errors.New("table: nil table")

	// ErrMalformedCSV indicates CSV input without a header row or with ragged records.
	ErrMalformedCSV = errors.New("table: malformed csv")
)

// tableErrorf wraps err with an operation tag, preserving the sentinel for errors.Is.
func tableErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
