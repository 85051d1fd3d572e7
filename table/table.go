// SPDX-License-Identifier: MIT

// Package table - column storage & read-only accessors.
//
// Purpose:
//   - Hold named numeric columns of one shared length (the sample count).
//   - Guarantee read-only semantics at the public surface: accessors copy.
//   - Keep column order deterministic (insertion order) for CSV export and logs.
//
// Complexity quicksheet:
//   - FromColumns: O(r*c) copy; Column: O(r); Has: O(1); With: O(r*c).

package table

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Operation tags used in error wrapping.
const (
	opFromColumns = "FromColumns"
	opWith        = "With"
	opSelect      = "Select"
	opJoin        = "Join"
	opRequire     = "Require"
	opColumn      = "Column"
)

// Table is an immutable set of equal-length named float64 columns.
//   - names keeps insertion order (stable CSV/log output).
//   - cols maps a name to its private backing slice.
//   - rows is the shared column length, fixed at construction.
type Table struct {
	names []string
	cols  map[string][]float64
	rows  int
}

// New returns an empty table with a fixed row count and no columns.
// Columns are then added with With; each must have exactly rows entries.
func New(rows int) *Table {
	if rows < 0 {
		rows = 0
	}

	return &Table{cols: make(map[string][]float64), rows: rows}
}

// FromColumns builds a table from parallel name/column slices.
// The row count is taken from the first column; an empty input yields a 0×0 table.
//
// Errors: ErrEmptyName, ErrDuplicateColumn, ErrLengthMismatch.
func FromColumns(names []string, cols [][]float64) (*Table, error) {
	if len(names) != len(cols) {
		return nil, tableErrorf(opFromColumns, ErrLengthMismatch)
	}
	rows := 0
	if len(cols) > 0 {
		rows = len(cols[0])
	}
	t := New(rows)
	var i int
	for i = range names {
		if err := t.add(names[i], cols[i]); err != nil {
			return nil, tableErrorf(opFromColumns, err)
		}
	}

	return t, nil
}

// FromMap builds a table from a name→column map. Column order is lexicographic
// so the result does not depend on map iteration order.
func FromMap(m map[string][]float64) (*Table, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	cols := make([][]float64, len(names))
	for i, name := range names {
		cols[i] = m[name]
	}

	return FromColumns(names, cols)
}

// add inserts a copy of col under name. Internal: only used while a table
// is still being built and has not escaped to callers.
func (t *Table) add(name string, col []float64) error {
	if name == "" {
		return ErrEmptyName
	}
	if _, ok := t.cols[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrDuplicateColumn)
	}
	if len(col) != t.rows {
		return fmt.Errorf("%q has %d rows, want %d: %w", name, len(col), t.rows, ErrLengthMismatch)
	}
	t.names = append(t.names, name)
	t.cols[name] = slices.Clone(col)

	return nil
}

// Rows returns the number of samples.
func (t *Table) Rows() int { return t.rows }

// Len returns the number of columns.
func (t *Table) Len() int { return len(t.names) }

// Names returns the column names in insertion order.
func (t *Table) Names() []string { return slices.Clone(t.names) }

// Has reports whether the column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Column returns a copy of the named column.
//
// Errors: ErrMissingRequiredFeature when absent.
func (t *Table) Column(name string) ([]float64, error) {
	col, ok := t.cols[name]
	if !ok {
		return nil, tableErrorf(opColumn, fmt.Errorf("%q: %w", name, ErrMissingRequiredFeature))
	}

	return slices.Clone(col), nil
}

// ColumnOrZero returns a copy of the named column, or a zero column when it is
// absent. Normalization routines use it for optional oxides (MnO, Cr2O3, F, Cl).
func (t *Table) ColumnOrZero(name string) []float64 {
	if col, ok := t.cols[name]; ok {
		return slices.Clone(col)
	}

	return make([]float64, t.rows)
}

// Require verifies that every name is present. All missing names are
// reported in one error so users can fix an input sheet in one pass.
//
// Errors: ErrMissingRequiredFeature.
func (t *Table) Require(names ...string) error {
	var missing []string
	for _, name := range names {
		if !t.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return tableErrorf(opRequire, fmt.Errorf("[%s]: %w", strings.Join(missing, ", "), ErrMissingRequiredFeature))
	}

	return nil
}

// With returns a new table holding every column of t plus col under name.
// An existing column of the same name is replaced in place (order kept).
//
// Errors: ErrEmptyName, ErrLengthMismatch.
func (t *Table) With(name string, col []float64) (*Table, error) {
	if name == "" {
		return nil, tableErrorf(opWith, ErrEmptyName)
	}
	if len(col) != t.rows {
		return nil, tableErrorf(opWith, fmt.Errorf("%q has %d rows, want %d: %w", name, len(col), t.rows, ErrLengthMismatch))
	}
	out := t.Clone()
	if _, ok := out.cols[name]; !ok {
		out.names = append(out.names, name)
	}
	out.cols[name] = slices.Clone(col)

	return out, nil
}

// Select returns a new table restricted to names, in the given order.
//
// Errors: ErrMissingRequiredFeature.
func (t *Table) Select(names ...string) (*Table, error) {
	if err := t.Require(names...); err != nil {
		return nil, tableErrorf(opSelect, err)
	}
	out := New(t.rows)
	for _, name := range names {
		if err := out.add(name, t.cols[name]); err != nil {
			return nil, tableErrorf(opSelect, err)
		}
	}

	return out, nil
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := &Table{
		names: slices.Clone(t.names),
		cols:  make(map[string][]float64, len(t.cols)),
		rows:  t.rows,
	}
	for name, col := range t.cols {
		out.cols[name] = slices.Clone(col)
	}

	return out
}

// Join concatenates the columns of several tables sharing one row count,
// e.g. an amphibole table and its coexisting-melt table.
// Names appearing in more than one table are rejected.
//
// Errors: ErrNilTable, ErrLengthMismatch, ErrDuplicateColumn.
func Join(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return New(0), nil
	}
	for _, t := range tables {
		if t == nil {
			return nil, tableErrorf(opJoin, ErrNilTable)
		}
	}
	rows := tables[0].rows
	out := New(rows)
	for i, t := range tables {
		if t.rows != rows {
			return nil, tableErrorf(opJoin, fmt.Errorf("table %d has %d rows, want %d: %w", i, t.rows, rows, ErrLengthMismatch))
		}
		for _, name := range t.names {
			if err := out.add(name, t.cols[name]); err != nil {
				return nil, tableErrorf(opJoin, err)
			}
		}
	}

	return out, nil
}

// RowSums returns, per row, the sum of the named columns that are present.
// Absent columns contribute zero, matching how analyses omit trace oxides.
func (t *Table) RowSums(names ...string) []float64 {
	out := make([]float64, t.rows)
	for _, name := range names {
		if col, ok := t.cols[name]; ok {
			floats.Add(out, col)
		}
	}

	return out
}
