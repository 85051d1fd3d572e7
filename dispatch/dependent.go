// SPDX-License-Identifier: MIT

package dispatch

import (
	"fmt"
	"slices"
)

// dependentKind enumerates the four forms of the dependent-variable argument.
type dependentKind uint8

const (
	depNone dependentKind = iota
	depScalar
	depVector
	depSolve
)

// Dependent is the value of the other unknown passed to Evaluate.
// The zero value is None.
type Dependent struct {
	kind   dependentKind
	scalar float64
	vector []float64
}

// None means no dependent value; legal only for independent calibrations.
func None() Dependent { return Dependent{} }

// Scalar broadcasts v to every sample.
func Scalar(v float64) Dependent { return Dependent{kind: depScalar, scalar: v} }

// Vector supplies one value per sample. The slice is copied.
func Vector(v []float64) Dependent { return Dependent{kind: depVector, vector: slices.Clone(v)} }

// Solve requests a deferred evaluator instead of a value.
func Solve() Dependent { return Dependent{kind: depSolve} }

// IsNone reports whether no value was supplied.
func (d Dependent) IsNone() bool { return d.kind == depNone }

// IsSolve reports whether a deferred evaluator was requested.
func (d Dependent) IsSolve() bool { return d.kind == depSolve }

// IsConcrete reports whether d carries a scalar or a vector.
func (d Dependent) IsConcrete() bool { return d.kind == depScalar || d.kind == depVector }

// expand returns the per-sample values for rows samples.
//
// Errors: ErrLengthMismatch for a vector of the wrong length.
func (d Dependent) expand(rows int) ([]float64, error) {
	switch d.kind {
	case depScalar:
		out := make([]float64, rows)
		for i := range out {
			out[i] = d.scalar
		}
		return out, nil
	case depVector:
		if len(d.vector) != rows {
			return nil, fmt.Errorf("dependent has %d values, table has %d rows: %w", len(d.vector), rows, ErrLengthMismatch)
		}
		return slices.Clone(d.vector), nil
	default:
		return nil, nil
	}
}

// Values returns the per-sample values of a scalar or vector for rows
// samples, and nil for None and Solve.
//
// Errors: ErrLengthMismatch for a vector of the wrong length.
func (d Dependent) Values(rows int) ([]float64, error) { return d.expand(rows) }

// String renders d for logs.
func (d Dependent) String() string {
	switch d.kind {
	case depScalar:
		return fmt.Sprintf("scalar(%g)", d.scalar)
	case depVector:
		return fmt.Sprintf("vector[%d]", len(d.vector))
	case depSolve:
		return "solve"
	default:
		return "none"
	}
}
