// SPDX-License-Identifier: MIT

// Package equation - descriptor types.

package equation

import (
	"fmt"
	"math"

	"github.com/katalvlaran/thermobar/table"
)

// Kind classifies a calibration by the unknown it estimates and by how many
// phases' features it reads.
type Kind int

const (
	// AmpOnlyPressure estimates P (kbar) from amphibole features; dependent unknown T.
	AmpOnlyPressure Kind = iota

	// AmpOnlyTemperature estimates T (K) from amphibole features; dependent unknown P.
	AmpOnlyTemperature

	// AmpLiqPressure estimates P from amphibole + coexisting liquid features.
	AmpLiqPressure

	// AmpLiqTemperature estimates T from amphibole + coexisting liquid features.
	AmpLiqTemperature
)

// String returns a short kind name for logs and errors.
func (k Kind) String() string {
	switch k {
	case AmpOnlyPressure:
		return "amp-only pressure"
	case AmpOnlyTemperature:
		return "amp-only temperature"
	case AmpLiqPressure:
		return "amp-liq pressure"
	case AmpLiqTemperature:
		return "amp-liq temperature"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// TwoPhase reports whether the calibration needs amphibole and liquid features.
func (k Kind) TwoPhase() bool { return k == AmpLiqPressure || k == AmpLiqTemperature }

// Phases returns 1 for amphibole-only kinds and 2 for amphibole–liquid kinds.
func (k Kind) Phases() int {
	if k.TwoPhase() {
		return 2
	}

	return 1
}

// Estimates returns "P" for barometers and "T" for thermometers.
func (k Kind) Estimates() string {
	if k == AmpOnlyPressure || k == AmpLiqPressure {
		return "P"
	}

	return "T"
}

// Dependent returns the name of the other unknown ("T" for barometers).
func (k Kind) Dependent() string {
	if k.Estimates() == "P" {
		return "T"
	}

	return "P"
}

// valid reports whether k is one of the declared kinds.
func (k Kind) valid() bool { return k >= AmpOnlyPressure && k <= AmpLiqTemperature }

// Inputs is the bound, read-only view of the features a body reads.
// Only columns named in Descriptor.Requires are present.
type Inputs struct {
	cols map[string][]float64
	rows int
}

// Col returns the named column. Bodies only ask for names they declared in
// Requires, which Bind has already verified; an undeclared name returns nil.
func (in Inputs) Col(name string) []float64 { return in.cols[name] }

// Rows returns the sample count.
func (in Inputs) Rows() int { return in.rows }

// NewInputs binds names from t into an Inputs view.
//
// Errors: table.ErrNilTable, table.ErrMissingRequiredFeature.
func NewInputs(t *table.Table, names []string) (Inputs, error) {
	if t == nil {
		return Inputs{}, table.ErrNilTable
	}
	if err := t.Require(names...); err != nil {
		return Inputs{}, err
	}
	in := Inputs{cols: make(map[string][]float64, len(names)), rows: t.Rows()}
	for _, name := range names {
		in.cols[name], _ = t.Column(name)
	}

	return in, nil
}

// Body is the arithmetic of one calibration. It is pure and vectorized:
// every returned slice has in.Rows() entries. dep is nil when the descriptor
// does not need a dependent variable; otherwise it has in.Rows() entries.
type Body func(in Inputs, dep []float64) []float64

// Descriptor declares one calibration.
//   - ID         — unique within its registry (e.g. "P_Ridolfi2012_1a").
//   - Kind       — what it estimates and from which phases.
//   - Requires   — feature columns read by Body, in declaration order.
//   - NeedsDependent — true when Body reads dep (T for barometers, P for thermometers).
//   - Reference  — short literature citation.
type Descriptor struct {
	ID             string
	Kind           Kind
	Requires       []string
	NeedsDependent bool
	Reference      string
	Body           Body
}

// Bind validates t against Requires and returns the bound Inputs.
//
// Errors: table.ErrNilTable, table.ErrMissingRequiredFeature.
func (d Descriptor) Bind(t *table.Table) (Inputs, error) {
	in, err := NewInputs(t, d.Requires)
	if err != nil {
		return Inputs{}, equationErrorf(d.ID, err)
	}

	return in, nil
}

// Eval runs Body on bound inputs. Callers are responsible for passing a dep of
// the right length (the dispatcher does this).
func (d Descriptor) Eval(in Inputs, dep []float64) []float64 {
	if !d.NeedsDependent {
		dep = nil
	}

	return d.Body(in, dep)
}

// ---------- vectorized helpers shared by the catalogue ----------

// rowwise allocates the output and fills it with f(i) for each row.
func rowwise(n int, f func(i int) float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f(i)
	}

	return out
}

// term is one coefficient × feature product of a linear predictor.
type term struct {
	coef float64
	name string
}

// linear evaluates c0 + Σ coef·x for each row, summing in declaration order.
func linear(in Inputs, c0 float64, terms []term) []float64 {
	cols := make([][]float64, len(terms))
	for k, tm := range terms {
		cols[k] = in.Col(tm.name)
	}

	return rowwise(in.Rows(), func(i int) float64 {
		acc := c0
		for k, tm := range terms {
			acc += tm.coef * cols[k][i]
		}
		return acc
	})
}

// expScaled returns scale·exp(v) elementwise, in place.
func expScaled(v []float64, scale float64) []float64 {
	for i := range v {
		v[i] = scale * math.Exp(v[i])
	}

	return v
}

// scaled returns scale·v elementwise, in place.
func scaled(v []float64, scale float64) []float64 {
	for i := range v {
		v[i] = scale * v[i]
	}

	return v
}

// names extracts the feature names of terms.
func names(terms []term) []string {
	out := make([]string, len(terms))
	for k, tm := range terms {
		out[k] = tm.name
	}

	return out
}
