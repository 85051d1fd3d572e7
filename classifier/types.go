// SPDX-License-Identifier: MIT

package classifier

import "fmt"

// Thresholds of the decision procedure. Pressures in MPa.
const (
	MinQuality = 90.0

	thrLowB    = 335.0
	thrMidB    = 399.0
	thrLowC    = 415.0
	thrLowD    = 470.0
	thrHighX   = 0.22
	thrDeltaE  = 350.0
	thrDeltaD  = 210.0
	thrDeltaC  = 75.0
	thrLowX    = -0.2
	thrMediumX = 0.05
)

// Rule identifies which branch of the procedure fired (1..11).
type Rule uint8

const (
	RuleUnassigned Rule = iota
	RuleLowB
	RuleMidB
	RuleLowC
	RuleLowD
	RuleHighX
	RuleDeltaE
	RuleDeltaD
	RuleDeltaC
	RuleLowX
	RuleMediumX
	RuleDefault
)

// String returns "rule N".
func (r Rule) String() string { return fmt.Sprintf("rule %d", uint8(r)) }

// Label names the estimate a rule selects.
type Label string

const (
	LabelB   Label = "b"
	LabelBC  Label = "(b+c)/2"
	LabelC   Label = "c"
	LabelCD  Label = "(c+d)/2"
	LabelD   Label = "d"
	LabelE   Label = "e"
	LabelA   Label = "a"
	LabelNil Label = ""
)

// Label returns the estimate selected by r.
func (r Rule) Label() Label {
	switch r {
	case RuleLowB:
		return LabelB
	case RuleMidB, RuleLowX:
		return LabelBC
	case RuleLowC, RuleLowD, RuleDeltaC:
		return LabelC
	case RuleHighX, RuleMediumX:
		return LabelCD
	case RuleDeltaD:
		return LabelD
	case RuleDeltaE:
		return LabelE
	case RuleDefault:
		return LabelA
	default:
		return LabelNil
	}
}

// Candidates holds the five barometer estimates (MPa) and the oxide total of
// each sample. All six slices must have the same length.
type Candidates struct {
	A, B, C, D, E []float64
	Quality       []float64
}

// Len returns the sample count (length of A).
func (c Candidates) Len() int { return len(c.A) }

func (c Candidates) validate() error {
	n := len(c.A)
	if n == 0 {
		return ErrEmptyInput
	}
	named := []struct {
		name string
		v    []float64
	}{{"b", c.B}, {"c", c.C}, {"d", c.D}, {"e", c.E}, {"quality", c.Quality}}
	for _, nv := range named {
		if len(nv.v) != n {
			return fmt.Errorf("%s has %d values, a has %d: %w", nv.name, len(nv.v), n, ErrLengthMismatch)
		}
	}

	return nil
}

// Selection is the per-sample outcome.
//   - Pressure — selected estimate in MPa; NaN when Quality < 90.
//   - XPae     — (a−e)/a, reported for every sample.
//   - DeltaPdb — d−b, reported for every sample.
type Selection struct {
	Pressure []float64
	Rule     []Rule
	Label    []Label
	XPae     []float64
	DeltaPdb []float64
}

// Labels returns the labels as strings, for text output.
func (s Selection) Labels() []string {
	out := make([]string, len(s.Label))
	for i, l := range s.Label {
		out[i] = string(l)
	}

	return out
}

func newSelection(n int) Selection {
	return Selection{
		Pressure: make([]float64, n),
		Rule:     make([]Rule, n),
		Label:    make([]Label, n),
		XPae:     make([]float64, n),
		DeltaPdb: make([]float64, n),
	}
}

// Derived quantities shared by both implementations, so the two agree bitwise.

func xPae(a, e float64) float64 { return (a - e) / a }

func deltaPdb(b, d float64) float64 { return d - b }

func mean(u, v float64) float64 { return (u + v) / 2 }
