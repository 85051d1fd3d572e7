// SPDX-License-Identifier: MIT

package classifier

import (
	"fmt"
	"math"
)

// step is one masked assignment: rows where mask is true and no earlier step
// has claimed them take value and rule.
type step struct {
	rule  Rule
	mask  []bool
	value []float64
}

// Select applies the procedure to the whole batch as a sequence of masked
// assignments, in rule order.
//
// Stage 1 (Validate): equal, non-zero lengths.
// Stage 2 (Derive): x, δ and the two averages as vectors.
// Stage 3 (Assign): one mask per rule; later masks only touch unassigned rows.
// Stage 4 (Gate): Quality < 90 → NaN.
//
// Errors: ErrEmptyInput, ErrLengthMismatch.
func Select(c Candidates) (Selection, error) {
	// Stage 1 (Validate).
	if err := c.validate(); err != nil {
		return Selection{}, fmt.Errorf("classifier.Select: %w", err)
	}
	n := c.Len()
	s := newSelection(n)

	// Stage 2 (Derive).
	avgBC := make([]float64, n)
	avgCD := make([]float64, n)
	for i := 0; i < n; i++ {
		s.XPae[i] = xPae(c.A[i], c.E[i])
		s.DeltaPdb[i] = deltaPdb(c.B[i], c.D[i])
		avgBC[i] = mean(c.B[i], c.C[i])
		avgCD[i] = mean(c.C[i], c.D[i])
	}

	// Stage 3 (Assign).
	steps := []step{
		{RuleLowB, below(c.B, thrLowB), c.B},
		{RuleMidB, below(c.B, thrMidB), avgBC},
		{RuleLowC, below(c.C, thrLowC), c.C},
		{RuleLowD, below(c.D, thrLowD), c.C},
		{RuleHighX, above(s.XPae, thrHighX), avgCD},
		{RuleDeltaE, above(s.DeltaPdb, thrDeltaE), c.E},
		{RuleDeltaD, above(s.DeltaPdb, thrDeltaD), c.D},
		{RuleDeltaC, below(s.DeltaPdb, thrDeltaC), c.C},
		{RuleLowX, below(s.XPae, thrLowX), avgBC},
		{RuleMediumX, above(s.XPae, thrMediumX), avgCD},
		{RuleDefault, always(n), c.A},
	}
	for _, st := range steps {
		for i, hit := range st.mask {
			if hit && s.Rule[i] == RuleUnassigned {
				s.Rule[i] = st.rule
				s.Label[i] = st.rule.Label()
				s.Pressure[i] = st.value[i]
			}
		}
	}

	// Stage 4 (Gate).
	for i, low := range below(c.Quality, MinQuality) {
		if low {
			s.Pressure[i] = math.NaN()
		}
	}

	return s, nil
}

func below(v []float64, thr float64) []bool {
	out := make([]bool, len(v))
	for i, x := range v {
		out[i] = x < thr
	}

	return out
}

func above(v []float64, thr float64) []bool {
	out := make([]bool, len(v))
	for i, x := range v {
		out[i] = x > thr
	}

	return out
}

func always(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}

	return out
}
