// SPDX-License-Identifier: MIT

package classifier

import (
	"fmt"
	"math"
)

// SelectScalar applies the procedure one sample at a time. It returns the same
// Selection as Select, element for element.
//
// Errors: ErrEmptyInput, ErrLengthMismatch.
func SelectScalar(c Candidates) (Selection, error) {
	if err := c.validate(); err != nil {
		return Selection{}, fmt.Errorf("classifier.SelectScalar: %w", err)
	}
	s := newSelection(c.Len())
	for i := range s.Pressure {
		p, r := selectOne(c.A[i], c.B[i], c.C[i], c.D[i], c.E[i])
		s.Pressure[i] = p
		s.Rule[i] = r
		s.Label[i] = r.Label()
		s.XPae[i] = xPae(c.A[i], c.E[i])
		s.DeltaPdb[i] = deltaPdb(c.B[i], c.D[i])
		if c.Quality[i] < MinQuality {
			s.Pressure[i] = math.NaN()
		}
	}

	return s, nil
}

// selectOne is the first-match-wins rule chain for one sample.
func selectOne(a, b, c, d, e float64) (float64, Rule) {
	switch {
	case b < thrLowB:
		return b, RuleLowB
	case b < thrMidB:
		return mean(b, c), RuleMidB
	case c < thrLowC:
		return c, RuleLowC
	case d < thrLowD:
		return c, RuleLowD
	}

	x := xPae(a, e)
	if x > thrHighX {
		return mean(c, d), RuleHighX
	}

	delta := deltaPdb(b, d)
	switch {
	case delta > thrDeltaE:
		return e, RuleDeltaE
	case delta > thrDeltaD:
		return d, RuleDeltaD
	case delta < thrDeltaC:
		return c, RuleDeltaC
	case x < thrLowX:
		return mean(b, c), RuleLowX
	case x > thrMediumX:
		return mean(c, d), RuleMediumX
	default:
		return a, RuleDefault
	}
}
