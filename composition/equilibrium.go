// SPDX-License-Identifier: MIT

package composition

import (
	"github.com/katalvlaran/thermobar/table"
)

// Putirka (2016) amphibole–liquid equilibrium window for Kd(Fe–Mg), inclusive.
const (
	KdEquilibriumMin = 0.17
	KdEquilibriumMax = 0.39
)

const opKd = "KdFeMg"

// KdFeMg returns the Fe–Mg exchange coefficient between amphibole and liquid:
//
//	Kd = (Fe/Mg)_amp / (Fe/Mg)_liq
//
// with amphibole mole proportions and hydrous liquid mole fractions.
// The two tables must describe the same samples in the same order.
//
// Errors: table.ErrNilTable, table.ErrLengthMismatch, table.ErrMissingRequiredFeature.
func KdFeMg(amp, liq *table.Table) ([]float64, error) {
	if amp == nil || liq == nil {
		return nil, compositionErrorf(opKd, table.ErrNilTable)
	}
	if amp.Rows() != liq.Rows() {
		return nil, compositionErrorf(opKd, table.ErrLengthMismatch)
	}
	if err := amp.Require(FeOt.Column(PhaseAmp), MgO.Column(PhaseAmp)); err != nil {
		return nil, compositionErrorf(opKd, err)
	}
	hyd, err := LiquidHydrousFractions(liq)
	if err != nil {
		return nil, compositionErrorf(opKd, err)
	}
	ampMol := molProps(amp, []Oxide{FeOt, MgO}, PhaseAmp)
	feLiq, _ := hyd.Column(FeOt.HydrousColumn())
	mgLiq, _ := hyd.Column(MgO.HydrousColumn())

	kd := make([]float64, amp.Rows())
	for i := range kd {
		kd[i] = (ampMol[0][i] / ampMol[1][i]) / (feLiq[i] / mgLiq[i])
	}

	return kd, nil
}

// PutirkaEquilibrium labels each Kd "Yes" inside [KdEquilibriumMin, KdEquilibriumMax]
// and "No" otherwise (NaN included).
func PutirkaEquilibrium(kd []float64) []string {
	out := make([]string, len(kd))
	for i, v := range kd {
		if v >= KdEquilibriumMin && v <= KdEquilibriumMax {
			out[i] = "Yes"
		} else {
			out[i] = "No"
		}
	}

	return out
}
