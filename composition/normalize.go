// SPDX-License-Identifier: MIT

// Package composition - formula normalizations.
//
// Implementation pattern (every routine):
//   - Stage 1 (Validate): Require the phase's major oxides.
//   - Stage 2 (Molar): wt% / molar mass → mole proportions (absent minors = 0).
//   - Stage 3 (Normalize): scale to the basis (23 O, 13 cations, Σ = 1).
//   - Stage 4 (Emit): a fresh table with the basis-suffixed columns.
//
// Determinism: fixed oxide order, no map iteration in numeric loops.

package composition

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/thermobar/table"
)

// Derived column names shared with the equation catalogue and validation gate.
const (
	CationSumSiMg = "cation_sum_Si_Mg"
	CationSumSiCa = "cation_sum_Si_Ca"
	SumInput      = "Sum_input"
	MgnoAmp       = "Mgno_Amp"
	AlTotAmp      = "Al_tot_Amp"
	F13Cat        = "F_Amp_13_cat"
	Cl13Cat       = "Cl_Amp_13_cat"
)

// Operation tags.
const (
	opMolProportions = "MolProportions"
	opAmp23          = "Amphibole23Oxygens"
	opAmp13          = "Amphibole13Cations"
	opLiqHydrous     = "LiquidHydrousFractions"
	opLiqAnhydrous   = "LiquidAnhydrousFractions"
	opTotal          = "AmphiboleTotal"
	opMgno           = "AmphiboleMgNumber"
)

// amphibole23Basis is the anhydrous oxygen basis of the amphibole formula.
const amphibole23Basis = 23.0

// amphibole13Basis is the Si..Mg cation sum used by Ridolfi's normalization.
const amphibole13Basis = 13.0

func compositionErrorf(tag string, err error) error {
	return fmt.Errorf("composition.%s: %w", tag, err)
}

// molProps returns wt/mass for each oxide in order (zero column if absent).
func molProps(t *table.Table, oxides []Oxide, phase string) [][]float64 {
	out := make([][]float64, len(oxides))
	for i, o := range oxides {
		col := t.ColumnOrZero(o.Column(phase))
		floats.Scale(1/o.Mass, col)
		out[i] = col
	}

	return out
}

// MolProportions returns <Ox>_<phase>_mol_prop for every listed oxide.
//
// Errors: table.ErrNilTable.
func MolProportions(t *table.Table, phase string, oxides []Oxide) (*table.Table, error) {
	if t == nil {
		return nil, compositionErrorf(opMolProportions, table.ErrNilTable)
	}
	// FromColumns infers rows from the first column; keep the source row count for empty lists.
	if len(oxides) == 0 {
		return table.New(t.Rows()), nil
	}
	props := molProps(t, oxides, phase)
	names := make([]string, len(oxides))
	for i, o := range oxides {
		names[i] = o.MolPropColumn(phase)
	}
	out, err := table.FromColumns(names, props)
	if err != nil {
		return nil, compositionErrorf(opMolProportions, err)
	}

	return out, nil
}

// Amphibole23Oxygens computes cations per 23 anhydrous oxygens.
//
// Output columns: <Ox>_Amp_cat_23ox for Si..K, cation_sum_Si_Ca and Al_tot_Amp
// (total Al on the same basis).
//
// Errors: table.ErrNilTable, table.ErrMissingRequiredFeature.
func Amphibole23Oxygens(amp *table.Table) (*table.Table, error) {
	// Stage 1 (Validate).
	if amp == nil {
		return nil, compositionErrorf(opAmp23, table.ErrNilTable)
	}
	if err := amp.Require(columns(AmphiboleMajor, PhaseAmp)...); err != nil {
		return nil, compositionErrorf(opAmp23, err)
	}

	// Stage 2 (Molar) + oxygen sum.
	n := amp.Rows()
	mol := molProps(amp, amphiboleCations, PhaseAmp)
	oxySum := make([]float64, n)
	for k, o := range amphiboleCations {
		floats.AddScaled(oxySum, o.Oxygens, mol[k])
	}

	// Stage 3 (Normalize): factor = 23 / Σ oxygens.
	factor := make([]float64, n)
	for i := range factor {
		factor[i] = amphibole23Basis / oxySum[i]
	}
	names := make([]string, 0, len(amphiboleCations)+2)
	cols := make([][]float64, 0, len(amphiboleCations)+2)
	sumSiCa := make([]float64, n)
	for k, o := range amphiboleCations {
		cat := make([]float64, n)
		floats.MulTo(cat, mol[k], factor)
		floats.Scale(o.Cations, cat)
		if k < siCaCount {
			floats.Add(sumSiCa, cat)
		}
		names = append(names, o.Cat23Column())
		cols = append(cols, cat)
	}
	names = append(names, CationSumSiCa, AlTotAmp)
	cols = append(cols, sumSiCa, cols[2])

	// Stage 4 (Emit).
	out, err := table.FromColumns(names, cols)
	if err != nil {
		return nil, compositionErrorf(opAmp23, err)
	}

	return out, nil
}

// Amphibole13Cations normalizes the formula so that Si+Ti+Al+Cr+Fe+Mn+Mg = 13
// (Ridolfi & Renzulli 2012). Halogens are scaled by the same factor.
//
// Output columns: <Ox>_Amp_13_cat for Si..K, F_Amp_13_cat, Cl_Amp_13_cat and
// cation_sum_Si_Mg, the un-normalized Si..Mg cation sum per 100 g that the
// validation gate uses to convert formula units back to wt%.
//
// Errors: table.ErrNilTable, table.ErrMissingRequiredFeature.
func Amphibole13Cations(amp *table.Table) (*table.Table, error) {
	if amp == nil {
		return nil, compositionErrorf(opAmp13, table.ErrNilTable)
	}
	if err := amp.Require(columns(AmphiboleMajor, PhaseAmp)...); err != nil {
		return nil, compositionErrorf(opAmp13, err)
	}

	n := amp.Rows()
	mol := molProps(amp, amphiboleCations, PhaseAmp)
	cat := make([][]float64, len(amphiboleCations))
	sumSiMg := make([]float64, n)
	for k, o := range amphiboleCations {
		cat[k] = make([]float64, n)
		floats.ScaleTo(cat[k], o.Cations, mol[k])
		if k < siMgCount {
			floats.Add(sumSiMg, cat[k])
		}
	}
	factor := make([]float64, n)
	for i := range factor {
		factor[i] = amphibole13Basis / sumSiMg[i]
	}

	names := make([]string, 0, len(amphiboleCations)+3)
	cols := make([][]float64, 0, len(amphiboleCations)+3)
	for k, o := range amphiboleCations {
		floats.Mul(cat[k], factor)
		names = append(names, o.Cat13Column())
		cols = append(cols, cat[k])
	}
	halogens := molProps(amp, []Oxide{F, Cl}, PhaseAmp)
	floats.Mul(halogens[0], factor)
	floats.Mul(halogens[1], factor)
	names = append(names, F13Cat, Cl13Cat, CationSumSiMg)
	cols = append(cols, halogens[0], halogens[1], sumSiMg)

	out, err := table.FromColumns(names, cols)
	if err != nil {
		return nil, compositionErrorf(opAmp13, err)
	}

	return out, nil
}

// AmphiboleTotal returns the analytical oxide total (Sum_input) of each amphibole analysis.
//
// Errors: table.ErrNilTable.
func AmphiboleTotal(amp *table.Table) ([]float64, error) {
	if amp == nil {
		return nil, compositionErrorf(opTotal, table.ErrNilTable)
	}

	return amp.RowSums(columns(AmphiboleAll, PhaseAmp)...), nil
}

// AmphiboleMgNumber returns 100·Mg/(Mg+Fe) from wt% MgO and FeOt, with the
// molar masses of Krawczynski et al. (2012).
//
// Errors: table.ErrNilTable, table.ErrMissingRequiredFeature.
func AmphiboleMgNumber(amp *table.Table) ([]float64, error) {
	if amp == nil {
		return nil, compositionErrorf(opMgno, table.ErrNilTable)
	}
	mgo, err := amp.Column(MgO.Column(PhaseAmp))
	if err != nil {
		return nil, compositionErrorf(opMgno, err)
	}
	feo, err := amp.Column(FeOt.Column(PhaseAmp))
	if err != nil {
		return nil, compositionErrorf(opMgno, err)
	}
	out := make([]float64, len(mgo))
	for i := range out {
		mg := mgo[i] / 40.3044
		out[i] = 100 * mg / (mg + feo[i]/71.844)
	}

	return out, nil
}

// LiquidHydrousFractions returns <Ox>_Liq_mol_frac_hyd: mole fractions over all
// liquid oxides including H2O.
//
// Errors: table.ErrNilTable, table.ErrMissingRequiredFeature.
func LiquidHydrousFractions(liq *table.Table) (*table.Table, error) {
	out, err := liquidFractions(liq, append(append([]Oxide(nil), liquidAnhydrous...), H2O), Oxide.HydrousColumn)
	if err != nil {
		return nil, compositionErrorf(opLiqHydrous, err)
	}

	return out, nil
}

// LiquidAnhydrousFractions returns <Ox>_Liq_mol_frac: mole fractions over the
// liquid oxides excluding H2O.
//
// Errors: table.ErrNilTable, table.ErrMissingRequiredFeature.
func LiquidAnhydrousFractions(liq *table.Table) (*table.Table, error) {
	out, err := liquidFractions(liq, liquidAnhydrous, Oxide.AnhydrousColumn)
	if err != nil {
		return nil, compositionErrorf(opLiqAnhydrous, err)
	}

	return out, nil
}

func liquidFractions(liq *table.Table, oxides []Oxide, name func(Oxide) string) (*table.Table, error) {
	if liq == nil {
		return nil, table.ErrNilTable
	}
	if err := liq.Require(columns(LiquidMajor, PhaseLiq)...); err != nil {
		return nil, err
	}
	mol := molProps(liq, oxides, PhaseLiq)
	total := make([]float64, liq.Rows())
	for _, m := range mol {
		floats.Add(total, m)
	}
	names := make([]string, len(oxides))
	for k, o := range oxides {
		floats.Div(mol[k], total)
		names[k] = name(o)
	}

	return table.FromColumns(names, mol)
}
