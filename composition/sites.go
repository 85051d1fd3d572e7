// SPDX-License-Identifier: MIT

// Package composition - amphibole site allocation.
//
// Both routines fill the standard formula A₀₋₁ B₂ C₅ T₈ in the same order:
//   - T: Si, then Al, then Ti up to 8.
//   - C: the Al and Ti left over, Fe3+ and Cr, then Mg, Fe2+ and Mn up to 5.
//   - B: the Mg, Fe2+ and Mn left over, then Ca, then Na up to 2.
//   - A: the remaining Na and all K.
//
// They differ only in the formula basis and the Fe3+ estimate. Ca beyond the
// B site is not assigned.

package composition

import (
	"math"

	"github.com/katalvlaran/thermobar/table"
)

// Site assignment columns, in output order.
const (
	SiT  = "Si_T"
	AlT  = "Al_T"
	TiT  = "Ti_T"
	AlC  = "Al_C"
	TiC  = "Ti_C"
	Fe3C = "Fe3_C"
	CrC  = "Cr_C"
	MgC  = "Mg_C"
	Fe2C = "Fe2_C"
	MnC  = "Mn_C"
	MgB  = "Mg_B"
	Fe2B = "Fe2_B"
	MnB  = "Mn_B"
	CaB  = "Ca_B"
	NaB  = "Na_B"
	NaA  = "Na_A"
	KA   = "K_A"
)

// SiteColumns lists the site assignment columns in output order.
func SiteColumns() []string {
	return []string{SiT, AlT, TiT, AlC, TiC, Fe3C, CrC, MgC, Fe2C, MnC, MgB, Fe2B, MnB, CaB, NaB, NaA, KA}
}

// FerricFactor is the normalization factor column of AmphiboleSitesAvFerric.
const FerricFactor = "avferric_factor"

// Operation tags.
const (
	opSites13     = "AmphiboleSites13"
	opSitesFerric = "AmphiboleSitesAvFerric"
)

// siteTotalCharge is the cation charge of a 23-oxygen anhydrous formula.
const siteTotalCharge = 46.0

// formula is one amphibole formula with iron split by valence.
type formula struct {
	si, ti, al, cr, fe3, fe2, mn, mg, ca, na, k float64
}

// fill returns how much of v fits in room, never negative.
func fill(v, room float64) float64 { return math.Max(0, math.Min(v, room)) }

// allocate assigns f to sites in SiteColumns order.
func (f formula) allocate() []float64 {
	siT := f.si
	alT := fill(f.al, 8-siT)
	tiT := fill(f.ti, 8-siT-alT)
	alC, tiC := f.al-alT, f.ti-tiT

	room := 5 - alC - tiC - f.fe3 - f.cr
	mgC := fill(f.mg, room)
	room -= mgC
	fe2C := fill(f.fe2, room)
	room -= fe2C
	mnC := fill(f.mn, room)
	mgB, fe2B, mnB := f.mg-mgC, f.fe2-fe2C, f.mn-mnC

	room = 2 - mgB - fe2B - mnB
	caB := fill(f.ca, room)
	room -= caB
	naB := fill(f.na, room)

	return []float64{siT, alT, tiT, alC, tiC, f.fe3, f.cr, mgC, fe2C, mnC, mgB, fe2B, mnB, caB, naB, f.na - naB, f.k}
}

// sitesTable turns per-row allocations into columns named by SiteColumns.
func sitesTable(rows [][]float64) (*table.Table, error) {
	names := SiteColumns()
	cols := make([][]float64, len(names))
	for j := range cols {
		cols[j] = make([]float64, len(rows))
		for i, r := range rows {
			cols[j][i] = r[j]
		}
	}

	return table.FromColumns(names, cols)
}

// cationColumns returns the amphiboleCations columns of t named by name.
func cationColumns(t *table.Table, name func(Oxide) string) [][]float64 {
	out := make([][]float64, len(amphiboleCations))
	for k, o := range amphiboleCations {
		out[k], _ = t.Column(name(o))
	}

	return out
}

// AmphiboleSites13 allocates the 13-cation formula of Amphibole13Cations to
// sites (Ridolfi et al. 2010). Fe3+ is the charge deficit below 46, clamped to
// [0, Fe].
//
// Output columns: SiteColumns.
//
// Errors: table.ErrNilTable, table.ErrMissingRequiredFeature.
func AmphiboleSites13(amp *table.Table) (*table.Table, error) {
	cat13, err := Amphibole13Cations(amp)
	if err != nil {
		return nil, compositionErrorf(opSites13, err)
	}
	c := cationColumns(cat13, Oxide.Cat13Column)
	rows := make([][]float64, cat13.Rows())
	for i := range rows {
		si, ti, al, cr, fe, mn, mg, ca, na, k := c[0][i], c[1][i], c[2][i], c[3][i], c[4][i], c[5][i], c[6][i], c[7][i], c[8][i], c[9][i]
		charge := 4*(si+ti) + 3*(al+cr) + 2*(fe+mn+mg+ca) + na + k
		fe3 := fill(siteTotalCharge-charge, fe)
		rows[i] = formula{si, ti, al, cr, fe3, fe - fe3, mn, mg, ca, na, k}.allocate()
	}
	out, err := sitesTable(rows)
	if err != nil {
		return nil, compositionErrorf(opSites13, err)
	}

	return out, nil
}

// AmphiboleSitesAvFerric allocates the 23-oxygen formula after the average
// ferric-iron recalculation of Schumacher (1997), as used by Zhang et al.
// (2017). The formula is rescaled by the mean of two factors:
//
//	min Fe3+: min(1, 8/Si, 16/Σ, 15/(Σ−K))
//	max Fe3+: max(46/(46+Fe), 8/(Si+Al), 13/(Σ−Ca−Na−K), 15/(Σ−Na−K))
//
// and Fe3+ = 46·(1 − factor), clamped to [0, Fe].
//
// Output columns: SiteColumns, then avferric_factor.
//
// Errors: table.ErrNilTable, table.ErrMissingRequiredFeature.
func AmphiboleSitesAvFerric(amp *table.Table) (*table.Table, error) {
	ox23, err := Amphibole23Oxygens(amp)
	if err != nil {
		return nil, compositionErrorf(opSitesFerric, err)
	}
	c := cationColumns(ox23, Oxide.Cat23Column)
	n := ox23.Rows()
	rows := make([][]float64, n)
	factor := make([]float64, n)
	for i := range rows {
		si, ti, al, cr, fe, mn, mg, ca, na, k := c[0][i], c[1][i], c[2][i], c[3][i], c[4][i], c[5][i], c[6][i], c[7][i], c[8][i], c[9][i]
		sum := si + ti + al + cr + fe + mn + mg + ca + na + k
		minFe3 := math.Min(math.Min(1, 8/si), math.Min(16/sum, 15/(sum-k)))
		maxFe3 := math.Max(
			math.Max(siteTotalCharge/(siteTotalCharge+fe), 8/(si+al)),
			math.Max(13/(sum-ca-na-k), 15/(sum-na-k)))
		f := (minFe3 + maxFe3) / 2
		factor[i] = f

		feScaled := fe * f
		fe3 := fill(siteTotalCharge*(1-f), feScaled)
		rows[i] = formula{
			si: si * f, ti: ti * f, al: al * f, cr: cr * f,
			fe3: fe3, fe2: feScaled - fe3,
			mn: mn * f, mg: mg * f, ca: ca * f, na: na * f, k: k * f,
		}.allocate()
	}
	sites, err := sitesTable(rows)
	if err != nil {
		return nil, compositionErrorf(opSitesFerric, err)
	}
	if sites, err = sites.With(FerricFactor, factor); err != nil {
		return nil, compositionErrorf(opSitesFerric, err)
	}

	return sites, nil
}
