// SPDX-License-Identifier: MIT

package amphibole

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/katalvlaran/thermobar/composition"
	"github.com/katalvlaran/thermobar/dispatch"
	"github.com/katalvlaran/thermobar/table"
)

// Melt-composition calibrations accepted by MeltComposition.
const (
	MeltRidolfi2021 = "Ridolfi21"
	MeltZhang2017   = "Zhang17"
)

// Ridolfi (2021) melt estimate columns.
const (
	ColDeltaNNO = "deltaNNO_calc"
	ColH2OMelt  = "H2O_calc"
)

const opMelt = "MeltComposition"

// site is one row of a site allocation.
type site struct {
	siT, alT, tiT, alC, tiC, fe3C, mgC, fe2C, mnC, mgB, fe2B, caB, naA, kA float64
}

func readSites(t *table.Table) []site {
	col := func(name string) []float64 {
		v, _ := t.Column(name)
		return v
	}
	siT, alT, tiT := col(composition.SiT), col(composition.AlT), col(composition.TiT)
	alC, tiC, fe3C := col(composition.AlC), col(composition.TiC), col(composition.Fe3C)
	mgC, fe2C, mnC := col(composition.MgC), col(composition.Fe2C), col(composition.MnC)
	mgB, fe2B, caB := col(composition.MgB), col(composition.Fe2B), col(composition.CaB)
	naA, kA := col(composition.NaA), col(composition.KA)

	out := make([]site, t.Rows())
	for i := range out {
		out[i] = site{
			siT: siT[i], alT: alT[i], tiT: tiT[i], alC: alC[i], tiC: tiC[i], fe3C: fe3C[i],
			mgC: mgC[i], fe2C: fe2C[i], mnC: mnC[i], mgB: mgB[i], fe2B: fe2B[i], caB: caB[i],
			naA: naA[i], kA: kA[i],
		}
	}

	return out
}

// meltEquation estimates one melt quantity from amphibole sites. tc is the
// temperature in °C, NaN when none was supplied; only needsT bodies read it.
type meltEquation struct {
	name   string
	needsT bool
	eval   func(s site, tc float64) float64
}

// ridolfi2021Melt: melt H2O (wt%) and ΔNNO from the 13-cation sites.
var ridolfi2021Melt = []meltEquation{
	{ColDeltaNNO, false, func(s site, _ float64) float64 {
		return -10.3216023230583*s.alT + 4.47045484316415*s.alC + 7.55122550171372*s.tiC +
			5.46318534905121*s.fe3C - 4.73884449358073*s.mgC - 7.20328571556139*s.fe2C -
			17.5610110666215*s.mnC + 13.762022684517*s.caB + 13.7560270877436*s.naA +
			27.5944871599305*s.kA
	}},
	{ColH2OMelt, false, func(s site, _ float64) float64 {
		return math.Exp(-1.374845602*s.alT + 1.7103210931239*s.alC + 0.85944576818503*s.tiC +
			1.18881568772057*s.fe3C - 0.675980097369545*s.mgC - 0.390086849565756*s.fe2C -
			6.40208103925722*s.mnC + 2.54899046000297*s.caB + 1.37094801209146*s.naA +
			1.25720999388625*s.kA)
	}},
}

// zhang2017Melt: chemometric melt oxides (wt%) from the average-ferric sites,
// Zhang et al. (2017) equations 1–14.
var zhang2017Melt = []meltEquation{
	{"SiO2_Eq1", false, func(s site, _ float64) float64 {
		return -736.7170 + 288.733*math.Log(s.siT) + 56.536*s.alC + 27.169*(s.mgC+s.mgB) +
			62.665*s.fe3C + 34.814*(s.fe2C+s.fe2B) + 83.989*(s.tiT+s.tiC) + 44.225*s.caB + 14.049*s.naA
	}},
	{"SiO2_Eq2", false, func(s site, _ float64) float64 {
		return -399.9891 + 212.9463*math.Log(s.siT) + 11.7464*s.alC + 23.5653*s.fe3C +
			6.8467*(s.fe2C+s.fe2B) + 24.7743*(s.tiT+s.tiC) + 24.4399*s.caB
	}},
	{"SiO2_Eq3", true, func(s site, tc float64) float64 {
		return -228 + 0.01065*tc + 165*math.Log(s.siT) - 7.219*(s.mgC+s.mgB)
	}},
	{"SiO2_Eq4", false, func(s site, _ float64) float64 {
		return -222.614 + 167.517*math.Log(s.siT) - 7.156*(s.mgC+s.mgB)
	}},
	{"TiO2_Eq5", true, func(s site, tc float64) float64 {
		return math.Exp(23.4870 - 0.0011*tc - 2.5692*s.siT - 1.3919*s.alC - 2.1195361*s.fe3C -
			1.0510775*(s.fe2C+s.fe2B) - 2.0634034*s.caB - 1.5960633*s.naA)
	}},
	{"TiO2_Eq6", false, func(s site, _ float64) float64 {
		return math.Exp(22.4650 - 2.5975*s.siT - 1.15502*s.alC - 2.23287*s.fe3C -
			1.03193*(s.fe2C+s.fe2B) - 1.98253*s.caB - 1.55912*s.naA)
	}},
	{"FeO_Eq7", false, func(s site, _ float64) float64 {
		return math.Exp(24.4613 - 2.72308*s.siT - 1.07345*s.alC - 1.0466*s.fe3C -
			0.25801*(s.fe2C+s.fe2B) - 1.93601*s.tiC - 2.52281*s.caB)
	}},
	{"FeO_Eq8", false, func(s site, _ float64) float64 {
		return math.Exp(15.6864 - 2.09657*s.siT + 0.36457*s.mgC - 1.33131*s.caB)
	}},
	{"MgO_Eq9", false, func(s site, _ float64) float64 {
		return math.Exp(12.6618 - 2.63189*s.siT + 1.04995*s.alC + 1.26035*s.mgC)
	}},
	{"CaO_Eq10", false, func(s site, _ float64) float64 {
		return 41.2784 - 7.1955*s.siT + 3.6412*s.mgC - 5.0437*s.naA
	}},
	{"CaO_Eq11", false, func(s site, _ float64) float64 {
		return math.Exp(6.4192 - 1.17372*s.siT + 1.31976*s.alC + 0.67733*s.mgC)
	}},
	{"K2O_Eq12", false, func(s site, _ float64) float64 {
		return 100.5909 - 4.3246*s.siT - 17.8256*s.alC - 10.0901*s.mgC - 15.683*s.fe3C -
			8.8004*(s.fe2C+s.fe2B) - 19.7448*s.tiC - 6.3727*s.caB - 5.8069*s.naA
	}},
	{"K2O_Eq13", false, func(s site, _ float64) float64 {
		return -16.53 + 1.6878*s.siT + 1.2354*(s.fe3C+s.fe2C+s.fe2B) + 5.0404*s.tiC + 2.9703*s.caB
	}},
	{"Al2O3_Eq14", false, func(s site, _ float64) float64 {
		return 4.573 + 6.9408*s.alC + 1.0059*s.mgC + 4.5448*s.fe3C + 5.9679*s.tiC + 7.1501*s.naA
	}},
}

// MeltComposition estimates the melt in equilibrium with each amphibole.
//
//   - MeltRidolfi2021: deltaNNO_calc (log units) and H2O_calc (wt%) from the
//     13-cation site allocation.
//   - MeltZhang2017: SiO2, TiO2, FeO, MgO, CaO, K2O and Al2O3 (wt%) from the
//     average-ferric site allocation. SiO2_Eq3 and TiO2_Eq5 need t (K); with
//     None they are left out with a note.
//
// t follows the Pressure conventions except that Solve is rejected.
//
// Output columns: the estimates in equation order, then the site allocation.
//
// Errors: ErrUnknownMeltMethod, ErrUnsupportedCoupling, dispatch.ErrLengthMismatch,
// table.ErrNilTable, table.ErrMissingRequiredFeature.
func (e *Engine) MeltComposition(amp *table.Table, method string, t dispatch.Dependent) (*Output, error) {
	var (
		eqs      []meltEquation
		allocate func(*table.Table) (*table.Table, error)
	)
	switch method {
	case MeltRidolfi2021:
		eqs, allocate = ridolfi2021Melt, composition.AmphiboleSites13
	case MeltZhang2017:
		eqs, allocate = zhang2017Melt, composition.AmphiboleSitesAvFerric
	default:
		return nil, amphiboleErrorf(opMelt, fmt.Errorf("%q: %w", method, ErrUnknownMeltMethod))
	}
	if t.IsSolve() {
		return nil, amphiboleErrorf(opMelt, fmt.Errorf("%s needs a fixed temperature: %w", method, ErrUnsupportedCoupling))
	}

	sites, err := allocate(amp)
	if err != nil {
		return nil, amphiboleErrorf(opMelt, err)
	}
	tk, err := t.Values(sites.Rows())
	if err != nil {
		return nil, amphiboleErrorf(opMelt, err)
	}
	rows := readSites(sites)

	out := &Output{}
	var (
		c       columns
		usesT   bool
		skipped []string
	)
	for _, eq := range eqs {
		if eq.needsT {
			usesT = true
			if tk == nil {
				skipped = append(skipped, eq.name)
				continue
			}
		}
		v := make([]float64, len(rows))
		for i, s := range rows {
			tc := math.NaN()
			if tk != nil {
				tc = tk[i] - 273.15
			}
			v[i] = eq.eval(s, tc)
		}
		c.add(eq.name, v)
	}
	if len(skipped) > 0 {
		note := fmt.Sprintf("%s need a temperature; not computed", strings.Join(skipped, ", "))
		e.log.Warn(note, slog.String("method", method))
		out.Notes = append(out.Notes, note)
	}
	if !usesT && !t.IsNone() {
		e.log.Warn("dependent variable ignored", slog.String("method", method), slog.String("supplied", t.String()))
		out.Notes = append(out.Notes, fmt.Sprintf(solveIgnoredFmtNote, method, "T", t))
	}
	c.addFrom(sites)
	if out.Numeric, err = c.table(); err != nil {
		return nil, amphiboleErrorf(opMelt, err)
	}

	return out, nil
}
