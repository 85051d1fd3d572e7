// SPDX-License-Identifier: MIT

// Package equation - amphibole–liquid calibrations of Putirka (2016).
//
// Liquid features are mole fractions: hydrous (including H2O) for eq4a, eq4b,
// eq7a, eq7b and eq9; anhydrous for eq7c. Amphibole features are on the
// 23-oxygen basis. None of these bodies reads the dependent unknown.

package equation

import (
	"math"

	"github.com/katalvlaran/thermobar/composition"
)

// Hydrous liquid mole fractions.
var (
	siHyd  = composition.SiO2.HydrousColumn()
	tiHyd  = composition.TiO2.HydrousColumn()
	alHyd  = composition.Al2O3.HydrousColumn()
	feHyd  = composition.FeOt.HydrousColumn()
	mnHyd  = composition.MnO.HydrousColumn()
	mgHyd  = composition.MgO.HydrousColumn()
	caHyd  = composition.CaO.HydrousColumn()
	naHyd  = composition.Na2O.HydrousColumn()
	kHyd   = composition.K2O.HydrousColumn()
	pHyd   = composition.P2O5.HydrousColumn()
	h2oHyd = composition.H2O.HydrousColumn()
)

// Anhydrous liquid mole fractions.
var (
	alAnh = composition.Al2O3.AnhydrousColumn()
	naAnh = composition.Na2O.AnhydrousColumn()
	pAnh  = composition.P2O5.AnhydrousColumn()
)

const putirka2016 = "Putirka (2016)"

func ampLiqPressure() []Descriptor {
	return []Descriptor{
		{
			ID:        "P_Put2016_eq7a",
			Kind:      AmpLiqPressure,
			Requires:  []string{al23, na23, k23, alHyd, naHyd, h2oHyd, pHyd},
			Reference: putirka2016,
			Body: func(in Inputs, _ []float64) []float64 {
				al, na, k := in.Col(al23), in.Col(na23), in.Col(k23)
				alL, naL, h2o, p := in.Col(alHyd), in.Col(naHyd), in.Col(h2oHyd), in.Col(pHyd)
				return rowwise(in.Rows(), func(i int) float64 {
					return 10 * (-3.093 - 4.274*math.Log(al[i]/alL[i]) -
						4.216*math.Log(alL[i]) + 63.3*p[i] +
						1.264*h2o[i] + 2.457*al[i] + 1.86*k[i] +
						0.4*math.Log(na[i]/naL[i]))
				})
			},
		},
		{
			ID:        "P_Put2016_eq7b",
			Kind:      AmpLiqPressure,
			Requires:  []string{alHyd, pHyd, al23, siHyd, naHyd, kHyd, caHyd},
			Reference: putirka2016,
			Body: func(in Inputs, _ []float64) []float64 {
				alL, p, al := in.Col(alHyd), in.Col(pHyd), in.Col(al23)
				si, na, k, ca := in.Col(siHyd), in.Col(naHyd), in.Col(kHyd), in.Col(caHyd)
				return rowwise(in.Rows(), func(i int) float64 {
					return -64.79 - 6.064*math.Log(al[i]/alL[i]) +
						61.75*si[i] + 682*p[i] -
						101.9*ca[i] + 7.85*al[i] -
						46.46*math.Log(si[i]) -
						4.81*math.Log(na[i]+k[i])
				})
			},
		},
		{
			ID:        "P_Put2016_eq7c",
			Kind:      AmpLiqPressure,
			Requires:  []string{al23, k23, pAnh, alAnh, na23, naAnh},
			Reference: putirka2016,
			Body: func(in Inputs, _ []float64) []float64 {
				al, k, na := in.Col(al23), in.Col(k23), in.Col(na23)
				p, alL, naL := in.Col(pAnh), in.Col(alAnh), in.Col(naAnh)
				return rowwise(in.Rows(), func(i int) float64 {
					return -45.55 + 26.65*al[i] + 22.52*k[i] +
						439*p[i] - 51.1*math.Log(alL[i]) -
						46.3*math.Log(al[i]/alL[i]) +
						5.231*math.Log(na[i]/naL[i])
				})
			},
		},
	}
}

func ampLiqTemperature() []Descriptor {
	return []Descriptor{
		{
			ID:        "T_Put2016_eq4b",
			Kind:      AmpLiqTemperature,
			Requires:  []string{h2oHyd, fe23, feHyd, mgHyd, mnHyd, alHyd, ti23, tiHyd},
			Reference: putirka2016,
			Body: func(in Inputs, _ []float64) []float64 {
				h2o, fe, ti := in.Col(h2oHyd), in.Col(fe23), in.Col(ti23)
				feL, mgL, mnL, alL, tiL := in.Col(feHyd), in.Col(mgHyd), in.Col(mnHyd), in.Col(alHyd), in.Col(tiHyd)
				return rowwise(in.Rows(), func(i int) float64 {
					return 273.15 + 8037.85/(3.69-2.62*h2o[i]+0.66*fe[i]-
						0.416*math.Log(tiL[i])+0.37*math.Log(mgL[i])-
						1.05*math.Log((feL[i]+mgL[i]+mnL[i])*alL[i])-
						0.462*math.Log(ti[i]/tiL[i]))
				})
			},
		},
		{
			ID:        "T_Put2016_eq4a_amp_sat",
			Kind:      AmpLiqTemperature,
			Requires:  []string{feHyd, tiHyd, alHyd, mnHyd, mgHyd, na23, naHyd},
			Reference: putirka2016 + ", amphibole saturation surface",
			Body: func(in Inputs, _ []float64) []float64 {
				feL, tiL, alL, mnL, mgL := in.Col(feHyd), in.Col(tiHyd), in.Col(alHyd), in.Col(mnHyd), in.Col(mgHyd)
				na, naL := in.Col(na23), in.Col(naHyd)
				return rowwise(in.Rows(), func(i int) float64 {
					return 273.15 + 6383.4/(-12.07+45.4*alL[i]+12.21*feL[i]-
						0.415*math.Log(tiL[i])-3.555*math.Log(alL[i])-
						0.832*math.Log(naL[i])-
						0.481*math.Log((feL[i]+mgL[i]+mnL[i])*alL[i])-
						0.679*math.Log(na[i]/naL[i]))
				})
			},
		},
		{
			ID:   "T_Put2016_eq9",
			Kind: AmpLiqTemperature,
			Requires: []string{si23, ti23, mg23, fe23, na23, feHyd, al23, alHyd,
				k23, ca23, naHyd, kHyd},
			Reference: putirka2016,
			Body:      putirkaEq9,
		},
	}
}

// putirkaEq9 applies the Na-M4 cutoff (≤ 0.1 → 0) before the A-site K/Na
// exchange term.
func putirkaEq9(in Inputs, _ []float64) []float64 {
	si, ti, mg, fe := in.Col(si23), in.Col(ti23), in.Col(mg23), in.Col(fe23)
	na, al, k, ca := in.Col(na23), in.Col(al23), in.Col(k23), in.Col(ca23)
	feL, alL, naL, kL := in.Col(feHyd), in.Col(alHyd), in.Col(naHyd), in.Col(kHyd)

	return rowwise(in.Rows(), func(i int) float64 {
		naM4 := 2 - fe[i] - ca[i]
		if naM4 <= 0.1 {
			naM4 = 0
		}
		helzA := na[i] - naM4
		lnKd := math.Log((k[i] / helzA) * (naL[i] / kL[i]))

		return 273.15 + 10073.5/(9.75+0.934*si[i]-1.454*ti[i]-
			0.882*mg[i]-1.123*na[i]-0.322*math.Log(feL[i])-
			0.7593*math.Log(al[i]/alL[i])-0.15*lnKd)
	})
}
