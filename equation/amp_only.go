// SPDX-License-Identifier: MIT

// Package equation - amphibole-only calibrations.
//
// Barometers return kbar, thermometers return kelvin. Ridolfi (2012) bodies
// return MPa internally and are scaled by 0.01 here so every P body in the
// catalogue shares one unit.

package equation

import (
	"math"

	"github.com/katalvlaran/thermobar/composition"
)

// Feature names on the 13-cation basis (Ridolfi & Renzulli 2012).
var (
	si13 = composition.SiO2.Cat13Column()
	ti13 = composition.TiO2.Cat13Column()
	al13 = composition.Al2O3.Cat13Column()
	fe13 = composition.FeOt.Cat13Column()
	mg13 = composition.MgO.Cat13Column()
	ca13 = composition.CaO.Cat13Column()
	na13 = composition.Na2O.Cat13Column()
	k13  = composition.K2O.Cat13Column()
)

// Feature names on the 23-oxygen basis.
var (
	si23 = composition.SiO2.Cat23Column()
	ti23 = composition.TiO2.Cat23Column()
	al23 = composition.Al2O3.Cat23Column()
	fe23 = composition.FeOt.Cat23Column()
	mg23 = composition.MgO.Cat23Column()
	ca23 = composition.CaO.Cat23Column()
	na23 = composition.Na2O.Cat23Column()
	k23  = composition.K2O.Cat23Column()
)

// DeltaNNO is the oxygen-fugacity column (log units relative to NNO) read by P_Kraw2012.
const DeltaNNO = "deltaNNO"

// ridolfi13 builds the eight Si..K terms of a Ridolfi (2012) predictor.
func ridolfi13(si, ti, al, fe, mg, ca, na, k float64) []term {
	return []term{
		{si, si13}, {ti, ti13}, {al, al13}, {fe, fe13},
		{mg, mg13}, {ca, ca13}, {na, na13}, {k, k13},
	}
}

// ridolfiLinear is a Ridolfi (2012) barometer of the form 0.01·(c0 + Σ).
func ridolfiLinear(id string, c0 float64, terms []term) Descriptor {
	return Descriptor{
		ID:        id,
		Kind:      AmpOnlyPressure,
		Requires:  names(terms),
		Reference: "Ridolfi & Renzulli (2012)",
		Body: func(in Inputs, _ []float64) []float64 {
			return scaled(linear(in, c0, terms), 0.01)
		},
	}
}

// ridolfiExp is a Ridolfi (2012) barometer of the form 0.01·exp(c0 + Σ).
func ridolfiExp(id string, c0 float64, terms []term) Descriptor {
	return Descriptor{
		ID:        id,
		Kind:      AmpOnlyPressure,
		Requires:  names(terms),
		Reference: "Ridolfi & Renzulli (2012)",
		Body: func(in Inputs, _ []float64) []float64 {
			return expScaled(linear(in, c0, terms), 0.01)
		},
	}
}

// alBarometer is a T-independent barometer of total Al (23 O).
func alBarometer(id, ref string, f func(al float64) float64) Descriptor {
	return Descriptor{
		ID:        id,
		Kind:      AmpOnlyPressure,
		Requires:  []string{al23},
		Reference: ref,
		Body: func(in Inputs, _ []float64) []float64 {
			al := in.Col(al23)
			return rowwise(in.Rows(), func(i int) float64 { return f(al[i]) })
		},
	}
}

// Ridolfi (2012) equation IDs, in candidate order a–e.
const (
	PRidolfi2012a = "P_Ridolfi2012_1a"
	PRidolfi2012b = "P_Ridolfi2012_1b"
	PRidolfi2012c = "P_Ridolfi2012_1c"
	PRidolfi2012d = "P_Ridolfi2012_1d"
	PRidolfi2012e = "P_Ridolfi2012_1e"
)

func ampOnlyPressure() []Descriptor {
	return []Descriptor{
		ridolfiExp(PRidolfi2012a, 125.9332115, ridolfi13(
			-9.587571403, -10.11615567, -8.173455128, -9.226076274,
			-8.793390507, -1.6658613, 2.48347198, 2.519184959)),
		ridolfiExp(PRidolfi2012b, 38.722545085, ridolfi13(
			-2.695663047, -2.35647038717941, -1.30063975020919, -2.7779767369382,
			-2.48384821395444, -0.661386638563983, -0.270530207793162, 0.111696322092308)),
		ridolfiLinear(PRidolfi2012c, 24023.367332, ridolfi13(
			-1925.298250, -1720.63250944418, -1478.53847391822, -1843.19249824537,
			-1746.94437497404, -158.279055907371, -40.4443246813322, 253.51576430265)),
		ridolfiLinear(PRidolfi2012d, 26105.7092067, ridolfi13(
			-1991.93398583468, -3034.9724955129, -1472.2242262718, -2454.76485311127,
			-2125.79095875747, -830.644984403603, 2708.82902160291, 2204.10480275638)),
		ridolfiExp(PRidolfi2012e, 26.5426319326957, ridolfi13(
			-1.20851740386237, -3.85930939071001, -1.10536070667051, -2.90677947035468,
			-2.64825741548332, 0.513357584438019, 2.9751971464851, 1.81467032749331)),
		{
			ID:        "P_Ridolfi2010",
			Kind:      AmpOnlyPressure,
			Requires:  []string{al23, composition.CationSumSiCa},
			Reference: "Ridolfi et al. (2010)",
			Body: func(in Inputs, _ []float64) []float64 {
				al, sum := in.Col(al23), in.Col(composition.CationSumSiCa)
				return rowwise(in.Rows(), func(i int) float64 {
					return 10 * (19.209 * math.Exp(1.438*al[i]*13/sum[i])) / 1000
				})
			},
		},
		alBarometer("P_Hammerstrom1986_eq1", "Hammarstrom & Zen (1986)",
			func(al float64) float64 { return -3.92 + 5.03*al }),
		alBarometer("P_Hammerstrom1986_eq2", "Hammarstrom & Zen (1986)",
			func(al float64) float64 { return 1.27 * math.Pow(al, 2.01) }),
		alBarometer("P_Hammerstrom1986_eq3", "Hammarstrom & Zen (1986)",
			func(al float64) float64 { return 0.26 * math.Exp(1.48*al) }),
		alBarometer("P_Hollister1987", "Hollister et al. (1987)",
			func(al float64) float64 { return -4.76 + 5.64*al }),
		alBarometer("P_Johnson1989", "Johnson & Rutherford (1989)",
			func(al float64) float64 { return -3.46 + 4.23*al }),
		alBarometer("P_Blundy1990", "Blundy & Holland (1990)",
			func(al float64) float64 { return 5.03*al - 3.53 }),
		alBarometer("P_Schmidt1992", "Schmidt (1992)",
			func(al float64) float64 { return -3.01 + 4.76*al }),
		{
			ID:             "P_Anderson1995",
			Kind:           AmpOnlyPressure,
			Requires:       []string{al23},
			NeedsDependent: true,
			Reference:      "Anderson & Smith (1995)",
			Body: func(in Inputs, t []float64) []float64 {
				al := in.Col(al23)
				return rowwise(in.Rows(), func(i int) float64 {
					dt := t[i] - 273.15 - 675
					return 4.76*al[i] - 3.01 - ((dt / 85) * (0.53*al[i] + 0.005294*dt))
				})
			},
		},
		{
			ID:        "P_Kraw2012",
			Kind:      AmpOnlyPressure,
			Requires:  []string{composition.MgnoAmp, DeltaNNO},
			Reference: "Krawczynski et al. (2012), PH2O at amphibole-in",
			Body: func(in Inputs, _ []float64) []float64 {
				mgno, nno := in.Col(composition.MgnoAmp), in.Col(DeltaNNO)
				return rowwise(in.Rows(), func(i int) float64 {
					return 0.01 * math.Pow(mgno[i]/52.7-0.014*nno[i], 15.12)
				})
			},
		},
		// Al_tot here is total Al per 23 anhydrous oxygens with all Fe as Fe2+.
		// Mutch et al. sum Al_T and Al_C after a ferric/ferrous site allocation,
		// which renormalizes the formula, so estimates for Fe3+-rich amphiboles
		// run a little high against the published allocation.
		{
			ID:        "P_Mutch2016",
			Kind:      AmpOnlyPressure,
			Requires:  []string{composition.AlTotAmp},
			Reference: "Mutch et al. (2016)",
			Body: func(in Inputs, _ []float64) []float64 {
				al := in.Col(composition.AlTotAmp)
				return rowwise(in.Rows(), func(i int) float64 {
					return 0.5 + 0.331*al[i] + 0.995*al[i]*al[i]
				})
			},
		},
	}
}

// putirkaThermometer is a Putirka (2016) amphibole-only thermometer of the form
// 273.15 + c0 + Σ + pCoef·P/10 (pCoef 0 for P-independent forms).
func putirkaThermometer(id string, c0, pCoef float64, terms []term) Descriptor {
	return Descriptor{
		ID:             id,
		Kind:           AmpOnlyTemperature,
		Requires:       names(terms),
		NeedsDependent: pCoef != 0,
		Reference:      "Putirka (2016)",
		Body: func(in Inputs, p []float64) []float64 {
			out := linear(in, 273.15+c0, terms)
			if p != nil {
				for i := range out {
					out[i] += pCoef * p[i] / 10
				}
			}
			return out
		},
	}
}

func ampOnlyTemperature() []Descriptor {
	ridolfiT := ridolfi13(-691.423, -391.548, -666.149, -636.484, -584.021, -23.215, 79.971, -104.134)

	return []Descriptor{
		putirkaThermometer("T_Put2016_eq5", 1781, 0,
			[]term{{-132.74, si23}, {116.6, ti23}, {-69.41, fe23}, {101.62, na23}}),
		putirkaThermometer("T_Put2016_eq6", 1687, 22.44,
			[]term{{-118.7, si23}, {131.56, ti23}, {-71.41, fe23}, {86.13, na23}}),
		putirkaThermometer("T_Put2016_SiHbl", 2061, 0,
			[]term{{-178.4, si23}}),
		putirkaThermometer("T_Put2016_eq8", 1201.4, 40.65,
			[]term{{-97.93, si23}, {201.82, ti23}, {72.85, mg23}, {88.9, na23}}),
		{
			ID:             "T_Ridolfi2012",
			Kind:           AmpOnlyTemperature,
			Requires:       names(ridolfiT),
			NeedsDependent: true,
			Reference:      "Ridolfi & Renzulli (2012)",
			Body: func(in Inputs, p []float64) []float64 {
				out := linear(in, 273.15+8899.682, ridolfiT)
				for i := range out {
					out[i] += 78.993 * math.Log(p[i]*100)
				}
				return out
			},
		},
	}
}
