// SPDX-License-Identifier: MIT

package composition

// Oxide describes one analysed component: molar mass (g/mol), cations and
// oxygens per formula unit. Halogens are carried as single anions.
type Oxide struct {
	Name    string
	Mass    float64
	Cations float64
	Oxygens float64
}

// Phase suffixes used in column names.
const (
	PhaseAmp = "Amp"
	PhaseLiq = "Liq"
)

// Molar masses shared with the calibrations.
var (
	SiO2  = Oxide{Name: "SiO2", Mass: 60.0843, Cations: 1, Oxygens: 2}
	TiO2  = Oxide{Name: "TiO2", Mass: 79.8788, Cations: 1, Oxygens: 2}
	Al2O3 = Oxide{Name: "Al2O3", Mass: 101.961, Cations: 2, Oxygens: 3}
	Cr2O3 = Oxide{Name: "Cr2O3", Mass: 151.9982, Cations: 2, Oxygens: 3}
	FeOt  = Oxide{Name: "FeOt", Mass: 71.8464, Cations: 1, Oxygens: 1}
	MnO   = Oxide{Name: "MnO", Mass: 70.9374, Cations: 1, Oxygens: 1}
	MgO   = Oxide{Name: "MgO", Mass: 40.3044, Cations: 1, Oxygens: 1}
	CaO   = Oxide{Name: "CaO", Mass: 56.0774, Cations: 1, Oxygens: 1}
	Na2O  = Oxide{Name: "Na2O", Mass: 61.9789, Cations: 2, Oxygens: 1}
	K2O   = Oxide{Name: "K2O", Mass: 94.196, Cations: 2, Oxygens: 1}
	P2O5  = Oxide{Name: "P2O5", Mass: 141.937, Cations: 2, Oxygens: 5}
	H2O   = Oxide{Name: "H2O", Mass: 18.01528, Cations: 2, Oxygens: 1}
	F     = Oxide{Name: "F", Mass: 18.998, Cations: 0, Oxygens: 0}
	Cl    = Oxide{Name: "Cl", Mass: 35.453, Cations: 0, Oxygens: 0}
)

// amphiboleCations are the oxides contributing cations to an amphibole formula,
// in Si → K order. The first seven are the Si..Mg group used for 13-cation sums.
var amphiboleCations = []Oxide{SiO2, TiO2, Al2O3, Cr2O3, FeOt, MnO, MgO, CaO, Na2O, K2O}

// siMgCount is the length of the Si..Mg prefix of amphiboleCations.
const siMgCount = 7

// siCaCount is the length of the Si..Ca prefix of amphiboleCations.
const siCaCount = 8

// AmphiboleMajor lists the amphibole oxides that must be present.
var AmphiboleMajor = []Oxide{SiO2, TiO2, Al2O3, FeOt, MgO, CaO, Na2O, K2O}

// AmphiboleAll lists every amphibole column counted in the analytical total.
var AmphiboleAll = []Oxide{SiO2, TiO2, Al2O3, FeOt, MnO, MgO, CaO, Na2O, K2O, Cr2O3, F, Cl}

// LiquidMajor lists the liquid oxides that must be present.
var LiquidMajor = []Oxide{SiO2, Al2O3, FeOt, MgO, CaO, Na2O, K2O}

// liquidAnhydrous lists liquid oxides for anhydrous fractions; hydrous adds H2O.
var liquidAnhydrous = []Oxide{SiO2, TiO2, Al2O3, FeOt, MnO, MgO, CaO, Na2O, K2O, Cr2O3, P2O5}

// Column returns the raw wt% column name of o in phase, e.g. "SiO2_Amp".
func (o Oxide) Column(phase string) string { return o.Name + "_" + phase }

// MolPropColumn returns e.g. "FeOt_Amp_mol_prop".
func (o Oxide) MolPropColumn(phase string) string { return o.Column(phase) + "_mol_prop" }

// Cat23Column returns e.g. "SiO2_Amp_cat_23ox".
func (o Oxide) Cat23Column() string { return o.Column(PhaseAmp) + "_cat_23ox" }

// Cat13Column returns e.g. "SiO2_Amp_13_cat".
func (o Oxide) Cat13Column() string { return o.Column(PhaseAmp) + "_13_cat" }

// HydrousColumn returns e.g. "SiO2_Liq_mol_frac_hyd".
func (o Oxide) HydrousColumn() string { return o.Column(PhaseLiq) + "_mol_frac_hyd" }

// AnhydrousColumn returns e.g. "SiO2_Liq_mol_frac".
func (o Oxide) AnhydrousColumn() string { return o.Column(PhaseLiq) + "_mol_frac" }

// columns maps a list of oxides to their raw column names in phase.
func columns(oxides []Oxide, phase string) []string {
	out := make([]string, len(oxides))
	for i, o := range oxides {
		out[i] = o.Column(phase)
	}

	return out
}
