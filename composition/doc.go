// SPDX-License-Identifier: MIT

// Package composition turns raw oxide analyses (wt%) into the structural
// features the calibrations read: mole proportions, amphibole formulae on a
// 23-oxygen and a 13-cation basis, hydrous and anhydrous liquid mole
// fractions, Mg# and the Fe–Mg exchange coefficient used as an equilibrium test.
//
// Every routine is a pure function from one feature table to a fresh one, so
// the equation engine can treat it as an external collaborator.
//
// Column conventions:
//
//	input    SiO2_Amp, FeOt_Amp, ... , H2O_Liq
//	output   SiO2_Amp_mol_prop, SiO2_Amp_cat_23ox, SiO2_Amp_13_cat,
//	         SiO2_Liq_mol_frac_hyd, SiO2_Liq_mol_frac
//
// Minor oxides (MnO, Cr2O3, F, Cl, P2O5, H2O) may be absent and count as zero;
// the major oxides of each phase are required (table.ErrMissingRequiredFeature).
package composition
