// SPDX-License-Identifier: MIT

// Package table provides the feature table consumed by every calibration in
// thermobar: a set of named float64 columns of equal length, one row per sample.
//
// What is a feature table?
//
//	Columns follow the <Oxide>_<Phase>[_<basis>] naming convention, for example
//	SiO2_Amp (raw wt%), SiO2_Amp_cat_23ox (cations per 23 oxygens) or
//	H2O_Liq_mol_frac_hyd (hydrous liquid mole fraction). Row order is the only
//	sample identity: every result produced from a table is positionally aligned
//	with it.
//
// Key properties:
//   - Immutable after construction: With/Select/Join return fresh tables.
//   - Column reads return copies, so callers cannot mutate shared state.
//   - Require reports every missing feature at once (ErrMissingRequiredFeature).
//   - Join refuses tables with different row counts (ErrLengthMismatch).
//
// CSV helpers (ReadCSV/WriteCSV) move tables in and out of spreadsheets;
// headers are NFKC-normalized so full-width or BOM-prefixed exports still match.
//
// Usage:
//
//	tbl, err := table.FromMap(map[string][]float64{
//		"SiO2_Amp": {42.1, 43.0},
//		"MgO_Amp":  {14.2, 13.9},
//	})
//	if err != nil {
//		// ErrLengthMismatch, ErrEmptyName
//	}
//	si, _ := tbl.Column("SiO2_Amp")
package table
