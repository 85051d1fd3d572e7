// SPDX-License-Identifier: MIT

// Package validation stamps each amphibole analysis with the Ridolfi (2021)
// input-quality checks.
//
// Purpose:
//   - Recompute volatile and ferric-iron corrections on the 13-cation formula.
//   - Run nine ordered checks; every failing check clears the pass flag and
//     overwrites the reason, so the reason names the LAST failing check.
//   - Let callers clear the pressure of failed samples (Report.Clear).
//
// Checks (in order):
//  1. Sum_input < 90            "Cation oxide Total<90"
//  2. Total_recalc < 98.5       "Recalc Total<98.5"
//  3. Total_recalc > 102        "Recalc Total>102"
//  4. Charge > 46.5             "unbalanced charge (>46.5)"
//  5. Fe2_calc < 0              "unbalanced charge (Fe2<0)"
//  6. 100·Mgno_Fe2 < 54         "Low Mg# (<54)"
//  7. Ca < 1.5                  "Low Ca (<1.5)"
//  8. Ca > 2.05                 "High Ca (>2.05)"
//  9. B_Sum < 1.99              "Low B Cations"
//
// A failing check is advisory: Run never returns an error for it. Only a
// structurally invalid table (nil, missing columns) is an error.
//
// APE (the absolute percentage difference between the selected pressure and
// equation 1a) is reported when both pressures are supplied; it does not gate.
package validation
