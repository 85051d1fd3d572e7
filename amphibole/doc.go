// SPDX-License-Identifier: MIT

// Package amphibole is the user-facing thermobarometry engine. It turns raw
// oxide tables into features, dispatches the requested calibrations, couples
// P and T when both are unknown, and assembles the output table.
//
// Pipelines:
//   - Pressure / Temperature           amphibole-only, one unknown.
//   - PressureTemperature              amphibole-only, coupled by the solver.
//   - LiquidPressure / LiquidTemperature / LiquidPressureTemperature
//     amphibole–liquid pairs, optionally with the Kd(Fe–Mg) equilibrium test.
//   - AllPressures                     every amphibole-only barometer side by side.
//   - MeltComposition                  melt H2O, ΔNNO or oxides from amphibole sites.
//
// Special pressure IDs:
//   - P_Ridolfi2021 runs equations 1a–1e, selects one estimate per sample with
//     package classifier, and stamps samples with package validation.
//   - P_Kraw2012 gives the partial pressure of H2O at amphibole saturation and
//     needs ΔNNO (WithDeltaNNO).
//
// Output units: pressure in kbar (P_kbar_calc), temperature in kelvin (T_K_calc).
// Row order mirrors the input.
//
// Errors: structural problems (unknown ID, missing oxide, mismatched row counts)
// abort the call. Per-sample quality failures are reported in Output.InputCheck
// and Output.FailMsg.
package amphibole
