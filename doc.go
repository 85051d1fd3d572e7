// SPDX-License-Identifier: MIT

// Package thermobar estimates crystallization pressure and temperature from
// amphibole analyses, alone or paired with the coexisting melt.
//
// It brings together:
//   - Feature tables: named float64 columns, CSV in and out
//   - Normalizations: 23-oxygen and 13-cation amphibole formulae, melt mole fractions
//   - A catalogue of published barometers and thermometers, keyed by string ID
//   - Dispatch with a dependent-variable policy (none, value, or deferred)
//   - A fixed-point P–T solver with a fixed iteration budget
//   - The Ridolfi (2021) estimate selector and its quality gate
//   - Melt composition estimated from amphibole site occupancy
//
// Packages:
//
//	table/       — Table, CSV reader/writer, text label columns
//	composition/ — oxide data, normalizations, site allocation, Kd(Fe–Mg) test
//	equation/    — Descriptor, Registry, the built-in Catalog
//	dispatch/    — Dependent, Result, Dispatcher
//	solver/      — coupled P–T iteration
//	classifier/  — Ridolfi (2021) selection, vectorized and scalar
//	validation/  — formula-quality checks and derived quantities
//	amphibole/   — Engine: the user-facing pipelines
//	cmd/thermobar — YAML job + CSV command
//
// Quick example:
//
//	eng := amphibole.New()
//	out, err := eng.PressureTemperature(amp, "P_Ridolfi2021", "T_Ridolfi2012")
//	p, _ := out.Column(amphibole.ColPressure) // kbar
//
// Units: kbar and kelvin throughout; the Ridolfi (2012) candidates are
// reported in MPa.
package thermobar
