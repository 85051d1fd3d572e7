// SPDX-License-Identifier: MIT

// Package equation holds the calibration catalogue of thermobar: every
// published amphibole and amphibole–liquid thermometer or barometer is an
// explicit Descriptor, and descriptors live in immutable Registries keyed by ID.
//
// Why descriptors?
//
//	A calibration declares up front which feature columns it reads (Requires)
//	and whether it needs the other unknown (NeedsDependent: temperature for a
//	barometer, pressure for a thermometer). Dispatch can therefore validate a
//	feature table before any arithmetic runs, and the catalogue can be listed
//	and tested without evaluating anything.
//
// Registries:
//
//	AmpOnlyP   amphibole-only barometers      (dependent unknown: T, kelvin)
//	AmpOnlyT   amphibole-only thermometers    (dependent unknown: P, kbar)
//	AmpLiqP    amphibole–liquid barometers    (dependent unknown: T, kelvin)
//	AmpLiqT    amphibole–liquid thermometers  (dependent unknown: P, kbar)
//
// Units: barometers return kbar, thermometers return kelvin.
//
// Usage:
//
//	cat := equation.DefaultCatalog()
//	d, err := cat.AmpOnlyP.Lookup("P_Ridolfi2012_1a")
//	if errors.Is(err, equation.ErrUnknownEquation) {
//		// list cat.AmpOnlyP.IDs()
//	}
package equation
