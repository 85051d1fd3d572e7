// SPDX-License-Identifier: MIT

package amphibole

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/thermobar/dispatch"
	"github.com/katalvlaran/thermobar/equation"
	"github.com/katalvlaran/thermobar/table"
)

const opAllPressures = "AllPressures"

// AllPressures evaluates every amphibole-only barometer of the catalogue on the
// same analyses, for side-by-side comparison. t is the temperature (K) handed
// to T-dependent barometers; with None they are left out with a note, and
// Solve is rejected. T-independent barometers never see t.
//
// P_Kraw2012 is included only when the engine has a ΔNNO, and its column holds
// PH2O. P_Ridolfi2021 is always appended together with its Equation,
// InputCheck and FailMsg.
//
// Output columns: one per equation ID in registry order (kbar), then
// P_Ridolfi2021.
//
// Errors: ErrUnsupportedCoupling, dispatch.ErrLengthMismatch,
// table.ErrNilTable, table.ErrMissingRequiredFeature.
func (e *Engine) AllPressures(amp *table.Table, t dispatch.Dependent) (*Output, error) {
	if t.IsSolve() {
		return nil, amphiboleErrorf(opAllPressures, fmt.Errorf("every barometer needs a fixed temperature: %w", ErrUnsupportedCoupling))
	}
	feats, err := ampFeatures(amp)
	if err != nil {
		return nil, amphiboleErrorf(opAllPressures, err)
	}

	d := e.dispatcher(equation.AmpOnlyPressure)
	out := &Output{}
	var c columns
	for _, id := range e.cat.AmpOnlyP.IDs() {
		desc, _ := e.cat.AmpOnlyP.Lookup(id)
		switch {
		case id == PKraw2012:
			if e.deltaNNO == nil {
				e.log.Debug("skipped", slog.String("equation", id), slog.String("reason", "no deltaNNO"))
				continue
			}
			kraw, err := e.Kraw2012(amp, dispatch.None())
			if err != nil {
				return nil, amphiboleErrorf(opAllPressures, err)
			}
			v, _ := kraw.Column(ColPH2O)
			c.add(id, v)
			out.Notes = append(out.Notes, kraw.Notes...)
			continue
		case desc.NeedsDependent && t.IsNone():
			note := fmt.Sprintf("%s needs T; not computed", id)
			e.log.Warn(note)
			out.Notes = append(out.Notes, note)
			continue
		}

		dep := dispatch.None()
		if desc.NeedsDependent {
			dep = t
		}
		res, err := d.Evaluate(id, feats, dep)
		if err != nil {
			return nil, amphiboleErrorf(opAllPressures, err)
		}
		v, _ := res.Vector()
		c.add(id, v)
		out.Notes = append(out.Notes, res.Notes...)
	}

	ridolfi, err := e.Ridolfi2021(amp)
	if err != nil {
		return nil, err
	}
	v, _ := ridolfi.Column(ColPressure)
	c.add(PRidolfi2021, v)
	out.Equation, out.InputCheck, out.FailMsg = ridolfi.Equation, ridolfi.InputCheck, ridolfi.FailMsg

	if out.Numeric, err = c.table(); err != nil {
		return nil, amphiboleErrorf(opAllPressures, err)
	}
	e.log.Debug("all pressures", slog.Int("rows", out.Numeric.Rows()), slog.Int("equations", len(c.names)))

	return out, nil
}
