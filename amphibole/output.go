// SPDX-License-Identifier: MIT

package amphibole

import (
	"strconv"

	"github.com/katalvlaran/thermobar/dispatch"
	"github.com/katalvlaran/thermobar/table"
)

// Output column names.
const (
	ColPressure     = "P_kbar_calc"
	ColTemperature  = "T_K_calc"
	ColDeltaP       = "Delta_P_kbar_Iter"
	ColDeltaT       = "Delta_T_K_Iter"
	ColPH2O         = "PH2O_kbar_calc"
	ColMgNumber     = "Mg#_Amp"
	ColKd           = "Kd-Fe-Mg"
	ColXPae         = "XPae"
	ColDeltaPdb     = "deltaPdb"
	ColEquation     = "equation"
	ColInputCheck   = "Input_Check"
	ColFailMsg      = "Fail Msg"
	ColEqPutirka    = "Eq Putirka 2016?"
	colRidolfiMPa1a = "P_MPa_1a"
)

// Output is the result of one pipeline call. Row order mirrors the input.
//   - Numeric    — estimates and diagnostics; nil when Deferred is set.
//   - Equation   — Ridolfi (2021) label per sample; nil on other paths.
//   - InputCheck — validation pass flag; nil when no gate ran.
//   - FailMsg    — validation reason; nil when no gate ran.
//   - EqTest     — "Yes"/"No" Kd equilibrium flag; nil unless requested.
//   - Deferred   — set when the caller asked for Solve on a dependent calibration.
//   - Notes      — advisory messages (ignored dependent values, applicability).
type Output struct {
	Numeric    *table.Table
	Equation   []string
	InputCheck []bool
	FailMsg    []string
	EqTest     []string
	Deferred   *dispatch.Evaluator
	Notes      []string
}

// Text returns the non-numeric columns that are present, in output order.
func (o *Output) Text() []table.TextColumn {
	var out []table.TextColumn
	if o.Equation != nil {
		out = append(out, table.TextColumn{Name: ColEquation, Values: o.Equation})
	}
	if o.InputCheck != nil {
		flags := make([]string, len(o.InputCheck))
		for i, ok := range o.InputCheck {
			flags[i] = strconv.FormatBool(ok)
		}
		out = append(out, table.TextColumn{Name: ColInputCheck, Values: flags})
	}
	if o.FailMsg != nil {
		out = append(out, table.TextColumn{Name: ColFailMsg, Values: o.FailMsg})
	}
	if o.EqTest != nil {
		out = append(out, table.TextColumn{Name: ColEqPutirka, Values: o.EqTest})
	}

	return out
}

// Column is a shortcut for o.Numeric.Column.
func (o *Output) Column(name string) ([]float64, error) {
	if o.Numeric == nil {
		return nil, table.ErrNilTable
	}

	return o.Numeric.Column(name)
}

// columns collects named numeric columns in order into a table.
type columns struct {
	names []string
	cols  [][]float64
}

func (c *columns) add(name string, v []float64) {
	c.names = append(c.names, name)
	c.cols = append(c.cols, v)
}

// addFrom appends every column of t not already collected.
func (c *columns) addFrom(t *table.Table) {
	seen := make(map[string]bool, len(c.names))
	for _, n := range c.names {
		seen[n] = true
	}
	for _, n := range t.Names() {
		if seen[n] {
			continue
		}
		v, _ := t.Column(n)
		c.add(n, v)
	}
}

func (c *columns) table() (*table.Table, error) { return table.FromColumns(c.names, c.cols) }
