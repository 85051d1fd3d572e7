// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/thermobar/amphibole"
	"github.com/katalvlaran/thermobar/dispatch"
	"github.com/katalvlaran/thermobar/solver"
)

// Job modes.
const (
	ModePressure       = "pressure"
	ModeTemperature    = "temperature"
	ModePT             = "pt"
	ModeLiqPressure    = "liq-pressure"
	ModeLiqTemperature = "liq-temperature"
	ModeLiqPT          = "liq-pt"
	ModeAllPressures   = "all-pressures"
	ModeMelt           = "melt"
)

var (
	// ErrUnknownMode indicates a mode outside the Mode* constants.
	ErrUnknownMode = errors.New("thermobar: unknown mode")

	// ErrMissingEquation indicates the mode needs an equation ID the job omits.
	ErrMissingEquation = errors.New("thermobar: missing equation")

	// ErrMissingLiquid indicates a liq-* mode run without -liq.
	ErrMissingLiquid = errors.New("thermobar: liquid table required")

	// ErrInvalidValue indicates a non-finite or out-of-range numeric key.
	ErrInvalidValue = errors.New("thermobar: invalid value")
)

// Config is one thermobarometry job.
type Config struct {
	Mode       string   `yaml:"mode"`
	EquationP  string   `yaml:"equation_p"`
	EquationT  string   `yaml:"equation_t"`
	TKelvin    *float64 `yaml:"t_kelvin,omitempty"`  // fixed T for P-dependent-on-T barometers
	PKbar      *float64 `yaml:"p_kbar,omitempty"`    // fixed P for P-dependent thermometers
	Iterations int      `yaml:"iterations"`          // coupled solve rounds
	TInitial   float64  `yaml:"t_initial"`           // initial T guess (K)
	DeltaNNO   *float64 `yaml:"delta_nno,omitempty"` // required by P_Kraw2012
	H2OLiq     *float64 `yaml:"h2o_liq,omitempty"`   // overrides H2O_Liq (wt%)
	EqTests    bool     `yaml:"eq_tests"`            // Kd-Fe-Mg equilibrium flag
	MeltMethod string   `yaml:"melt_method"`         // Ridolfi21 or Zhang17, mode melt
}

// DefaultConfig returns a Ridolfi (2021) pressure job with the solver defaults.
func DefaultConfig() Config {
	return Config{
		Mode:       ModePressure,
		EquationP:  amphibole.PRidolfi2021,
		Iterations: solver.DefaultIterations,
		TInitial:   solver.DefaultTInitial,
	}
}

// LoadConfig decodes a YAML job over DefaultConfig. Unknown keys are errors.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfigFile reads path with LoadConfig.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	return LoadConfig(f)
}

// Validate checks the mode, the equation IDs it needs, and the solver options.
func (c Config) Validate() error {
	var needP, needT bool
	switch c.Mode {
	case ModePressure, ModeLiqPressure:
		needP = true
	case ModeTemperature, ModeLiqTemperature:
		needT = true
	case ModePT, ModeLiqPT:
		needP, needT = true, true
	case ModeAllPressures:
	case ModeMelt:
		if c.MeltMethod == "" {
			return fmt.Errorf("mode %s needs melt_method: %w", c.Mode, ErrMissingEquation)
		}
	default:
		return fmt.Errorf("%q: %w", c.Mode, ErrUnknownMode)
	}
	if needP && c.EquationP == "" {
		return fmt.Errorf("mode %s needs equation_p: %w", c.Mode, ErrMissingEquation)
	}
	if needT && c.EquationT == "" {
		return fmt.Errorf("mode %s needs equation_t: %w", c.Mode, ErrMissingEquation)
	}

	for _, v := range []struct {
		key string
		val *float64
		min float64
	}{
		{"t_kelvin", c.TKelvin, 0},
		{"p_kbar", c.PKbar, math.Inf(-1)},
		{"delta_nno", c.DeltaNNO, math.Inf(-1)},
		{"h2o_liq", c.H2OLiq, 0},
	} {
		if v.val == nil {
			continue
		}
		if math.IsNaN(*v.val) || math.IsInf(*v.val, 0) || *v.val < v.min {
			return fmt.Errorf("%s = %v: %w", v.key, *v.val, ErrInvalidValue)
		}
	}

	return c.solverOptions().Validate()
}

// Liquid reports whether the mode reads a liquid table.
func (c Config) Liquid() bool {
	return c.Mode == ModeLiqPressure || c.Mode == ModeLiqTemperature || c.Mode == ModeLiqPT
}

func (c Config) solverOptions() solver.Options {
	return solver.Options{Iterations: c.Iterations, TInitial: c.TInitial}
}

// engineOptions maps the job onto amphibole options. Call after Validate.
func (c Config) engineOptions(log *slog.Logger) []amphibole.Option {
	opts := []amphibole.Option{
		amphibole.WithLogger(log),
		amphibole.WithSolverOptions(c.solverOptions()),
	}
	if c.DeltaNNO != nil {
		opts = append(opts, amphibole.WithDeltaNNO(*c.DeltaNNO))
	}
	if c.H2OLiq != nil {
		opts = append(opts, amphibole.WithH2OLiquid(*c.H2OLiq))
	}

	return opts
}

func (c Config) temperature() dispatch.Dependent {
	if c.TKelvin == nil {
		return dispatch.None()
	}
	return dispatch.Scalar(*c.TKelvin)
}

func (c Config) pressure() dispatch.Dependent {
	if c.PKbar == nil {
		return dispatch.None()
	}
	return dispatch.Scalar(*c.PKbar)
}
