// SPDX-License-Identifier: MIT

// Command thermobar runs one amphibole thermobarometry job over CSV tables.
//
//	thermobar -config job.yaml -amp amp.csv [-liq liq.csv] [-out result.csv] [-v]
//	thermobar -list
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/katalvlaran/thermobar/amphibole"
	"github.com/katalvlaran/thermobar/equation"
	"github.com/katalvlaran/thermobar/table"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit, for tests. It returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("thermobar", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML job file (default: P_Ridolfi2021 pressure job)")
	ampPath := fs.String("amp", "", "amphibole CSV")
	liqPath := fs.String("liq", "", "liquid CSV, row-paired with -amp")
	outPath := fs.String("out", "", "result CSV (stdout when empty)")
	verbose := fs.Bool("v", false, "debug logging")
	list := fs.Bool("list", false, "print registered equation IDs and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if *list {
		printList(stdout, equation.DefaultCatalog())
		return 0
	}

	if err := job(logger, *configPath, *ampPath, *liqPath, *outPath, stdout); err != nil {
		logger.Error("job failed", "error", err)
		return 1
	}

	return 0
}

// job loads the inputs, runs the configured pipeline and writes the result.
func job(logger *slog.Logger, configPath, ampPath, liqPath, outPath string, stdout io.Writer) (err error) {
	cfg := DefaultConfig()
	if configPath != "" {
		if cfg, err = LoadConfigFile(configPath); err != nil {
			return err
		}
	} else if err = cfg.Validate(); err != nil {
		return err
	}
	if ampPath == "" {
		return errors.New("thermobar: -amp is required")
	}
	amp, labels, err := readTable(ampPath)
	if err != nil {
		return err
	}
	var liq *table.Table
	if cfg.Liquid() {
		if liqPath == "" {
			return ErrMissingLiquid
		}
		if liq, _, err = readTable(liqPath); err != nil {
			return err
		}
	}
	logger.Info("job",
		"mode", cfg.Mode,
		"equation_p", cfg.EquationP,
		"equation_t", cfg.EquationT,
		"melt_method", cfg.MeltMethod,
		"samples", amp.Rows())

	eng := amphibole.New(cfg.engineOptions(logger)...)
	out, err := execute(eng, cfg, amp, liq)
	if err != nil {
		return err
	}
	if out.Numeric == nil {
		return fmt.Errorf("thermobar: %s needs a fixed dependent variable", out.Deferred.ID())
	}

	w := stdout
	if outPath != "" {
		f, cerr := os.Create(outPath)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	text := append([]table.TextColumn(labels), out.Text()...)
	if err = table.WriteCSV(w, out.Numeric, text...); err != nil {
		return err
	}
	logger.Info("done", "rows", out.Numeric.Rows(), "notes", len(out.Notes))

	return nil
}

// execute dispatches cfg.Mode to the engine.
func execute(eng *amphibole.Engine, cfg Config, amp, liq *table.Table) (*amphibole.Output, error) {
	switch cfg.Mode {
	case ModePressure:
		return eng.Pressure(amp, cfg.EquationP, cfg.temperature())
	case ModeTemperature:
		return eng.Temperature(amp, cfg.EquationT, cfg.pressure())
	case ModePT:
		return eng.PressureTemperature(amp, cfg.EquationP, cfg.EquationT)
	case ModeLiqPressure:
		return eng.LiquidPressure(amp, liq, cfg.EquationP, cfg.temperature(), cfg.EqTests)
	case ModeLiqTemperature:
		return eng.LiquidTemperature(amp, liq, cfg.EquationT, cfg.pressure(), cfg.EqTests)
	case ModeLiqPT:
		return eng.LiquidPressureTemperature(amp, liq, cfg.EquationP, cfg.EquationT, cfg.EqTests)
	case ModeAllPressures:
		return eng.AllPressures(amp, cfg.temperature())
	case ModeMelt:
		return eng.MeltComposition(amp, cfg.MeltMethod, cfg.temperature())
	}

	return nil, fmt.Errorf("%q: %w", cfg.Mode, ErrUnknownMode)
}

func readTable(path string) (*table.Table, table.Labels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return table.ReadCSV(f)
}

// printList writes every registered ID grouped by kind.
func printList(w io.Writer, cat *equation.Catalog) {
	for _, k := range equation.Kinds() {
		fmt.Fprintf(w, "%s:\n", k)
		for _, id := range cat.Registry(k).IDs() {
			fmt.Fprintf(w, "  %s\n", id)
		}
		if k == equation.AmpOnlyPressure {
			fmt.Fprintf(w, "  %s\n", amphibole.PRidolfi2021)
		}
	}
}
