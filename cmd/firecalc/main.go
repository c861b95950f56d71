package main

import (
	"fmt"
	"log"
	"os"

	"github.com/firecalc/fire-calculator/internal/calculation"
	"github.com/firecalc/fire-calculator/internal/config"
	"github.com/firecalc/fire-calculator/internal/domain"
	"github.com/firecalc/fire-calculator/internal/output"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

// stderrLogger adapts the standard log package to the calculation.Logger interface.
type stderrLogger struct{ l *log.Logger }

func newStderrLogger() stderrLogger {
	return stderrLogger{l: log.New(os.Stderr, "firecalc: ", log.LstdFlags)}
}

func (s stderrLogger) Debugf(format string, args ...any) { s.l.Printf("DEBUG "+format, args...) }
func (s stderrLogger) Infof(format string, args ...any)  { s.l.Printf("INFO "+format, args...) }
func (s stderrLogger) Warnf(format string, args ...any)  { s.l.Printf("WARN "+format, args...) }
func (s stderrLogger) Errorf(format string, args ...any) { s.l.Printf("ERROR "+format, args...) }

func main() {
	root := &cobra.Command{
		Use:   "firecalc",
		Short: "FIRE trajectory calculator",
		Long:  "Projects year-by-year wealth and passive income toward financial independence, with deterministic and Monte Carlo simulation.",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file (YAML or JSON)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log per-year simulation detail to stderr")

	root.AddCommand(newSimulateCmd(), newMonteCarloCmd(), newInitCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadInput(cmd *cobra.Command) (*config.Input, error) {
	parser := config.NewInputParser()
	input, err := parser.LoadFromFile(configPath)
	if err != nil {
		return nil, err
	}
	if years, _ := cmd.Flags().GetInt("years"); years > 0 {
		input.Simulation.Years = years
	}
	if retire, _ := cmd.Flags().GetInt("retire"); retire > 0 {
		input.Simulation.RetirementYear = retire
	}
	if err := parser.ValidateInput(input); err != nil {
		return nil, err
	}
	return input, nil
}

func writeReport(cmd *cobra.Command, report *domain.SimulationReport) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")

	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("%w: %q, try one of: %v", output.ErrUnsupportedFormat, format, output.AvailableFormatterNames())
	}
	if outPath != "" {
		if err := output.WriteTo(f, report, outPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
		return nil
	}
	if f.Name() == "console" {
		data, err := f.Format(report)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	name, err := output.WriteFormatted(f, report, output.FileExtension(format))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", name)
	return nil
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a deterministic FIRE trajectory",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := loadInput(cmd)
			if err != nil {
				return err
			}

			sim := calculation.NewSimulator(&input.Config)
			if verbose {
				sim.SetLogger(newStderrLogger())
			}
			traj, err := sim.Simulate(input.Simulation.Years, input.Simulation.RetirementYear, nil)
			if err != nil {
				return err
			}

			return writeReport(cmd, &domain.SimulationReport{
				Config:         input.Config,
				NumYears:       input.Simulation.Years,
				RetirementYear: input.Simulation.RetirementYear,
				Trajectory:     traj,
			})
		},
	}
	cmd.Flags().Int("years", 0, "override simulation horizon in years")
	cmd.Flags().Int("retire", 0, "override retirement year (1-based)")
	cmd.Flags().String("format", "console", "output format: console, csv, json, html")
	cmd.Flags().StringP("output", "o", "", "write output to this path instead of a timestamped file")
	return cmd
}

func newMonteCarloCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "Run Monte Carlo sensitivity analysis with AR(1) stochastic returns",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := loadInput(cmd)
			if err != nil {
				return err
			}
			if sims, _ := cmd.Flags().GetInt("sims"); sims > 0 {
				input.MonteCarlo.NumSimulations = sims
			}
			if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
				input.MonteCarlo.Seed = seed
			}

			mcs := calculation.NewMonteCarloSimulator(
				&input.Config,
				input.MonteCarlo.ReturnModel(),
				input.MonteCarlo.NumSimulations,
				input.Simulation.Years,
				input.Simulation.RetirementYear,
				input.MonteCarlo.Seed,
			)
			if verbose {
				mcs.Logger = newStderrLogger()
			}
			summary, err := mcs.Run()
			if err != nil {
				return err
			}

			// The deterministic trajectory anchors the report; the Monte Carlo
			// block carries the dispersion around it.
			sim := calculation.NewSimulator(&input.Config)
			traj, err := sim.Simulate(input.Simulation.Years, input.Simulation.RetirementYear, nil)
			if err != nil {
				return err
			}

			return writeReport(cmd, &domain.SimulationReport{
				Config:         input.Config,
				NumYears:       input.Simulation.Years,
				RetirementYear: input.Simulation.RetirementYear,
				Trajectory:     traj,
				MonteCarlo:     summary,
			})
		},
	}
	cmd.Flags().Int("years", 0, "override simulation horizon in years")
	cmd.Flags().Int("retire", 0, "override retirement year (1-based)")
	cmd.Flags().Int("sims", 0, "override number of Monte Carlo runs")
	cmd.Flags().Int64("seed", 0, "random seed (0 = time-based)")
	cmd.Flags().String("format", "console", "output format: console, csv, json, html")
	cmd.Flags().StringP("output", "o", "", "write output to this path instead of a timestamped file")
	return cmd
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write an example configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("refusing to overwrite existing %s", configPath)
			}
			if err := parser.SaveToFile(parser.ExampleInput(), configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
			return nil
		},
	}
}
