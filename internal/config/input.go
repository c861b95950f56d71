package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/firecalc/fire-calculator/internal/calculation"
	"github.com/firecalc/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Input is the on-disk configuration schema: the financial parameters plus the
// per-invocation simulation and Monte Carlo settings.
type Input struct {
	Config     domain.FIREConfig `yaml:"config" json:"config"`
	Simulation SimulationParams  `yaml:"simulation" json:"simulation"`
	MonteCarlo MonteCarloParams  `yaml:"monte_carlo" json:"monte_carlo"`
}

// SimulationParams are the per-run horizon settings.
type SimulationParams struct {
	Years          int `yaml:"years" json:"years"`
	RetirementYear int `yaml:"retirement_year" json:"retirement_year"`
}

// MonteCarloParams configure the stochastic return model and run count.
// Zero values fall back to defaults in ApplyDefaults.
type MonteCarloParams struct {
	NumSimulations int     `yaml:"num_simulations" json:"num_simulations"`
	Seed           int64   `yaml:"seed" json:"seed"`
	InitialReturn  float64 `yaml:"initial_return" json:"initial_return"`
	Phi            float64 `yaml:"phi" json:"phi"`
	Sigma          float64 `yaml:"sigma" json:"sigma"`
	MinReturn      float64 `yaml:"min_return" json:"min_return"`
}

// ReturnModel converts the parameters to a calculation.ReturnModel.
func (p MonteCarloParams) ReturnModel() calculation.ReturnModel {
	return calculation.ReturnModel{
		InitialReturn: p.InitialReturn,
		Phi:           p.Phi,
		Sigma:         p.Sigma,
		MinReturn:     p.MinReturn,
	}
}

// InputParser handles loading and saving of configuration files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file, or JSON when the file
// extension is .json. Defaults are applied before validation, so a file may
// omit the simulation and monte_carlo sections entirely.
func (ip *InputParser) LoadFromFile(filename string) (*Input, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input Input
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		if err := json.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	input.ApplyDefaults()
	if err := ip.ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &input, nil
}

// SaveToFile writes the configuration in the format implied by the extension.
func (ip *InputParser) SaveToFile(input *Input, filename string) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		data, err = json.MarshalIndent(input, "", "  ")
	} else {
		data, err = yaml.Marshal(input)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// ApplyDefaults fills unset horizon and Monte Carlo settings.
func (in *Input) ApplyDefaults() {
	if in.Simulation.Years == 0 {
		in.Simulation.Years = 30
	}
	if in.Simulation.RetirementYear == 0 {
		in.Simulation.RetirementYear = 15
	}
	if in.MonteCarlo.NumSimulations == 0 {
		in.MonteCarlo.NumSimulations = 500
	}
	model := calculation.DefaultReturnModel()
	if in.MonteCarlo.InitialReturn == 0 {
		in.MonteCarlo.InitialReturn = model.InitialReturn
	}
	if in.MonteCarlo.Phi == 0 {
		in.MonteCarlo.Phi = model.Phi
	}
	if in.MonteCarlo.Sigma == 0 {
		in.MonteCarlo.Sigma = model.Sigma
	}
	if in.MonteCarlo.MinReturn == 0 {
		in.MonteCarlo.MinReturn = model.MinReturn
	}
}

// ValidateInput validates the financial configuration and the run parameters.
func (ip *InputParser) ValidateInput(input *Input) error {
	if err := input.Config.Validate(); err != nil {
		return err
	}
	if input.Simulation.Years < 1 {
		return fmt.Errorf("simulation years must be at least 1, got %d", input.Simulation.Years)
	}
	if input.Simulation.RetirementYear < 1 || input.Simulation.RetirementYear > input.Simulation.Years {
		return fmt.Errorf("retirement year must be between 1 and %d, got %d", input.Simulation.Years, input.Simulation.RetirementYear)
	}
	if input.MonteCarlo.NumSimulations < 1 {
		return fmt.Errorf("num simulations must be at least 1, got %d", input.MonteCarlo.NumSimulations)
	}
	if input.MonteCarlo.Phi < 0 || input.MonteCarlo.Phi >= 1 {
		return fmt.Errorf("phi must be in [0, 1), got %g", input.MonteCarlo.Phi)
	}
	if input.MonteCarlo.Sigma < 0 {
		return fmt.Errorf("sigma cannot be negative, got %g", input.MonteCarlo.Sigma)
	}
	return nil
}

// ExampleInput creates the documented example configuration: a $80k wage
// household with $4k monthly expenses retiring at year 15 of a 30 year horizon.
func (ip *InputParser) ExampleInput() *Input {
	input := &Input{
		Config: domain.FIREConfig{
			YearlyWage:         decimal.NewFromInt(80000),
			NonWageIncome:      decimal.Zero,
			MonthlyExpenses:    decimal.NewFromInt(4000),
			InitialCapital:     decimal.NewFromInt(50000),
			ExpectedReturnRate: decimal.NewFromFloat(0.07),
			SafeWithdrawalRate: decimal.NewFromFloat(0.035),
			WageGrowthRate:     decimal.NewFromFloat(0.02),
		},
		Simulation: SimulationParams{
			Years:          30,
			RetirementYear: 15,
		},
	}
	input.ApplyDefaults()
	return input
}
