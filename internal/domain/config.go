package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidConfiguration indicates a FIREConfig field violates a construction
// invariant. Wrapped by the specific validation error.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrInvalidParameters indicates invalid per-invocation simulation parameters
// (horizon, retirement year, custom returns length).
var ErrInvalidParameters = errors.New("invalid simulation parameters")

// FIREConfig holds the financial parameters for a single simulation run.
// All rates are fractional (0.07 = 7%); monetary values are net amounts.
// The config is immutable once validated: simulators read it, never write it.
type FIREConfig struct {
	// YearlyWage is gross recurring employment income, active only pre-retirement.
	YearlyWage decimal.Decimal `yaml:"yearly_wage" json:"yearly_wage"`

	// NonWageIncome persists through and after retirement (rent, pension, side gigs).
	NonWageIncome decimal.Decimal `yaml:"non_wage_income" json:"non_wage_income"`

	// MonthlyExpenses is average monthly spending; yearly expenses derive from it.
	MonthlyExpenses decimal.Decimal `yaml:"monthly_expenses" json:"monthly_expenses"`

	// InitialCapital is starting investable wealth.
	InitialCapital decimal.Decimal `yaml:"initial_capital" json:"initial_capital"`

	// ExpectedReturnRate is the assumed real annual return, used for every year
	// that has no custom override.
	ExpectedReturnRate decimal.Decimal `yaml:"expected_return_rate" json:"expected_return_rate"`

	// SafeWithdrawalRate times wealth defines passive income.
	SafeWithdrawalRate decimal.Decimal `yaml:"safe_withdrawal_rate" json:"safe_withdrawal_rate"`

	// WageGrowthRate is fractional annual wage growth while still employed.
	WageGrowthRate decimal.Decimal `yaml:"wage_growth_rate" json:"wage_growth_rate"`
}

// NewFIREConfig validates the fields and returns the configuration, or an error
// wrapping ErrInvalidConfiguration. No partial object is produced on failure.
func NewFIREConfig(yearlyWage, nonWageIncome, monthlyExpenses, initialCapital, expectedReturnRate, safeWithdrawalRate, wageGrowthRate decimal.Decimal) (*FIREConfig, error) {
	cfg := &FIREConfig{
		YearlyWage:         yearlyWage,
		NonWageIncome:      nonWageIncome,
		MonthlyExpenses:    monthlyExpenses,
		InitialCapital:     initialCapital,
		ExpectedReturnRate: expectedReturnRate,
		SafeWithdrawalRate: safeWithdrawalRate,
		WageGrowthRate:     wageGrowthRate,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the construction invariants.
func (c *FIREConfig) Validate() error {
	if c.ExpectedReturnRate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: expected return rate must be positive, got %s", ErrInvalidConfiguration, c.ExpectedReturnRate)
	}
	if c.SafeWithdrawalRate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: safe withdrawal rate must be positive, got %s", ErrInvalidConfiguration, c.SafeWithdrawalRate)
	}
	if c.YearlyWage.IsNegative() {
		return fmt.Errorf("%w: yearly wage cannot be negative", ErrInvalidConfiguration)
	}
	if c.MonthlyExpenses.IsNegative() {
		return fmt.Errorf("%w: monthly expenses cannot be negative", ErrInvalidConfiguration)
	}
	if c.NonWageIncome.IsNegative() {
		return fmt.Errorf("%w: non-wage income cannot be negative", ErrInvalidConfiguration)
	}
	if c.InitialCapital.IsNegative() {
		return fmt.Errorf("%w: initial capital cannot be negative", ErrInvalidConfiguration)
	}
	if c.WageGrowthRate.IsNegative() {
		return fmt.Errorf("%w: wage growth rate cannot be negative", ErrInvalidConfiguration)
	}
	return nil
}

// YearlyExpenses derives annual spending from monthly expenses.
func (c *FIREConfig) YearlyExpenses() decimal.Decimal {
	return c.MonthlyExpenses.Mul(decimal.NewFromInt(12))
}
