package calculation

import (
	"errors"
	"testing"

	"github.com/firecalc/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exampleConfig is the documented household: $80k wage, $4k/month expenses,
// $50k starting capital, 7% real return, 3.5% withdrawal, 2% wage growth.
func exampleConfig() *domain.FIREConfig {
	return &domain.FIREConfig{
		YearlyWage:         decimal.NewFromInt(80000),
		NonWageIncome:      decimal.Zero,
		MonthlyExpenses:    decimal.NewFromInt(4000),
		InitialCapital:     decimal.NewFromInt(50000),
		ExpectedReturnRate: decimal.NewFromFloat(0.07),
		SafeWithdrawalRate: decimal.NewFromFloat(0.035),
		WageGrowthRate:     decimal.NewFromFloat(0.02),
	}
}

func TestSimulate_SeriesLengthAndOrdering(t *testing.T) {
	sim := NewSimulator(exampleConfig())
	for _, horizon := range []int{1, 5, 30, 50} {
		traj, err := sim.Simulate(horizon, 1, nil)
		require.NoError(t, err)
		require.Len(t, traj.Wealth, horizon)
		require.Len(t, traj.PassiveIncome, horizon)
		for i := 0; i < horizon; i++ {
			assert.Equal(t, i+1, traj.Wealth[i].Year)
			assert.Equal(t, i+1, traj.PassiveIncome[i].Year)
		}
	}
}

func TestSimulate_CanonicalExample(t *testing.T) {
	sim := NewSimulator(exampleConfig())
	traj, err := sim.Simulate(30, 15, nil)
	require.NoError(t, err)

	// Year 1: wage growth applies before the wealth update, so income is
	// 80000 + 1600 and wealth = 50000 + 50000*0.07 + 81600 - 48000.
	assert.True(t, traj.Wealth[0].Total.Equal(decimal.NewFromInt(87100)),
		"year 1 wealth = %s", traj.Wealth[0].Total)
	assert.True(t, traj.PassiveIncome[0].Total.Equal(decimal.NewFromFloat(3048.5)),
		"year 1 passive income = %s", traj.PassiveIncome[0].Total)

	// Year 2: wage grows to 83232, wealth = 87100*1.07 + 83232 - 48000.
	assert.True(t, traj.Wealth[1].Total.Equal(decimal.NewFromInt(128429)),
		"year 2 wealth = %s", traj.Wealth[1].Total)

	assert.Equal(t, 22, traj.BreakevenYear)
	assert.InDelta(t, 1912537.288230, traj.FinalWealth().InexactFloat64(), 0.01)
	assert.InDelta(t, 66938.805088, traj.FinalPassiveIncome().InexactFloat64(), 0.01)
}

func TestSimulate_ZeroWageGrowthCrossCheck(t *testing.T) {
	cfg := exampleConfig()
	cfg.WageGrowthRate = decimal.Zero
	sim := NewSimulator(cfg)
	traj, err := sim.Simulate(30, 15, nil)
	require.NoError(t, err)

	// 50000 + 50000*0.07 + 80000 - 48000 = 85500; passive 85500*0.035 = 2992.50.
	assert.True(t, traj.Wealth[0].Total.Equal(decimal.NewFromInt(85500)))
	assert.True(t, traj.PassiveIncome[0].Total.Equal(decimal.NewFromFloat(2992.5)))
}

func TestSimulate_RetirementIdempotence(t *testing.T) {
	cfg := &domain.FIREConfig{
		YearlyWage:         decimal.NewFromInt(60000),
		NonWageIncome:      decimal.NewFromInt(10000),
		MonthlyExpenses:    decimal.NewFromInt(3000),
		InitialCapital:     decimal.NewFromInt(100000),
		ExpectedReturnRate: decimal.NewFromFloat(0.05),
		SafeWithdrawalRate: decimal.NewFromFloat(0.04),
		WageGrowthRate:     decimal.NewFromFloat(0.03),
	}
	sim := NewSimulator(cfg)
	traj, err := sim.Simulate(12, 5, nil)
	require.NoError(t, err)

	// From the retirement year on, non-wage income is the sole income term:
	// wealth[y] = wealth[y-1]*(1+r) + nonWage - expenses, with no wage residue.
	one := decimal.NewFromInt(1)
	for y := 5; y <= 12; y++ {
		prev := traj.Wealth[y-2].Total
		want := prev.Mul(one.Add(cfg.ExpectedReturnRate)).Add(cfg.NonWageIncome).Sub(cfg.YearlyExpenses())
		assert.True(t, traj.Wealth[y-1].Total.Equal(want), "year %d: got %s want %s", y, traj.Wealth[y-1].Total, want)
	}
	assert.InDelta(t, 176609.014725, traj.FinalWealth().InexactFloat64(), 0.01)
}

func TestSimulate_RetirementAtYearOne(t *testing.T) {
	sim := NewSimulator(exampleConfig())
	traj, err := sim.Simulate(10, 1, nil)
	require.NoError(t, err)

	// No wage income ever: year 1 wealth = 50000 + 3500 + 0 - 48000.
	assert.True(t, traj.Wealth[0].Total.Equal(decimal.NewFromInt(5500)))
	// Negative wealth is not clamped and keeps compounding.
	assert.True(t, traj.Wealth[1].Total.Equal(decimal.NewFromInt(-42115)))
	assert.True(t, traj.Wealth[2].Total.Equal(decimal.NewFromFloat(-93063.05)))
	assert.Equal(t, domain.BreakevenNotAchieved, traj.BreakevenYear)
}

func TestSimulate_RetirementAtFinalYear(t *testing.T) {
	cfg := exampleConfig()
	sim := NewSimulator(cfg)
	traj, err := sim.Simulate(5, 5, nil)
	require.NoError(t, err)

	// Wage growth applies in years 1..4; the transition fires exactly at year 5.
	// Reproduce the recurrence independently.
	one := decimal.NewFromInt(1)
	wealth := cfg.InitialCapital
	wage := cfg.YearlyWage
	income := cfg.YearlyWage
	for y := 1; y <= 4; y++ {
		growth := wage.Mul(cfg.WageGrowthRate)
		wage = wage.Add(growth)
		income = income.Add(growth)
		wealth = wealth.Mul(one.Add(cfg.ExpectedReturnRate)).Add(income).Sub(cfg.YearlyExpenses())
		require.True(t, traj.Wealth[y-1].Total.Equal(wealth), "year %d", y)
	}
	final := wealth.Mul(one.Add(cfg.ExpectedReturnRate)).Sub(cfg.YearlyExpenses())
	assert.True(t, traj.Wealth[4].Total.Equal(final), "final year: got %s want %s", traj.Wealth[4].Total, final)
}

func TestSimulate_BreakevenLatchMonotonicity(t *testing.T) {
	cfg := &domain.FIREConfig{
		YearlyWage:         decimal.Zero,
		NonWageIncome:      decimal.Zero,
		MonthlyExpenses:    decimal.NewFromInt(1000),
		InitialCapital:     decimal.NewFromInt(1000000),
		ExpectedReturnRate: decimal.NewFromFloat(0.07),
		SafeWithdrawalRate: decimal.NewFromFloat(0.04),
		WageGrowthRate:     decimal.Zero,
	}
	// Year 1 comfortably clears the threshold, then the portfolio collapses.
	returns := []decimal.Decimal{
		decimal.NewFromFloat(0.5),
		decimal.NewFromFloat(-0.95),
		decimal.NewFromFloat(-0.95),
		decimal.NewFromFloat(-0.95),
	}
	sim := NewSimulator(cfg)
	traj, err := sim.Simulate(4, 1, returns)
	require.NoError(t, err)

	require.Equal(t, 1, traj.BreakevenYear)
	// Passive income drops below expenses later, but the latch never resets.
	last := traj.PassiveIncome[3].Total
	assert.True(t, last.LessThan(cfg.YearlyExpenses()), "expected final passive income below expenses, got %s", last)
}

func TestSimulate_CustomReturnsOverride(t *testing.T) {
	sim := NewSimulator(exampleConfig())
	baseline, err := sim.Simulate(30, 15, nil)
	require.NoError(t, err)

	zeros := make([]decimal.Decimal, 30)
	flat, err := sim.Simulate(30, 15, zeros)
	require.NoError(t, err)

	for i := range flat.Wealth {
		assert.True(t, flat.Wealth[i].Total.LessThan(baseline.Wealth[i].Total),
			"year %d: zero-return wealth %s should trail default %s", i+1, flat.Wealth[i].Total, baseline.Wealth[i].Total)
	}
	assert.InDelta(t, -86526.646703, flat.FinalWealth().InexactFloat64(), 0.01)
	assert.Equal(t, domain.BreakevenNotAchieved, flat.BreakevenYear)
}

func TestSimulate_InvalidParameters(t *testing.T) {
	sim := NewSimulator(exampleConfig())
	tests := []struct {
		name           string
		numYears       int
		retirementYear int
		returns        []decimal.Decimal
	}{
		{"retirement beyond horizon", 10, 11, nil},
		{"zero retirement year", 10, 0, nil},
		{"negative retirement year", 10, -3, nil},
		{"zero horizon", 0, 1, nil},
		{"custom returns too short", 10, 5, make([]decimal.Decimal, 9)},
		{"custom returns too long", 10, 5, make([]decimal.Decimal, 11)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			traj, err := sim.Simulate(tc.numYears, tc.retirementYear, tc.returns)
			require.Error(t, err)
			assert.Nil(t, traj)
			assert.True(t, errors.Is(err, domain.ErrInvalidParameters), "expected ErrInvalidParameters, got %v", err)
		})
	}
}

func TestSimulate_IndependentRuns(t *testing.T) {
	// Two calls on the same simulator must not share state.
	sim := NewSimulator(exampleConfig())
	first, err := sim.Simulate(20, 10, nil)
	require.NoError(t, err)
	second, err := sim.Simulate(20, 10, nil)
	require.NoError(t, err)

	for i := range first.Wealth {
		assert.True(t, first.Wealth[i].Total.Equal(second.Wealth[i].Total))
	}
	assert.Equal(t, first.BreakevenYear, second.BreakevenYear)
}
