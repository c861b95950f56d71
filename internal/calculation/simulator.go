package calculation

import (
	"fmt"

	"github.com/firecalc/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Simulator advances a single financial state year by year and reports the
// wealth and passive-income series plus the breakeven year. It holds no
// mutable state between calls: Simulate is a pure function of its inputs and
// is safe to call from concurrent goroutines.
type Simulator struct {
	Config *domain.FIREConfig
	Logger Logger
}

// NewSimulator creates a simulator for a validated configuration.
func NewSimulator(config *domain.FIREConfig) *Simulator {
	return &Simulator{Config: config, Logger: NopLogger{}}
}

// SetLogger sets the logger. A nil logger resets to no-op.
func (s *Simulator) SetLogger(l Logger) {
	if l == nil {
		s.Logger = NopLogger{}
		return
	}
	s.Logger = l
}

// Simulate runs the trajectory over numYears with retirement at retirementYear
// (1-based, inclusive). customReturns, when non-nil, overrides the return rate
// per year and must have exactly numYears entries; otherwise every year uses
// the configured expected return rate.
//
// The run is a single pass. Wage growth applies before the wealth update for
// each year preceding retirement; the retirement transition zeroes wage income
// exactly once at retirementYear and is idempotent from then on. Wealth is
// never clamped: a negative balance keeps compounding. Breakeven is a one-shot
// latch, decoupled from the retirement transition.
func (s *Simulator) Simulate(numYears, retirementYear int, customReturns []decimal.Decimal) (*domain.Trajectory, error) {
	if numYears < 1 {
		return nil, fmt.Errorf("%w: num years must be at least 1, got %d", domain.ErrInvalidParameters, numYears)
	}
	if retirementYear < 1 {
		return nil, fmt.Errorf("%w: retirement year must be at least 1, got %d", domain.ErrInvalidParameters, retirementYear)
	}
	if retirementYear > numYears {
		return nil, fmt.Errorf("%w: retirement year %d cannot be greater than simulation years %d", domain.ErrInvalidParameters, retirementYear, numYears)
	}
	if customReturns != nil && len(customReturns) != numYears {
		return nil, fmt.Errorf("%w: custom returns length %d does not match simulation years %d", domain.ErrInvalidParameters, len(customReturns), numYears)
	}

	yearlyExpenses := s.Config.YearlyExpenses()
	wealth := s.Config.InitialCapital
	wage := s.Config.YearlyWage
	income := s.Config.YearlyWage.Add(s.Config.NonWageIncome)

	traj := &domain.Trajectory{
		Wealth:        make([]domain.YearValue, 0, numYears),
		PassiveIncome: make([]domain.YearValue, 0, numYears),
		BreakevenYear: domain.BreakevenNotAchieved,
	}

	for year := 1; year <= numYears; year++ {
		returnRate := s.Config.ExpectedReturnRate
		if customReturns != nil {
			returnRate = customReturns[year-1]
		}

		if year < retirementYear {
			// Growth increment from the pre-growth wage; wage and income move
			// by the same absolute amount. Growth for the retirement year
			// itself is never applied.
			growth := wage.Mul(s.Config.WageGrowthRate)
			wage = wage.Add(growth)
			income = income.Add(growth)
		} else {
			// One-way transition: reapplying is a no-op once wage is zero.
			income = s.Config.NonWageIncome
			wage = decimal.Zero
		}

		wealth = wealth.Add(wealth.Mul(returnRate)).Add(income).Sub(yearlyExpenses)
		passiveIncome := wealth.Mul(s.Config.SafeWithdrawalRate)

		traj.Wealth = append(traj.Wealth, domain.YearValue{Year: year, Total: wealth})
		traj.PassiveIncome = append(traj.PassiveIncome, domain.YearValue{Year: year, Total: passiveIncome})

		s.Logger.Debugf("year %d: rate=%s wealth=%s passive=%s", year, returnRate, wealth.StringFixed(2), passiveIncome.StringFixed(2))

		if traj.BreakevenYear == domain.BreakevenNotAchieved &&
			passiveIncome.Add(s.Config.NonWageIncome).GreaterThanOrEqual(yearlyExpenses) {
			traj.BreakevenYear = year
			s.Logger.Infof("breakeven reached at year %d", year)
		}
	}

	return traj, nil
}
