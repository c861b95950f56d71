package domain

import "github.com/shopspring/decimal"

// BreakevenNotAchieved is the sentinel BreakevenYear when passive income never
// covers expenses within the simulated horizon.
const BreakevenNotAchieved = -1

// YearValue is a single point of a yearly time series.
type YearValue struct {
	Year  int             `json:"year"`
	Total decimal.Decimal `json:"total"`
}

// Trajectory is the output of a single simulation run: two aligned series with
// exactly numYears entries each (year index 1..numYears ascending) plus the
// breakeven year. Created fresh per call and owned solely by the caller.
type Trajectory struct {
	Wealth        []YearValue `json:"wealth"`
	PassiveIncome []YearValue `json:"passive_income"`
	BreakevenYear int         `json:"breakeven_year"`
}

// BreakevenAchieved reports whether passive income covered expenses within the horizon.
func (t *Trajectory) BreakevenAchieved() bool {
	return t.BreakevenYear != BreakevenNotAchieved
}

// FinalWealth returns total wealth at the end of the horizon.
func (t *Trajectory) FinalWealth() decimal.Decimal {
	if len(t.Wealth) == 0 {
		return decimal.Zero
	}
	return t.Wealth[len(t.Wealth)-1].Total
}

// FinalPassiveIncome returns passive income at the end of the horizon.
func (t *Trajectory) FinalPassiveIncome() decimal.Decimal {
	if len(t.PassiveIncome) == 0 {
		return decimal.Zero
	}
	return t.PassiveIncome[len(t.PassiveIncome)-1].Total
}

// SimulationReport bundles everything the output formatters consume: the inputs
// of a run, its trajectory and, when a Monte Carlo pass was requested, the
// aggregate summary.
type SimulationReport struct {
	Config         FIREConfig         `json:"config"`
	NumYears       int                `json:"num_years"`
	RetirementYear int                `json:"retirement_year"`
	Trajectory     *Trajectory        `json:"trajectory"`
	MonteCarlo     *MonteCarloSummary `json:"monte_carlo,omitempty"`
}

// MonteCarloSummary aggregates many independent stochastic runs.
type MonteCarloSummary struct {
	NumSimulations     int              `json:"num_simulations"`
	NumYears           int              `json:"num_years"`
	RetirementYear     int              `json:"retirement_year"`
	Seed               int64            `json:"seed"`
	SuccessRate        decimal.Decimal  `json:"success_rate"`
	MedianEndingWealth decimal.Decimal  `json:"median_ending_wealth"`
	WealthPercentiles  PercentileRanges `json:"wealth_percentiles"`
	MedianBreakeven    int              `json:"median_breakeven_year"`
	Outcomes           []RunOutcome     `json:"outcomes,omitempty"`
}

// RunOutcome captures a single Monte Carlo run.
type RunOutcome struct {
	BreakevenYear int             `json:"breakeven_year"`
	EndingWealth  decimal.Decimal `json:"ending_wealth"`
	Success       bool            `json:"success"`
}

// PercentileRanges holds ending-wealth percentiles across runs.
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}
