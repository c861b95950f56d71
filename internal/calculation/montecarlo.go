package calculation

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/firecalc/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// MonteCarloSimulator runs many independent stochastic trajectories and
// aggregates the outcomes. Each run draws a fresh AR(1) return sequence from a
// worker-owned random source, so runs never share mutable state and the whole
// pass is deterministic for a fixed seed.
type MonteCarloSimulator struct {
	Config         *domain.FIREConfig
	Model          ReturnModel
	NumSimulations int
	NumYears       int
	RetirementYear int
	Seed           int64
	Logger         Logger
}

// maxConcurrentRuns bounds the worker pool.
const maxConcurrentRuns = 10

// NewMonteCarloSimulator creates a Monte Carlo driver. A zero seed is replaced
// by the process seed provider.
func NewMonteCarloSimulator(config *domain.FIREConfig, model ReturnModel, numSimulations, numYears, retirementYear int, seed int64) *MonteCarloSimulator {
	if seed == 0 {
		seed = seedFunc()
	}
	return &MonteCarloSimulator{
		Config:         config,
		Model:          model,
		NumSimulations: numSimulations,
		NumYears:       numYears,
		RetirementYear: retirementYear,
		Seed:           seed,
		Logger:         NopLogger{},
	}
}

// Run executes the simulation pass and returns the aggregate summary.
func (mcs *MonteCarloSimulator) Run() (*domain.MonteCarloSummary, error) {
	if mcs.NumSimulations < 1 {
		return nil, fmt.Errorf("%w: num simulations must be at least 1, got %d", domain.ErrInvalidParameters, mcs.NumSimulations)
	}
	// Fail parameter problems before spinning up workers.
	sim := NewSimulator(mcs.Config)
	if _, err := sim.Simulate(mcs.NumYears, mcs.RetirementYear, nil); err != nil {
		return nil, err
	}

	outcomes := make([]domain.RunOutcome, mcs.NumSimulations)
	errs := make([]error, mcs.NumSimulations)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentRuns)

	for i := 0; i < mcs.NumSimulations; i++ {
		wg.Add(1)
		go func(runIndex int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			// Each worker owns its random stream; the offset keeps runs
			// independent while the whole pass stays seed-deterministic.
			rng := rand.New(rand.NewSource(mcs.Seed + int64(runIndex)))
			outcomes[runIndex], errs[runIndex] = mcs.runSingle(rng)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	summary := &domain.MonteCarloSummary{
		NumSimulations:     mcs.NumSimulations,
		NumYears:           mcs.NumYears,
		RetirementYear:     mcs.RetirementYear,
		Seed:               mcs.Seed,
		SuccessRate:        successRate(outcomes),
		MedianEndingWealth: endingWealthPercentiles(outcomes).P50,
		WealthPercentiles:  endingWealthPercentiles(outcomes),
		MedianBreakeven:    medianBreakevenYear(outcomes),
		Outcomes:           outcomes,
	}
	mcs.Logger.Infof("monte carlo: %d runs, success rate %s", mcs.NumSimulations, summary.SuccessRate.StringFixed(4))
	return summary, nil
}

// runSingle generates one return sequence and simulates one trajectory.
func (mcs *MonteCarloSimulator) runSingle(rng *rand.Rand) (domain.RunOutcome, error) {
	returns, err := mcs.Model.GenerateReturns(rng, mcs.NumYears, mcs.Config.ExpectedReturnRate)
	if err != nil {
		return domain.RunOutcome{}, err
	}
	sim := NewSimulator(mcs.Config)
	traj, err := sim.Simulate(mcs.NumYears, mcs.RetirementYear, returns)
	if err != nil {
		return domain.RunOutcome{}, err
	}
	return domain.RunOutcome{
		BreakevenYear: traj.BreakevenYear,
		EndingWealth:  traj.FinalWealth(),
		Success:       traj.BreakevenAchieved(),
	}, nil
}

// successRate is the fraction of runs that reached breakeven within the horizon.
func successRate(outcomes []domain.RunOutcome) decimal.Decimal {
	successCount := 0
	for _, o := range outcomes {
		if o.Success {
			successCount++
		}
	}
	return decimal.NewFromInt(int64(successCount)).Div(decimal.NewFromInt(int64(len(outcomes))))
}

func endingWealthPercentiles(outcomes []domain.RunOutcome) domain.PercentileRanges {
	balances := make([]decimal.Decimal, len(outcomes))
	for i, o := range outcomes {
		balances[i] = o.EndingWealth
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].LessThan(balances[j]) })

	n := len(balances)
	return domain.PercentileRanges{
		P10: balances[n/10],
		P25: balances[n/4],
		P50: balances[n/2],
		P75: balances[3*n/4],
		P90: balances[9*n/10],
	}
}

// medianBreakevenYear is the median over successful runs only; the sentinel is
// returned when no run reached breakeven.
func medianBreakevenYear(outcomes []domain.RunOutcome) int {
	var years []int
	for _, o := range outcomes {
		if o.Success {
			years = append(years, o.BreakevenYear)
		}
	}
	if len(years) == 0 {
		return domain.BreakevenNotAchieved
	}
	sort.Ints(years)
	return years[len(years)/2]
}
