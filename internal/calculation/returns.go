package calculation

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/firecalc/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ReturnModel parameterizes the AR(1) process used to generate plausible
// yearly real returns for Monte Carlo runs. The deviation of each year's
// return from the target decays by Phi and picks up fresh Gaussian noise.
type ReturnModel struct {
	// InitialReturn is the first year's return in multiplier form (1.06 = +6%).
	InitialReturn float64
	// Phi is the AR(1) coefficient; values near 1 give strongly serially
	// correlated returns.
	Phi float64
	// Sigma is the standard deviation of the yearly Gaussian noise.
	Sigma float64
	// MinReturn floors each generated return in rate form (-0.20 = -20%),
	// bounding catastrophic single-year losses without capping the upper tail.
	MinReturn float64
}

// DefaultReturnModel returns the standard model parameters.
func DefaultReturnModel() ReturnModel {
	return ReturnModel{
		InitialReturn: 1.06,
		Phi:           0.98,
		Sigma:         0.005,
		MinReturn:     -0.20,
	}
}

// GenerateReturns produces numYears serially-correlated yearly returns in rate
// form, centered on expectedReturnRate. The caller supplies the random source;
// the sequence is entirely determined by the source's state and the model
// parameters, so a seeded source gives reproducible output. Concurrent callers
// must each own their own source.
func (m ReturnModel) GenerateReturns(rng *rand.Rand, numYears int, expectedReturnRate decimal.Decimal) ([]decimal.Decimal, error) {
	if numYears < 1 {
		return nil, fmt.Errorf("%w: num years must be at least 1, got %d", domain.ErrInvalidParameters, numYears)
	}

	target := expectedReturnRate.InexactFloat64()

	// InitialReturn is a multiplier (1.06) while target is a rate (0.07);
	// the deviation is taken against the multiplier baseline 1+target so the
	// reconverted returns land back in rate units.
	deviation := m.InitialReturn - (1 + target)

	returns := make([]decimal.Decimal, numYears)
	for t := 0; t < numYears; t++ {
		if t > 0 {
			deviation = m.Phi*deviation + gaussian(rng)*m.Sigma
		}
		r := deviation + target
		if r < m.MinReturn {
			r = m.MinReturn
		}
		returns[t] = decimal.NewFromFloat(r)
	}

	return returns, nil
}

// gaussian draws a standard normal variate via the Box-Muller transform.
func gaussian(rng *rand.Rand) float64 {
	u1 := rng.Float64()
	u2 := rng.Float64()
	// Guard against log(0).
	for u1 == 0 {
		u1 = rng.Float64()
	}
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
