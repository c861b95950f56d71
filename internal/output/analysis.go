package output

import (
	"github.com/firecalc/fire-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Milestone marks the first year total wealth crosses a successive multiple of
// one million dollars.
type Milestone struct {
	Year     int             `json:"year"`
	Millions int64           `json:"millions"`
	Wealth   decimal.Decimal `json:"wealth"`
}

var million = decimal.NewFromInt(1_000_000)

// MillionMilestones scans the wealth series for crossings of each successive
// $1M multiple. Post-processing only: the series itself is never modified.
// Wealth dips below an already reported multiple do not repeat the milestone.
func MillionMilestones(wealth []domain.YearValue) []Milestone {
	if len(wealth) == 0 {
		return nil
	}
	last := wealth[0].Total.Div(million).IntPart()
	if last < 0 {
		last = 0
	}
	var milestones []Milestone
	for _, yv := range wealth {
		current := yv.Total.Div(million).IntPart()
		if current > last {
			milestones = append(milestones, Milestone{
				Year:     yv.Year,
				Millions: current,
				Wealth:   yv.Total,
			})
			last = current
		}
	}
	return milestones
}
