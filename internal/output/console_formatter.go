package output

import (
	"bytes"
	"fmt"

	"github.com/firecalc/fire-calculator/internal/domain"
	"github.com/firecalc/fire-calculator/pkg/money"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
	var buf bytes.Buffer
	traj := report.Trajectory

	fmt.Fprintln(&buf, "FIRE TRAJECTORY SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Horizon: %d years, retirement at year %d\n", report.NumYears, report.RetirementYear)
	fmt.Fprintf(&buf, "Yearly Expenses:     %s\n", money.Format(report.Config.YearlyExpenses()))
	fmt.Fprintf(&buf, "Expected Return:     %s\n", money.Percent(report.Config.ExpectedReturnRate))
	fmt.Fprintf(&buf, "Safe Withdrawal:     %s\n", money.Percent(report.Config.SafeWithdrawalRate))
	fmt.Fprintln(&buf)

	if traj.BreakevenAchieved() {
		fmt.Fprintf(&buf, "FIRE achieved in year %d\n", traj.BreakevenYear)
	} else {
		fmt.Fprintln(&buf, "FIRE not achieved within the simulated horizon")
	}
	fmt.Fprintf(&buf, "Final Wealth:         %s\n", money.Format(traj.FinalWealth()))
	fmt.Fprintf(&buf, "Final Passive Income: %s/year\n", money.Format(traj.FinalPassiveIncome()))

	if milestones := MillionMilestones(traj.Wealth); len(milestones) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "Million Dollar Milestones")
		for _, m := range milestones {
			fmt.Fprintf(&buf, "  $%dM at year %d (%s)\n", m.Millions, m.Year, money.Format(m.Wealth))
		}
	}

	if mc := report.MonteCarlo; mc != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "Monte Carlo")
		fmt.Fprintf(&buf, "  Simulations:    %d (seed %d)\n", mc.NumSimulations, mc.Seed)
		fmt.Fprintf(&buf, "  Success Rate:   %s\n", money.Percent(mc.SuccessRate))
		if mc.MedianBreakeven != domain.BreakevenNotAchieved {
			fmt.Fprintf(&buf, "  Median FIRE:    year %d\n", mc.MedianBreakeven)
		} else {
			fmt.Fprintln(&buf, "  Median FIRE:    not achieved")
		}
		fmt.Fprintf(&buf, "  Ending Wealth:  P10=%s P50=%s P90=%s\n",
			money.FormatWhole(mc.WealthPercentiles.P10),
			money.FormatWhole(mc.WealthPercentiles.P50),
			money.FormatWhole(mc.WealthPercentiles.P90),
		)
	}

	return buf.Bytes(), nil
}
