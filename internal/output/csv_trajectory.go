package output

import (
	"bytes"
	"encoding/csv"

	"github.com/firecalc/fire-calculator/internal/domain"
)

// CSVTrajectoryExporter writes the wealth and passive-income series, one row
// per simulated year.
type CSVTrajectoryExporter struct{}

func (c CSVTrajectoryExporter) Name() string { return "csv" }

func (c CSVTrajectoryExporter) Format(report *domain.SimulationReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "TotalWealth", "PassiveIncome", "BreakevenReached"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	traj := report.Trajectory
	for i, yv := range traj.Wealth {
		reached := traj.BreakevenAchieved() && yv.Year >= traj.BreakevenYear
		row := []string{
			intToString(yv.Year),
			yv.Total.StringFixed(2),
			traj.PassiveIncome[i].Total.StringFixed(2),
			boolToString(reached),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
