package output

import (
	"encoding/json"

	"github.com/firecalc/fire-calculator/internal/domain"
)

// JSONFormatter serializes the simulation report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
	out := struct {
		*domain.SimulationReport
		Milestones []Milestone `json:"milestones,omitempty"`
	}{
		SimulationReport: report,
		Milestones:       MillionMilestones(report.Trajectory.Wealth),
	}
	return json.MarshalIndent(out, "", "  ")
}
