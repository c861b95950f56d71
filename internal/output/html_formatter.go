package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/firecalc/fire-calculator/internal/domain"
	"github.com/firecalc/fire-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a self-contained chart report (Chart.js via CDN):
// the wealth trajectory, and passive income against the yearly-expenses
// threshold with the breakeven year marked.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  money.Format,
	"whole": money.FormatWhole,
	"pct":   money.Percent,
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.SimulationReport) ([]byte, error) {
	traj := report.Trajectory

	years := make([]int, len(traj.Wealth))
	wealth := make([]float64, len(traj.Wealth))
	income := make([]float64, len(traj.PassiveIncome))
	expenses := make([]float64, len(traj.Wealth))
	yearlyExpenses := report.Config.YearlyExpenses()
	for i, yv := range traj.Wealth {
		years[i] = yv.Year
		wealth[i] = yv.Total.InexactFloat64()
		income[i] = traj.PassiveIncome[i].Total.InexactFloat64()
		expenses[i] = yearlyExpenses.InexactFloat64()
	}

	data := struct {
		*domain.SimulationReport
		Years          []int
		WealthSeries   []float64
		IncomeSeries   []float64
		ExpensesSeries []float64
		YearlyExpenses decimal.Decimal
		Milestones     []Milestone
	}{
		SimulationReport: report,
		Years:            years,
		WealthSeries:     wealth,
		IncomeSeries:     income,
		ExpensesSeries:   expenses,
		YearlyExpenses:   yearlyExpenses,
		Milestones:       MillionMilestones(traj.Wealth),
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
