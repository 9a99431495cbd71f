// Package dashboard turns an analytics payload into the summary cards and
// line chart dataset the dashboard frontend renders.
package dashboard

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/angelmondragon/pulse-analytics/internal/analytics"
)

const (
	chartTitle       = "Sales Over Time"
	seriesLabel      = "Sales"
	xAxisTitle       = "Date"
	yAxisTitle       = "Sales Value"
	seriesBorder     = "rgb(75,192,192)"
	seriesBackground = "rgba(75,192,192,0.2)"
	seriesTension    = 0.3
)

type Card struct {
	Title string  `json:"title" yaml:"title"`
	Value float64 `json:"value" yaml:"value"`
	// Display is the locale-formatted value shown on the card.
	Display string `json:"display" yaml:"display"`
}

type Dataset struct {
	Label           string    `json:"label" yaml:"label"`
	Data            []float64 `json:"data" yaml:"data"`
	BorderColor     string    `json:"borderColor" yaml:"borderColor"`
	BackgroundColor string    `json:"backgroundColor" yaml:"backgroundColor"`
	Tension         float64   `json:"tension" yaml:"tension"`
}

type Axis struct {
	Title       string `json:"title" yaml:"title"`
	BeginAtZero bool   `json:"beginAtZero,omitempty" yaml:"beginAtZero,omitempty"`
}

type Chart struct {
	Title    string    `json:"title" yaml:"title"`
	Labels   []string  `json:"labels" yaml:"labels"`
	Datasets []Dataset `json:"datasets" yaml:"datasets"`
	XAxis    Axis      `json:"xAxis" yaml:"xAxis"`
	YAxis    Axis      `json:"yAxis" yaml:"yAxis"`
}

type View struct {
	Cards   []Card `json:"cards" yaml:"cards"`
	Chart   Chart  `json:"chart" yaml:"chart"`
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Build maps p to a View. Chart points keep the payload order.
func Build(p analytics.Payload) View {
	printer := message.NewPrinter(language.English)

	labels := make([]string, 0, len(p.Sales))
	values := make([]float64, 0, len(p.Sales))
	for _, point := range p.Sales {
		labels = append(labels, point.Date)
		values = append(values, point.Value)
	}

	return View{
		Cards: []Card{
			{Title: "Total Revenue", Value: p.Revenue, Display: formatCurrency(printer, p.Revenue)},
			{Title: "Total Users", Value: p.Users, Display: formatCount(printer, p.Users)},
		},
		Chart: Chart{
			Title:  chartTitle,
			Labels: labels,
			Datasets: []Dataset{{
				Label:           seriesLabel,
				Data:            values,
				BorderColor:     seriesBorder,
				BackgroundColor: seriesBackground,
				Tension:         seriesTension,
			}},
			XAxis: Axis{Title: xAxisTitle},
			YAxis: Axis{Title: yAxisTitle, BeginAtZero: true},
		},
		Summary: p.Summary,
	}
}

// formatCurrency rounds to cents with decimal and leaves digit grouping to
// x/text, so totals beyond the int64 range still render their real magnitude.
func formatCurrency(printer *message.Printer, value float64) string {
	amount := decimal.NewFromFloat(value).Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	digits := 2
	if amount.IsInteger() {
		digits = 0
	}
	return sign + "$" + printer.Sprint(number.Decimal(amount.InexactFloat64(),
		number.MinFractionDigits(digits), number.MaxFractionDigits(digits)))
}

func formatCount(printer *message.Printer, value float64) string {
	rounded := decimal.NewFromFloat(value).Round(0)
	return printer.Sprint(number.Decimal(rounded.InexactFloat64(), number.MaxFractionDigits(0)))
}
