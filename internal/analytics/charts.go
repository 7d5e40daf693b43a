package analytics

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

// PieChart renders the given banks as shares of their summed cheque
// amount.
func PieChart(banks []BankTotal) ([]byte, error) {
	if len(banks) == 0 {
		return nil, fmt.Errorf("no data to chart")
	}

	values := make([]chart.Value, len(banks))
	for i, b := range banks {
		values[i] = chart.Value{Value: b.Total, Label: b.Bank}
	}

	pie := chart.PieChart{
		Title:  "Top Banks by Cheque Amount",
		Width:  800,
		Height: 800,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering pie chart: %w", err)
	}
	return buf.Bytes(), nil
}

// BarChart renders the given cheques as bars labeled by payee.
func BarChart(cheques []ChequeAmount) ([]byte, error) {
	if len(cheques) == 0 {
		return nil, fmt.Errorf("no data to chart")
	}

	bars := make([]chart.Value, len(cheques))
	for i, c := range cheques {
		label := c.Payee
		if label == "" {
			label = "(unknown)"
		}
		bars[i] = chart.Value{Value: c.Amount, Label: label}
	}

	bar := chart.BarChart{
		Title:    "Highest Cheque Amounts by Payee",
		Width:    800,
		Height:   600,
		BarWidth: 80,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := bar.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

// ScatterChart plots every cheque's amount against its bank. Banks are
// placed on the x axis in order of first appearance.
func ScatterChart(view *View) ([]byte, error) {
	if view.NoData || len(view.Records) == 0 {
		return nil, fmt.Errorf("no data to chart")
	}

	bankIndex := make(map[string]int)
	var ticks []chart.Tick
	xs := make([]float64, len(view.Records))
	ys := make([]float64, len(view.Records))
	minY, maxY := view.Amounts[0], view.Amounts[0]
	for i, rec := range view.Records {
		idx, ok := bankIndex[rec.BankName]
		if !ok {
			idx = len(bankIndex)
			bankIndex[rec.BankName] = idx
			ticks = append(ticks, chart.Tick{Value: float64(idx), Label: rec.BankName})
		}
		xs[i] = float64(idx)
		ys[i] = view.Amounts[i]
		if ys[i] < minY {
			minY = ys[i]
		}
		if ys[i] > maxY {
			maxY = ys[i]
		}
	}

	// Degenerate ranges make the renderer bail; pad them out.
	if minY == maxY {
		minY, maxY = minY-1, maxY+1
	}

	graph := chart.Chart{
		Title:  "Cheque Amount vs Bank",
		Width:  800,
		Height: 600,
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(bankIndex)) - 0.5},
		},
		YAxis: chart.YAxis{
			Name:  "Amount",
			Range: &chart.ContinuousRange{Min: minY, Max: maxY},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    5,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering scatter chart: %w", err)
	}
	return buf.Bytes(), nil
}
