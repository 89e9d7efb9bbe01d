// Package report renders balance reports.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

// renderBalanceChart renders a PNG timeline from reconciled monthly
// balances. Two series: reconciled balance (blue solid) and opening balance
// (gray dashed). Returns raw PNG bytes.
func renderBalanceChart(accountName string, balances []*models.AccountBalance) ([]byte, error) {
	if len(balances) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 months of balance history, got %d", models.ErrInvalidInput, len(balances))
	}

	xValues := make([]time.Time, len(balances))
	balanceY := make([]float64, len(balances))
	openingY := make([]float64, len(balances))

	for i, b := range balances {
		xValues[i] = time.Date(b.Year, time.Month(b.Month), 1, 0, 0, 0, 0, time.UTC)
		balanceY[i] = float64(b.BalanceCents) / 100
		openingY[i] = float64(b.OpeningCents) / 100
	}

	balanceSeries := chart.TimeSeries{
		Name: "Balance",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: balanceY,
	}

	openingSeries := chart.TimeSeries{
		Name: "Opening",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: openingY,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s Balance", accountName),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			balanceSeries,
			openingSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
