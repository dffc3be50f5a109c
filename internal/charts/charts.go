// Package charts renders standalone HTML chart pages with go-echarts.
package charts

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// FieldTrend builds a line chart of one field's daily values plus the
// running month-to-date cumulative.
func FieldTrend(fieldName, month string, dates []string, values map[string]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fieldName, Subtitle: month}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	daily := make([]opts.LineData, len(dates))
	cumulative := make([]opts.LineData, len(dates))
	running := 0.0
	for i, d := range dates {
		v := values[d]
		running += v
		daily[i] = opts.LineData{Value: v}
		cumulative[i] = opts.LineData{Value: running}
	}

	line.SetXAxis(dates).
		AddSeries("daily", daily).
		AddSeries("month to date", cumulative)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

// RoomFill builds a bar chart of per-room fill rates for one month.
func RoomFill(month string, roomNames []string, rates []float64) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Entry fill rate", Subtitle: month}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	data := make([]opts.BarData, len(rates))
	for i, r := range rates {
		data[i] = opts.BarData{Value: r}
	}

	bar.SetXAxis(roomNames).AddSeries("fill rate", data)
	return bar
}
