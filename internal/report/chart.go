package report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"wastetrack/internal/dto"
)

// TypePieChart renders the trash-type distribution as a PNG pie chart.
// Returns nil with no error when there is nothing to chart.
func TypePieChart(trashCounts map[string]int) ([]byte, error) {
	if len(trashCounts) == 0 {
		return nil, nil
	}

	type entry struct {
		label string
		count int
	}
	entries := make([]entry, 0, len(trashCounts))
	for label, count := range trashCounts {
		entries = append(entries, entry{label, count})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].label < entries[j].label
	})

	values := make([]chart.Value, 0, len(entries))
	for _, e := range entries {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", e.label, e.count),
			Value: float64(e.count),
		})
	}

	pie := chart.PieChart{
		Title:  "Distribution of Detected Trash Types",
		Width:  512,
		Height: 512,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie chart: %w", err)
	}
	return buf.Bytes(), nil
}

// TimeSeriesChart renders detections-per-day as a PNG line chart.
// The chart needs at least two days of data; otherwise nil is returned.
func TimeSeriesChart(perDay []dto.DayCount) ([]byte, error) {
	if len(perDay) < 2 {
		return nil, nil
	}

	xs := make([]time.Time, 0, len(perDay))
	ys := make([]float64, 0, len(perDay))
	for _, day := range perDay {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			return nil, fmt.Errorf("parse day %q: %w", day.Date, err)
		}
		xs = append(xs, date)
		ys = append(ys, float64(day.Count))
	}

	graph := chart.Chart{
		Title:  "Trash Detections Over Time",
		Width:  800,
		Height: 400,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Style: chart.Style{
					StrokeWidth: 2,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render time series chart: %w", err)
	}
	return buf.Bytes(), nil
}
