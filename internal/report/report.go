package report

import (
	"sort"
	"time"

	"wastetrack/internal/dto"
	"wastetrack/internal/model"
)

// Summary holds the aggregate statistics for one user's detections.
type Summary struct {
	TotalDetections   int
	TrashCounts       map[string]int
	AverageConfidence float64
	Dates             []time.Time
}

// Summarize computes per-type counts, the average confidence and the list of
// detection dates from a user's detections.
func Summarize(detections []model.Detection) Summary {
	summary := Summary{
		TrashCounts: make(map[string]int),
	}
	if len(detections) == 0 {
		return summary
	}

	var confidenceSum float64
	for _, det := range detections {
		summary.TrashCounts[det.TrashType]++
		confidenceSum += det.Confidence
		summary.Dates = append(summary.Dates, det.DetectionDate)
	}

	summary.TotalDetections = len(detections)
	summary.AverageConfidence = confidenceSum / float64(len(detections))
	return summary
}

// PerDay buckets detection dates into a day-indexed time series, ascending.
func PerDay(dates []time.Time) []dto.DayCount {
	if len(dates) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, date := range dates {
		counts[date.Format("2006-01-02")]++
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	series := make([]dto.DayCount, 0, len(days))
	for _, day := range days {
		series = append(series, dto.DayCount{Date: day, Count: counts[day]})
	}
	return series
}
