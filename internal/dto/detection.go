package dto

import "wastetrack/internal/model"

// Detection is a normalized candidate produced for a single frame, before it
// is persisted. BBox is nil when the oracle produced no usable box.
type Detection struct {
	TrashType  string      `json:"trash_type"`
	Confidence float64     `json:"confidence"`
	BBox       *model.BBox `json:"bbox,omitempty"`
}

// DayCount is one point of the detections-per-day time series.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
