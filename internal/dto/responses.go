package dto

// UploadResponse is the JSON payload returned by the upload endpoint.
// Video uploads carry the processed output reference; image uploads carry
// the stored image URL.
type UploadResponse struct {
	Success            bool        `json:"success"`
	Message            string      `json:"message,omitempty"`
	ImageURL           string      `json:"image_url,omitempty"`
	ProcessedVideoURL  string      `json:"processed_video_url,omitempty"`
	ProcessedVideoType string      `json:"processed_video_type,omitempty"`
	Detections         []Detection `json:"detections"`
}

// FrameResponse is the JSON payload returned by the live-frame endpoint.
type FrameResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Results []Detection `json:"results"`
}

// ErrorResponse is the structured failure envelope shared by all endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ReportData aggregates a user's detections for the reports endpoint.
// Charts are base64-encoded PNGs, omitted when there is not enough data.
type ReportData struct {
	TotalDetections   int            `json:"total_detections"`
	TrashCounts       map[string]int `json:"trash_counts"`
	AverageConfidence float64        `json:"average_confidence"`
	DetectionsPerDay  []DayCount     `json:"detections_per_day"`
	PieChart          string         `json:"pie_chart,omitempty"`
	TimeSeriesChart   string         `json:"time_series_chart,omitempty"`
}
