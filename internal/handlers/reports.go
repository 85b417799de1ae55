package handlers

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"wastetrack/internal/auth"
	"wastetrack/internal/dto"
	"wastetrack/internal/logger"
	"wastetrack/internal/report"
	"wastetrack/internal/repository"
)

// ReportsHandler aggregates the user's detection history into counts,
// averages and rendered charts.
func ReportsHandler(detections repository.DetectionRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		records, err := detections.GetByUser(userID)
		if err != nil {
			log.Error("Failed to load detections for report, user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Failed to build report")
			return
		}

		summary := report.Summarize(records)
		perDay := report.PerDay(summary.Dates)

		data := dto.ReportData{
			TotalDetections:   summary.TotalDetections,
			TrashCounts:       summary.TrashCounts,
			AverageConfidence: summary.AverageConfidence,
			DetectionsPerDay:  perDay,
		}
		if perDay == nil {
			data.DetectionsPerDay = []dto.DayCount{}
		}

		if pie, err := report.TypePieChart(summary.TrashCounts); err != nil {
			log.Warning("Pie chart rendering failed for user %d: %v", userID, err)
		} else if pie != nil {
			data.PieChart = base64.StdEncoding.EncodeToString(pie)
		}

		if series, err := report.TimeSeriesChart(perDay); err != nil {
			log.Warning("Time series chart rendering failed for user %d: %v", userID, err)
		} else if series != nil {
			data.TimeSeriesChart = base64.StdEncoding.EncodeToString(series)
		}

		writeJSON(w, http.StatusOK, data)
	}
}

// DownloadReportHandler streams the user's detections as an xlsx workbook.
func DownloadReportHandler(detections repository.DetectionRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		records, err := detections.GetByUser(userID)
		if err != nil {
			log.Error("Failed to load detections for export, user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Failed to build report")
			return
		}

		buf, err := report.Excel(records)
		if err != nil {
			log.Error("Excel export failed for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Failed to build report")
			return
		}

		filename := fmt.Sprintf("trash_detection_report_%s.xlsx", time.Now().Format("20060102_150405"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Write(buf.Bytes())
	}
}
