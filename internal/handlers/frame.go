package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"wastetrack/internal/auth"
	"wastetrack/internal/config"
	"wastetrack/internal/detect"
	"wastetrack/internal/dto"
	"wastetrack/internal/hub"
	"wastetrack/internal/logger"
	"wastetrack/internal/repository"
)

// livestreamPath marks detections that came from the live camera feed
// rather than an uploaded file.
const livestreamPath = "livestream"

// FrameHandler classifies a single camera frame posted by the browser.
// Results are returned to the caller and broadcast to connected viewers;
// they are only persisted when a live-persist threshold is configured.
func FrameHandler(
	cfg *config.Config,
	processor *detect.Processor,
	detections repository.DetectionRepository,
	viewers *hub.Hub,
	log *logger.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if processor == nil {
			writeError(w, http.StatusServiceUnavailable, "Detection model is not available")
			return
		}

		userID, ok := auth.UserFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxUploadSize)
		file, _, err := r.FormFile("frame")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, dto.FrameResponse{
				Success: false,
				Error:   "No frame provided",
				Results: []dto.Detection{},
			})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, dto.FrameResponse{
				Success: false,
				Error:   "Could not read frame",
				Results: []dto.Detection{},
			})
			return
		}

		results, err := processor.DetectEncoded(data)
		if err != nil {
			log.Warning("Live frame rejected: %v", err)
			writeJSON(w, http.StatusBadRequest, dto.FrameResponse{
				Success: false,
				Error:   "Could not decode frame",
				Results: []dto.Detection{},
			})
			return
		}

		if cfg.LivePersistThreshold > 0 {
			persistLiveDetections(cfg.LivePersistThreshold, userID, results, detections, log)
		}

		if viewers != nil && len(results) > 0 {
			if payload, err := json.Marshal(results); err == nil {
				viewers.Broadcast(payload)
			}
		}

		if results == nil {
			results = []dto.Detection{}
		}
		writeJSON(w, http.StatusOK, dto.FrameResponse{
			Success: true,
			Results: results,
		})
	}
}

func persistLiveDetections(threshold float64, userID int64, results []dto.Detection, detections repository.DetectionRepository, log *logger.Logger) {
	var confident []dto.Detection
	for _, det := range results {
		if det.Confidence >= threshold {
			confident = append(confident, det)
		}
	}
	if len(confident) == 0 {
		return
	}
	if err := detections.InsertBatch(userID, livestreamPath, confident); err != nil {
		log.Error("Failed to persist live detections: %v", err)
	}
}
