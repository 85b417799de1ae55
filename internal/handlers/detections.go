package handlers

import (
	"net/http"

	"wastetrack/internal/auth"
	"wastetrack/internal/logger"
	"wastetrack/internal/model"
	"wastetrack/internal/repository"
)

// ListDetectionsHandler returns the logged-in user's detection history,
// newest first.
func ListDetectionsHandler(detections repository.DetectionRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		records, err := detections.GetByUser(userID)
		if err != nil {
			log.Error("Failed to list detections for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Failed to load detections")
			return
		}

		if records == nil {
			records = []model.Detection{}
		}
		writeJSON(w, http.StatusOK, records)
	}
}
