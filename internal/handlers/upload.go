package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"wastetrack/internal/auth"
	"wastetrack/internal/config"
	"wastetrack/internal/detect"
	"wastetrack/internal/dto"
	"wastetrack/internal/events"
	"wastetrack/internal/logger"
	"wastetrack/internal/media"
	"wastetrack/internal/repository"
)

// UploadHandler accepts an image or video upload, runs detection over it and
// persists the results for the logged-in user. The media kind is decided by
// file extension; unsupported extensions are rejected before any processing.
func UploadHandler(
	cfg *config.Config,
	processor *detect.Processor,
	video *detect.VideoProcessor,
	detections repository.DetectionRepository,
	publisher *events.Publisher,
	log *logger.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if processor == nil || video == nil {
			writeError(w, http.StatusServiceUnavailable, "Detection model is not available")
			return
		}

		userID, ok := auth.UserFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxUploadSize)
		if err := r.ParseMultipartForm(cfg.MaxUploadSize); err != nil {
			writeError(w, http.StatusBadRequest, "Upload too large or malformed")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "No file provided")
			return
		}
		defer file.Close()

		kind := media.Resolve(header.Filename)
		if kind == media.KindUnsupported {
			writeError(w, http.StatusUnsupportedMediaType,
				fmt.Sprintf("Unsupported file type: %s", filepath.Ext(header.Filename)))
			return
		}

		storedName := uuid.NewString() + "_" + filepath.Base(header.Filename)
		storedPath := filepath.Join(cfg.UploadDirectory, storedName)
		if err := saveUpload(file, storedPath); err != nil {
			log.Error("Failed to store upload %s: %v", header.Filename, err)
			writeError(w, http.StatusInternalServerError, "Failed to store upload")
			return
		}

		switch kind {
		case media.KindImage:
			handleImageUpload(w, userID, storedName, storedPath, processor, detections, publisher, log)
		case media.KindVideo:
			handleVideoUpload(w, cfg, userID, storedName, storedPath, video, detections, publisher, log)
		}
	}
}

func handleImageUpload(
	w http.ResponseWriter,
	userID int64,
	storedName, storedPath string,
	processor *detect.Processor,
	detections repository.DetectionRepository,
	publisher *events.Publisher,
	log *logger.Logger,
) {
	results, err := processor.DetectFile(storedPath)
	if err != nil {
		log.Error("Image detection failed for %s: %v", storedPath, err)
		writeError(w, http.StatusInternalServerError, "Image processing failed")
		return
	}

	imagePath := "/static/uploads/" + storedName
	if err := detections.InsertBatch(userID, imagePath, results); err != nil {
		log.Error("Failed to persist detections for %s: %v", imagePath, err)
		writeError(w, http.StatusInternalServerError, "Failed to save detections")
		return
	}
	publisher.PublishDetections(userID, imagePath, results)

	if results == nil {
		results = []dto.Detection{}
	}
	writeJSON(w, http.StatusOK, dto.UploadResponse{
		Success:    true,
		Message:    fmt.Sprintf("Detected %d items", len(results)),
		ImageURL:   imagePath,
		Detections: results,
	})
}

func handleVideoUpload(
	w http.ResponseWriter,
	cfg *config.Config,
	userID int64,
	storedName, storedPath string,
	video *detect.VideoProcessor,
	detections repository.DetectionRepository,
	publisher *events.Publisher,
	log *logger.Logger,
) {
	base := strings.TrimSuffix(storedName, filepath.Ext(storedName))
	outName := "processed_" + base + ".mp4"
	outPath := filepath.Join(cfg.ProcessedDirectory, outName)

	results, err := video.Process(storedPath, outPath)
	if err != nil {
		log.Error("Video processing failed for %s: %v", storedPath, err)
		writeError(w, http.StatusInternalServerError, "Video processing failed")
		return
	}

	videoPath := "/static/processed_videos/" + outName
	if err := detections.InsertBatch(userID, videoPath, results); err != nil {
		log.Error("Failed to persist detections for %s: %v", videoPath, err)
		writeError(w, http.StatusInternalServerError, "Failed to save detections")
		return
	}
	publisher.PublishDetections(userID, videoPath, results)

	if results == nil {
		results = []dto.Detection{}
	}
	writeJSON(w, http.StatusOK, dto.UploadResponse{
		Success:            true,
		Message:            fmt.Sprintf("Detected %d items across the video", len(results)),
		ProcessedVideoURL:  videoPath,
		ProcessedVideoType: "video/mp4",
		Detections:         results,
	})
}

func saveUpload(src io.Reader, dstPath string) error {
	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", dstPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write %s: %w", dstPath, err)
	}
	return nil
}
