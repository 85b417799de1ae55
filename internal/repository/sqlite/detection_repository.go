package sqlite

import (
	"database/sql"
	"fmt"

	"wastetrack/internal/dto"
	"wastetrack/internal/model"
)

// DetectionRepository implements repository.DetectionRepository for SQLite.
type DetectionRepository struct {
	db *DB
}

// NewDetectionRepository creates a new SQLite detection repository.
func NewDetectionRepository(db *DB) *DetectionRepository {
	return &DetectionRepository{db: db}
}

// InsertBatch adds one row per detection in a single transaction so the batch
// is atomic: all rows visible or none. An empty batch performs no writes.
// Detections without a bounding box store NULL for all four box columns.
func (r *DetectionRepository) InsertBatch(userID int64, imagePath string, detections []dto.Detection) error {
	if len(detections) == 0 {
		return nil
	}

	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO detections (user_id, image_path, trash_type, confidence, bbox_x, bbox_y, bbox_width, bbox_height)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, det := range detections {
		var x, y, width, height interface{}
		if det.BBox != nil {
			x, y, width, height = det.BBox.X, det.BBox.Y, det.BBox.Width, det.BBox.Height
		}
		if _, err := stmt.Exec(userID, imagePath, det.TrashType, det.Confidence, x, y, width, height); err != nil {
			return fmt.Errorf("failed to insert detection: %w", err)
		}
	}

	return tx.Commit()
}

// GetByUser retrieves all detections for a user, newest first.
func (r *DetectionRepository) GetByUser(userID int64) ([]model.Detection, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, user_id, image_path, trash_type, confidence, detection_date, bbox_x, bbox_y, bbox_width, bbox_height
		FROM detections WHERE user_id = ?
		ORDER BY detection_date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query detections: %w", err)
	}
	defer rows.Close()

	var detections []model.Detection
	for rows.Next() {
		var det model.Detection
		var x, y, width, height sql.NullInt64
		err := rows.Scan(&det.ID, &det.UserID, &det.ImagePath, &det.TrashType, &det.Confidence, &det.DetectionDate, &x, &y, &width, &height)
		if err != nil {
			return nil, fmt.Errorf("failed to scan detection: %w", err)
		}

		if x.Valid && y.Valid && width.Valid && height.Valid {
			det.BBox = &model.BBox{
				X:      int(x.Int64),
				Y:      int(y.Int64),
				Width:  int(width.Int64),
				Height: int(height.Int64),
			}
		}

		detections = append(detections, det)
	}

	return detections, rows.Err()
}
