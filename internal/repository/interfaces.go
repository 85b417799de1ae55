package repository

import (
	"wastetrack/internal/dto"
	"wastetrack/internal/model"
)

// UserRepository defines the interface for user account operations.
type UserRepository interface {
	Insert(user *model.User) (int64, error)
	GetByID(id int64) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	GetByUsername(username string) (*model.User, error)

	// Delete removes a user; their detections go with them (cascade).
	Delete(id int64) error
}

// DetectionRepository defines the interface for detection persistence.
type DetectionRepository interface {
	// InsertBatch persists one row per detection inside a single transaction,
	// all tied to the same user and media reference. An empty list performs
	// no writes and is not an error.
	InsertBatch(userID int64, imagePath string, detections []dto.Detection) error

	// GetByUser returns the user's detections, newest first.
	GetByUser(userID int64) ([]model.Detection, error)
}
