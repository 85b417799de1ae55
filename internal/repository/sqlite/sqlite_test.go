package sqlite_test

import (
	"os"
	"path/filepath"
	"testing"

	"wastetrack/internal/dto"
	"wastetrack/internal/model"
	"wastetrack/internal/repository/sqlite"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func insertTestUser(t *testing.T, db *sqlite.DB, username, email string) int64 {
	t.Helper()

	users := sqlite.NewUserRepository(db)
	id, err := users.Insert(&model.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$10$fakehashfortestingpurposesonly",
	})
	if err != nil {
		t.Fatalf("Failed to insert user: %v", err)
	}
	return id
}

func TestDatabaseCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file should exist")
	}
}

func TestUserInsertAndLookup(t *testing.T) {
	db := setupTestDB(t)
	users := sqlite.NewUserRepository(db)

	id := insertTestUser(t, db, "marina", "marina@example.com")
	if id <= 0 {
		t.Fatalf("Expected positive user ID, got %d", id)
	}

	byName, err := users.GetByUsername("marina")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if byName == nil || byName.ID != id {
		t.Fatalf("GetByUsername returned %+v, want ID %d", byName, id)
	}

	byEmail, err := users.GetByEmail("marina@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if byEmail == nil || byEmail.Username != "marina" {
		t.Fatalf("GetByEmail returned %+v", byEmail)
	}
}

func TestUserLookupMissingReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	users := sqlite.NewUserRepository(db)

	user, err := users.GetByUsername("nobody")
	if err != nil {
		t.Fatalf("Lookup of missing user must not error: %v", err)
	}
	if user != nil {
		t.Fatalf("Expected nil for missing user, got %+v", user)
	}
}

func TestUserDuplicateUsernameRejected(t *testing.T) {
	db := setupTestDB(t)
	users := sqlite.NewUserRepository(db)

	insertTestUser(t, db, "marina", "marina@example.com")

	_, err := users.Insert(&model.User{
		Username:     "marina",
		Email:        "other@example.com",
		PasswordHash: "hash",
	})
	if err == nil {
		t.Fatal("Expected unique constraint violation for duplicate username")
	}
}

func TestDetectionInsertBatchAndGetByUser(t *testing.T) {
	db := setupTestDB(t)
	detections := sqlite.NewDetectionRepository(db)
	userID := insertTestUser(t, db, "marina", "marina@example.com")

	batch := []dto.Detection{
		{TrashType: "Plastic Bottle", Confidence: 0.92, BBox: &model.BBox{X: 10, Y: 20, Width: 30, Height: 40}},
		{TrashType: "Fishing Net", Confidence: 0.41},
	}
	if err := detections.InsertBatch(userID, "/static/uploads/beach.jpg", batch); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	records, err := detections.GetByUser(userID)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 detections, got %d", len(records))
	}

	for _, record := range records {
		if record.UserID != userID {
			t.Errorf("Detection %d has user %d, want %d", record.ID, record.UserID, userID)
		}
		if record.ImagePath != "/static/uploads/beach.jpg" {
			t.Errorf("Detection %d has image path %q", record.ID, record.ImagePath)
		}
		switch record.TrashType {
		case "Plastic Bottle":
			if record.BBox == nil {
				t.Error("Plastic Bottle detection lost its bbox")
			} else if record.BBox.X != 10 || record.BBox.Y != 20 || record.BBox.Width != 30 || record.BBox.Height != 40 {
				t.Errorf("BBox roundtrip mismatch: %+v", record.BBox)
			}
			if record.Confidence != 0.92 {
				t.Errorf("Confidence roundtrip mismatch: %v", record.Confidence)
			}
		case "Fishing Net":
			if record.BBox != nil {
				t.Errorf("Fishing Net detection gained a bbox: %+v", record.BBox)
			}
		default:
			t.Errorf("Unexpected trash type %q", record.TrashType)
		}
	}
}

func TestDetectionEmptyBatchWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	detections := sqlite.NewDetectionRepository(db)
	userID := insertTestUser(t, db, "marina", "marina@example.com")

	if err := detections.InsertBatch(userID, "/static/uploads/empty.jpg", nil); err != nil {
		t.Fatalf("Empty batch must succeed: %v", err)
	}

	records, err := detections.GetByUser(userID)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("Expected no detections, got %d", len(records))
	}
}

func TestDetectionsScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	detections := sqlite.NewDetectionRepository(db)

	alice := insertTestUser(t, db, "alice", "alice@example.com")
	bob := insertTestUser(t, db, "bob", "bob@example.com")

	if err := detections.InsertBatch(alice, "/static/uploads/a.jpg", []dto.Detection{
		{TrashType: "Plastic Bag", Confidence: 0.7},
	}); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	records, err := detections.GetByUser(bob)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("Bob must not see Alice's detections, got %d", len(records))
	}
}

func TestDeleteUserCascadesDetections(t *testing.T) {
	db := setupTestDB(t)
	users := sqlite.NewUserRepository(db)
	detections := sqlite.NewDetectionRepository(db)

	userID := insertTestUser(t, db, "marina", "marina@example.com")
	if err := detections.InsertBatch(userID, "/static/uploads/beach.jpg", []dto.Detection{
		{TrashType: "Styrofoam", Confidence: 0.6},
	}); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	if err := users.Delete(userID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var count int
	row := db.Conn().QueryRow("SELECT COUNT(*) FROM detections WHERE user_id = ?", userID)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("Expected cascade delete to remove detections, %d remain", count)
	}
}
