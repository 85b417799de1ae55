package sqlite

import (
	"database/sql"
	"fmt"

	"wastetrack/internal/model"
)

// UserRepository implements repository.UserRepository for SQLite.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Insert adds a new user record to the database.
func (r *UserRepository) Insert(user *model.User) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO users (username, email, password_hash)
		VALUES (?, ?, ?)
	`, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	return result.LastInsertId()
}

// GetByID retrieves a user by id, or nil when no such user exists.
func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	return r.getOne(`SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?`, id)
}

// GetByEmail retrieves a user by email, or nil when no such user exists.
func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	return r.getOne(`SELECT id, username, email, password_hash, created_at FROM users WHERE email = ?`, email)
}

// GetByUsername retrieves a user by username, or nil when no such user exists.
func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	return r.getOne(`SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?`, username)
}

func (r *UserRepository) getOne(query string, arg interface{}) (*model.User, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var user model.User
	err := r.db.Conn().QueryRow(query, arg).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// Delete removes a user record; the foreign key cascade removes their
// detections.
func (r *UserRepository) Delete(id int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
