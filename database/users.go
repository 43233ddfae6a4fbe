package database

import (
	"database/sql"
	"notekeeper/models"
	"time"
)

// ==================== USERS ====================

func (r *Repository) CreateUser(user *models.User) error {
	_, err := r.db.Exec(`
		INSERT INTO users (id, username, password_hash, is_admin, created_at, last_login_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		user.ID, user.Username, user.PasswordHash, user.IsAdmin,
		user.CreatedAt, user.LastLoginAt, time.Now(),
	)
	return err
}

func (r *Repository) GetUser(userID string) (*models.User, error) {
	return scanUser(r.db.QueryRow(`
		SELECT id, username, password_hash, is_admin, created_at, last_login_at
		FROM users WHERE id = ?
	`, userID))
}

func (r *Repository) GetUserByUsername(username string) (*models.User, error) {
	return scanUser(r.db.QueryRow(`
		SELECT id, username, password_hash, is_admin, created_at, last_login_at
		FROM users WHERE username = ?
	`, username))
}

func (r *Repository) TouchLastLogin(userID string) error {
	_, err := r.db.Exec(`
		UPDATE users SET last_login_at = ?, updated_at = ? WHERE id = ?
	`, time.Now(), time.Now(), userID)
	return err
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin,
		&user.CreatedAt, &user.LastLoginAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// IsUsernameTaken reports whether an error from CreateUser was caused by
// the username uniqueness constraint.
func IsUsernameTaken(err error) bool {
	return isUniqueViolation(err)
}
