package user

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	createUser(user *User) error
	getUserByEmail(email string) (*User, error)
	getUserByID(id string) (*User, error)
	updateTOTPSecret(userID, secret string) error
	updateTwoFactorEnabled(userID string, enabled bool) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &userRepository{db: db}
}

func (r *userRepository) createUser(user *User) error {
	user.ID = uuid.NewString()
	query := `
		INSERT INTO users (id, username, email, password_hash, two_factor_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(query, user.ID, user.Username, user.Email, user.PasswordHash, user.TwoFactorEnabled)
	if err != nil {
		return fmt.Errorf("could not create user: %w", err)
	}
	return nil
}

func (r *userRepository) scanUser(row *sql.Row) (*User, error) {
	var found User
	var totpSecret sql.NullString
	err := row.Scan(&found.ID, &found.Username, &found.Email, &found.PasswordHash,
		&totpSecret, &found.TwoFactorEnabled, &found.CreatedAt, &found.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not fetch user: %w", err)
	}
	found.TOTPSecret = totpSecret.String
	return &found, nil
}

const userColumns = `id, username, email, password_hash, totp_secret, two_factor_enabled, created_at, updated_at`

func (r *userRepository) getUserByEmail(email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(query, email))
}

func (r *userRepository) getUserByID(id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(query, id))
}

func (r *userRepository) updateTOTPSecret(userID, secret string) error {
	result, err := r.db.Exec(`UPDATE users SET totp_secret = $1, updated_at = NOW() WHERE id = $2`, secret, userID)
	if err != nil {
		return fmt.Errorf("could not update TOTP secret: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) updateTwoFactorEnabled(userID string, enabled bool) error {
	result, err := r.db.Exec(`UPDATE users SET two_factor_enabled = $1, updated_at = NOW() WHERE id = $2`, enabled, userID)
	if err != nil {
		return fmt.Errorf("could not update two-factor flag: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
