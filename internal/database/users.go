package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopwise/backend/internal/models"
)

const uniqueViolation = "23505"

const userColumns = `id, email, name, phone_number, image, password_hash, active, two_factor_auth,
	otp_expiry, otp_session_id, reset_token, reset_token_expiry, password_same,
	pending_deletion, deletion_deadline, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PhoneNumber, &u.Image, &u.PasswordHash, &u.Active, &u.TwoFactorAuth,
		&u.OTPExpiry, &u.OTPSessionID, &u.ResetToken, &u.ResetTokenExpiry, &u.PasswordSame,
		&u.PendingDeletion, &u.DeletionDeadline, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// Create inserts u. ID and timestamps are filled in on success.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = strings.ToLower(u.Email)
	if u.Image == "" {
		u.Image = "img.jpg"
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (id, email, name, phone_number, image, password_hash, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at, updated_at`,
		u.ID, u.Email, u.Name, u.PhoneNumber, u.Image, u.PasswordHash, u.Active,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if isUniqueViolation(err, "users_email_key") {
		return models.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email)))
}

func (r *UserRepository) GetByResetToken(ctx context.Context, hash string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE reset_token = $1`, hash))
}

func (r *UserRepository) GetByOTPSession(ctx context.Context, sessionID string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE otp_session_id = $1`, sessionID))
}

// Update writes every mutable column of u in a single statement.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(u.Email)

	err := r.db.QueryRowContext(ctx,
		`UPDATE users SET email = $2, name = $3, phone_number = $4, image = $5, password_hash = $6,
			active = $7, two_factor_auth = $8, otp_expiry = $9, otp_session_id = $10, reset_token = $11,
			reset_token_expiry = $12, password_same = $13, pending_deletion = $14, deletion_deadline = $15,
			updated_at = NOW()
		WHERE id = $1 RETURNING updated_at`,
		u.ID, u.Email, u.Name, u.PhoneNumber, u.Image, u.PasswordHash,
		u.Active, u.TwoFactorAuth, u.OTPExpiry, u.OTPSessionID, u.ResetToken,
		u.ResetTokenExpiry, u.PasswordSame, u.PendingDeletion, u.DeletionDeadline,
	).Scan(&u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	if isUniqueViolation(err, "users_email_key") {
		return models.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}
