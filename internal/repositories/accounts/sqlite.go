package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/common"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/dbx"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/models"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/timex"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a new account. A taken id or email yields common.ErrDuplicateKey.
func (r *SQLiteRepository) Create(ctx context.Context, a *models.Account) error {
	query := `INSERT INTO accounts (id, email, credential_hash, failed_attempts, lock_expiry, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Email, a.CredentialHash, a.FailedAttempts, encodeLockExpiry(a.LockExpiry), timex.Format(a.CreatedAt))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrDuplicateKey
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// GetByID fetches an account by primary key.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, credential_hash, failed_attempts, lock_expiry, created_at FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

// GetByEmail fetches an account through the unique email index.
func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, credential_hash, failed_attempts, lock_expiry, created_at FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

// Update replaces the mutable columns of an account by primary key.
// Email and created_at never change after registration.
func (r *SQLiteRepository) Update(ctx context.Context, a *models.Account) error {
	query := `UPDATE accounts SET credential_hash = ?, failed_attempts = ?, lock_expiry = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.CredentialHash, a.FailedAttempts, encodeLockExpiry(a.LockExpiry), a.ID)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return common.ErrNotFound
	}
	return nil
}

func scanAccount(row *sql.Row) (*models.Account, error) {
	var a models.Account
	var lockExpiry sql.NullString
	var createdAt string

	err := row.Scan(&a.ID, &a.Email, &a.CredentialHash, &a.FailedAttempts, &lockExpiry, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}

	if a.CreatedAt, err = timex.Parse(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse account created_at: %w", err)
	}
	if lockExpiry.Valid {
		t, err := timex.Parse(lockExpiry.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse account lock_expiry: %w", err)
		}
		a.LockExpiry = &t
	}
	return &a, nil
}

func encodeLockExpiry(t *time.Time) any {
	if t == nil {
		return nil
	}
	return timex.Format(*t)
}
