package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/audit"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/common"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/dbx"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/logging"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/models"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/password"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/repositories/accounts"
)

const (
	// lockoutThreshold failed attempts lock the account for lockoutDuration.
	lockoutThreshold = 5
	lockoutDuration  = 15 * time.Minute

	bcryptCost = 10
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type emailInput struct {
	Email string `validate:"required,email,max=255"`
}

// AuthService is the credential policy engine: registration, the
// authentication lockout state machine, and password changes. Each
// authenticate call runs its read-check-write sequence in one serializable
// transaction keyed by the account row, so two concurrent attempts against
// the same account cannot undercount failures.
//
// Every outcome emits exactly one audit event, after the transaction
// commits, so a failed audit write can never roll back the operation it
// describes.
type AuthService struct {
	db       *sql.DB
	recorder Recorder
	log      logging.Logger

	// now is a test seam.
	now func() time.Time
}

// NewAuthService constructs the engine over the given store handle.
func NewAuthService(db *sql.DB, recorder Recorder, log logging.Logger) *AuthService {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &AuthService{db: db, recorder: recorder, log: log, now: time.Now}
}

// Register creates a new account with a hashed credential and a clean
// lockout state. A taken email fails with common.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, email, plaintext string) (*models.Account, error) {
	email, err := s.checkEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := password.Validate(plaintext); err != nil {
		var pv *common.PolicyViolationError
		if errors.As(err, &pv) {
			s.recorder.Record(ctx, audit.RegistrationFailed(email, pv.Rule))
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		ID:             uuid.NewString(),
		Email:          email,
		CredentialHash: string(hash),
		CreatedAt:      s.now().UTC(),
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return accounts.NewSQLiteRepository(tx).Create(ctx, account)
	})
	if errors.Is(err, common.ErrDuplicateKey) {
		s.recorder.Record(ctx, audit.RegistrationFailed(email, "email already registered"))
		return nil, common.ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.RegistrationSuccess(email))
	return account, nil
}

// Authenticate verifies credentials and drives the lockout state machine.
// It deliberately does not reveal whether the email exists: unknown email
// and wrong password both fail with common.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, plaintext string) (*models.Session, error) {
	email, err := s.checkEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	var (
		session     *models.Session
		outcome     audit.Event
		authFailure error
	)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := accounts.NewSQLiteRepository(tx)
		now := s.now().UTC()

		account, err := repo.GetByEmail(ctx, email)
		if errors.Is(err, common.ErrNotFound) {
			outcome = audit.LoginFailed(email, 0)
			authFailure = common.ErrInvalidCredentials
			return nil
		}
		if err != nil {
			return err
		}

		if account.Locked(now) {
			outcome = audit.LoginFailed(email, account.FailedAttempts)
			authFailure = &common.AccountLockedError{Remaining: account.LockExpiry.Sub(now)}
			return nil
		}

		// An expired lock lifts lazily, on this attempt.
		if account.LockExpiry != nil {
			account.LockExpiry = nil
			account.FailedAttempts = 0
			if err := repo.Update(ctx, account); err != nil {
				return err
			}
		}

		if bcrypt.CompareHashAndPassword([]byte(account.CredentialHash), []byte(plaintext)) != nil {
			account.FailedAttempts++
			if account.FailedAttempts >= lockoutThreshold {
				until := now.Add(lockoutDuration)
				account.LockExpiry = &until
				outcome = audit.AccountLocked(email, account.FailedAttempts, until)
				// the locking attempt itself already reports the lock
				authFailure = &common.AccountLockedError{Remaining: lockoutDuration}
			} else {
				outcome = audit.LoginFailed(email, account.FailedAttempts)
				authFailure = common.ErrInvalidCredentials
			}
			if err := repo.Update(ctx, account); err != nil {
				return err
			}
			return nil
		}

		account.FailedAttempts = 0
		account.LockExpiry = nil
		if err := repo.Update(ctx, account); err != nil {
			return err
		}

		sess := account.Public()
		session = &sess
		outcome = audit.LoginSuccess(account.ID, account.Email)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, outcome)
	if authFailure != nil {
		return nil, authFailure
	}
	return session, nil
}

// ChangePassword re-verifies the current password before accepting the new
// one. On a wrong current password the stored hash is left untouched.
func (s *AuthService) ChangePassword(ctx context.Context, accountID, current, next string) error {
	if err := password.Validate(next); err != nil {
		return err
	}
	if next == current {
		return &common.PolicyViolationError{Rule: "must differ from current password"}
	}

	var outcome audit.Event
	var changeFailure error

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := accounts.NewSQLiteRepository(tx)

		account, err := repo.GetByID(ctx, accountID)
		if err != nil {
			return err
		}

		if bcrypt.CompareHashAndPassword([]byte(account.CredentialHash), []byte(current)) != nil {
			outcome = audit.PasswordChangeRejected(account.ID, account.Email, "current password incorrect")
			changeFailure = common.ErrCurrentPasswordIncorrect
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		account.CredentialHash = string(hash)
		if err := repo.Update(ctx, account); err != nil {
			return err
		}

		outcome = audit.PasswordChanged(account.ID, account.Email)
		return nil
	})
	if err != nil {
		return err
	}

	s.recorder.Record(ctx, outcome)
	return changeFailure
}

// checkEmail inspects the raw email for injection patterns, sanitizes it
// and validates the format. Detection aborts with a generic invalid-input
// failure; the matched value goes only to the audit payload.
func (s *AuthService) checkEmail(ctx context.Context, raw string) (string, error) {
	if ok, err := inspectField(ctx, s.recorder, "", "email", raw); !ok {
		return "", err
	}

	email := cleanInput(raw)
	if err := validate.Struct(emailInput{Email: email}); err != nil {
		s.recorder.Record(ctx, audit.InvalidInput("", "email", email))
		return "", common.ErrInvalidInput
	}
	return email, nil
}
