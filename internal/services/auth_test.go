package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/audit"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/common"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/repositories/accounts"
)

const goodPassword = "Abcd123!"

func newAuth(t *testing.T) (*AuthService, *AuditService) {
	t.Helper()
	db := setupDB(t)
	auditSvc := NewAuditService(db, nil)
	return NewAuthService(db, auditSvc, nil), auditSvc
}

func TestRegister_Success(t *testing.T) {
	svc, log := newAuth(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, "a@x.com", goodPassword)
	require.NoError(t, err)

	assert.NotEmpty(t, account.ID)
	assert.Equal(t, "a@x.com", account.Email)
	assert.NotEqual(t, goodPassword, account.CredentialHash, "hash must not be the plaintext")
	assert.Equal(t, 0, account.FailedAttempts)
	assert.Nil(t, account.LockExpiry)

	assert.Equal(t, 1, countEvents(t, log, audit.KindRegistrationSuccess))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, log := newAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", goodPassword)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@x.com", goodPassword)
	assert.True(t, errors.Is(err, common.ErrEmailTaken))
	assert.Equal(t, 1, countEvents(t, log, audit.KindRegistrationFailed))
}

func TestRegister_PolicyViolation(t *testing.T) {
	svc, log := newAuth(t)

	_, err := svc.Register(context.Background(), "a@x.com", "weak")
	var pv *common.PolicyViolationError
	require.True(t, errors.As(err, &pv))
	assert.Equal(t, 1, countEvents(t, log, audit.KindRegistrationFailed))
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc, log := newAuth(t)

	_, err := svc.Register(context.Background(), "not-an-email", goodPassword)
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
	assert.Equal(t, 1, countEvents(t, log, audit.KindInvalidInput))
}

func TestRegister_InjectionAttempt(t *testing.T) {
	svc, log := newAuth(t)

	_, err := svc.Register(context.Background(), "x@y.com'; DROP TABLE accounts--", goodPassword)
	assert.True(t, errors.Is(err, common.ErrInvalidInput), "caller sees only a generic failure")
	assert.Equal(t, 1, countEvents(t, log, audit.KindSQLInjectionAttempt))
}

func TestAuthenticate_Success(t *testing.T) {
	svc, log := newAuth(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, "a@x.com", goodPassword)
	require.NoError(t, err)

	session, err := svc.Authenticate(ctx, "a@x.com", goodPassword)
	require.NoError(t, err)
	assert.Equal(t, account.ID, session.AccountID)
	assert.Equal(t, "a@x.com", session.Email)

	assert.Equal(t, 1, countEvents(t, log, audit.KindLoginSuccess))
}

func TestAuthenticate_UnknownEmailIsIndistinguishable(t *testing.T) {
	svc, log := newAuth(t)

	_, err := svc.Authenticate(context.Background(), "ghost@x.com", goodPassword)
	assert.True(t, errors.Is(err, common.ErrInvalidCredentials))
	assert.Equal(t, 1, countEvents(t, log, audit.KindLoginFailed))
}

func TestAuthenticate_LockoutAfterFiveFailures(t *testing.T) {
	svc, log := newAuth(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, "a@x.com", goodPassword)
	require.NoError(t, err)

	start := time.Now().UTC()
	for i := 0; i < 4; i++ {
		_, err := svc.Authenticate(ctx, "a@x.com", "Wrong123!")
		assert.True(t, errors.Is(err, common.ErrInvalidCredentials), "attempt %d", i+1)
	}

	// the fifth failure locks the account and says so
	_, err = svc.Authenticate(ctx, "a@x.com", "Wrong123!")
	var lockedNow *common.AccountLockedError
	require.True(t, errors.As(err, &lockedNow))
	assert.Equal(t, lockoutDuration, lockedNow.Remaining)

	stored, err := accounts.NewSQLiteRepository(svc.db).GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.FailedAttempts)
	require.NotNil(t, stored.LockExpiry)
	assert.WithinDuration(t, start.Add(lockoutDuration), *stored.LockExpiry, 5*time.Second)

	assert.Equal(t, 4, countEvents(t, log, audit.KindLoginFailed))
	assert.Equal(t, 1, countEvents(t, log, audit.KindAccountLocked))

	// even the correct password is refused while locked
	_, err = svc.Authenticate(ctx, "a@x.com", goodPassword)
	var locked *common.AccountLockedError
	require.True(t, errors.As(err, &locked))
	assert.Positive(t, locked.Remaining)

	// and the counter is not incremented by attempts against a locked account
	stored, err = accounts.NewSQLiteRepository(svc.db).GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.FailedAttempts)
}

func TestAuthenticate_LockLiftsLazilyAfterExpiry(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, "a@x.com", goodPassword)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, _ = svc.Authenticate(ctx, "a@x.com", "Wrong123!")
	}

	// move the engine clock past the lock expiry
	svc.now = func() time.Time { return time.Now().Add(lockoutDuration + time.Minute) }

	session, err := svc.Authenticate(ctx, "a@x.com", goodPassword)
	require.NoError(t, err)
	assert.Equal(t, account.ID, session.AccountID)

	stored, err := accounts.NewSQLiteRepository(svc.db).GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.FailedAttempts)
	assert.Nil(t, stored.LockExpiry)
}

func TestChangePassword_WrongCurrentLeavesHashUntouched(t *testing.T) {
	svc, log := newAuth(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, "a@x.com", goodPassword)
	require.NoError(t, err)
	originalHash := account.CredentialHash

	err = svc.ChangePassword(ctx, account.ID, "Wrong123!", "Newpass1!")
	assert.True(t, errors.Is(err, common.ErrCurrentPasswordIncorrect))

	stored, err := accounts.NewSQLiteRepository(svc.db).GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, originalHash, stored.CredentialHash)
	assert.Equal(t, 1, countEvents(t, log, audit.KindPasswordChanged))
}

func TestChangePassword_Success(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, "a@x.com", goodPassword)
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, account.ID, goodPassword, "Newpass1!"))

	_, err = svc.Authenticate(ctx, "a@x.com", goodPassword)
	assert.True(t, errors.Is(err, common.ErrInvalidCredentials), "old password must stop working")

	_, err = svc.Authenticate(ctx, "a@x.com", "Newpass1!")
	assert.NoError(t, err)
}

func TestChangePassword_MustDiffer(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, "a@x.com", goodPassword)
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, account.ID, goodPassword, goodPassword)
	var pv *common.PolicyViolationError
	require.True(t, errors.As(err, &pv))
	assert.Equal(t, "must differ from current password", pv.Rule)
}
