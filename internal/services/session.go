package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/audit"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/common"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/dbx"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/logging"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/models"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/repositories/accounts"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/repositories/metadata"
)

const (
	metaKeySessionMarker = "session_marker"
	metaKeySessionSecret = "session_secret"

	sessionMarkerTTL = 30 * 24 * time.Hour
)

// SessionManager owns the single current identity of the running client.
// It is the only entry point the presentation layer uses for sign-up,
// sign-in and sign-out; everything else reads the session as a snapshot
// via Current.
//
// Across restarts the identity survives through a signed marker persisted
// in the metadata collection. The marker only references the account id;
// on restore the signature is verified and the account re-read, so a
// tampered marker can never mint an identity.
type SessionManager struct {
	mu      sync.RWMutex
	current *models.Session

	auth     *AuthService
	recorder Recorder
	db       *sql.DB
	log      logging.Logger
	now      func() time.Time
}

// NewSessionManager constructs the manager. It starts signed out; call
// Restore to pick up a remembered identity.
func NewSessionManager(auth *AuthService, recorder Recorder, db *sql.DB, log logging.Logger) *SessionManager {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &SessionManager{auth: auth, recorder: recorder, db: db, log: log, now: time.Now}
}

// SignUp registers a new account. It does not sign the account in.
func (m *SessionManager) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	account, err := m.auth.Register(ctx, email, password)
	if err != nil {
		return nil, err
	}
	session := account.Public()
	return &session, nil
}

// SignIn authenticates, installs the session as the current identity and
// persists the remembered-identity marker.
func (m *SessionManager) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	session, err := m.auth.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.current = session
	m.mu.Unlock()

	if err := m.persistMarker(ctx, session); err != nil {
		// The sign-in itself stands; only restart persistence is degraded.
		m.log.Warn(ctx, "failed to persist session marker", "error", err)
	}
	return m.snapshot(), nil
}

// SignOut clears the current identity and the persisted marker. Signing
// out while signed out is a no-op.
func (m *SessionManager) SignOut(ctx context.Context) {
	m.mu.Lock()
	session := m.current
	m.current = nil
	m.mu.Unlock()

	if session == nil {
		return
	}

	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, metaKeySessionMarker)
	})
	if err != nil {
		m.log.Warn(ctx, "failed to clear session marker", "error", err)
	}

	m.recorder.Record(ctx, audit.Logout(session.AccountID, session.Email))
}

// Current returns a snapshot of the signed-in identity, or nil. Callers
// must treat it as a value that can change between their own reads.
func (m *SessionManager) Current() *models.Session {
	return m.snapshot()
}

// Restore re-establishes the remembered identity from the persisted marker,
// if one exists and verifies. A marker that fails verification is discarded
// and recorded as unauthorized access.
func (m *SessionManager) Restore(ctx context.Context) (*models.Session, error) {
	repo := metadata.NewSQLiteRepository(m.db)

	marker, err := repo.Get(ctx, metaKeySessionMarker)
	if err != nil {
		return nil, err
	}
	if marker == nil {
		return nil, nil
	}

	secret, err := m.signingSecret(ctx)
	if err != nil {
		return nil, err
	}

	accountID, err := verifyMarker(string(marker), secret, m.now())
	if err != nil {
		m.recorder.Record(ctx, audit.UnauthorizedAccess("", "invalid session marker"))
		if derr := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return metadata.NewSQLiteRepository(tx).Delete(ctx, metaKeySessionMarker)
		}); derr != nil {
			m.log.Warn(ctx, "failed to discard session marker", "error", derr)
		}
		return nil, nil
	}

	account, err := accounts.NewSQLiteRepository(m.db).GetByID(ctx, accountID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	session := account.Public()
	m.mu.Lock()
	m.current = &session
	m.mu.Unlock()
	return m.snapshot(), nil
}

func (m *SessionManager) snapshot() *models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	s := *m.current
	return &s
}

func (m *SessionManager) persistMarker(ctx context.Context, session *models.Session) error {
	secret, err := m.signingSecret(ctx)
	if err != nil {
		return err
	}

	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   session.AccountID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionMarkerTTL)),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return fmt.Errorf("failed to sign session marker: %w", err)
	}

	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Set(ctx, metaKeySessionMarker, []byte(signed))
	})
}

// signingSecret returns the per-installation marker key, generating and
// persisting it on first use.
func (m *SessionManager) signingSecret(ctx context.Context) ([]byte, error) {
	repo := metadata.NewSQLiteRepository(m.db)

	secret, err := repo.Get(ctx, metaKeySessionSecret)
	if err != nil {
		return nil, err
	}
	if secret != nil {
		return secret, nil
	}

	secret = common.GenerateRandByteArray(32)
	err = dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Set(ctx, metaKeySessionSecret, secret)
	})
	if err != nil {
		return nil, err
	}
	return secret, nil
}

func verifyMarker(marker string, secret []byte, now time.Time) (string, error) {
	token, err := jwt.Parse(marker, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		return "", err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", errors.New("marker has no subject")
	}
	return subject, nil
}
