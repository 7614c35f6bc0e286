package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/config"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/logging"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/prices"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/services"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/store"
)

// App wires the local database and the domain services behind the
// interactive shell.
type App struct {
	config    *config.Config
	log       logging.Logger
	auth      *services.AuthService
	session   *services.SessionManager
	portfolio *services.PortfolioService
	valuation *services.ValuationService
	audit     *services.AuditService
	reader    *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewZerologLogger(logging.Options{Level: c.LogLevel, Pretty: c.LogPretty})

	db, err := store.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	auditSvc := services.NewAuditService(db, log)
	auth := services.NewAuthService(db, auditSvc, log)
	session := services.NewSessionManager(auth, auditSvc, db, log)
	portfolio := services.NewPortfolioService(db, auditSvc)
	valuation := services.NewValuationService(prices.NewCoinGecko(c.PriceBaseURL, c.PriceTimeout), log)

	return &App{
		config:    c,
		log:       log,
		auth:      auth,
		session:   session,
		portfolio: portfolio,
		valuation: valuation,
		audit:     auditSvc,
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Current() != nil
}

// Run restores any persisted session and hands control to the shell loop.
// It returns when the user exits.
func (a *App) Run(ctx context.Context) {
	if s, err := a.session.Restore(ctx); err == nil && s != nil {
		printlnFn("Welcome back,", s.Email)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) status() string {
	if s := a.session.Current(); s != nil {
		return s.Email
	}
	return "guest"
}
