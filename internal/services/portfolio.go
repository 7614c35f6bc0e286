package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/audit"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/common"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/dbx"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/models"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/repositories/positions"
)

const maxSymbolLength = 10

// Sanity ceilings on user-entered numbers. Anything above is treated as
// malformed input, not a real holding.
var (
	maxQuantity = decimal.NewFromInt(1_000_000)
	maxPrice    = decimal.NewFromInt(10_000_000)
)

// PortfolioService implements portfolio CRUD with the same store and audit
// discipline as the credential path, but without the policy engine:
// mutations go straight to the record store and the activity log.
//
// Numeric fields arrive as raw form text and are parsed here; malformed or
// out-of-bounds values fail with common.ErrInvalidInput and are recorded.
type PortfolioService struct {
	db       *sql.DB
	recorder Recorder

	// now is a test seam.
	now func() time.Time
}

// NewPortfolioService constructs the service over the given store handle.
func NewPortfolioService(db *sql.DB, recorder Recorder) *PortfolioService {
	return &PortfolioService{db: db, recorder: recorder, now: time.Now}
}

// AddInput carries the raw form values for a new position.
type AddInput struct {
	Owner          string
	Symbol         string
	AssetClass     models.AssetClass
	Quantity       string
	CostBasisPrice string
}

// UpdateInput carries the raw form values for a position update. Nil fields
// stay unchanged. The cost basis cannot be updated through any input.
type UpdateInput struct {
	Owner              string
	PositionID         string
	Quantity           *string
	ManualCurrentPrice *string
}

// Add validates, sanitizes and stores a new position, then records
// ASSET_ADDED.
func (s *PortfolioService) Add(ctx context.Context, in AddInput) (*models.Position, error) {
	symbol, err := s.checkSymbol(ctx, in.Owner, in.Symbol)
	if err != nil {
		return nil, err
	}
	if !in.AssetClass.Valid() {
		s.recorder.Record(ctx, audit.InvalidInput(in.Owner, "asset_class", string(in.AssetClass)))
		return nil, common.ErrInvalidInput
	}

	quantity, err := s.parseAmount(ctx, in.Owner, "quantity", in.Quantity, maxQuantity)
	if err != nil {
		return nil, err
	}
	costBasis, err := s.parseAmount(ctx, in.Owner, "cost_basis_price", in.CostBasisPrice, maxPrice)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	position := &models.Position{
		ID:             uuid.NewString(),
		Owner:          in.Owner,
		Symbol:         symbol,
		AssetClass:     in.AssetClass,
		Quantity:       quantity,
		CostBasisPrice: costBasis,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return positions.NewSQLiteRepository(tx).Create(ctx, position)
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.AssetAdded(in.Owner, position.ID, symbol, string(in.AssetClass), quantity.String()))
	return position, nil
}

// Update changes quantity and/or the manual current price of an owned
// position, then records ASSET_UPDATED. A manual price is only accepted for
// equity positions; crypto prices are supplied externally at read time.
func (s *PortfolioService) Update(ctx context.Context, in UpdateInput) (*models.Position, error) {
	var quantity *decimal.Decimal
	if in.Quantity != nil {
		q, err := s.parseAmount(ctx, in.Owner, "quantity", *in.Quantity, maxQuantity)
		if err != nil {
			return nil, err
		}
		quantity = &q
	}
	var manualPrice *decimal.Decimal
	if in.ManualCurrentPrice != nil {
		p, err := s.parseAmount(ctx, in.Owner, "manual_current_price", *in.ManualCurrentPrice, maxPrice)
		if err != nil {
			return nil, err
		}
		manualPrice = &p
	}

	var updated *models.Position
	var opFailure error

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := positions.NewSQLiteRepository(tx)

		position, err := repo.GetByID(ctx, in.PositionID)
		if err != nil {
			opFailure = err
			if errors.Is(err, common.ErrNotFound) {
				return nil
			}
			return err
		}
		if position.Owner != in.Owner {
			opFailure = common.ErrUnauthorized
			return nil
		}
		if manualPrice != nil && position.AssetClass != models.AssetClassEquity {
			opFailure = common.ErrInvalidInput
			return nil
		}

		if quantity != nil {
			position.Quantity = *quantity
		}
		if manualPrice != nil {
			position.ManualCurrentPrice = manualPrice
		}
		position.UpdatedAt = s.now().UTC()

		if err := repo.Update(ctx, position); err != nil {
			return err
		}
		updated = position
		return nil
	})
	if err != nil {
		return nil, err
	}
	if opFailure != nil {
		s.recordFailure(ctx, in.Owner, in.PositionID, opFailure)
		return nil, opFailure
	}

	s.recorder.Record(ctx, audit.AssetUpdated(in.Owner, updated.ID, updated.Symbol))
	return updated, nil
}

// Delete removes an owned position, then records ASSET_DELETED.
func (s *PortfolioService) Delete(ctx context.Context, owner, positionID string) error {
	var symbol string
	var opFailure error

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := positions.NewSQLiteRepository(tx)

		position, err := repo.GetByID(ctx, positionID)
		if err != nil {
			opFailure = err
			if errors.Is(err, common.ErrNotFound) {
				return nil
			}
			return err
		}
		if position.Owner != owner {
			opFailure = common.ErrUnauthorized
			return nil
		}

		symbol = position.Symbol
		return repo.Delete(ctx, positionID)
	})
	if err != nil {
		return err
	}
	if opFailure != nil {
		s.recordFailure(ctx, owner, positionID, opFailure)
		return opFailure
	}

	s.recorder.Record(ctx, audit.AssetDeleted(owner, positionID, symbol))
	return nil
}

// ListForOwner returns all of the owner's positions.
func (s *PortfolioService) ListForOwner(ctx context.Context, owner string) ([]models.Position, error) {
	return positions.NewSQLiteRepository(s.db).ListForOwner(ctx, owner)
}

// checkSymbol inspects, sanitizes and normalizes a ticker symbol.
func (s *PortfolioService) checkSymbol(ctx context.Context, owner, raw string) (string, error) {
	if ok, err := inspectField(ctx, s.recorder, owner, "symbol", raw); !ok {
		return "", err
	}

	symbol := strings.ToUpper(cleanInput(raw))
	if symbol == "" || len(symbol) > maxSymbolLength {
		s.recorder.Record(ctx, audit.InvalidInput(owner, "symbol", symbol))
		return "", common.ErrInvalidInput
	}
	return symbol, nil
}

// parseAmount parses a raw numeric string and enforces positivity and the
// given ceiling.
func (s *PortfolioService) parseAmount(ctx context.Context, owner, field, raw string, ceiling decimal.Decimal) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !value.IsPositive() || value.GreaterThan(ceiling) {
		s.recorder.Record(ctx, audit.InvalidInput(owner, field, raw))
		return decimal.Decimal{}, common.ErrInvalidInput
	}
	return value, nil
}

func (s *PortfolioService) recordFailure(ctx context.Context, owner, positionID string, failure error) {
	if errors.Is(failure, common.ErrUnauthorized) {
		s.recorder.Record(ctx, audit.UnauthorizedAccess(owner, "position "+positionID+" belongs to another account"))
	}
}
