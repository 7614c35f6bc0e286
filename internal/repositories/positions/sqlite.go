package positions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/common"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/dbx"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/models"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/timex"
)

const selectColumns = `id, owner, symbol, asset_class, quantity, cost_basis_price, manual_current_price, created_at, updated_at`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a new position.
func (r *SQLiteRepository) Create(ctx context.Context, p *models.Position) error {
	query := `INSERT INTO portfolio_positions
			(id, owner, symbol, asset_class, quantity, cost_basis_price, manual_current_price, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Owner, p.Symbol, string(p.AssetClass),
		p.Quantity.String(), p.CostBasisPrice.String(), encodePrice(p.ManualCurrentPrice),
		timex.Format(p.CreatedAt), timex.Format(p.UpdatedAt))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrDuplicateKey
		}
		return fmt.Errorf("failed to insert position: %w", err)
	}
	return nil
}

// GetByID fetches a position by primary key.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Position, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM portfolio_positions WHERE id = ?`, id)

	p, err := scanPosition(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return p, err
}

// ListForOwner returns all positions of one account through the owner index,
// oldest first.
func (r *SQLiteRepository) ListForOwner(ctx context.Context, owner string) ([]models.Position, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM portfolio_positions WHERE owner = ? ORDER BY created_at ASC`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to select positions: %w", err)
	}
	defer rows.Close()

	var result []models.Position
	for rows.Next() {
		p, err := scanPosition(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate positions: %w", err)
	}
	return result, nil
}

// Update replaces the mutable columns of a position. The cost basis, owner,
// symbol and asset class never change after creation and are deliberately
// absent from the statement.
func (r *SQLiteRepository) Update(ctx context.Context, p *models.Position) error {
	query := `UPDATE portfolio_positions SET quantity = ?, manual_current_price = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Quantity.String(), encodePrice(p.ManualCurrentPrice), timex.Format(p.UpdatedAt), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
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

// Delete removes a position by primary key.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM portfolio_positions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
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

func scanPosition(scan func(...any) error) (*models.Position, error) {
	var p models.Position
	var assetClass, quantity, costBasis, createdAt, updatedAt string
	var manualPrice sql.NullString

	err := scan(&p.ID, &p.Owner, &p.Symbol, &assetClass, &quantity, &costBasis, &manualPrice, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan position: %w", err)
	}

	p.AssetClass = models.AssetClass(assetClass)
	if p.Quantity, err = decimal.NewFromString(quantity); err != nil {
		return nil, fmt.Errorf("failed to parse position quantity: %w", err)
	}
	if p.CostBasisPrice, err = decimal.NewFromString(costBasis); err != nil {
		return nil, fmt.Errorf("failed to parse position cost basis: %w", err)
	}
	if manualPrice.Valid {
		d, err := decimal.NewFromString(manualPrice.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse position manual price: %w", err)
		}
		p.ManualCurrentPrice = &d
	}
	if p.CreatedAt, err = timex.Parse(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse position created_at: %w", err)
	}
	if p.UpdatedAt, err = timex.Parse(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse position updated_at: %w", err)
	}
	return &p, nil
}

func encodePrice(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}
