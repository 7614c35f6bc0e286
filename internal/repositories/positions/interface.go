// Package positions persists PortfolioPosition records in the
// portfolio_positions collection, indexed by owner for per-account listing.
package positions

import (
	"context"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/models"
)

// Repository is the storage contract for portfolio positions.
type Repository interface {
	Create(ctx context.Context, p *models.Position) error
	GetByID(ctx context.Context, id string) (*models.Position, error)
	ListForOwner(ctx context.Context, owner string) ([]models.Position, error)
	Update(ctx context.Context, p *models.Position) error
	Delete(ctx context.Context, id string) error
}
