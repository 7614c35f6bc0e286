// Package accounts persists Account records in the accounts collection.
// The primary key is the account id; the email column carries a unique
// secondary index used for login lookup.
package accounts

import (
	"context"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/models"
)

// Repository is the storage contract for accounts. Implementations must
// translate a duplicate id or email into common.ErrDuplicateKey and an
// absent record into common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, a *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Update(ctx context.Context, a *models.Account) error
}
