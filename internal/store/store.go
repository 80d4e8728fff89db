// Package store contains the MySQL repositories and the listing engine
// shared by the catalog endpoints. Handlers depend on the interfaces below so
// tests can swap in mocks.
package store

import (
	"context"
	"errors"
	"time"

	"storefront-api/internal/models"
)

// ErrNotFound is returned when a single-record lookup matches nothing.
// Handlers translate it into a 404.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned on unique-key violations (username, email, slug).
// Handlers translate it into a 400.
var ErrDuplicate = errors.New("duplicate record")

type UserStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	// FindByIdentifier matches by email when the identifier contains '@',
	// otherwise by username.
	FindByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p ListParams) ([]models.User, Meta, error)
}

type ProductStore interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, p *models.Product, categoryIDs []int64) error
	// Update persists the full record; when categoryIDs is non-nil the
	// category links are replaced.
	Update(ctx context.Context, p *models.Product, categoryIDs *[]int64) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p ListParams) ([]models.Product, Meta, error)
}

type CategoryStore interface {
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p ListParams) ([]models.Category, Meta, error)
}

// TokenStore persists long-lived tokens. Access tokens stay stateless; only
// refresh tokens are stored here.
type TokenStore interface {
	Save(ctx context.Context, t *models.Token) error
	FindByToken(ctx context.Context, token string) (*models.Token, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
