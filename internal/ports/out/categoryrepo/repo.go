package categoryrepo

import (
	"context"
	"errors"

	"github.com/asoclibre/members-api/internal/domain"
)

var (
	// ErrNotFound indicates no category exists with the requested kind.
	ErrNotFound = errors.New("category not found")
)

// Repository provides access to the membership tiers (immutable reference data).
type Repository interface {
	GetByKind(ctx context.Context, kind domain.CategoryKind) (domain.Category, error)

	// List returns all categories ordered by fee descending, the order the
	// signup flow presents them in.
	List(ctx context.Context) ([]domain.Category, error)
}
