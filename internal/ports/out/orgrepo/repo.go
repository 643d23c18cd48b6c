package orgrepo

import (
	"context"
	"errors"

	"github.com/asoclibre/members-api/internal/domain"
)

var (
	// ErrNotFound indicates the requested organization does not exist.
	ErrNotFound = errors.New("organization not found")

	// ErrAlreadyExists indicates an organization already exists with the provided ID.
	ErrAlreadyExists = errors.New("organization already exists")
)

// Repository provides access to organization applicant records.
type Repository interface {
	Create(ctx context.Context, o domain.Organization) error

	GetByID(ctx context.Context, id domain.OrganizationID) (domain.Organization, error)
}
