package personrepo

import (
	"context"
	"errors"

	"github.com/asoclibre/members-api/internal/domain"
)

var (
	// ErrNotFound indicates the requested person does not exist.
	ErrNotFound = errors.New("person not found")

	// ErrAlreadyExists indicates a person already exists with the provided ID.
	ErrAlreadyExists = errors.New("person already exists")

	// ErrEmailTaken indicates a person is already registered with the email.
	ErrEmailTaken = errors.New("person email already registered")
)

// Repository provides access to person applicant profiles.
type Repository interface {
	Create(ctx context.Context, p domain.Person) error

	GetByID(ctx context.Context, id domain.PersonID) (domain.Person, error)
	GetByEmail(ctx context.Context, email string) (domain.Person, error)
}
