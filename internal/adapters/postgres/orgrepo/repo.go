package orgrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/asoclibre/members-api/internal/adapters/postgres"
	"github.com/asoclibre/members-api/internal/domain"
	"github.com/asoclibre/members-api/internal/ports/out/orgrepo"
)

// Repo is a Postgres implementation of orgrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, o domain.Organization) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(o.ID))
	if err != nil {
		return fmt.Errorf("invalid organization id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO organizations (id, name, contact_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, o.Name, o.ContactEmail, o.CreatedAt.UTC(), o.UpdatedAt.UTC())
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return orgrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.OrganizationID) (domain.Organization, error) {
	if r.pool == nil {
		return domain.Organization{}, errors.New("nil postgres pool")
	}
	oid, err := uuid.Parse(string(id))
	if err != nil {
		return domain.Organization{}, orgrepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, contact_email, created_at, updated_at
		FROM organizations WHERE id = $1
	`, oid)

	var o domain.Organization
	var rid uuid.UUID
	if err := row.Scan(&rid, &o.Name, &o.ContactEmail, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Organization{}, orgrepo.ErrNotFound
		}
		return domain.Organization{}, err
	}
	o.ID = domain.OrganizationID(rid.String())
	return o, nil
}
