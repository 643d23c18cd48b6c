package personrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/asoclibre/members-api/internal/adapters/postgres"
	"github.com/asoclibre/members-api/internal/domain"
	"github.com/asoclibre/members-api/internal/ports/out/personrepo"
)

// Repo is a Postgres implementation of personrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, p domain.Person) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(p.ID))
	if err != nil {
		return fmt.Errorf("invalid person id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO persons (id, full_name, email, nickname, picture, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, p.FullName, p.Email, p.Nickname, p.Picture, p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			switch pe.ConstraintName {
			case "persons_email_unique":
				return personrepo.ErrEmailTaken
			case "persons_pkey":
				return personrepo.ErrAlreadyExists
			default:
				return err
			}
		}
		return err
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.PersonID) (domain.Person, error) {
	if r.pool == nil {
		return domain.Person{}, errors.New("nil postgres pool")
	}
	pid, err := uuid.Parse(string(id))
	if err != nil {
		return domain.Person{}, personrepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id, full_name, email, nickname, picture, created_at, updated_at
		FROM persons WHERE id = $1
	`, pid)
	return scanPerson(row)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (domain.Person, error) {
	if r.pool == nil {
		return domain.Person{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id, full_name, email, nickname, picture, created_at, updated_at
		FROM persons WHERE lower(email) = lower($1)
	`, email)
	return scanPerson(row)
}

func scanPerson(row pgx.Row) (domain.Person, error) {
	var p domain.Person
	var id uuid.UUID
	if err := row.Scan(&id, &p.FullName, &p.Email, &p.Nickname, &p.Picture, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Person{}, personrepo.ErrNotFound
		}
		return domain.Person{}, err
	}
	p.ID = domain.PersonID(id.String())
	return p, nil
}
