package categoryrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asoclibre/members-api/internal/domain"
	"github.com/asoclibre/members-api/internal/ports/out/categoryrepo"
)

// Repo is a Postgres implementation of categoryrepo.Repository. Categories
// are reference data seeded by the migrations.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) GetByKind(ctx context.Context, kind domain.CategoryKind) (domain.Category, error) {
	if r.pool == nil {
		return domain.Category{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `SELECT kind, fee_cents FROM categories WHERE kind = $1`, string(kind))

	var c domain.Category
	var k string
	if err := row.Scan(&k, &c.FeeCents); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Category{}, categoryrepo.ErrNotFound
		}
		return domain.Category{}, err
	}
	c.Kind = domain.CategoryKind(k)
	return c, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Category, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `SELECT kind, fee_cents FROM categories ORDER BY fee_cents DESC, kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		var k string
		if err := rows.Scan(&k, &c.FeeCents); err != nil {
			return nil, err
		}
		c.Kind = domain.CategoryKind(k)
		out = append(out, c)
	}
	return out, rows.Err()
}
