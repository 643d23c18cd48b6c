package quotarepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/asoclibre/members-api/internal/adapters/postgres"
	"github.com/asoclibre/members-api/internal/domain"
	"github.com/asoclibre/members-api/internal/ports/out/quotarepo"
)

// Repo is a Postgres implementation of quotarepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Add(ctx context.Context, q domain.Quota) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	mid, err := uuid.Parse(string(q.MemberID))
	if err != nil {
		return fmt.Errorf("invalid member id: %w", err)
	}
	p := q.Period.Normalize()

	_, err = r.pool.Exec(ctx, `
		INSERT INTO quotas (member_id, year, month, code, paid_at)
		VALUES ($1, $2, $3, $4, $5)
	`, mid, p.Year, p.Month, q.Code, q.PaidAt.UTC())
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return quotarepo.ErrDuplicatePeriod
		}
		return err
	}
	return nil
}

func (r *Repo) LatestOnOrBefore(ctx context.Context, id domain.MemberID, cutoff domain.Period) (domain.Quota, bool, error) {
	if r.pool == nil {
		return domain.Quota{}, false, errors.New("nil postgres pool")
	}
	mid, err := uuid.Parse(string(id))
	if err != nil {
		return domain.Quota{}, false, nil
	}
	p := cutoff.Normalize()

	row := r.pool.QueryRow(ctx, `
		SELECT year, month, code, paid_at
		FROM quotas
		WHERE member_id = $1
		  AND (year < $2 OR (year = $2 AND month <= $3))
		ORDER BY year DESC, month DESC
		LIMIT 1
	`, mid, p.Year, p.Month)

	q := domain.Quota{MemberID: id}
	if err := row.Scan(&q.Period.Year, &q.Period.Month, &q.Code, &q.PaidAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Quota{}, false, nil
		}
		return domain.Quota{}, false, err
	}
	return q, true, nil
}
