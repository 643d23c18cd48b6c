package memberrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/asoclibre/members-api/internal/adapters/postgres"
	"github.com/asoclibre/members-api/internal/domain"
	"github.com/asoclibre/members-api/internal/ports/out/memberrepo"
)

// Repo is a Postgres implementation of memberrepo.Repository.
//
// The person/organization snapshot carried by memberrepo.Member is stored in
// the persons/organizations tables and joined back on reads; Create/Update
// upsert the snapshot in the same transaction as the member row.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const memberColumns = `
	m.id, m.legal_id, m.category_kind, c.fee_cents,
	m.first_payment_year, m.first_payment_month,
	m.has_student_certificate, m.has_collaborator_acceptance, m.has_subscription_letter,
	m.created_at, m.updated_at,
	p.id, p.full_name, p.email, p.nickname, p.picture, p.created_at, p.updated_at,
	o.id, o.name, o.contact_email, o.created_at, o.updated_at`

const memberJoins = `
	FROM members m
	JOIN categories c ON c.kind = m.category_kind
	LEFT JOIN persons p ON p.id = m.person_id
	LEFT JOIN organizations o ON o.id = m.organization_id`

func (r *Repo) Create(ctx context.Context, m memberrepo.Member) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(m.ID))
	if err != nil {
		return fmt.Errorf("invalid member id: %w", err)
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		personID, orgID, err := upsertPrincipal(ctx, tx, m)
		if err != nil {
			return err
		}

		var fpYear, fpMonth *int
		if m.FirstPayment != nil {
			fpYear, fpMonth = &m.FirstPayment.Year, &m.FirstPayment.Month
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO members (
				id, legal_id, category_kind, person_id, organization_id,
				first_payment_year, first_payment_month,
				has_student_certificate, has_collaborator_acceptance, has_subscription_letter,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`,
			id,
			m.LegalID,
			string(m.Category.Kind),
			personID,
			orgID,
			fpYear,
			fpMonth,
			m.HasStudentCertificate,
			m.HasCollaboratorAcceptance,
			m.HasSubscriptionLetter,
			m.CreatedAt.UTC(),
			m.UpdatedAt.UTC(),
		)
		if err != nil {
			if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
				switch pe.ConstraintName {
				case "members_legal_id_unique":
					return memberrepo.ErrLegalIDTaken
				case "members_pkey":
					return memberrepo.ErrAlreadyExists
				default:
					return err
				}
			}
			return err
		}
		return nil
	})
}

func (r *Repo) Update(ctx context.Context, m memberrepo.Member) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(m.ID))
	if err != nil {
		return fmt.Errorf("invalid member id: %w", err)
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, _, err := upsertPrincipal(ctx, tx, m); err != nil {
			return err
		}

		var fpYear, fpMonth *int
		if m.FirstPayment != nil {
			fpYear, fpMonth = &m.FirstPayment.Year, &m.FirstPayment.Month
		}

		ct, err := tx.Exec(ctx, `
			UPDATE members
			SET legal_id = $2,
			    category_kind = $3,
			    first_payment_year = $4,
			    first_payment_month = $5,
			    has_student_certificate = $6,
			    has_collaborator_acceptance = $7,
			    has_subscription_letter = $8,
			    updated_at = $9
			WHERE id = $1
		`,
			id,
			m.LegalID,
			string(m.Category.Kind),
			fpYear,
			fpMonth,
			m.HasStudentCertificate,
			m.HasCollaboratorAcceptance,
			m.HasSubscriptionLetter,
			m.UpdatedAt.UTC(),
		)
		if err != nil {
			if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode && pe.ConstraintName == "members_legal_id_unique" {
				return memberrepo.ErrLegalIDTaken
			}
			return err
		}
		if ct.RowsAffected() == 0 {
			return memberrepo.ErrNotFound
		}
		return nil
	})
}

func (r *Repo) GetByID(ctx context.Context, id domain.MemberID) (memberrepo.Member, error) {
	if r.pool == nil {
		return memberrepo.Member{}, errors.New("nil postgres pool")
	}
	mid, err := uuid.Parse(string(id))
	if err != nil {
		return memberrepo.Member{}, memberrepo.ErrNotFound
	}

	row := r.pool.QueryRow(ctx, `SELECT`+memberColumns+memberJoins+` WHERE m.id = $1`, mid)
	m, err := scanMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return memberrepo.Member{}, memberrepo.ErrNotFound
		}
		return memberrepo.Member{}, err
	}
	return m, nil
}

func (r *Repo) List(ctx context.Context, f memberrepo.Filter) ([]memberrepo.Member, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}

	q := `SELECT` + memberColumns + memberJoins + ` WHERE true`
	args := []any{}
	if f.Approved != nil {
		if *f.Approved {
			q += ` AND m.legal_id IS NOT NULL`
		} else {
			q += ` AND m.legal_id IS NULL`
		}
	}
	if f.PayingOnly {
		q += ` AND c.fee_cents > 0`
	}
	q += ` ORDER BY m.created_at, m.id`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]memberrepo.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// upsertPrincipal writes the person/organization snapshot and returns the FK
// values for the member row.
func upsertPrincipal(ctx context.Context, tx pgx.Tx, m memberrepo.Member) (personID, orgID *uuid.UUID, err error) {
	if m.Person != nil {
		pid, err := uuid.Parse(string(m.Person.ID))
		if err != nil {
			return nil, nil, fmt.Errorf("invalid person id: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO persons (id, full_name, email, nickname, picture, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE
			SET full_name = EXCLUDED.full_name,
			    email = EXCLUDED.email,
			    nickname = EXCLUDED.nickname,
			    picture = EXCLUDED.picture,
			    updated_at = EXCLUDED.updated_at
		`,
			pid,
			m.Person.FullName,
			m.Person.Email,
			m.Person.Nickname,
			m.Person.Picture,
			m.Person.CreatedAt.UTC(),
			m.Person.UpdatedAt.UTC(),
		)
		if err != nil {
			return nil, nil, err
		}
		personID = &pid
	}
	if m.Organization != nil {
		oid, err := uuid.Parse(string(m.Organization.ID))
		if err != nil {
			return nil, nil, fmt.Errorf("invalid organization id: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO organizations (id, name, contact_email, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name,
			    contact_email = EXCLUDED.contact_email,
			    updated_at = EXCLUDED.updated_at
		`,
			oid,
			m.Organization.Name,
			m.Organization.ContactEmail,
			m.Organization.CreatedAt.UTC(),
			m.Organization.UpdatedAt.UTC(),
		)
		if err != nil {
			return nil, nil, err
		}
		orgID = &oid
	}
	return personID, orgID, nil
}

func scanMember(row pgx.Row) (memberrepo.Member, error) {
	var (
		m       memberrepo.Member
		id      uuid.UUID
		kind    string
		fee     int64
		fpYear  *int
		fpMonth *int

		pID                *uuid.UUID
		pName, pEmail      *string
		pNickname, pPic    *string
		pCreated, pUpdated *time.Time

		oID                *uuid.UUID
		oName, oEmail      *string
		oCreated, oUpdated *time.Time
	)

	err := row.Scan(
		&id, &m.LegalID, &kind, &fee,
		&fpYear, &fpMonth,
		&m.HasStudentCertificate, &m.HasCollaboratorAcceptance, &m.HasSubscriptionLetter,
		&m.CreatedAt, &m.UpdatedAt,
		&pID, &pName, &pEmail, &pNickname, &pPic, &pCreated, &pUpdated,
		&oID, &oName, &oEmail, &oCreated, &oUpdated,
	)
	if err != nil {
		return memberrepo.Member{}, err
	}

	m.ID = domain.MemberID(id.String())
	m.Category = domain.Category{Kind: domain.CategoryKind(kind), FeeCents: fee}
	if fpYear != nil && fpMonth != nil {
		m.FirstPayment = &domain.Period{Year: *fpYear, Month: *fpMonth}
	}
	if pID != nil {
		m.Person = &domain.Person{
			ID:        domain.PersonID(pID.String()),
			FullName:  deref(pName),
			Email:     deref(pEmail),
			Nickname:  pNickname,
			Picture:   pPic,
			CreatedAt: derefTime(pCreated),
			UpdatedAt: derefTime(pUpdated),
		}
	}
	if oID != nil {
		m.Organization = &domain.Organization{
			ID:           domain.OrganizationID(oID.String()),
			Name:         deref(oName),
			ContactEmail: deref(oEmail),
			CreatedAt:    derefTime(oCreated),
			UpdatedAt:    derefTime(oUpdated),
		}
	}
	return m, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefTime(p *time.Time) time.Time {
	if p == nil {
		return time.Time{}
	}
	return *p
}
