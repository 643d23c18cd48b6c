package signup

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/asoclibre/members-api/internal/domain"
	"github.com/asoclibre/members-api/internal/ports/out/categoryrepo"
	clockport "github.com/asoclibre/members-api/internal/ports/out/clock"
	"github.com/asoclibre/members-api/internal/ports/out/orgrepo"
	"github.com/asoclibre/members-api/internal/ports/out/personrepo"
)

// Service handles signup applications for persons and organizations.
type Service struct {
	persons    personrepo.Repository
	orgs       orgrepo.Repository
	categories categoryrepo.Repository
	clk        clockport.Clock

	newPersonID func() domain.PersonID
	newOrgID    func() domain.OrganizationID
}

func NewService(persons personrepo.Repository, orgs orgrepo.Repository, categories categoryrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		persons:    persons,
		orgs:       orgs,
		categories: categories,
		clk:        clk,
		newPersonID: func() domain.PersonID {
			return domain.PersonID(uuid.NewString())
		},
		newOrgID: func() domain.OrganizationID {
			return domain.OrganizationID(uuid.NewString())
		},
	}
}

// ListCategories returns the membership tiers ordered by fee descending, the
// order the signup form presents them in.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// SignupPerson validates and stores an individual's application. The record
// stays a pending applicant until staff approve it as a member.
func (s *Service) SignupPerson(ctx context.Context, in SignupPersonInput) (domain.Person, error) {
	fullName := domain.NormalizeHumanName(in.FullName)
	if fullName == "" {
		return domain.Person{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid fullName",
			Details: map[string]any{"fullName": "must be non-empty"},
		}
	}
	email := strings.TrimSpace(in.Email)
	if err := validateEmail(email); err != nil {
		return domain.Person{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid email",
			Details: map[string]any{"email": err.Error()},
		}
	}
	if err := s.validateCategory(ctx, in.Category); err != nil {
		return domain.Person{}, err
	}
	if _, err := s.persons.GetByEmail(ctx, email); err == nil {
		return domain.Person{}, &Error{
			Status:  409,
			Code:    "EMAIL_ALREADY_IN_USE",
			Message: "email address is already registered",
		}
	} else if !errors.Is(err, personrepo.ErrNotFound) {
		return domain.Person{}, err
	}

	now := s.clk.Now()
	p := domain.Person{
		ID:        s.newPersonID(),
		FullName:  fullName,
		Email:     email,
		Nickname:  cloneStringPtr(in.Nickname),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.persons.Create(ctx, p); err != nil {
		if errors.Is(err, personrepo.ErrEmailTaken) {
			return domain.Person{}, &Error{
				Status:  409,
				Code:    "EMAIL_ALREADY_IN_USE",
				Message: "email address is already registered",
			}
		}
		return domain.Person{}, err
	}
	return p, nil
}

// SignupOrganization validates and stores an organization's application.
func (s *Service) SignupOrganization(ctx context.Context, in SignupOrganizationInput) (domain.Organization, error) {
	name := domain.NormalizeHumanName(in.Name)
	if name == "" {
		return domain.Organization{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid name",
			Details: map[string]any{"name": "must be non-empty"},
		}
	}
	email := strings.TrimSpace(in.ContactEmail)
	if err := validateEmail(email); err != nil {
		return domain.Organization{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid contactEmail",
			Details: map[string]any{"contactEmail": err.Error()},
		}
	}
	if err := s.validateCategory(ctx, in.Category); err != nil {
		return domain.Organization{}, err
	}

	now := s.clk.Now()
	o := domain.Organization{
		ID:           s.newOrgID(),
		Name:         name,
		ContactEmail: email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.orgs.Create(ctx, o); err != nil {
		return domain.Organization{}, err
	}
	return o, nil
}

func (s *Service) validateCategory(ctx context.Context, kind domain.CategoryKind) error {
	if !kind.Valid() {
		return &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid category",
			Details: map[string]any{"category": "unknown category"},
		}
	}
	if _, err := s.categories.GetByKind(ctx, kind); err != nil {
		if errors.Is(err, categoryrepo.ErrNotFound) {
			return &Error{
				Status:  422,
				Code:    "VALIDATION_ERROR",
				Message: "invalid category",
				Details: map[string]any{"category": "unknown category"},
			}
		}
		return err
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("must be non-empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return err
	}
	// Ensure no "Name <email@x>" format sneaks in.
	if addr.Address != email {
		return errors.New("must be a bare email address")
	}
	return nil
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
