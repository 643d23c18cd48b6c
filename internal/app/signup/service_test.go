package signup

import (
	"context"
	"errors"
	"testing"
	"time"

	memcategoryrepo "github.com/asoclibre/members-api/internal/adapters/memory/categoryrepo"
	memclock "github.com/asoclibre/members-api/internal/adapters/memory/clock"
	memorgrepo "github.com/asoclibre/members-api/internal/adapters/memory/orgrepo"
	mempersonrepo "github.com/asoclibre/members-api/internal/adapters/memory/personrepo"
	"github.com/asoclibre/members-api/internal/domain"
)

func newTestService() *Service {
	return NewService(
		mempersonrepo.NewRepo(),
		memorgrepo.NewRepo(),
		memcategoryrepo.NewRepo(),
		memclock.NewManualClock(time.Unix(100, 0).UTC()),
	)
}

func TestService_SignupPerson_NormalizesName(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	p, err := svc.SignupPerson(context.Background(), SignupPersonInput{
		FullName: "  Alice   Smith ",
		Email:    "alice@example.com",
		Category: domain.CategoryActive,
	})
	if err != nil {
		t.Fatalf("SignupPerson: %v", err)
	}
	if p.FullName != "Alice Smith" {
		t.Fatalf("fullName=%q", p.FullName)
	}
	if p.Nickname != nil {
		t.Fatalf("nickname should stay unset")
	}
}

func TestService_SignupPerson_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   SignupPersonInput
	}{
		{"empty name", SignupPersonInput{FullName: "   ", Email: "a@example.com", Category: domain.CategoryActive}},
		{"empty email", SignupPersonInput{FullName: "Alice", Email: "", Category: domain.CategoryActive}},
		{"display-name email", SignupPersonInput{FullName: "Alice", Email: "Alice <a@example.com>", Category: domain.CategoryActive}},
		{"unknown category", SignupPersonInput{FullName: "Alice", Email: "a@example.com", Category: domain.CategoryKind("GOLD")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()
			_, err := svc.SignupPerson(context.Background(), tt.in)
			if err == nil {
				t.Fatalf("expected error")
			}
			ae := (*Error)(nil)
			if !errors.As(err, &ae) || ae.Status != 422 || ae.Code != "VALIDATION_ERROR" {
				t.Fatalf("err=%v, want VALIDATION_ERROR 422", err)
			}
		})
	}
}

func TestService_SignupPerson_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	in := SignupPersonInput{FullName: "Alice", Email: "alice@example.com", Category: domain.CategoryActive}
	if _, err := svc.SignupPerson(context.Background(), in); err != nil {
		t.Fatalf("SignupPerson: %v", err)
	}

	in.FullName = "Other Alice"
	_, err := svc.SignupPerson(context.Background(), in)
	if err == nil {
		t.Fatalf("expected error")
	}
	ae := (*Error)(nil)
	if !errors.As(err, &ae) || ae.Status != 409 || ae.Code != "EMAIL_ALREADY_IN_USE" {
		t.Fatalf("err=%v, want EMAIL_ALREADY_IN_USE 409", err)
	}
}

func TestService_SignupPerson_KeepsNickname(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	nick := "ali"
	p, err := svc.SignupPerson(context.Background(), SignupPersonInput{
		FullName: "Alice",
		Email:    "alice@example.com",
		Nickname: &nick,
		Category: domain.CategoryStudent,
	})
	if err != nil {
		t.Fatalf("SignupPerson: %v", err)
	}
	if p.Nickname == nil || *p.Nickname != "ali" {
		t.Fatalf("nickname=%v, want ali", p.Nickname)
	}
}

func TestService_SignupOrganization(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	o, err := svc.SignupOrganization(context.Background(), SignupOrganizationInput{
		Name:         "  Friendly   Org ",
		ContactEmail: "contact@example.org",
		Category:     domain.CategoryBenefactor,
	})
	if err != nil {
		t.Fatalf("SignupOrganization: %v", err)
	}
	if o.Name != "Friendly Org" {
		t.Fatalf("name=%q", o.Name)
	}

	_, err = svc.SignupOrganization(context.Background(), SignupOrganizationInput{
		Name:         "Org",
		ContactEmail: "not-an-email",
		Category:     domain.CategoryBenefactor,
	})
	ae := (*Error)(nil)
	if !errors.As(err, &ae) || ae.Status != 422 {
		t.Fatalf("err=%v, want VALIDATION_ERROR 422", err)
	}
}

func TestService_ListCategories_OrderedByFee(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	cats, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) == 0 {
		t.Fatalf("expected seeded categories")
	}
	for i := 1; i < len(cats); i++ {
		if cats[i].FeeCents > cats[i-1].FeeCents {
			t.Fatalf("categories not ordered by fee descending: %+v", cats)
		}
	}
}
