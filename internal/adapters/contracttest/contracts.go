package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/asoclibre/members-api/internal/domain"
	categoryrepoport "github.com/asoclibre/members-api/internal/ports/out/categoryrepo"
	memberrepoport "github.com/asoclibre/members-api/internal/ports/out/memberrepo"
	orgrepoport "github.com/asoclibre/members-api/internal/ports/out/orgrepo"
	personrepoport "github.com/asoclibre/members-api/internal/ports/out/personrepo"
	quotarepoport "github.com/asoclibre/members-api/internal/ports/out/quotarepo"
)

type CleanupFunc = func()

type MemberRepoFactory func(t *testing.T) (memberrepoport.Repository, CleanupFunc)
type QuotaRepoFactory func(t *testing.T) (quotarepoport.Repository, CleanupFunc)
type CategoryRepoFactory func(t *testing.T) (categoryrepoport.Repository, CleanupFunc)
type PersonRepoFactory func(t *testing.T) (personrepoport.Repository, CleanupFunc)
type OrgRepoFactory func(t *testing.T) (orgrepoport.Repository, CleanupFunc)

func personFixture(name, email string) *domain.Person {
	return &domain.Person{
		ID:        domain.PersonID(uuid.NewString()),
		FullName:  name,
		Email:     email,
		CreatedAt: time.Unix(100, 0).UTC(),
		UpdatedAt: time.Unix(100, 0).UTC(),
	}
}

func memberFixture(p *domain.Person, cat domain.Category, legalID *int, createdAt time.Time) memberrepoport.Member {
	return memberrepoport.Member{
		ID:        domain.MemberID(uuid.NewString()),
		LegalID:   legalID,
		Category:  cat,
		Person:    p,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func RunMemberRepo(t *testing.T, newRepo MemberRepoFactory) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetByID_NotFound", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		_, err := repo.GetByID(ctx, domain.MemberID(uuid.NewString()))
		if !errors.Is(err, memberrepoport.ErrNotFound) {
			t.Fatalf("err=%v, want ErrNotFound", err)
		}
	})

	t.Run("CreateThenGet", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		legal := 42
		m := memberFixture(
			personFixture("Alice Smith", "alice@example.com"),
			domain.Category{Kind: domain.CategoryActive, FeeCents: 100000},
			&legal,
			time.Unix(100, 0).UTC(),
		)
		if err := repo.Create(ctx, m); err != nil {
			t.Fatalf("Create: %v", err)
		}
		got, err := repo.GetByID(ctx, m.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.LegalID == nil || *got.LegalID != 42 {
			t.Fatalf("legalID=%v, want 42", got.LegalID)
		}
		if got.Category.Kind != domain.CategoryActive || got.Category.FeeCents != 100000 {
			t.Fatalf("category=%+v", got.Category)
		}
		if got.Person == nil || got.Person.FullName != "Alice Smith" {
			t.Fatalf("person=%+v", got.Person)
		}
	})

	t.Run("Create_DuplicateID", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		m := memberFixture(
			personFixture("Bob", "bob@example.com"),
			domain.Category{Kind: domain.CategorySupporter, FeeCents: 50000},
			nil,
			time.Unix(100, 0).UTC(),
		)
		if err := repo.Create(ctx, m); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if err := repo.Create(ctx, m); !errors.Is(err, memberrepoport.ErrAlreadyExists) {
			t.Fatalf("err=%v, want ErrAlreadyExists", err)
		}
	})

	t.Run("Update_SetsLegalID", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		m := memberFixture(
			personFixture("Carol", "carol@example.com"),
			domain.Category{Kind: domain.CategoryActive, FeeCents: 100000},
			nil,
			time.Unix(100, 0).UTC(),
		)
		if err := repo.Create(ctx, m); err != nil {
			t.Fatalf("Create: %v", err)
		}
		legal := 7
		m.LegalID = &legal
		m.UpdatedAt = time.Unix(200, 0).UTC()
		if err := repo.Update(ctx, m); err != nil {
			t.Fatalf("Update: %v", err)
		}
		got, err := repo.GetByID(ctx, m.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.LegalID == nil || *got.LegalID != 7 {
			t.Fatalf("legalID=%v, want 7", got.LegalID)
		}
	})

	t.Run("List_FiltersAndOrder", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		legal1, legal2 := 1, 2
		paying := domain.Category{Kind: domain.CategoryActive, FeeCents: 100000}
		free := domain.Category{Kind: domain.CategoryCollaborator, FeeCents: 0}

		approvedPaying := memberFixture(personFixture("A", "a@example.com"), paying, &legal1, time.Unix(100, 0).UTC())
		approvedFree := memberFixture(personFixture("B", "b@example.com"), free, &legal2, time.Unix(200, 0).UTC())
		pendingPaying := memberFixture(personFixture("C", "c@example.com"), paying, nil, time.Unix(300, 0).UTC())

		for _, m := range []memberrepoport.Member{approvedPaying, approvedFree, pendingPaying} {
			if err := repo.Create(ctx, m); err != nil {
				t.Fatalf("Create: %v", err)
			}
		}

		approved := true
		got, err := repo.List(ctx, memberrepoport.Filter{Approved: &approved, PayingOnly: true})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(got) != 1 || got[0].ID != approvedPaying.ID {
			t.Fatalf("approved+paying: got %d rows", len(got))
		}

		pending := false
		got, err = repo.List(ctx, memberrepoport.Filter{Approved: &pending})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(got) != 1 || got[0].ID != pendingPaying.ID {
			t.Fatalf("pending: got %d rows", len(got))
		}

		all, err := repo.List(ctx, memberrepoport.Filter{})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("all: got %d rows, want 3", len(all))
		}
		for i := 1; i < len(all); i++ {
			if all[i].CreatedAt.Before(all[i-1].CreatedAt) {
				t.Fatalf("rows not ordered by CreatedAt ascending")
			}
		}
	})
}

func RunQuotaRepo(t *testing.T, newRepo QuotaRepoFactory, newMember func(t *testing.T) domain.MemberID) {
	t.Helper()
	ctx := context.Background()

	t.Run("Latest_NoQuotas", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		_, ok, err := repo.LatestOnOrBefore(ctx, newMember(t), domain.Period{Year: 2024, Month: 3})
		if err != nil {
			t.Fatalf("LatestOnOrBefore: %v", err)
		}
		if ok {
			t.Fatalf("expected ok=false with no quotas")
		}
	})

	t.Run("Latest_PicksMostRecentAtOrBeforeCutoff", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		id := newMember(t)
		for _, p := range []domain.Period{
			{Year: 2023, Month: 11},
			{Year: 2024, Month: 1},
			{Year: 2024, Month: 5},
		} {
			q := domain.Quota{MemberID: id, Period: p, Code: p.String(), PaidAt: time.Unix(100, 0).UTC()}
			if err := repo.Add(ctx, q); err != nil {
				t.Fatalf("Add(%v): %v", p, err)
			}
		}

		got, ok, err := repo.LatestOnOrBefore(ctx, id, domain.Period{Year: 2024, Month: 3})
		if err != nil || !ok {
			t.Fatalf("LatestOnOrBefore: ok=%v err=%v", ok, err)
		}
		if got.Code != "2024-01" {
			t.Fatalf("code=%q, want 2024-01", got.Code)
		}

		// Cutoff equal to a paid period includes it.
		got, ok, err = repo.LatestOnOrBefore(ctx, id, domain.Period{Year: 2024, Month: 5})
		if err != nil || !ok {
			t.Fatalf("LatestOnOrBefore: ok=%v err=%v", ok, err)
		}
		if got.Code != "2024-05" {
			t.Fatalf("code=%q, want 2024-05", got.Code)
		}

		// Cutoff before every payment finds nothing.
		_, ok, err = repo.LatestOnOrBefore(ctx, id, domain.Period{Year: 2023, Month: 10})
		if err != nil {
			t.Fatalf("LatestOnOrBefore: %v", err)
		}
		if ok {
			t.Fatalf("expected ok=false before first payment")
		}
	})

	t.Run("Add_NormalizesPeriod", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		id := newMember(t)
		// Month 0 folds back to December of the previous year before storage.
		q := domain.Quota{MemberID: id, Period: domain.Period{Year: 2024, Month: 0}, Code: "2023-12", PaidAt: time.Unix(100, 0).UTC()}
		if err := repo.Add(ctx, q); err != nil {
			t.Fatalf("Add: %v", err)
		}

		got, ok, err := repo.LatestOnOrBefore(ctx, id, domain.Period{Year: 2023, Month: 12})
		if err != nil || !ok {
			t.Fatalf("LatestOnOrBefore: ok=%v err=%v", ok, err)
		}
		if !got.Period.Equal(domain.Period{Year: 2023, Month: 12}) {
			t.Fatalf("period=%v, want 2023-12", got.Period)
		}

		dup := domain.Quota{MemberID: id, Period: domain.Period{Year: 2023, Month: 12}, Code: "2023-12", PaidAt: time.Unix(100, 0).UTC()}
		if err := repo.Add(ctx, dup); !errors.Is(err, quotarepoport.ErrDuplicatePeriod) {
			t.Fatalf("err=%v, want ErrDuplicatePeriod", err)
		}
	})

	t.Run("Add_DuplicatePeriod", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		id := newMember(t)
		q := domain.Quota{MemberID: id, Period: domain.Period{Year: 2024, Month: 2}, Code: "2024-02", PaidAt: time.Unix(100, 0).UTC()}
		if err := repo.Add(ctx, q); err != nil {
			t.Fatalf("Add: %v", err)
		}
		if err := repo.Add(ctx, q); !errors.Is(err, quotarepoport.ErrDuplicatePeriod) {
			t.Fatalf("err=%v, want ErrDuplicatePeriod", err)
		}
	})
}

func RunCategoryRepo(t *testing.T, newRepo CategoryRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	t.Run("GetByKind", func(t *testing.T) {
		c, err := repo.GetByKind(ctx, domain.CategoryStudent)
		if err != nil {
			t.Fatalf("GetByKind: %v", err)
		}
		if c.Kind != domain.CategoryStudent {
			t.Fatalf("kind=%q", c.Kind)
		}
	})

	t.Run("GetByKind_NotFound", func(t *testing.T) {
		_, err := repo.GetByKind(ctx, domain.CategoryKind("NOPE"))
		if !errors.Is(err, categoryrepoport.ErrNotFound) {
			t.Fatalf("err=%v, want ErrNotFound", err)
		}
	})

	t.Run("List_OrderedByFeeDescending", func(t *testing.T) {
		cats, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(cats) == 0 {
			t.Fatalf("expected seeded categories")
		}
		for i := 1; i < len(cats); i++ {
			if cats[i].FeeCents > cats[i-1].FeeCents {
				t.Fatalf("categories not ordered by fee descending")
			}
		}
	})
}

func RunPersonRepo(t *testing.T, newRepo PersonRepoFactory) {
	t.Helper()
	ctx := context.Background()

	t.Run("CreateThenGet", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		p := *personFixture("Alice Smith", "alice@example.com")
		nick := "ali"
		p.Nickname = &nick
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}

		got, err := repo.GetByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Nickname == nil || *got.Nickname != "ali" {
			t.Fatalf("nickname=%v", got.Nickname)
		}

		got, err = repo.GetByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetByEmail: %v", err)
		}
		if got.ID != p.ID {
			t.Fatalf("id=%q, want %q", got.ID, p.ID)
		}
	})

	t.Run("Create_EmailTaken", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		p1 := *personFixture("Alice", "dup@example.com")
		p2 := *personFixture("Other Alice", "dup@example.com")
		if err := repo.Create(ctx, p1); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if err := repo.Create(ctx, p2); !errors.Is(err, personrepoport.ErrEmailTaken) {
			t.Fatalf("err=%v, want ErrEmailTaken", err)
		}
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		if _, err := repo.GetByID(ctx, domain.PersonID(uuid.NewString())); !errors.Is(err, personrepoport.ErrNotFound) {
			t.Fatalf("err=%v, want ErrNotFound", err)
		}
		if _, err := repo.GetByEmail(ctx, "missing@example.com"); !errors.Is(err, personrepoport.ErrNotFound) {
			t.Fatalf("err=%v, want ErrNotFound", err)
		}
	})
}

func RunOrgRepo(t *testing.T, newRepo OrgRepoFactory) {
	t.Helper()
	ctx := context.Background()

	t.Run("CreateThenGet", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		o := domain.Organization{
			ID:           domain.OrganizationID(uuid.NewString()),
			Name:         "Friendly Org",
			ContactEmail: "contact@example.org",
			CreatedAt:    time.Unix(100, 0).UTC(),
			UpdatedAt:    time.Unix(100, 0).UTC(),
		}
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("Create: %v", err)
		}
		got, err := repo.GetByID(ctx, o.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Name != "Friendly Org" {
			t.Fatalf("name=%q", got.Name)
		}
		if err := repo.Create(ctx, o); !errors.Is(err, orgrepoport.ErrAlreadyExists) {
			t.Fatalf("err=%v, want ErrAlreadyExists", err)
		}
	})
}
