package debts

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	memclock "github.com/asoclibre/members-api/internal/adapters/memory/clock"
	memmemberrepo "github.com/asoclibre/members-api/internal/adapters/memory/memberrepo"
	memquotarepo "github.com/asoclibre/members-api/internal/adapters/memory/quotarepo"
	"github.com/asoclibre/members-api/internal/domain"
	"github.com/asoclibre/members-api/internal/ports/out/memberrepo"
)

type fixture struct {
	members *memmemberrepo.Repo
	quotas  *memquotarepo.Repo
	clk     *memclock.ManualClock
	svc     *Service
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	f := &fixture{
		members: memmemberrepo.NewRepo(),
		quotas:  memquotarepo.NewRepo(),
		clk:     memclock.NewManualClock(now),
	}
	f.svc = NewService(f.members, f.quotas, f.clk)
	return f
}

func (f *fixture) addMember(t *testing.T, name string, feeCents int64, legalID *int, createdAt time.Time) domain.MemberID {
	t.Helper()
	m := memberrepo.Member{
		ID:      domain.MemberID(uuid.NewString()),
		LegalID: legalID,
		Category: domain.Category{
			Kind:     domain.CategoryActive,
			FeeCents: feeCents,
		},
		Person: &domain.Person{
			ID:       domain.PersonID(uuid.NewString()),
			FullName: name,
			Email:    uuid.NewString() + "@example.com",
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := f.members.Create(context.Background(), m); err != nil {
		t.Fatalf("create member: %v", err)
	}
	return m.ID
}

func (f *fixture) addQuota(t *testing.T, id domain.MemberID, p domain.Period) {
	t.Helper()
	q := domain.Quota{MemberID: id, Period: p, Code: p.String(), PaidAt: f.clk.Now()}
	if err := f.quotas.Add(context.Background(), q); err != nil {
		t.Fatalf("add quota: %v", err)
	}
}

func intPtr(v int) *int { return &v }

func TestService_BuildReport_ExcludesPendingAndFreeCategories(t *testing.T) {
	t.Parallel()

	f := newFixture(t, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
	base := time.Unix(100, 0).UTC()

	debtor := f.addMember(t, "Paying Approved", 100000, intPtr(1), base)
	f.addMember(t, "Pending Applicant", 100000, nil, base.Add(time.Second))
	f.addMember(t, "Free Tier", 0, intPtr(2), base.Add(2*time.Second))

	report, err := f.svc.BuildReport(context.Background(), nil)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if len(report.Rows) != 1 {
		t.Fatalf("rows=%d, want 1", len(report.Rows))
	}
	if report.Rows[0].Member.ID != debtor {
		t.Fatalf("unexpected member in report: %v", report.Rows[0].Member.ID)
	}
}

func TestService_BuildReport_NeverPaidShowsPlaceholder(t *testing.T) {
	t.Parallel()

	f := newFixture(t, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
	f.addMember(t, "Never Paid", 100000, intPtr(1), time.Unix(100, 0).UTC())

	report, err := f.svc.BuildReport(context.Background(), nil)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if len(report.Rows) != 1 {
		t.Fatalf("rows=%d, want 1", len(report.Rows))
	}
	if report.Rows[0].LastPayment != NoPaymentLabel {
		t.Fatalf("lastPayment=%q, want %q", report.Rows[0].LastPayment, NoPaymentLabel)
	}
}

func TestService_BuildReport_PaidUpMemberExcluded(t *testing.T) {
	t.Parallel()

	f := newFixture(t, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
	id := f.addMember(t, "Paid Up", 100000, intPtr(1), time.Unix(100, 0).UTC())
	// Default cutoff for May is March.
	f.addQuota(t, id, domain.Period{Year: 2024, Month: 3})

	report, err := f.svc.BuildReport(context.Background(), nil)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if len(report.Rows) != 0 {
		t.Fatalf("rows=%d, want 0", len(report.Rows))
	}
	if !report.Cutoff.Equal(domain.Period{Year: 2024, Month: 3}) {
		t.Fatalf("cutoff=%v, want 2024-03", report.Cutoff)
	}
}

func TestService_BuildReport_LapsedMemberListedWithLastCode(t *testing.T) {
	t.Parallel()

	f := newFixture(t, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
	id := f.addMember(t, "Lapsed", 100000, intPtr(1), time.Unix(100, 0).UTC())
	f.addQuota(t, id, domain.Period{Year: 2023, Month: 12})

	report, err := f.svc.BuildReport(context.Background(), nil)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if len(report.Rows) != 1 {
		t.Fatalf("rows=%d, want 1", len(report.Rows))
	}
	if report.Rows[0].LastPayment != "2023-12" {
		t.Fatalf("lastPayment=%q, want 2023-12", report.Rows[0].LastPayment)
	}
}

func TestService_BuildReport_ExplicitCutoffNormalized(t *testing.T) {
	t.Parallel()

	f := newFixture(t, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
	id := f.addMember(t, "Member", 100000, intPtr(1), time.Unix(100, 0).UTC())
	f.addQuota(t, id, domain.Period{Year: 2023, Month: 11})

	// Month zero folds to the previous December.
	cutoff := domain.Period{Year: 2024, Month: 0}
	report, err := f.svc.BuildReport(context.Background(), &cutoff)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if !report.Cutoff.Equal(domain.Period{Year: 2023, Month: 12}) {
		t.Fatalf("cutoff=%v, want 2023-12", report.Cutoff)
	}
	// Last payment 2023-11 is before 2023-12, so the member is in debt.
	if len(report.Rows) != 1 {
		t.Fatalf("rows=%d, want 1", len(report.Rows))
	}
}

func TestService_BuildReport_Idempotent(t *testing.T) {
	t.Parallel()

	f := newFixture(t, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
	id := f.addMember(t, "Lapsed", 100000, intPtr(1), time.Unix(100, 0).UTC())
	f.addQuota(t, id, domain.Period{Year: 2024, Month: 1})
	f.addMember(t, "Never Paid", 100000, intPtr(2), time.Unix(200, 0).UTC())

	first, err := f.svc.BuildReport(context.Background(), nil)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	second, err := f.svc.BuildReport(context.Background(), nil)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("report not idempotent:\nfirst=%+v\nsecond=%+v", first, second)
	}
}

func TestService_Evaluate_MemberNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))

	_, _, err := f.svc.Evaluate(context.Background(), domain.MemberID(uuid.NewString()), domain.Period{Year: 2024, Month: 3})
	if err == nil {
		t.Fatalf("expected error")
	}
	ae := (*Error)(nil)
	if !errors.As(err, &ae) || ae.Status != 404 || ae.Code != "MEMBER_NOT_FOUND" {
		t.Fatalf("err=%v, want MEMBER_NOT_FOUND 404", err)
	}
}

func TestService_Evaluate_ReturnsLastQuota(t *testing.T) {
	t.Parallel()

	f := newFixture(t, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
	id := f.addMember(t, "Member", 100000, intPtr(1), time.Unix(100, 0).UTC())
	f.addQuota(t, id, domain.Period{Year: 2024, Month: 1})
	f.addQuota(t, id, domain.Period{Year: 2024, Month: 2})

	inDebt, last, err := f.svc.Evaluate(context.Background(), id, domain.Period{Year: 2024, Month: 4})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !inDebt {
		t.Fatalf("expected in debt (last payment 2024-02, cutoff 2024-04)")
	}
	if last == nil || last.Code != "2024-02" {
		t.Fatalf("last=%+v, want code 2024-02", last)
	}

	inDebt, last, err = f.svc.Evaluate(context.Background(), id, domain.Period{Year: 2024, Month: 2})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if inDebt {
		t.Fatalf("cutoff equal to last payment should not be in debt")
	}
	if last == nil || last.Code != "2024-02" {
		t.Fatalf("last=%+v, want code 2024-02", last)
	}
}

type alwaysInDebt struct{}

func (alwaysInDebt) InDebt(memberrepo.Member, *domain.Quota, domain.Period) bool { return true }

func TestService_PolicyIsPluggable(t *testing.T) {
	t.Parallel()

	f := newFixture(t, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
	id := f.addMember(t, "Paid Up", 100000, intPtr(1), time.Unix(100, 0).UTC())
	f.addQuota(t, id, domain.Period{Year: 2024, Month: 3})
	f.svc.Policy = alwaysInDebt{}

	report, err := f.svc.BuildReport(context.Background(), nil)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if len(report.Rows) != 1 {
		t.Fatalf("rows=%d, want 1 under alwaysInDebt policy", len(report.Rows))
	}
}
