package onboarding

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	memmemberrepo "github.com/asoclibre/members-api/internal/adapters/memory/memberrepo"
	"github.com/asoclibre/members-api/internal/domain"
	"github.com/asoclibre/members-api/internal/ports/out/memberrepo"
)

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func pendingMember(kind domain.CategoryKind, createdAt time.Time) memberrepo.Member {
	return memberrepo.Member{
		ID:       domain.MemberID(uuid.NewString()),
		Category: domain.Category{Kind: kind, FeeCents: 25000},
		Person: &domain.Person{
			ID:       domain.PersonID(uuid.NewString()),
			FullName: "Pending Applicant",
			Email:    uuid.NewString() + "@example.com",
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestCheck_StudentCertificate(t *testing.T) {
	t.Parallel()

	student := pendingMember(domain.CategoryStudent, time.Unix(100, 0).UTC())
	if f := Check(student); !f.StudentCertificate {
		t.Fatalf("student without certificate should be flagged")
	}

	student.HasStudentCertificate = true
	if f := Check(student); f.StudentCertificate {
		t.Fatalf("student with certificate should not be flagged")
	}

	// The student flag does not apply to collaborators.
	collab := pendingMember(domain.CategoryCollaborator, time.Unix(100, 0).UTC())
	f := Check(collab)
	if f.StudentCertificate {
		t.Fatalf("collaborator must never be flagged for student certificate")
	}
	if !f.CollaboratorAcceptance {
		t.Fatalf("collaborator without acceptance should be flagged")
	}
}

func TestCheck_CollaboratorAcceptanceNotApplicableElsewhere(t *testing.T) {
	t.Parallel()

	for _, kind := range []domain.CategoryKind{domain.CategoryActive, domain.CategorySupporter, domain.CategoryStudent} {
		m := pendingMember(kind, time.Unix(100, 0).UTC())
		if Check(m).CollaboratorAcceptance {
			t.Fatalf("kind=%s must not be flagged for collaborator acceptance", kind)
		}
	}
}

func TestCheck_PersonFields(t *testing.T) {
	t.Parallel()

	m := pendingMember(domain.CategoryActive, time.Unix(100, 0).UTC())

	f := Check(m)
	if !f.Nickname || !f.Picture {
		t.Fatalf("missing nickname/picture should be flagged: %+v", f)
	}

	m.Person.Nickname = strPtr("nick")
	m.Person.Picture = strPtr("avatars/nick.png")
	f = Check(m)
	if f.Nickname || f.Picture {
		t.Fatalf("provided nickname/picture should not be flagged: %+v", f)
	}

	// An empty picture reference counts as absent; an empty nickname does not.
	m.Person.Nickname = strPtr("")
	m.Person.Picture = strPtr("")
	f = Check(m)
	if f.Nickname {
		t.Fatalf("empty-string nickname is still a nickname")
	}
	if !f.Picture {
		t.Fatalf("empty picture reference should be flagged")
	}
}

func TestCheck_OrganizationMemberSkipsPersonChecks(t *testing.T) {
	t.Parallel()

	m := memberrepo.Member{
		ID:       domain.MemberID(uuid.NewString()),
		Category: domain.Category{Kind: domain.CategoryActive, FeeCents: 100000},
		Organization: &domain.Organization{
			ID:   domain.OrganizationID(uuid.NewString()),
			Name: "Friendly Org",
		},
	}
	f := Check(m)
	if f.Nickname || f.Picture {
		t.Fatalf("organization members have no person profile to flag: %+v", f)
	}
}

func TestCheck_PaymentAndLetter(t *testing.T) {
	t.Parallel()

	m := pendingMember(domain.CategoryActive, time.Unix(100, 0).UTC())
	f := Check(m)
	if !f.FirstPayment || !f.SignedLetter {
		t.Fatalf("missing payment/letter should be flagged: %+v", f)
	}

	m.FirstPayment = &domain.Period{Year: 2024, Month: 2}
	m.HasSubscriptionLetter = true
	f = Check(m)
	if f.FirstPayment || f.SignedLetter {
		t.Fatalf("recorded payment/letter should not be flagged: %+v", f)
	}
}

func TestService_BuildReport_OnlyPendingMembers(t *testing.T) {
	t.Parallel()

	repo := memmemberrepo.NewRepo()
	svc := NewService(repo)

	pending := pendingMember(domain.CategoryStudent, time.Unix(100, 0).UTC())
	if err := repo.Create(context.Background(), pending); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Approved member with everything missing must still be excluded.
	approved := pendingMember(domain.CategoryStudent, time.Unix(200, 0).UTC())
	approved.LegalID = intPtr(1)
	if err := repo.Create(context.Background(), approved); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := svc.BuildReport(context.Background())
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows=%d, want 1", len(rows))
	}
	if rows[0].Member.ID != pending.ID {
		t.Fatalf("unexpected member: %v", rows[0].Member.ID)
	}
}

func TestService_BuildReport_MarkerMapping(t *testing.T) {
	t.Parallel()

	repo := memmemberrepo.NewRepo()
	svc := NewService(repo)

	m := pendingMember(domain.CategoryCollaborator, time.Unix(100, 0).UTC())
	m.Person.Nickname = strPtr("nick")
	m.HasSubscriptionLetter = true
	if err := repo.Create(context.Background(), m); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := svc.BuildReport(context.Background())
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows=%d, want 1", len(rows))
	}
	row := rows[0]
	if row.MissingStudentCertif != "" {
		t.Fatalf("student check should be not-applicable for collaborator, got %q", row.MissingStudentCertif)
	}
	if row.MissingCollabAccept != MissingMarker {
		t.Fatalf("missingCollabAccept=%q, want %q", row.MissingCollabAccept, MissingMarker)
	}
	if row.MissingNickname != "" {
		t.Fatalf("missingNickname=%q, want empty", row.MissingNickname)
	}
	if row.MissingPicture != MissingMarker || row.MissingPayment != MissingMarker {
		t.Fatalf("picture/payment should be missing: %+v", row)
	}
	if row.MissingSignedLetter != "" {
		t.Fatalf("missingSignedLetter=%q, want empty", row.MissingSignedLetter)
	}
}

func TestService_BuildReport_Idempotent(t *testing.T) {
	t.Parallel()

	repo := memmemberrepo.NewRepo()
	svc := NewService(repo)
	if err := repo.Create(context.Background(), pendingMember(domain.CategoryStudent, time.Unix(100, 0).UTC())); err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := svc.BuildReport(context.Background())
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	second, err := svc.BuildReport(context.Background())
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("report not idempotent")
	}
}
