package memberrepo

import (
	"context"
	"time"

	"github.com/asoclibre/members-api/internal/domain"
)

// Member is the persistence shape used by the member repository. It carries a
// snapshot of the linked person/organization so report builders do not need a
// second lookup per member.
type Member struct {
	ID domain.MemberID

	// LegalID is nil while the applicant is pending approval.
	LegalID *int

	Category domain.Category

	Person       *domain.Person
	Organization *domain.Organization

	FirstPayment *domain.Period

	HasStudentCertificate     bool
	HasCollaboratorAcceptance bool
	HasSubscriptionLetter     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter narrows List results. The zero value matches every member.
type Filter struct {
	// Approved filters on approval state (legal id set); nil means any.
	Approved *bool
	// PayingOnly keeps only members whose category fee is positive.
	PayingOnly bool
}

// Repository provides access to persisted members.
//
// Result ordering expectations:
// - List should return results ordered by CreatedAt ascending (ID as tiebreak)
//   to keep report row order deterministic.
type Repository interface {
	Create(ctx context.Context, m Member) error
	Update(ctx context.Context, m Member) error

	GetByID(ctx context.Context, id domain.MemberID) (Member, error)

	List(ctx context.Context, f Filter) ([]Member, error)
}
