package domain

import "time"

// Member links a Person (or Organization) to a Category, together with the
// onboarding artifacts collected so far. Exactly one of Person/Organization
// is set.
type Member struct {
	ID MemberID

	// LegalID is assigned when the member is formally approved; nil means
	// the applicant is still pending.
	LegalID *int

	Category Category

	Person       *Person
	Organization *Organization

	// FirstPayment is the first period the member paid (or committed to pay)
	// a quota for; nil means no payment was recorded yet.
	FirstPayment *Period

	HasStudentCertificate     bool
	HasCollaboratorAcceptance bool
	HasSubscriptionLetter     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Approved reports whether the member has been formally approved.
func (m Member) Approved() bool { return m.LegalID != nil }

// DisplayName returns the person's full name or the organization's name.
func (m Member) DisplayName() string {
	switch {
	case m.Person != nil:
		return m.Person.FullName
	case m.Organization != nil:
		return m.Organization.Name
	default:
		return ""
	}
}
