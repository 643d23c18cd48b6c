package onboarding

import (
	"github.com/asoclibre/members-api/internal/domain"
	"github.com/asoclibre/members-api/internal/ports/out/memberrepo"
)

// MissingFlags records which required onboarding artifacts a pending member
// still lacks. Category-specific checks are false ("not applicable") for
// members of other categories.
type MissingFlags struct {
	StudentCertificate     bool
	CollaboratorAcceptance bool
	Nickname               bool
	Picture                bool
	FirstPayment           bool
	SignedLetter           bool
}

// Check determines which onboarding artifacts the member is missing.
//
// Person-profile checks (nickname, picture) only apply to person-backed
// members; organization-backed members are never flagged for them.
func Check(m memberrepo.Member) MissingFlags {
	var f MissingFlags

	f.StudentCertificate = m.Category.Kind == domain.CategoryStudent && !m.HasStudentCertificate
	f.CollaboratorAcceptance = m.Category.Kind == domain.CategoryCollaborator && !m.HasCollaboratorAcceptance

	if m.Person != nil {
		f.Nickname = m.Person.Nickname == nil
		f.Picture = !m.Person.HasPicture()
	}

	f.FirstPayment = m.FirstPayment == nil
	f.SignedLetter = !m.HasSubscriptionLetter

	return f
}
