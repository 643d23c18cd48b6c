package signup

import "github.com/asoclibre/members-api/internal/domain"

// SignupPersonInput is an individual's signup application.
type SignupPersonInput struct {
	FullName string
	Email    string
	// Nickname is optional; nil means the applicant left it blank.
	Nickname *string
	Category domain.CategoryKind
}

// SignupOrganizationInput is an organization's signup application.
type SignupOrganizationInput struct {
	Name         string
	ContactEmail string
	Category     domain.CategoryKind
}
