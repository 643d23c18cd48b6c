package httpapi

import (
	"time"

	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/asoclibre/members-api/internal/ports/out/memberrepo"
)

type signupPersonRequest struct {
	FullName string              `json:"fullName"`
	Email    openapi_types.Email `json:"email"`
	// Nickname distinguishes omitted/null (no nickname) from a set value.
	Nickname nullable.Nullable[string] `json:"nickname"`
	Category string                    `json:"category"`
}

type signupOrganizationRequest struct {
	Name         string              `json:"name"`
	ContactEmail openapi_types.Email `json:"contactEmail"`
	Category     string              `json:"category"`
}

type personResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Nickname  *string   `json:"nickname,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type organizationResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contactEmail"`
	CreatedAt    time.Time `json:"createdAt"`
}

type categoryResponse struct {
	Kind     string `json:"kind"`
	FeeCents int64  `json:"feeCents"`
}

type memberSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	LegalID  *int   `json:"legalId,omitempty"`
}

type debtRow struct {
	Member      memberSummary `json:"member"`
	LastPayment string        `json:"lastPayment"`
}

type debtsReportResponse struct {
	LimitYear  int       `json:"limitYear"`
	LimitMonth int       `json:"limitMonth"`
	Debts      []debtRow `json:"debts"`
}

type missingRow struct {
	Member               memberSummary `json:"member"`
	MissingStudentCertif string        `json:"missingStudentCertif"`
	MissingCollabAccept  string        `json:"missingCollabAccept"`
	MissingNickname      string        `json:"missingNickname"`
	MissingPicture       string        `json:"missingPicture"`
	MissingPayment       string        `json:"missingPayment"`
	MissingSignedLetter  string        `json:"missingSignedLetter"`
}

type missingReportResponse struct {
	Incompletes []missingRow `json:"incompletes"`
}

func toMemberSummary(m memberrepo.Member) memberSummary {
	return memberSummary{
		ID:       string(m.ID),
		Name:     toDomainMemberName(m),
		Category: string(m.Category.Kind),
		LegalID:  m.LegalID,
	}
}

func toDomainMemberName(m memberrepo.Member) string {
	switch {
	case m.Person != nil:
		return m.Person.FullName
	case m.Organization != nil:
		return m.Organization.Name
	default:
		return ""
	}
}
