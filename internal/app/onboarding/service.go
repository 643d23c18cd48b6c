package onboarding

import (
	"context"

	"github.com/asoclibre/members-api/internal/ports/out/memberrepo"
)

// MissingMarker is the fixed display sentinel for a missing artifact. Fields
// that are complete (or not applicable) render as the empty string.
const MissingMarker = "MISSING"

// Row is one missing-artifacts report entry, shaped for direct rendering:
// each field holds MissingMarker or "".
type Row struct {
	Member memberrepo.Member

	MissingStudentCertif string
	MissingCollabAccept  string
	MissingNickname      string
	MissingPicture       string
	MissingPayment       string
	MissingSignedLetter  string
}

// Service builds the report of pending applicants and the onboarding
// artifacts they still owe.
type Service struct {
	members memberrepo.Repository
}

func NewService(members memberrepo.Repository) *Service {
	return &Service{members: members}
}

// BuildReport checks every not-yet-approved member. Approved members are
// assumed complete and excluded.
func (s *Service) BuildReport(ctx context.Context) ([]Row, error) {
	approved := false
	ms, err := s.members.List(ctx, memberrepo.Filter{Approved: &approved})
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(ms))
	for _, m := range ms {
		f := Check(m)
		rows = append(rows, Row{
			Member:               m,
			MissingStudentCertif: marker(f.StudentCertificate),
			MissingCollabAccept:  marker(f.CollaboratorAcceptance),
			MissingNickname:      marker(f.Nickname),
			MissingPicture:       marker(f.Picture),
			MissingPayment:       marker(f.FirstPayment),
			MissingSignedLetter:  marker(f.SignedLetter),
		})
	}
	return rows, nil
}

func marker(missing bool) string {
	if missing {
		return MissingMarker
	}
	return ""
}
