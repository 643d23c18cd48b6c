package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/asoclibre/members-api/internal/app/debts"
	"github.com/asoclibre/members-api/internal/app/onboarding"
	"github.com/asoclibre/members-api/internal/app/signup"
	"github.com/asoclibre/members-api/internal/domain"
	"github.com/asoclibre/members-api/internal/platform/metrics"
)

// Server is the HTTP adapter. It decodes requests, delegates to the
// application services, and encodes typed responses.
type Server struct {
	Signup     *signup.Service
	Debts      *debts.Service
	Onboarding *onboarding.Service

	Log     *slog.Logger
	Metrics *metrics.Metrics
}

func NewServer(signupSvc *signup.Service, debtsSvc *debts.Service, onboardingSvc *onboarding.Service, log *slog.Logger, m *metrics.Metrics) *Server {
	return &Server{
		Signup:     signupSvc,
		Debts:      debtsSvc,
		Onboarding: onboardingSvc,
		Log:        log,
		Metrics:    m,
	}
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.Signup.ListCategories(r.Context())
	if err != nil {
		s.Log.Error("list categories", "err", err)
		writeAppError(w, r, err)
		return
	}
	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryResponse{Kind: string(c.Kind), FeeCents: c.FeeCents})
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

func (s *Server) handleSignupPerson(w http.ResponseWriter, r *http.Request) {
	var req signupPersonRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var nick *string
	if req.Nickname.IsSpecified() && !req.Nickname.IsNull() {
		v := req.Nickname.MustGet()
		nick = &v
	}

	p, err := s.Signup.SignupPerson(r.Context(), signup.SignupPersonInput{
		FullName: req.FullName,
		Email:    string(req.Email),
		Nickname: nick,
		Category: domain.CategoryKind(req.Category),
	})
	if err != nil {
		s.Metrics.SignupsTotal.WithLabelValues("person", "rejected").Inc()
		writeAppError(w, r, err)
		return
	}
	s.Metrics.SignupsTotal.WithLabelValues("person", "accepted").Inc()
	s.Log.Info("person signup accepted", "personId", string(p.ID))

	writeJSON(w, http.StatusCreated, personResponse{
		ID:        string(p.ID),
		FullName:  p.FullName,
		Email:     p.Email,
		Nickname:  p.Nickname,
		CreatedAt: p.CreatedAt,
	})
}

func (s *Server) handleSignupOrganization(w http.ResponseWriter, r *http.Request) {
	var req signupOrganizationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	o, err := s.Signup.SignupOrganization(r.Context(), signup.SignupOrganizationInput{
		Name:         req.Name,
		ContactEmail: string(req.ContactEmail),
		Category:     domain.CategoryKind(req.Category),
	})
	if err != nil {
		s.Metrics.SignupsTotal.WithLabelValues("organization", "rejected").Inc()
		writeAppError(w, r, err)
		return
	}
	s.Metrics.SignupsTotal.WithLabelValues("organization", "accepted").Inc()
	s.Log.Info("organization signup accepted", "organizationId", string(o.ID))

	writeJSON(w, http.StatusCreated, organizationResponse{
		ID:           string(o.ID),
		Name:         o.Name,
		ContactEmail: o.ContactEmail,
		CreatedAt:    o.CreatedAt,
	})
}

func (s *Server) handleDebtsReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.Debts.BuildReport(r.Context(), cutoffFromQuery(r))
	if err != nil {
		s.Log.Error("debts report", "err", err)
		writeAppError(w, r, err)
		return
	}
	s.Metrics.ReportsGenerated.WithLabelValues("debts").Inc()
	s.Metrics.DebtorsReported.Set(float64(len(report.Rows)))

	out := debtsReportResponse{
		LimitYear:  report.Cutoff.Year,
		LimitMonth: report.Cutoff.Month,
		Debts:      make([]debtRow, 0, len(report.Rows)),
	}
	for _, row := range report.Rows {
		out.Debts = append(out.Debts, debtRow{
			Member:      toMemberSummary(row.Member),
			LastPayment: row.LastPayment,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMissingReport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.Onboarding.BuildReport(r.Context())
	if err != nil {
		s.Log.Error("missing report", "err", err)
		writeAppError(w, r, err)
		return
	}
	s.Metrics.ReportsGenerated.WithLabelValues("missing").Inc()

	out := missingReportResponse{Incompletes: make([]missingRow, 0, len(rows))}
	for _, row := range rows {
		out.Incompletes = append(out.Incompletes, missingRow{
			Member:               toMemberSummary(row.Member),
			MissingStudentCertif: row.MissingStudentCertif,
			MissingCollabAccept:  row.MissingCollabAccept,
			MissingNickname:      row.MissingNickname,
			MissingPicture:       row.MissingPicture,
			MissingPayment:       row.MissingPayment,
			MissingSignedLetter:  row.MissingSignedLetter,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// cutoffFromQuery reads limit_year/limit_month. Malformed or absent values
// never fail the request: the report falls back to the default cutoff.
func cutoffFromQuery(r *http.Request) *domain.Period {
	year, errY := strconv.Atoi(r.URL.Query().Get("limit_year"))
	month, errM := strconv.Atoi(r.URL.Query().Get("limit_month"))
	if errY != nil || errM != nil {
		return nil
	}
	return &domain.Period{Year: year, Month: month}
}
