package debts

import (
	"context"
	"errors"

	"github.com/asoclibre/members-api/internal/domain"
	clockport "github.com/asoclibre/members-api/internal/ports/out/clock"
	"github.com/asoclibre/members-api/internal/ports/out/memberrepo"
	"github.com/asoclibre/members-api/internal/ports/out/quotarepo"
)

// NoPaymentLabel is the report placeholder for members who never paid.
const NoPaymentLabel = "-"

// Row is one debts-report entry: a member found in arrears and the label of
// their last recorded payment.
type Row struct {
	Member      memberrepo.Member
	LastPayment string
}

// Report is the materialized debts report for one cutoff period.
type Report struct {
	Cutoff domain.Period
	Rows   []Row
}

// Service evaluates arrears and builds the debts report.
type Service struct {
	members memberrepo.Repository
	quotas  quotarepo.Repository
	clk     clockport.Clock

	// Policy decides the arrears rule; defaults to LapsedPolicy.
	Policy ArrearsPolicy
}

func NewService(members memberrepo.Repository, quotas quotarepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		members: members,
		quotas:  quotas,
		clk:     clk,
		Policy:  LapsedPolicy{},
	}
}

// Evaluate determines whether the member is in arrears as of the cutoff and
// returns their most recent quota at or before it (nil when they never paid).
// The cutoff is normalized before evaluation, so callers may pass month <= 0.
func (s *Service) Evaluate(ctx context.Context, id domain.MemberID, cutoff domain.Period) (bool, *domain.Quota, error) {
	m, err := s.members.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return false, nil, &Error{
				Status:  404,
				Code:    "MEMBER_NOT_FOUND",
				Message: "No member exists with the given id.",
			}
		}
		return false, nil, err
	}
	return s.evaluate(ctx, m, cutoff.Normalize())
}

func (s *Service) evaluate(ctx context.Context, m memberrepo.Member, cutoff domain.Period) (bool, *domain.Quota, error) {
	q, ok, err := s.quotas.LatestOnOrBefore(ctx, m.ID, cutoff)
	if err != nil {
		return false, nil, err
	}
	var last *domain.Quota
	if ok {
		last = &q
	}
	return s.Policy.InDebt(m, last, cutoff), last, nil
}

// BuildReport evaluates every confirmed paying member against the cutoff and
// returns the rows for those found in debt. A nil cutoff selects the default:
// two calendar months before the current date.
func (s *Service) BuildReport(ctx context.Context, cutoff *domain.Period) (Report, error) {
	limit := domain.DefaultCutoff(s.clk.Now())
	if cutoff != nil {
		limit = cutoff.Normalize()
	}

	approved := true
	ms, err := s.members.List(ctx, memberrepo.Filter{Approved: &approved, PayingOnly: true})
	if err != nil {
		return Report{}, err
	}

	rows := make([]Row, 0, len(ms))
	for _, m := range ms {
		inDebt, last, err := s.evaluate(ctx, m, limit)
		if err != nil {
			return Report{}, err
		}
		if !inDebt {
			continue
		}
		label := NoPaymentLabel
		if last != nil {
			label = last.Code
		}
		rows = append(rows, Row{Member: m, LastPayment: label})
	}
	return Report{Cutoff: limit, Rows: rows}, nil
}
