package debts

import (
	"github.com/asoclibre/members-api/internal/domain"
	"github.com/asoclibre/members-api/internal/ports/out/memberrepo"
)

// ArrearsPolicy decides whether a member is in debt given their most recent
// quota at or before the cutoff (nil when they never paid). The rule is
// pluggable so the association can tighten or relax it without touching the
// report pipeline.
type ArrearsPolicy interface {
	InDebt(m memberrepo.Member, last *domain.Quota, cutoff domain.Period) bool
}

// LapsedPolicy is the default rule: a member is in debt when no quota exists
// at or before the cutoff, or when the last such quota covers a period
// strictly before the cutoff.
type LapsedPolicy struct{}

func (LapsedPolicy) InDebt(_ memberrepo.Member, last *domain.Quota, cutoff domain.Period) bool {
	if last == nil {
		return true
	}
	return last.Period.Before(cutoff)
}
