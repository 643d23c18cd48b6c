package quotarepo

import (
	"context"
	"errors"

	"github.com/asoclibre/members-api/internal/domain"
)

var (
	// ErrDuplicatePeriod indicates a quota already exists for the member and period.
	ErrDuplicatePeriod = errors.New("quota already recorded for period")
)

// Repository provides access to recorded quota payments.
type Repository interface {
	Add(ctx context.Context, q domain.Quota) error

	// LatestOnOrBefore returns the most recent quota recorded for the member
	// at or before the cutoff period. ok is false when the member has no such
	// quota; that is a normal result, not an error.
	LatestOnOrBefore(ctx context.Context, id domain.MemberID, cutoff domain.Period) (q domain.Quota, ok bool, err error)
}
