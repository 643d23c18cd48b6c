package quotarepo

import (
	"context"
	"sync"

	"github.com/asoclibre/members-api/internal/domain"
	"github.com/asoclibre/members-api/internal/ports/out/quotarepo"
)

// Repo is an in-memory implementation of quotarepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byMember map[domain.MemberID][]domain.Quota
}

func NewRepo() *Repo {
	return &Repo{
		byMember: make(map[domain.MemberID][]domain.Quota),
	}
}

func (r *Repo) Add(ctx context.Context, q domain.Quota) error {
	_ = ctx
	q.Period = q.Period.Normalize()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byMember[q.MemberID] {
		if existing.Period.Equal(q.Period) {
			return quotarepo.ErrDuplicatePeriod
		}
	}
	r.byMember[q.MemberID] = append(r.byMember[q.MemberID], q)
	return nil
}

func (r *Repo) LatestOnOrBefore(ctx context.Context, id domain.MemberID, cutoff domain.Period) (domain.Quota, bool, error) {
	_ = ctx
	cutoff = cutoff.Normalize()

	r.mu.RLock()
	defer r.mu.RUnlock()

	var best domain.Quota
	found := false
	for _, q := range r.byMember[id] {
		if cutoff.Before(q.Period) {
			continue
		}
		if !found || best.Period.Before(q.Period) {
			best = q
			found = true
		}
	}
	return best, found, nil
}
