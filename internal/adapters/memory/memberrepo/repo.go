package memberrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/asoclibre/members-api/internal/domain"
	"github.com/asoclibre/members-api/internal/ports/out/memberrepo"
)

// Repo is an in-memory implementation of memberrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byID map[domain.MemberID]memberrepo.Member
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.MemberID]memberrepo.Member),
	}
}

func (r *Repo) Create(ctx context.Context, m memberrepo.Member) error {
	_ = ctx
	if m.ID == "" {
		return memberrepo.ErrAlreadyExists // treat empty ID as invalid; app layer assigns real IDs
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[m.ID]; ok {
		return memberrepo.ErrAlreadyExists
	}
	if m.LegalID != nil && r.legalIDTakenLocked(*m.LegalID, m.ID) {
		return memberrepo.ErrLegalIDTaken
	}

	r.byID[m.ID] = cloneMember(m)
	return nil
}

func (r *Repo) Update(ctx context.Context, m memberrepo.Member) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[m.ID]; !ok {
		return memberrepo.ErrNotFound
	}
	if m.LegalID != nil && r.legalIDTakenLocked(*m.LegalID, m.ID) {
		return memberrepo.ErrLegalIDTaken
	}

	r.byID[m.ID] = cloneMember(m)
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.MemberID) (memberrepo.Member, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	if !ok {
		return memberrepo.Member{}, memberrepo.ErrNotFound
	}
	return cloneMember(m), nil
}

func (r *Repo) List(ctx context.Context, f memberrepo.Filter) ([]memberrepo.Member, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]memberrepo.Member, 0, len(r.byID))
	for _, m := range r.byID {
		if f.Approved != nil && (m.LegalID != nil) != *f.Approved {
			continue
		}
		if f.PayingOnly && !m.Category.Paying() {
			continue
		}
		out = append(out, cloneMember(m))
	}
	sortMembersByCreation(out)
	return out, nil
}

func (r *Repo) legalIDTakenLocked(legalID int, exclude domain.MemberID) bool {
	for id, m := range r.byID {
		if id == exclude {
			continue
		}
		if m.LegalID != nil && *m.LegalID == legalID {
			return true
		}
	}
	return false
}

func cloneMember(m memberrepo.Member) memberrepo.Member {
	out := m
	out.LegalID = cloneIntPtr(m.LegalID)
	if m.FirstPayment != nil {
		fp := *m.FirstPayment
		out.FirstPayment = &fp
	}
	if m.Person != nil {
		p := *m.Person
		p.Nickname = cloneStringPtr(m.Person.Nickname)
		p.Picture = cloneStringPtr(m.Person.Picture)
		out.Person = &p
	}
	if m.Organization != nil {
		o := *m.Organization
		out.Organization = &o
	}
	return out
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func sortMembersByCreation(ms []memberrepo.Member) {
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].CreatedAt.Equal(ms[j].CreatedAt) {
			return ms[i].ID < ms[j].ID
		}
		return ms[i].CreatedAt.Before(ms[j].CreatedAt)
	})
}
