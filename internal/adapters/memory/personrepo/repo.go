package personrepo

import (
	"context"
	"strings"
	"sync"

	"github.com/asoclibre/members-api/internal/domain"
	"github.com/asoclibre/members-api/internal/ports/out/personrepo"
)

// Repo is an in-memory implementation of personrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byID      map[domain.PersonID]domain.Person
	idByEmail map[string]domain.PersonID
}

func NewRepo() *Repo {
	return &Repo{
		byID:      make(map[domain.PersonID]domain.Person),
		idByEmail: make(map[string]domain.PersonID),
	}
}

func (r *Repo) Create(ctx context.Context, p domain.Person) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; ok {
		return personrepo.ErrAlreadyExists
	}
	key := emailKey(p.Email)
	if _, ok := r.idByEmail[key]; ok {
		return personrepo.ErrEmailTaken
	}

	r.byID[p.ID] = clonePerson(p)
	r.idByEmail[key] = p.ID
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.PersonID) (domain.Person, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return domain.Person{}, personrepo.ErrNotFound
	}
	return clonePerson(p), nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (domain.Person, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.idByEmail[emailKey(email)]
	if !ok {
		return domain.Person{}, personrepo.ErrNotFound
	}
	p, ok := r.byID[id]
	if !ok {
		return domain.Person{}, personrepo.ErrNotFound
	}
	return clonePerson(p), nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func clonePerson(p domain.Person) domain.Person {
	out := p
	out.Nickname = cloneStringPtr(p.Nickname)
	out.Picture = cloneStringPtr(p.Picture)
	return out
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
