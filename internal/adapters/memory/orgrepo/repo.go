package orgrepo

import (
	"context"
	"sync"

	"github.com/asoclibre/members-api/internal/domain"
	"github.com/asoclibre/members-api/internal/ports/out/orgrepo"
)

// Repo is an in-memory implementation of orgrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.OrganizationID]domain.Organization
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.OrganizationID]domain.Organization),
	}
}

func (r *Repo) Create(ctx context.Context, o domain.Organization) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[o.ID]; ok {
		return orgrepo.ErrAlreadyExists
	}
	r.byID[o.ID] = o
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.OrganizationID) (domain.Organization, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.byID[id]
	if !ok {
		return domain.Organization{}, orgrepo.ErrNotFound
	}
	return o, nil
}
