package categoryrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/asoclibre/members-api/internal/domain"
	"github.com/asoclibre/members-api/internal/ports/out/categoryrepo"
)

// Repo is an in-memory implementation of categoryrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu     sync.RWMutex
	byKind map[domain.CategoryKind]domain.Category
}

// NewRepo seeds the repository with the given categories; with none given it
// falls back to DefaultCategories.
func NewRepo(cats ...domain.Category) *Repo {
	if len(cats) == 0 {
		cats = DefaultCategories()
	}
	byKind := make(map[domain.CategoryKind]domain.Category, len(cats))
	for _, c := range cats {
		byKind[c.Kind] = c
	}
	return &Repo{byKind: byKind}
}

// DefaultCategories mirrors the association's standard tiers and fees.
func DefaultCategories() []domain.Category {
	return []domain.Category{
		{Kind: domain.CategoryBenefactor, FeeCents: 500000},
		{Kind: domain.CategoryActive, FeeCents: 100000},
		{Kind: domain.CategorySupporter, FeeCents: 50000},
		{Kind: domain.CategoryStudent, FeeCents: 25000},
		{Kind: domain.CategoryCollaborator, FeeCents: 0},
		{Kind: domain.CategoryTeenager, FeeCents: 0},
	}
}

func (r *Repo) GetByKind(ctx context.Context, kind domain.CategoryKind) (domain.Category, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byKind[kind]
	if !ok {
		return domain.Category{}, categoryrepo.ErrNotFound
	}
	return c, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Category, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Category, 0, len(r.byKind))
	for _, c := range r.byKind {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FeeCents == out[j].FeeCents {
			return out[i].Kind < out[j].Kind
		}
		return out[i].FeeCents > out[j].FeeCents
	})
	return out, nil
}
