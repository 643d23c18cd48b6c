package categoryrepo

import (
	"testing"

	"github.com/asoclibre/members-api/internal/adapters/contracttest"
	"github.com/asoclibre/members-api/internal/adapters/postgres/testutil"
	categoryrepoport "github.com/asoclibre/members-api/internal/ports/out/categoryrepo"
)

func TestContract_PostgresCategoryRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunCategoryRepo(t, func(t *testing.T) (categoryrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(pool), nil
	})
}
