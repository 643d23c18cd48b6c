package orgrepo

import (
	"testing"

	"github.com/asoclibre/members-api/internal/adapters/contracttest"
	"github.com/asoclibre/members-api/internal/adapters/postgres/testutil"
	orgrepoport "github.com/asoclibre/members-api/internal/ports/out/orgrepo"
)

func TestContract_PostgresOrgRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunOrgRepo(t, func(t *testing.T) (orgrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(pool), nil
	})
}
