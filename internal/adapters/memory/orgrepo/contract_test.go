package orgrepo

import (
	"testing"

	"github.com/asoclibre/members-api/internal/adapters/contracttest"
	orgrepoport "github.com/asoclibre/members-api/internal/ports/out/orgrepo"
)

func TestContract_OrgRepo(t *testing.T) {
	contracttest.RunOrgRepo(t, func(t *testing.T) (orgrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(), nil
	})
}
