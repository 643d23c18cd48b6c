package personrepo

import (
	"testing"

	"github.com/asoclibre/members-api/internal/adapters/contracttest"
	personrepoport "github.com/asoclibre/members-api/internal/ports/out/personrepo"
)

func TestContract_PersonRepo(t *testing.T) {
	contracttest.RunPersonRepo(t, func(t *testing.T) (personrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(), nil
	})
}
