package application_test

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mobigesture/jobboard/internal/adapters/memory"
	"github.com/mobigesture/jobboard/internal/adapters/security"
	"github.com/mobigesture/jobboard/internal/application"
)

type fixture struct {
	service   *application.Service
	documents *memory.DocumentStore
	sessions  *memory.SessionStore
	hasher    *security.BcryptHasher
}

func newFixture() *fixture {
	documents := memory.NewDocumentStore()
	sessions := memory.NewSessionStore(2 * time.Minute)
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	return &fixture{
		service: application.NewService(application.Dependencies{
			Documents: documents,
			Sessions:  sessions,
			Hasher:    hasher,
		}),
		documents: documents,
		sessions:  sessions,
		hasher:    hasher,
	}
}
