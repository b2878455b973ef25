package application

import (
	"time"

	"github.com/mobigesture/jobboard/internal/ports"
)

// Service orchestrates document CRUD and the authentication flow over the
// injected stores. It holds no mutable state of its own; every request is
// independent and the stores provide per-document atomicity.
type Service struct {
	documents ports.DocumentRepository
	sessions  ports.SessionStore
	hasher    ports.PasswordHasher
	nowFn     func() time.Time
}

type Dependencies struct {
	Documents ports.DocumentRepository
	Sessions  ports.SessionStore
	Hasher    ports.PasswordHasher
}

func NewService(deps Dependencies) *Service {
	return &Service{
		documents: deps.Documents,
		sessions:  deps.Sessions,
		hasher:    deps.Hasher,
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
}
