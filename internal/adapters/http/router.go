package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mobigesture/jobboard/internal/application"
	"github.com/mobigesture/jobboard/internal/domain"
	"github.com/mobigesture/jobboard/internal/ports"
)

// CookieConfig describes the session transport cookie. The signed value is
// produced by the injected SessionCodec; this only covers cookie mechanics.
type CookieConfig struct {
	Name string
	TTL  time.Duration
}

// Handler is the HTTP adapter entrypoint for the collection and auth routes.
type Handler struct {
	service  *application.Service
	sessions ports.SessionStore
	codec    ports.SessionCodec
	cookie   CookieConfig
	ready    func() error
}

// HandlerDeps wires the adapter. Ready is polled by the readiness endpoint and
// may be nil when no dependency check applies (tests).
type HandlerDeps struct {
	Service  *application.Service
	Sessions ports.SessionStore
	Codec    ports.SessionCodec
	Cookie   CookieConfig
	Ready    func() error
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		service:  deps.Service,
		sessions: deps.Sessions,
		codec:    deps.Codec,
		cookie:   deps.Cookie,
		ready:    deps.Ready,
	}
}

// NewRouter registers all routes and the shared middleware stack.
// Centralizing routes here keeps error mapping and logging uniform.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/business", func(r chi.Router) {
		handler.mountDocumentRoutes(r, domain.CollectionBusiness)
	})
	r.Route("/jobs", func(r chi.Router) {
		handler.mountDocumentRoutes(r, domain.CollectionJobs)
	})
	r.Route("/categories", func(r chi.Router) {
		// The list projection predates the generic routes and clients depend
		// on its shape, so it overrides the plain listing.
		r.Get("/", handler.listCategories)
		r.Post("/", handler.createDocument(domain.CollectionCategories))
		r.Get("/{key}", handler.getDocument(domain.CollectionCategories))
		r.Put("/{key}", handler.replaceDocument(domain.CollectionCategories))
		r.Patch("/{key}", handler.updateDocument(domain.CollectionCategories))
		r.Delete("/{key}", handler.removeDocument(domain.CollectionCategories))
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(handler.sessionMiddleware)
		r.Post("/signup", handler.signup)
		r.Post("/login", handler.login)
		// No read routes: the users surface is mutation-only by contract.
		r.Put("/{key}", handler.replaceDocument(domain.CollectionUsers))
		r.Patch("/{key}", handler.updateDocument(domain.CollectionUsers))
		r.Delete("/{key}", handler.removeDocument(domain.CollectionUsers))
	})

	r.Route("/auths", func(r chi.Router) {
		r.Get("/verify/{auth_key}", handler.verify)
		r.Post("/logout", handler.logout)
	})

	return r
}

func (h *Handler) mountDocumentRoutes(r chi.Router, collection string) {
	r.Get("/", h.listDocuments(collection))
	r.Post("/", h.createDocument(collection))
	r.Get("/{key}", h.getDocument(collection))
	r.Put("/{key}", h.replaceDocument(collection))
	r.Patch("/{key}", h.updateDocument(collection))
	r.Delete("/{key}", h.removeDocument(collection))
}
