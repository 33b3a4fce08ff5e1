package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/htol/bookshop/middleware"
	"github.com/htol/bookshop/service"
	"github.com/htol/bookshop/session"
)

// Options configure the HTTP handler
type Options struct {
	CORSOrigins []string
}

type handler struct {
	svc      *service.Service
	sessions *session.Registry
	// baseCtx outlives requests; background recommendation fetches use it
	// so they stop on shutdown rather than when the request ends
	baseCtx context.Context
}

// NewHandler creates and returns the main HTTP handler (router) for the application
func NewHandler(ctx context.Context, svc *service.Service, sessions *session.Registry, opts Options) http.Handler {
	h := &handler{svc: svc, sessions: sessions, baseCtx: ctx}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recovery, middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Fragment", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// OPDS Catalog routes
	r.Get(opdsRootURL, h.opdsRoot)
	r.Get(opdsOpenSearchURL, h.opdsOpenSearch)
	r.Get(opdsSearchFeedURL, h.opdsSearch)
	r.Get("/opds/books", h.opdsAllBooks)
	r.Get("/opds/featured", h.opdsFeatured)
	r.Get("/opds/categories/{id}", h.opdsCategory)

	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/session", h.createSession)

		r.Group(func(r chi.Router) {
			r.Use(h.withSession)

			r.Get("/view", h.currentView)
			r.Post("/navigate", h.navigate)
			r.Post("/books/{id}/open", h.openBook)
			r.Post("/recommendations/open", h.openRecommended)
			r.Get("/recommendations", h.recommendations)
			r.Post("/catalog/filter", h.filterCatalog)
			r.Post("/orders", h.submitOrder)
			r.Post("/contact/messages", h.sendContactMessage)
			r.Post("/admin/login", h.login)
			r.Post("/admin/logout", h.logout)

			r.Group(func(r chi.Router) {
				r.Use(h.requireAdmin)

				r.Post("/admin/tab", h.selectTab)
				r.Post("/admin/orders/filter", h.filterOrders)
				r.Post("/admin/books", h.saveBook)
				r.Delete("/admin/books/{id}", h.deleteBook)
				r.Patch("/admin/orders/{id}", h.updateOrderStatus)
				r.Delete("/admin/orders/{id}", h.deleteOrder)
				r.Put("/admin/content/contact", h.saveContactInfo)
				r.Put("/admin/content/privacy", h.savePrivacyPolicy)
			})
		})
	})

	return r
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		respondWithError(w, "store unavailable", err, http.StatusServiceUnavailable)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
