// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tokenbound/internal/platform/middleware"
)

// NewRouter wires all public endpoints.
func NewRouter(h *Handler, adminToken string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestContext)

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/assets/register", h.handleRegisterAsset)
	r.Get("/assets/{chainID}/{tokenContract}/{tokenID}", h.handleGetAsset)
	r.Get("/accounts/derive", h.handleDeriveAccount)
	r.Post("/derivatives/register", h.handleRegisterDerivative)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(adminToken, h.logger))
		r.Post("/admin/royalty/snapshot-interval", h.handleSetSnapshotInterval)
		r.Get("/admin/royalty/snapshot-interval", h.handleGetSnapshotInterval)
	})

	return r
}
