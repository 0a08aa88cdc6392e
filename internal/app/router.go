package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/inkbill/inkbill/internal/ledger/clients"
	"github.com/inkbill/inkbill/internal/ledger/dashboard"
	"github.com/inkbill/inkbill/internal/ledger/documents"
	"github.com/inkbill/inkbill/internal/ledger/settings"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	ClientsHandler   *clients.Handler
	DocumentsHandler *documents.Handler
	DashboardHandler *dashboard.Handler
	SettingsHandler  *settings.Handler
}

// NewRouter constructs the chi.Router with Inkbill defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		params.ClientsHandler.MountRoutes(r)
		params.DocumentsHandler.MountRoutes(r)
		params.DashboardHandler.MountRoutes(r)
		params.SettingsHandler.MountRoutes(r)
	})

	return r
}
