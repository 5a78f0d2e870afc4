package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/greysolve/outreach-console/app"
	"github.com/greysolve/outreach-console/handlers"
	"github.com/greysolve/outreach-console/middleware"
	"github.com/greysolve/outreach-console/utils"
)

// requestTimeout exceeds the longest simulated operation
const requestTimeout = 60 * time.Second

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimw.RequestID)
	// Forwarded headers are client-controlled without a proxy in front
	if deps.Config.Server.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", "Retry-After", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	r.Get("/healthz", deps.HealthHandler.HandleHealth)
	r.Get("/readyz", deps.HealthHandler.HandleReadiness)

	auth := deps.AuthMiddleware

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.RequireAuth)

		r.Get("/me", handlers.HandleMe)
		r.Get("/dashboard", deps.DashboardHandler.HandleOverview)

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/estimate", deps.EstimateHandler.HandleEstimate)
			r.Get("/estimate/defaults", deps.EstimateHandler.HandleDefaults)

			r.Get("/", deps.CampaignHandler.HandleList)
			// Submission provisions paid resources
			r.With(deps.CampaignRateLimiter.Middleware).Post("/", deps.CampaignHandler.HandleSubmit)
			r.Post("/templates", deps.CampaignHandler.HandleSaveTemplate)
			r.Get("/{id}", deps.CampaignHandler.HandleGet)
		})

		r.Get("/domains", deps.InventoryHandler.HandleListDomains)
		r.Get("/inboxes", deps.InventoryHandler.HandleListInboxes)

		r.Route("/dns", func(r chi.Router) {
			r.Get("/", deps.DNSHandler.HandleList)
			r.Get("/{id}", deps.DNSHandler.HandleGet)
			r.Post("/{id}/verify", deps.DNSHandler.HandleVerify)
			r.Post("/{id}/diagnose", deps.DNSHandler.HandleDiagnose)
			r.Post("/{id}/records/bulk-update", deps.DNSHandler.HandleBulkUpdate)
		})

		r.Route("/logs", func(r chi.Router) {
			r.Get("/", deps.ActivityHandler.HandleSearch)
			r.Post("/export", deps.ActivityHandler.HandleExport)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", deps.SettingsHandler.HandleGet)
			if auth.Enabled() {
				r.With(auth.RequireRole(deps.Config.Auth.AdminRole)).Put("/", deps.SettingsHandler.HandleUpdate)
			} else {
				r.Put("/", deps.SettingsHandler.HandleUpdate)
			}
		})
	})

	return r
}
