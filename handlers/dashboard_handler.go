package handlers

import (
	"context"
	"net/http"

	"github.com/greysolve/outreach-console/middleware"
	"github.com/greysolve/outreach-console/services/dashboard"
	"github.com/greysolve/outreach-console/utils"
	"go.uber.org/zap"
)

// DashboardService aggregates the overview
type DashboardService interface {
	Overview(ctx context.Context) (*dashboard.Overview, error)
}

// DashboardHandler serves the dashboard and the caller's identity
type DashboardHandler struct {
	service DashboardService
	logger  *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, logger: logger}
}

// HandleOverview handles GET /api/v1/dashboard
func (h *DashboardHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, overview)
}

// MeResponse describes the authenticated operator
type MeResponse struct {
	Subject       string   `json:"sub"`
	Email         string   `json:"email,omitempty"`
	Roles         []string `json:"roles"`
	Authenticated bool     `json:"authenticated"`
}

// HandleMe handles GET /api/v1/me
func HandleMe(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActorFromContext(r.Context())
	roles := actor.Roles
	if roles == nil {
		roles = []string{}
	}
	_ = utils.WriteOK(w, MeResponse{
		Subject:       actor.Subject,
		Email:         actor.Email,
		Roles:         roles,
		Authenticated: middleware.GetClaimsFromContext(r.Context()) != nil,
	})
}
