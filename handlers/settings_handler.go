package handlers

import (
	"context"
	"net/http"

	"github.com/greysolve/outreach-console/middleware"
	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/services"
	"github.com/greysolve/outreach-console/services/settings"
	"github.com/greysolve/outreach-console/utils"
	"go.uber.org/zap"
)

// SettingsService reads and saves the system settings
type SettingsService interface {
	Get(ctx context.Context) (*settings.View, error)
	Update(ctx context.Context, actor services.Actor, incoming models.Settings) (*settings.View, error)
}

// SettingsHandler handles the settings page
type SettingsHandler struct {
	service SettingsService
	logger  *zap.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(service SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{service: service, logger: logger}
}

// HandleGet handles GET /api/v1/settings
func (h *SettingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, view)
}

// HandleUpdate handles PUT /api/v1/settings
func (h *SettingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var incoming models.Settings
	if err := utils.DecodeJSON(w, r, &incoming); err != nil {
		HandleDecodeError(w, err, h.logger)
		return
	}

	actor := middleware.GetActorFromContext(r.Context())
	view, err := h.service.Update(r.Context(), actor, incoming)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("settings updated",
		zap.String("request_id", actor.RequestID),
		zap.String("user", actor.Name()))
	_ = utils.WriteOK(w, view)
}
