package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/greysolve/outreach-console/internal/pricing"
	"github.com/greysolve/outreach-console/middleware"
	"github.com/greysolve/outreach-console/services/estimate"
	"github.com/greysolve/outreach-console/utils"
	"go.uber.org/zap"
)

// EstimateRequest is the pricing part of the campaign form. Omitted fields take the form defaults.
type EstimateRequest struct {
	NumberOfDomains    *int                        `json:"number_of_domains,omitempty"`
	InboxesPerDomain   *int                        `json:"inboxes_per_domain,omitempty"`
	WorkspaceProvider  *pricing.WorkspaceProvider  `json:"workspace_provider,omitempty"`
	SequencingPlatform *pricing.SequencingPlatform `json:"sequencing_platform,omitempty"`
}

// Config merges the request over the default configuration
func (r EstimateRequest) Config() pricing.CampaignConfig {
	cfg := pricing.DefaultConfig()
	if r.NumberOfDomains != nil {
		cfg.NumberOfDomains = *r.NumberOfDomains
	}
	if r.InboxesPerDomain != nil {
		cfg.InboxesPerDomain = *r.InboxesPerDomain
	}
	if r.WorkspaceProvider != nil {
		cfg.WorkspaceProvider = *r.WorkspaceProvider
	}
	if r.SequencingPlatform != nil {
		cfg.SequencingPlatform = *r.SequencingPlatform
	}
	return cfg
}

// EstimateService prices campaign configurations
type EstimateService interface {
	Estimate(ctx context.Context, cfg pricing.CampaignConfig) (*estimate.Result, error)
	Defaults(ctx context.Context) (*estimate.Result, error)
}

// EstimateHandler handles live cost estimate requests
type EstimateHandler struct {
	service EstimateService
	logger  *zap.Logger
}

// NewEstimateHandler creates a new EstimateHandler
func NewEstimateHandler(service EstimateService, logger *zap.Logger) *EstimateHandler {
	return &EstimateHandler{service: service, logger: logger}
}

// HandleEstimate handles POST /api/v1/campaigns/estimate
func (h *EstimateHandler) HandleEstimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, utils.ErrEmptyBody) {
		HandleDecodeError(w, err, h.logger)
		return
	}

	result, err := h.service.Estimate(r.Context(), req.Config())
	if err != nil {
		h.logger.Debug("estimate rejected",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
			zap.Error(err))
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, result)
}

// HandleDefaults handles GET /api/v1/campaigns/estimate/defaults
func (h *EstimateHandler) HandleDefaults(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Defaults(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, result)
}
