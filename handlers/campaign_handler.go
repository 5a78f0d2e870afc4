package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/greysolve/outreach-console/middleware"
	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/services"
	"github.com/greysolve/outreach-console/services/campaign"
	"github.com/greysolve/outreach-console/utils"
	"go.uber.org/zap"
)

// CampaignService defines the campaign operations the handler needs
type CampaignService interface {
	Submit(ctx context.Context, actor services.Actor, req campaign.Request) (*models.Campaign, error)
	SaveTemplate(ctx context.Context, actor services.Actor, req campaign.Request) (*models.Campaign, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
	List(ctx context.Context, limit, offset int) ([]*models.Campaign, error)
}

// CampaignListResponse is a page of campaigns
type CampaignListResponse struct {
	Campaigns []*models.Campaign `json:"campaigns"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// CampaignHandler handles campaign HTTP requests
type CampaignHandler struct {
	service CampaignService
	logger  *zap.Logger
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(service CampaignService, logger *zap.Logger) *CampaignHandler {
	return &CampaignHandler{service: service, logger: logger}
}

// HandleSubmit handles POST /api/v1/campaigns
func (h *CampaignHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	c, err := h.service.Submit(r.Context(), middleware.GetActorFromContext(r.Context()), req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteAccepted(w, c, "Campaign is launching")
}

// HandleSaveTemplate handles POST /api/v1/campaigns/templates
func (h *CampaignHandler) HandleSaveTemplate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	c, err := h.service.SaveTemplate(r.Context(), middleware.GetActorFromContext(r.Context()), req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, c)
}

// HandleList handles GET /api/v1/campaigns
func (h *CampaignHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 50)
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid limit", nil)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid offset", nil)
		return
	}

	campaigns, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, CampaignListResponse{Campaigns: campaigns, Limit: limit, Offset: offset})
}

// HandleGet handles GET /api/v1/campaigns/{id}
func (h *CampaignHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"), "id")
	if err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, c)
}

func (h *CampaignHandler) decode(w http.ResponseWriter, r *http.Request) (campaign.Request, bool) {
	var req campaign.Request
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		HandleDecodeError(w, err, h.logger)
		return req, false
	}
	return req, true
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
