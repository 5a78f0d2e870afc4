package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/greysolve/outreach-console/middleware"
	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/services"
	"github.com/greysolve/outreach-console/services/dns"
	"github.com/greysolve/outreach-console/utils"
	"go.uber.org/zap"
)

// BulkUpdateRequest selects the records to re-propagate
type BulkUpdateRequest struct {
	RecordIDs []string `json:"record_ids" validate:"required,min=1,dive,required"`
}

// DNSService manages domain DNS configuration
type DNSService interface {
	List(ctx context.Context) (*dns.List, error)
	Get(ctx context.Context, id string) (*models.DomainDNS, error)
	Verify(ctx context.Context, actor services.Actor, id string) (*models.DomainDNS, error)
	Diagnose(ctx context.Context, id string) (*dns.Diagnosis, error)
	BulkUpdate(ctx context.Context, actor services.Actor, id string, recordIDs []string) (*models.DomainDNS, error)
}

// DNSHandler handles DNS management requests
type DNSHandler struct {
	service DNSService
	logger  *zap.Logger
}

// NewDNSHandler creates a new DNSHandler
func NewDNSHandler(service DNSService, logger *zap.Logger) *DNSHandler {
	return &DNSHandler{service: service, logger: logger}
}

// HandleList handles GET /api/v1/dns
func (h *DNSHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, list)
}

// HandleGet handles GET /api/v1/dns/{id}
func (h *DNSHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, d)
}

// HandleVerify handles POST /api/v1/dns/{id}/verify
func (h *DNSHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActorFromContext(r.Context())
	d, err := h.service.Verify(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, d)
}

// HandleDiagnose handles POST /api/v1/dns/{id}/diagnose
func (h *DNSHandler) HandleDiagnose(w http.ResponseWriter, r *http.Request) {
	diagnosis, err := h.service.Diagnose(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, diagnosis)
}

// HandleBulkUpdate handles POST /api/v1/dns/{id}/records/bulk-update
func (h *DNSHandler) HandleBulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req BulkUpdateRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		HandleDecodeError(w, err, h.logger)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	actor := middleware.GetActorFromContext(r.Context())
	d, err := h.service.BulkUpdate(r.Context(), actor, chi.URLParam(r, "id"), req.RecordIDs)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("dns records queued for propagation",
		zap.String("request_id", actor.RequestID),
		zap.String("domain_id", d.ID),
		zap.Int("records", len(req.RecordIDs)))
	_ = utils.WriteOK(w, d)
}
