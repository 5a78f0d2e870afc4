package handlers

import (
	"context"
	"net/http"

	"github.com/greysolve/outreach-console/internal/pricing"
	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/services/inventory"
	"github.com/greysolve/outreach-console/utils"
	"go.uber.org/zap"
)

// InventoryService lists provisioned domains and inboxes
type InventoryService interface {
	ListDomains(ctx context.Context, search string) (*inventory.DomainList, error)
	ListInboxes(ctx context.Context, f inventory.InboxFilter) (*inventory.InboxList, error)
}

// InventoryHandler serves the domain and inbox tables
type InventoryHandler struct {
	service InventoryService
	logger  *zap.Logger
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{service: service, logger: logger}
}

// HandleListDomains handles GET /api/v1/domains
func (h *InventoryHandler) HandleListDomains(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListDomains(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, list)
}

// HandleListInboxes handles GET /api/v1/inboxes
func (h *InventoryHandler) HandleListInboxes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.service.ListInboxes(r.Context(), inventory.InboxFilter{
		Search:   q.Get("search"),
		Status:   models.InboxStatus(q.Get("status")),
		Provider: pricing.WorkspaceProvider(q.Get("provider")),
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, list)
}
