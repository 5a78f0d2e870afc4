package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/services/activity"
	"github.com/greysolve/outreach-console/utils"
	"go.uber.org/zap"
)

// ExportRequest selects the log entries to export
type ExportRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// ActivityService searches and exports the activity trail
type ActivityService interface {
	Search(ctx context.Context, f activity.Filter) (*activity.SearchResult, error)
	Export(ctx context.Context, ids []string) ([]byte, error)
}

// ActivityHandler serves the activity log
type ActivityHandler struct {
	service ActivityService
	logger  *zap.Logger
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(service ActivityService, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{service: service, logger: logger}
}

// HandleSearch handles GET /api/v1/logs
func (h *ActivityHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.service.Search(r.Context(), activity.Filter{
		Search:   q.Get("search"),
		Category: models.ActivityCategory(q.Get("category")),
		Status:   models.ActivityStatus(q.Get("status")),
		Range:    q.Get("range"),
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, result)
}

// HandleExport handles POST /api/v1/logs/export
func (h *ActivityHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		HandleDecodeError(w, err, h.logger)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	data, err := h.service.Export(r.Context(), req.IDs)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	filename := fmt.Sprintf("activity-logs-%s.csv", time.Now().UTC().Format("2006-01-02"))
	if err := utils.WriteCSV(w, filename, data); err != nil {
		h.logger.Error("failed to write export", zap.Error(err))
	}
}
