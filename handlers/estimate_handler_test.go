package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/greysolve/outreach-console/internal/pricing"
	"github.com/greysolve/outreach-console/services/estimate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEstimateHandler() *EstimateHandler {
	svc := estimate.NewService(pricing.DefaultPriceBook(), nil, zap.NewNop())
	return NewEstimateHandler(svc, zap.NewNop())
}

func TestEstimateHandler_HandleEstimate(t *testing.T) {
	tests := []struct {
		name   string
		body   interface{}
		status int
		config pricing.CampaignConfig
	}{
		{
			name:   "empty body uses defaults",
			status: http.StatusOK,
			config: pricing.DefaultConfig(),
		},
		{
			name:   "partial body",
			body:   `{"number_of_domains": 5}`,
			status: http.StatusOK,
			config: pricing.CampaignConfig{
				NumberOfDomains:    5,
				InboxesPerDomain:   pricing.DefaultInboxesPerDomain,
				WorkspaceProvider:  pricing.WorkspaceGoogle,
				SequencingPlatform: pricing.SequencerSmartlead,
			},
		},
		{
			name:   "counts are clamped",
			body:   `{"number_of_domains": 500, "inboxes_per_domain": 0}`,
			status: http.StatusOK,
			config: pricing.CampaignConfig{
				NumberOfDomains:    pricing.MaxDomains,
				InboxesPerDomain:   pricing.MinInboxesPerDomain,
				WorkspaceProvider:  pricing.WorkspaceGoogle,
				SequencingPlatform: pricing.SequencerSmartlead,
			},
		},
		{
			name:   "unknown provider",
			body:   `{"workspace_provider": "Zoho"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "wrong type",
			body:   `{"number_of_domains": "ten"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown field",
			body:   `{"domains": 3}`,
			status: http.StatusBadRequest,
		},
	}

	book := pricing.DefaultPriceBook()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newEstimateHandler().HandleEstimate(w, newRequest(http.MethodPost, "/api/v1/campaigns/estimate", tt.body, nil))

			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status != http.StatusOK {
				return
			}

			var result estimate.Result
			decodeData(t, w, &result)
			assert.Equal(t, tt.config, result.Config)
			assert.Equal(t, book.Estimate(tt.config).Display().TotalFirstMonth, result.Display.TotalFirstMonth)
			assert.NotEmpty(t, result.LineItems)
		})
	}
}

func TestEstimateHandler_HandleDefaults(t *testing.T) {
	w := httptest.NewRecorder()
	newEstimateHandler().HandleDefaults(w, newRequest(http.MethodGet, "/api/v1/campaigns/estimate/defaults", nil, nil))

	require.Equal(t, http.StatusOK, w.Code)

	var result estimate.Result
	decodeData(t, w, &result)
	assert.Equal(t, pricing.DefaultConfig(), result.Config)
	assert.Equal(t, "$406.90", result.Display.TotalFirstMonth)
}
