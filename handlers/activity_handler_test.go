package handlers

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/greysolve/outreach-console/repositories/memory"
	"github.com/greysolve/outreach-console/services/activity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newActivityHandler() *ActivityHandler {
	repos := memory.NewRepositories(zap.NewNop())
	return NewActivityHandler(activity.NewService(repos.Activity, zap.NewNop()), zap.NewNop())
}

func TestActivityHandler_HandleSearch(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
		want   int
	}{
		{"default range", "", http.StatusOK, 10},
		{"category", "?category=dns", http.StatusOK, 2},
		{"status", "?status=warning&range=all", http.StatusOK, 2},
		{"search", "?search=smartlead", http.StatusOK, 1},
		{"invalid range", "?range=forever", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newActivityHandler().HandleSearch(w, newRequest(http.MethodGet, "/api/v1/logs"+tt.query, nil, nil))

			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status != http.StatusOK {
				assert.Contains(t, w.Body.String(), "range")
				return
			}

			var result activity.SearchResult
			decodeData(t, w, &result)
			assert.Len(t, result.Logs, tt.want)
			assert.Equal(t, 10, result.Summary.Total)
		})
	}
}

func TestActivityHandler_HandleExport(t *testing.T) {
	t.Run("csv attachment", func(t *testing.T) {
		w := httptest.NewRecorder()
		newActivityHandler().HandleExport(w, newRequest(http.MethodPost, "/api/v1/logs/export", ExportRequest{IDs: []string{"1", "3"}}, nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "activity-logs-")

		rows, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "id", rows[0][0])
		assert.Equal(t, "1", rows[1][0])
		assert.Equal(t, "3", rows[2][0])
	})

	t.Run("empty selection", func(t *testing.T) {
		w := httptest.NewRecorder()
		newActivityHandler().HandleExport(w, newRequest(http.MethodPost, "/api/v1/logs/export", `{"ids": []}`, nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown ids", func(t *testing.T) {
		w := httptest.NewRecorder()
		newActivityHandler().HandleExport(w, newRequest(http.MethodPost, "/api/v1/logs/export", ExportRequest{IDs: []string{"nope"}}, nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
