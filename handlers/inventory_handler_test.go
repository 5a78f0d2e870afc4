package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/greysolve/outreach-console/repositories/memory"
	"github.com/greysolve/outreach-console/services/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newInventoryHandler() *InventoryHandler {
	repos := memory.NewRepositories(zap.NewNop())
	return NewInventoryHandler(inventory.NewService(repos.Inventory, zap.NewNop()), zap.NewNop())
}

func TestInventoryHandler_HandleListDomains(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"all", "", 4},
		{"search", "?search=b2b", 1},
		{"no match", "?search=nothing-here", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newInventoryHandler().HandleListDomains(w, newRequest(http.MethodGet, "/api/v1/domains"+tt.query, nil, nil))

			require.Equal(t, http.StatusOK, w.Code)
			var list inventory.DomainList
			decodeData(t, w, &list)
			assert.Len(t, list.Domains, tt.want)
			assert.Equal(t, 4, list.Summary.Total)
		})
	}
}

func TestInventoryHandler_HandleListInboxes(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"all", "", []string{"1", "2", "3", "4", "5"}},
		{"status", "?status=warmup", []string{"2", "3"}},
		{"provider", "?provider=Wholesale+Provider+A", []string{"4", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newInventoryHandler().HandleListInboxes(w, newRequest(http.MethodGet, "/api/v1/inboxes"+tt.query, nil, nil))

			require.Equal(t, http.StatusOK, w.Code)
			var list inventory.InboxList
			decodeData(t, w, &list)

			ids := make([]string, 0, len(list.Inboxes))
			for _, i := range list.Inboxes {
				ids = append(ids, i.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, 5, list.Summary.Total)
		})
	}
}
