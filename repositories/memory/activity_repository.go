package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/greysolve/outreach-console/models"
	"go.uber.org/zap"
)

// ActivityLogRepository implements repositories.ActivityLogRepository in memory
type ActivityLogRepository struct {
	mu      sync.RWMutex
	entries []*models.ActivityLog
	logger  *zap.Logger
}

// NewActivityLogRepository creates a repository holding the given entries
func NewActivityLogRepository(seed []*models.ActivityLog, logger *zap.Logger) *ActivityLogRepository {
	entries := make([]*models.ActivityLog, 0, len(seed))
	for _, e := range seed {
		cp := *e
		entries = append(entries, &cp)
	}
	return &ActivityLogRepository{entries: entries, logger: logger}
}

// Insert appends an entry
func (r *ActivityLogRepository) Insert(_ context.Context, entry *models.ActivityLog) error {
	if entry.ID == "" {
		return fmt.Errorf("activity log entry has no id")
	}
	cp := *entry

	r.mu.Lock()
	r.entries = append(r.entries, &cp)
	r.mu.Unlock()

	r.logger.Debug("activity log inserted", zap.String("id", entry.ID), zap.String("action", entry.Action))
	return nil
}

// List returns all entries newest first
func (r *ActivityLogRepository) List(_ context.Context) ([]*models.ActivityLog, error) {
	r.mu.RLock()
	out := make([]*models.ActivityLog, 0, len(r.entries))
	for _, e := range r.entries {
		cp := *e
		out = append(out, &cp)
	}
	r.mu.RUnlock()

	sortNewestFirst(out)
	return out, nil
}

// GetByIDs returns the entries with the given ids, newest first
func (r *ActivityLogRepository) GetByIDs(_ context.Context, ids []string) ([]*models.ActivityLog, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	r.mu.RLock()
	out := []*models.ActivityLog{}
	for _, e := range r.entries {
		if _, ok := want[e.ID]; ok {
			cp := *e
			out = append(out, &cp)
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(entries []*models.ActivityLog) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
}
