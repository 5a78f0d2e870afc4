package activity

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/repositories"
	"github.com/greysolve/outreach-console/services"
	"go.uber.org/zap"
)

// Time ranges accepted by Search
const (
	RangeHour    = "1h"
	RangeDay     = "24h"
	RangeWeek    = "7d"
	RangeMonth   = "30d"
	RangeQuarter = "90d"
	RangeAll     = "all"
	DefaultRange = RangeDay
)

var rangeDurations = map[string]time.Duration{
	RangeHour:    time.Hour,
	RangeDay:     24 * time.Hour,
	RangeWeek:    7 * 24 * time.Hour,
	RangeMonth:   30 * 24 * time.Hour,
	RangeQuarter: 90 * 24 * time.Hour,
}

// Filter selects activity entries. Empty fields match everything.
type Filter struct {
	Search   string
	Category models.ActivityCategory
	Status   models.ActivityStatus
	Range    string
}

// Summary counts entries by outcome
type Summary struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Error   int `json:"error"`
	Warning int `json:"warning"`
}

// SearchResult is a page of the activity trail
type SearchResult struct {
	Logs    []*models.ActivityLog `json:"logs"`
	Range   string                `json:"range"`
	Summary Summary               `json:"summary"`
}

// Service records and queries operator activity
type Service struct {
	repo   repositories.ActivityLogRepository
	logger *zap.Logger
}

// NewService creates an activity service
func NewService(repo repositories.ActivityLogRepository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Record stores one entry
func (s *Service) Record(ctx context.Context, entry *models.ActivityLog) error {
	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Error("failed to record activity",
			zap.String("action", entry.Action),
			zap.String("category", string(entry.Category)),
			zap.Error(err))
		return services.WrapInternal("failed to record activity", err)
	}

	s.logger.Info("activity recorded",
		zap.String("id", entry.ID),
		zap.String("action", entry.Action),
		zap.String("status", string(entry.Status)),
		zap.String("user", entry.User))
	return nil
}

// Recent returns the newest n entries
func (s *Service) Recent(ctx context.Context, n int) ([]*models.ActivityLog, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, services.WrapInternal("failed to list activity", err)
	}
	if n >= 0 && len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// Search filters the trail. Time ranges are measured back from the newest
// entry, so a quiet trail still shows its latest activity. The summary
// covers the whole trail.
func (s *Service) Search(ctx context.Context, f Filter) (*SearchResult, error) {
	rng := f.Range
	if rng == "" {
		rng = DefaultRange
	}
	window, ok := rangeDurations[rng]
	if !ok && rng != RangeAll {
		err := services.NewDomainError(services.ErrorTypeValidation, "invalid time range", nil)
		err.WithDetail("range", fmt.Sprintf("must be one of 1h, 24h, 7d, 30d, 90d, all; got %q", rng))
		return nil, err
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, services.WrapInternal("failed to list activity", err)
	}

	var cutoff time.Time
	if rng != RangeAll && len(all) > 0 {
		cutoff = newest(all).Add(-window)
	}

	term := strings.ToLower(strings.TrimSpace(f.Search))
	logs := make([]*models.ActivityLog, 0, len(all))
	summary := Summary{Total: len(all)}
	for _, l := range all {
		switch l.Status {
		case models.ActivityStatusSuccess:
			summary.Success++
		case models.ActivityStatusError:
			summary.Error++
		case models.ActivityStatusWarning:
			summary.Warning++
		}

		if !cutoff.IsZero() && l.Timestamp.Before(cutoff) {
			continue
		}
		if f.Category != "" && l.Category != f.Category {
			continue
		}
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		if term != "" && !matches(l, term) {
			continue
		}
		logs = append(logs, l)
	}

	return &SearchResult{Logs: logs, Range: rng, Summary: summary}, nil
}

func newest(logs []*models.ActivityLog) time.Time {
	var t time.Time
	for _, l := range logs {
		if l.Timestamp.After(t) {
			t = l.Timestamp
		}
	}
	return t
}

func matches(l *models.ActivityLog, term string) bool {
	return strings.Contains(strings.ToLower(l.Action), term) ||
		strings.Contains(strings.ToLower(l.Details), term) ||
		strings.Contains(strings.ToLower(l.User), term)
}

var csvHeader = []string{
	"id", "timestamp", "user", "action", "category", "status", "details",
	"resource_type", "resource_id", "ip_address", "duration_seconds", "affected_records",
}

// csvCell quotes text a spreadsheet would evaluate as a formula
func csvCell(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}

// Export renders the selected entries as CSV, newest first
func (s *Service) Export(ctx context.Context, ids []string) ([]byte, error) {
	if len(ids) == 0 {
		err := services.NewDomainError(services.ErrorTypeValidation, "no entries selected", nil)
		err.WithDetail("ids", "at least one entry id is required")
		return nil, err
	}

	logs, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, services.WrapInternal("failed to load activity", err)
	}
	if len(logs) == 0 {
		return nil, services.ErrLogEntryNotFound
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, l := range logs {
		record := []string{
			l.ID,
			l.Timestamp.UTC().Format(time.RFC3339),
			csvCell(l.User),
			csvCell(l.Action),
			string(l.Category),
			string(l.Status),
			csvCell(l.Details),
			csvCell(l.ResourceType),
			csvCell(l.ResourceID),
			csvCell(l.IPAddress),
			strconv.FormatFloat(l.Duration, 'f', -1, 64),
			strconv.Itoa(l.AffectedRecords),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	s.logger.Info("activity exported", zap.Int("requested", len(ids)), zap.Int("exported", len(logs)))
	return buf.Bytes(), nil
}
