package postgres

import (
	"context"
	"fmt"

	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/repositories"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const activityColumns = `
	id, timestamp, user_email, action, category, status, details,
	resource_id, resource_type, ip_address, user_agent, request_id,
	duration_seconds, affected_records`

// ActivityLogRepository implements the repositories.ActivityLogRepository interface
type ActivityLogRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *DB, logger *zap.Logger) repositories.ActivityLogRepository {
	return &ActivityLogRepository{
		db:     db,
		logger: logger,
	}
}

// Insert appends an activity entry
func (r *ActivityLogRepository) Insert(ctx context.Context, entry *models.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		entry.ID,
		entry.Timestamp,
		entry.User,
		entry.Action,
		entry.Category,
		entry.Status,
		entry.Details,
		entry.ResourceID,
		entry.ResourceType,
		entry.IPAddress,
		entry.UserAgent,
		entry.RequestID,
		entry.Duration,
		entry.AffectedRecords,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}

	r.logger.Debug("activity log inserted", zap.String("id", entry.ID), zap.String("action", entry.Action))
	return nil
}

// List returns all entries newest first
func (r *ActivityLogRepository) List(ctx context.Context) ([]*models.ActivityLog, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_logs ORDER BY timestamp DESC, id`
	return r.queryLogs(ctx, query)
}

// GetByIDs returns the entries with the given ids, newest first
func (r *ActivityLogRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.ActivityLog, error) {
	if len(ids) == 0 {
		return []*models.ActivityLog{}, nil
	}
	query := `SELECT ` + activityColumns + `
		FROM activity_logs
		WHERE id = ANY($1)
		ORDER BY timestamp DESC, id`
	return r.queryLogs(ctx, query, pq.Array(ids))
}

func (r *ActivityLogRepository) queryLogs(ctx context.Context, query string, args ...interface{}) ([]*models.ActivityLog, error) {
	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*models.ActivityLog, 0)
	for rows.Next() {
		l := &models.ActivityLog{}
		err := rows.Scan(
			&l.ID,
			&l.Timestamp,
			&l.User,
			&l.Action,
			&l.Category,
			&l.Status,
			&l.Details,
			&l.ResourceID,
			&l.ResourceType,
			&l.IPAddress,
			&l.UserAgent,
			&l.RequestID,
			&l.Duration,
			&l.AffectedRecords,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity log: %w", err)
		}
		l.Timestamp = l.Timestamp.UTC()
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity logs: %w", err)
	}
	return logs, nil
}
