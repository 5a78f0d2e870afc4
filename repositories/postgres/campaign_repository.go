package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/repositories"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const campaignColumns = `
	id, name, client, domain_registrar, domain_pattern, keywords,
	number_of_domains, inboxes_per_domain, workspace_provider, inbox_pattern,
	sequencing_platform, warmup_days, domain_registration_cost, workspace_cost,
	sequencing_tool_cost, total_first_month_cost, status, created_by, created_at, updated_at`

// CampaignRepository implements the repositories.CampaignRepository interface
type CampaignRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(db *DB, logger *zap.Logger) repositories.CampaignRepository {
	return &CampaignRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new campaign with its estimate snapshot
func (r *CampaignRepository) Create(ctx context.Context, c *models.Campaign) error {
	query := `
		INSERT INTO campaigns (` + campaignColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Client,
		c.DomainRegistrar,
		c.DomainPattern,
		pq.Array(c.Keywords),
		c.NumberOfDomains,
		c.InboxesPerDomain,
		c.WorkspaceProvider,
		c.InboxPattern,
		c.SequencingPlatform,
		c.WarmupDays,
		c.Estimate.DomainRegistration,
		c.Estimate.Workspace,
		c.Estimate.SequencingTool,
		c.Estimate.TotalFirstMonth,
		c.Status,
		c.CreatedBy,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("campaign %s already exists", c.ID)
		}
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	r.logger.Debug("campaign created", zap.String("id", c.ID.String()), zap.String("status", string(c.Status)))
	return nil
}

// GetByID retrieves a campaign by ID
func (r *CampaignRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	c, err := scanCampaign(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("campaign %s: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return c, nil
}

// List returns campaigns newest first
func (r *CampaignRepository) List(ctx context.Context, limit, offset int) ([]*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + `
		FROM campaigns
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`
	if limit <= 0 {
		limit = 100
	}

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*models.Campaign, 0)
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campaigns: %w", err)
	}
	return campaigns, nil
}

// UpdateStatus moves a campaign to a new status
func (r *CampaignRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.CampaignStatus) error {
	query := `UPDATE campaigns SET status = $2, updated_at = NOW() WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update campaign status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("campaign %s: %w", id, repositories.ErrNotFound)
	}
	return nil
}

// CountByStatus returns the number of campaigns in a status
func (r *CampaignRepository) CountByStatus(ctx context.Context, status models.CampaignStatus) (int, error) {
	var n int
	executor := GetExecutor(ctx, r.db)
	if err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM campaigns WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count campaigns: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCampaign(row rowScanner) (*models.Campaign, error) {
	c := &models.Campaign{}
	var keywords pq.StringArray
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Client,
		&c.DomainRegistrar,
		&c.DomainPattern,
		&keywords,
		&c.NumberOfDomains,
		&c.InboxesPerDomain,
		&c.WorkspaceProvider,
		&c.InboxPattern,
		&c.SequencingPlatform,
		&c.WarmupDays,
		&c.Estimate.DomainRegistration,
		&c.Estimate.Workspace,
		&c.Estimate.SequencingTool,
		&c.Estimate.TotalFirstMonth,
		&c.Status,
		&c.CreatedBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Keywords = append([]string{}, keywords...)
	return c, nil
}
