package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/repositories"
	"go.uber.org/zap"
)

// CampaignRepository implements repositories.CampaignRepository in memory
type CampaignRepository struct {
	mu        sync.RWMutex
	campaigns map[uuid.UUID]*models.Campaign
	logger    *zap.Logger
}

// NewCampaignRepository creates an empty campaign repository
func NewCampaignRepository(logger *zap.Logger) *CampaignRepository {
	return &CampaignRepository{
		campaigns: make(map[uuid.UUID]*models.Campaign),
		logger:    logger,
	}
}

func copyCampaign(c *models.Campaign) *models.Campaign {
	out := *c
	out.Keywords = append([]string(nil), c.Keywords...)
	return &out
}

// Create stores a new campaign
func (r *CampaignRepository) Create(_ context.Context, campaign *models.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.campaigns[campaign.ID]; exists {
		return fmt.Errorf("campaign %s already exists", campaign.ID)
	}
	r.campaigns[campaign.ID] = copyCampaign(campaign)

	r.logger.Debug("campaign stored", zap.String("id", campaign.ID.String()), zap.String("status", string(campaign.Status)))
	return nil
}

// GetByID retrieves a campaign by ID
func (r *CampaignRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign %s: %w", id, repositories.ErrNotFound)
	}
	return copyCampaign(c), nil
}

// List returns campaigns newest first
func (r *CampaignRepository) List(_ context.Context, limit, offset int) ([]*models.Campaign, error) {
	r.mu.RLock()
	all := make([]*models.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		all = append(all, copyCampaign(c))
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID.String() < all[j].ID.String()
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	return paginate(all, limit, offset), nil
}

// UpdateStatus moves a campaign to a new status
func (r *CampaignRepository) UpdateStatus(_ context.Context, id uuid.UUID, status models.CampaignStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.campaigns[id]
	if !ok {
		return fmt.Errorf("campaign %s: %w", id, repositories.ErrNotFound)
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	return nil
}

// CountByStatus returns the number of campaigns in a status
func (r *CampaignRepository) CountByStatus(_ context.Context, status models.CampaignStatus) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, c := range r.campaigns {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
