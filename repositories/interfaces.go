package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/greysolve/outreach-console/models"
)

// ErrNotFound is returned by repositories when a row does not exist
var ErrNotFound = errors.New("record not found")

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction
	// Automatically commits if function succeeds, rolls back on error
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns the transaction context
	Context() context.Context
}

// CampaignRepository handles campaign data operations
type CampaignRepository interface {
	// Create stores a new campaign
	Create(ctx context.Context, campaign *models.Campaign) error

	// GetByID retrieves a campaign by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)

	// List returns campaigns newest first
	List(ctx context.Context, limit, offset int) ([]*models.Campaign, error)

	// UpdateStatus moves a campaign to a new status
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.CampaignStatus) error

	// CountByStatus returns the number of campaigns in a status
	CountByStatus(ctx context.Context, status models.CampaignStatus) (int, error)
}

// ActivityLogRepository handles the operator activity trail
type ActivityLogRepository interface {
	// Insert appends an entry
	Insert(ctx context.Context, entry *models.ActivityLog) error

	// List returns all entries newest first
	List(ctx context.Context) ([]*models.ActivityLog, error)

	// GetByIDs returns the entries with the given ids, newest first. Unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]*models.ActivityLog, error)
}

// SettingsRepository handles the single system settings document
type SettingsRepository interface {
	// Get returns the current settings
	Get(ctx context.Context) (*models.Settings, error)

	// Save replaces the settings
	Save(ctx context.Context, settings *models.Settings) error
}

// InventoryRepository exposes the provisioned domains, inboxes and DNS configuration
type InventoryRepository interface {
	// ListDomains returns all sending domains
	ListDomains(ctx context.Context) ([]*models.Domain, error)

	// ListInboxes returns all inboxes
	ListInboxes(ctx context.Context) ([]*models.Inbox, error)

	// ListDNS returns the DNS configuration of every domain
	ListDNS(ctx context.Context) ([]*models.DomainDNS, error)

	// GetDNS returns the DNS configuration of one domain
	GetDNS(ctx context.Context, id string) (*models.DomainDNS, error)

	// SaveDNS replaces the DNS configuration of one domain
	SaveDNS(ctx context.Context, dns *models.DomainDNS) error

	// TouchVerified sets only the verification time of one domain and
	// returns the stored configuration
	TouchVerified(ctx context.Context, id string, at time.Time) (*models.DomainDNS, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Campaigns CampaignRepository
	Activity  ActivityLogRepository
	Settings  SettingsRepository
	Inventory InventoryRepository
	TxManager TransactionManager
}
