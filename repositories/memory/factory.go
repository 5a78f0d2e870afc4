package memory

import (
	"github.com/greysolve/outreach-console/repositories"
	"go.uber.org/zap"
)

// NewRepositories creates the memory repositories loaded with the console seed data
func NewRepositories(logger *zap.Logger) *repositories.Repositories {
	return &repositories.Repositories{
		Campaigns: NewCampaignRepository(logger),
		Activity:  NewActivityLogRepository(SeedActivityLogs(), logger),
		Settings:  NewSettingsRepository(SeedSettings()),
		Inventory: NewInventoryRepository(SeedDomains(), SeedInboxes(), SeedDNS()),
		TxManager: NewTransactionManager(),
	}
}
