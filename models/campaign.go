package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/greysolve/outreach-console/internal/pricing"
)

// CampaignStatus represents the lifecycle state of a campaign
type CampaignStatus string

const (
	CampaignStatusLaunching CampaignStatus = "launching"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusTemplate  CampaignStatus = "template"
)

// Registrars offered by the campaign setup form
const (
	RegistrarNamecheap  = "Namecheap"
	RegistrarCloudflare = "Cloudflare"
	RegistrarGoDaddy    = "GoDaddy"
)

// Clients is the fixed client list of the campaign setup form
var Clients = []string{"Acme Corp", "TechStart Inc", "Global Solutions"}

// Campaign represents a submitted or templated outreach campaign
type Campaign struct {
	ID                 uuid.UUID                  `json:"id" db:"id"`
	Name               string                     `json:"name" db:"name"`
	Client             string                     `json:"client" db:"client"`
	DomainRegistrar    string                     `json:"domain_registrar" db:"domain_registrar"`
	DomainPattern      string                     `json:"domain_pattern" db:"domain_pattern"`
	Keywords           []string                   `json:"keywords" db:"keywords"`
	NumberOfDomains    int                        `json:"number_of_domains" db:"number_of_domains"`
	InboxesPerDomain   int                        `json:"inboxes_per_domain" db:"inboxes_per_domain"`
	WorkspaceProvider  pricing.WorkspaceProvider  `json:"workspace_provider" db:"workspace_provider"`
	InboxPattern       string                     `json:"inbox_pattern" db:"inbox_pattern"`
	SequencingPlatform pricing.SequencingPlatform `json:"sequencing_platform" db:"sequencing_platform"`
	WarmupDays         int                        `json:"warmup_days" db:"warmup_days"`
	Estimate           pricing.CostEstimate       `json:"estimate"` // snapshot at submission time
	Status             CampaignStatus             `json:"status" db:"status"`
	CreatedBy          string                     `json:"created_by" db:"created_by"`
	CreatedAt          time.Time                  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time                  `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Campaign model
func (Campaign) TableName() string {
	return "campaigns"
}

// NewCampaign creates a new Campaign instance
func NewCampaign(name string, status CampaignStatus) *Campaign {
	now := time.Now()
	return &Campaign{
		ID:        uuid.New(),
		Name:      name,
		Status:    status,
		Keywords:  []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PricingConfig returns the four fields that drive the cost estimate
func (c *Campaign) PricingConfig() pricing.CampaignConfig {
	return pricing.CampaignConfig{
		NumberOfDomains:    c.NumberOfDomains,
		InboxesPerDomain:   c.InboxesPerDomain,
		WorkspaceProvider:  c.WorkspaceProvider,
		SequencingPlatform: c.SequencingPlatform,
	}
}

// TotalInboxes returns the number of inboxes the campaign provisions
func (c *Campaign) TotalInboxes() int {
	return c.NumberOfDomains * c.InboxesPerDomain
}

// IsTemplate reports whether the campaign was saved as a template
func (c *Campaign) IsTemplate() bool {
	return c.Status == CampaignStatusTemplate
}

// ParseKeywords splits a comma separated keyword list, dropping blanks
func ParseKeywords(raw string) []string {
	keywords := []string{}
	for _, part := range strings.Split(raw, ",") {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
