package pricing

import (
	"errors"
	"fmt"
)

// WorkspaceProvider identifies the mailbox provider for campaign inboxes.
type WorkspaceProvider string

const (
	WorkspaceGoogle     WorkspaceProvider = "Google Workspace"
	WorkspaceWholesaleA WorkspaceProvider = "Wholesale Provider A"
	WorkspaceWholesaleB WorkspaceProvider = "Wholesale Provider B"
)

// SequencingPlatform identifies the outreach sequencer.
type SequencingPlatform string

const (
	SequencerSmartlead SequencingPlatform = "Smartlead"
	SequencerLemlist   SequencingPlatform = "Lemlist"
	SequencerInstantly SequencingPlatform = "Instantly"
)

// Form bounds for the two priced counts.
const (
	MinDomains          = 1
	MaxDomains          = 100
	MinInboxesPerDomain = 1
	MaxInboxesPerDomain = 10

	DefaultDomains          = 10
	DefaultInboxesPerDomain = 3
)

// WorkspaceProviders lists the known providers in display order.
var WorkspaceProviders = []WorkspaceProvider{WorkspaceGoogle, WorkspaceWholesaleA, WorkspaceWholesaleB}

// SequencingPlatforms lists the known sequencers in display order.
var SequencingPlatforms = []SequencingPlatform{SequencerSmartlead, SequencerLemlist, SequencerInstantly}

// ErrInvalidConfiguration is the error kind returned by Validate.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// CampaignConfig is the set of parameters that determine campaign cost.
type CampaignConfig struct {
	NumberOfDomains    int                `json:"number_of_domains"`
	InboxesPerDomain   int                `json:"inboxes_per_domain"`
	WorkspaceProvider  WorkspaceProvider  `json:"workspace_provider"`
	SequencingPlatform SequencingPlatform `json:"sequencing_platform"`
}

// DefaultConfig returns the values the campaign form starts with.
func DefaultConfig() CampaignConfig {
	return CampaignConfig{
		NumberOfDomains:    DefaultDomains,
		InboxesPerDomain:   DefaultInboxesPerDomain,
		WorkspaceProvider:  WorkspaceGoogle,
		SequencingPlatform: SequencerSmartlead,
	}
}

// TotalInboxes returns the number of mailboxes the config provisions.
func (c CampaignConfig) TotalInboxes() int64 {
	return int64(c.NumberOfDomains) * int64(c.InboxesPerDomain)
}

// Clamp brings the counts into the form bounds and fills empty provider
// choices with the defaults. It is what the form shell does before estimating.
func Clamp(c CampaignConfig) CampaignConfig {
	c.NumberOfDomains = clampInt(c.NumberOfDomains, MinDomains, MaxDomains)
	c.InboxesPerDomain = clampInt(c.InboxesPerDomain, MinInboxesPerDomain, MaxInboxesPerDomain)
	if c.WorkspaceProvider == "" {
		c.WorkspaceProvider = WorkspaceGoogle
	}
	if c.SequencingPlatform == "" {
		c.SequencingPlatform = SequencerSmartlead
	}
	return c
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ConfigError describes one out-of-domain field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidConfiguration, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}

// Validate reports the first field outside the business domain.
// Estimate does not call it.
func Validate(c CampaignConfig) error {
	if c.NumberOfDomains < MinDomains || c.NumberOfDomains > MaxDomains {
		return &ConfigError{
			Field:  "number_of_domains",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", MinDomains, MaxDomains, c.NumberOfDomains),
		}
	}
	if c.InboxesPerDomain < MinInboxesPerDomain || c.InboxesPerDomain > MaxInboxesPerDomain {
		return &ConfigError{
			Field:  "inboxes_per_domain",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", MinInboxesPerDomain, MaxInboxesPerDomain, c.InboxesPerDomain),
		}
	}
	if !knownProvider(c.WorkspaceProvider) {
		return &ConfigError{Field: "workspace_provider", Reason: fmt.Sprintf("unknown provider %q", c.WorkspaceProvider)}
	}
	if !knownSequencer(c.SequencingPlatform) {
		return &ConfigError{Field: "sequencing_platform", Reason: fmt.Sprintf("unknown platform %q", c.SequencingPlatform)}
	}
	return nil
}

func knownProvider(p WorkspaceProvider) bool {
	for _, known := range WorkspaceProviders {
		if p == known {
			return true
		}
	}
	return false
}

func knownSequencer(s SequencingPlatform) bool {
	for _, known := range SequencingPlatforms {
		if s == known {
			return true
		}
	}
	return false
}
