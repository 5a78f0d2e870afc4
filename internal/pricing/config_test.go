package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10, cfg.NumberOfDomains)
	assert.Equal(t, 3, cfg.InboxesPerDomain)
	assert.Equal(t, WorkspaceGoogle, cfg.WorkspaceProvider)
	assert.Equal(t, SequencerSmartlead, cfg.SequencingPlatform)
	assert.Equal(t, int64(30), cfg.TotalInboxes())
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name        string
		in          CampaignConfig
		wantDomains int
		wantInboxes int
	}{
		{"within bounds", CampaignConfig{NumberOfDomains: 42, InboxesPerDomain: 4}, 42, 4},
		{"below minimum", CampaignConfig{NumberOfDomains: 0, InboxesPerDomain: -2}, 1, 1},
		{"above maximum", CampaignConfig{NumberOfDomains: 250, InboxesPerDomain: 11}, 100, 10},
		{"at bounds", CampaignConfig{NumberOfDomains: 100, InboxesPerDomain: 1}, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.in)
			assert.Equal(t, tt.wantDomains, got.NumberOfDomains)
			assert.Equal(t, tt.wantInboxes, got.InboxesPerDomain)
		})
	}
}

func TestClamp_FillsProviderDefaults(t *testing.T) {
	got := Clamp(CampaignConfig{NumberOfDomains: 2, InboxesPerDomain: 2})
	assert.Equal(t, WorkspaceGoogle, got.WorkspaceProvider)
	assert.Equal(t, SequencerSmartlead, got.SequencingPlatform)

	kept := Clamp(CampaignConfig{NumberOfDomains: 2, InboxesPerDomain: 2, SequencingPlatform: SequencerLemlist})
	assert.Equal(t, SequencerLemlist, kept.SequencingPlatform)
}

func TestValidate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		assert.NoError(t, Validate(DefaultConfig()))
	})

	tests := []struct {
		name  string
		cfg   CampaignConfig
		field string
	}{
		{"no domains", CampaignConfig{NumberOfDomains: 0, InboxesPerDomain: 3, WorkspaceProvider: WorkspaceGoogle, SequencingPlatform: SequencerSmartlead}, "number_of_domains"},
		{"too many domains", CampaignConfig{NumberOfDomains: 101, InboxesPerDomain: 3, WorkspaceProvider: WorkspaceGoogle, SequencingPlatform: SequencerSmartlead}, "number_of_domains"},
		{"too many inboxes", CampaignConfig{NumberOfDomains: 10, InboxesPerDomain: 11, WorkspaceProvider: WorkspaceGoogle, SequencingPlatform: SequencerSmartlead}, "inboxes_per_domain"},
		{"unknown provider", CampaignConfig{NumberOfDomains: 10, InboxesPerDomain: 3, WorkspaceProvider: "Outlook", SequencingPlatform: SequencerSmartlead}, "workspace_provider"},
		{"unknown sequencer", CampaignConfig{NumberOfDomains: 10, InboxesPerDomain: 3, WorkspaceProvider: WorkspaceGoogle, SequencingPlatform: "Mailchimp"}, "sequencing_platform"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration))

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestValidate_DoesNotSubstituteDefaults(t *testing.T) {
	cfg := CampaignConfig{NumberOfDomains: -1, InboxesPerDomain: 3, WorkspaceProvider: WorkspaceGoogle, SequencingPlatform: SequencerSmartlead}
	require.Error(t, Validate(cfg))
	assert.Equal(t, -1, cfg.NumberOfDomains)
}
