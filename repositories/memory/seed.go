package memory

import (
	"time"

	"github.com/greysolve/outreach-console/internal/pricing"
	"github.com/greysolve/outreach-console/models"
)

const (
	seedUser      = "admin@greysolve.com"
	seedIP        = "192.168.1.100"
	seedBrowserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
	seedSystemUA  = "System/Automated"
)

func at(value string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	panic("invalid seed timestamp " + value)
}

func sequencer(s pricing.SequencingPlatform) *pricing.SequencingPlatform {
	return &s
}

// SeedDomains returns the provisioned sending domains
func SeedDomains() []*models.Domain {
	return []*models.Domain{
		{ID: "1", Name: "client-outreach-hub.com", Registrar: models.RegistrarNamecheap, Status: models.DomainStatusActive, InboxCount: 3, InboxCapacity: 3, DNSHealth: models.DNSHealthHealthy, CreatedAt: at("2025-07-15")},
		{ID: "2", Name: "b2b-connect-pro.com", Registrar: models.RegistrarCloudflare, Status: models.DomainStatusActive, InboxCount: 3, InboxCapacity: 3, DNSHealth: models.DNSHealthConfiguring, CreatedAt: at("2025-07-18")},
		{ID: "3", Name: "sales-velocity.net", Registrar: models.RegistrarGoDaddy, Status: models.DomainStatusPending, InboxCount: 0, InboxCapacity: 3, DNSHealth: models.DNSHealthError, CreatedAt: at("2025-07-19")},
		{ID: "4", Name: "lead-gen-master.com", Registrar: models.RegistrarNamecheap, Status: models.DomainStatusActive, InboxCount: 2, InboxCapacity: 3, DNSHealth: models.DNSHealthHealthy, CreatedAt: at("2025-07-14")},
	}
}

// SeedInboxes returns the provisioned inboxes
func SeedInboxes() []*models.Inbox {
	return []*models.Inbox{
		{
			ID: "1", Email: "john.doe@client-outreach-hub.com", Domain: "client-outreach-hub.com",
			Provider: pricing.WorkspaceGoogle, Status: models.InboxStatusActive,
			WarmupProgress: 100, WarmupDays: 14, SendingLimit: 50, CurrentUsage: 23,
			SequencerConnected: true, SequencerTool: sequencer(pricing.SequencerSmartlead),
			LastActivity: at("2025-07-18 14:30"), BounceRate: 2.1, BlacklistStatus: models.BlacklistClean,
		},
		{
			ID: "2", Email: "sarah.smith@client-outreach-hub.com", Domain: "client-outreach-hub.com",
			Provider: pricing.WorkspaceGoogle, Status: models.InboxStatusWarmup,
			WarmupProgress: 65, WarmupDays: 9, SendingLimit: 35, CurrentUsage: 28,
			SequencerConnected: true, SequencerTool: sequencer(pricing.SequencerSmartlead),
			LastActivity: at("2025-07-18 15:45"), BounceRate: 1.8, BlacklistStatus: models.BlacklistClean,
		},
		{
			ID: "3", Email: "mike.wilson@client-outreach-hub.com", Domain: "client-outreach-hub.com",
			Provider: pricing.WorkspaceGoogle, Status: models.InboxStatusWarmup,
			WarmupProgress: 35, WarmupDays: 5, SendingLimit: 20, CurrentUsage: 15,
			LastActivity: at("2025-07-18 16:20"), BlacklistStatus: models.BlacklistClean,
		},
		{
			ID: "4", Email: "contact@b2b-connect-pro.com", Domain: "b2b-connect-pro.com",
			Provider: pricing.WorkspaceWholesaleA, Status: models.InboxStatusPaused,
			SendingLimit: 100, LastActivity: at("2025-07-17 10:15"),
			BounceRate: 8.5, SpamComplaints: 2, BlacklistStatus: models.BlacklistWarned,
		},
		{
			ID: "5", Email: "sales@b2b-connect-pro.com", Domain: "b2b-connect-pro.com",
			Provider: pricing.WorkspaceWholesaleA, Status: models.InboxStatusError,
			SendingLimit: 100, LastActivity: at("2025-07-16 09:30"),
			BounceRate: 15.2, SpamComplaints: 5, BlacklistStatus: models.BlacklistBlacklisted,
		},
	}
}

func record(id string, typ models.DNSRecordType, name, value string, status models.DNSRecordStatus) models.DNSRecord {
	return models.DNSRecord{ID: id, Type: typ, Name: name, Value: value, TTL: 300, Status: status}
}

// SeedDNS returns the DNS configuration of the sending domains
func SeedDNS() []*models.DomainDNS {
	return []*models.DomainDNS{
		{
			ID: "1", Domain: "client-outreach-hub.com", Registrar: models.RegistrarNamecheap,
			DNSHealth: models.DNSHealthHealthy, PropagationStatus: models.PropagationComplete,
			LastVerified: at("2025-07-18 14:30"),
			Records: []models.DNSRecord{
				record("1", models.DNSRecordA, "@", "192.168.1.1", models.DNSRecordVerified),
				record("2", models.DNSRecordCNAME, "www", "@", models.DNSRecordVerified),
				record("3", models.DNSRecordMX, "@", "mail.google.com", models.DNSRecordVerified),
				record("4", models.DNSRecordTXT, "@", "v=spf1 include:_spf.google.com ~all", models.DNSRecordVerified),
			},
		},
		{
			ID: "2", Domain: "b2b-connect-pro.com", Registrar: models.RegistrarCloudflare,
			DNSHealth: models.DNSHealthConfiguring, PropagationStatus: models.PropagationInProgress,
			LastVerified: at("2025-07-18 15:45"),
			Records: []models.DNSRecord{
				record("5", models.DNSRecordA, "@", "192.168.1.2", models.DNSRecordPending),
				record("6", models.DNSRecordCNAME, "www", "@", models.DNSRecordPending),
				record("7", models.DNSRecordMX, "@", "mail.google.com", models.DNSRecordError),
			},
		},
		{
			ID: "3", Domain: "sales-velocity.net", Registrar: models.RegistrarGoDaddy,
			DNSHealth: models.DNSHealthError, PropagationStatus: models.PropagationFailed,
			LastVerified: at("2025-07-18 16:20"),
			Records: []models.DNSRecord{
				record("8", models.DNSRecordA, "@", "192.168.1.3", models.DNSRecordError),
				record("9", models.DNSRecordCNAME, "www", "@", models.DNSRecordError),
			},
		},
	}
}

func seedLog(id, ts, action string, category models.ActivityCategory, status models.ActivityStatus, details, resourceType, resourceID, ua string, duration float64, affected int) *models.ActivityLog {
	return &models.ActivityLog{
		ID:              id,
		Timestamp:       at(ts),
		User:            seedUser,
		Action:          action,
		Category:        category,
		Status:          status,
		Details:         details,
		ResourceType:    resourceType,
		ResourceID:      resourceID,
		IPAddress:       seedIP,
		UserAgent:       ua,
		Duration:        duration,
		AffectedRecords: affected,
	}
}

// SeedActivityLogs returns the activity trail shipped with the console
func SeedActivityLogs() []*models.ActivityLog {
	return []*models.ActivityLog{
		seedLog("1", "2025-07-18 16:45:23", "Domain Registration", models.ActivityCategoryDomain, models.ActivityStatusSuccess,
			`Successfully registered domain "b2b-connect-pro.com" with Google Domains`, "domain", "b2b-connect-pro.com", seedBrowserUA, 2.3, 1),
		seedLog("2", "2025-07-18 16:42:15", "Inbox Provisioning", models.ActivityCategoryInbox, models.ActivityStatusSuccess,
			`Created 3 Google Workspace inboxes for domain "client-outreach-hub.com"`, "domain", "client-outreach-hub.com", seedBrowserUA, 8.7, 3),
		seedLog("3", "2025-07-18 16:38:42", "DNS Configuration", models.ActivityCategoryDNS, models.ActivityStatusWarning,
			`DNS verification failed for MX records on "b2b-connect-pro.com" - manual review required`, "domain", "b2b-connect-pro.com", seedBrowserUA, 1.2, 1),
		seedLog("4", "2025-07-18 16:35:18", "Sequencer Connection", models.ActivityCategoryInbox, models.ActivityStatusSuccess,
			`Connected inbox "john.doe@client-outreach-hub.com" to Smartlead sequencer`, "inbox", "john.doe@client-outreach-hub.com", seedBrowserUA, 3.1, 1),
		seedLog("5", "2025-07-18 16:30:55", "Campaign Setup", models.ActivityCategoryCampaign, models.ActivityStatusSuccess,
			`Created new campaign "Q4 B2B Outreach" with 5 domains and 15 inboxes`, "campaign", "campaign-001", seedBrowserUA, 12.4, 20),
		seedLog("6", "2025-07-18 16:25:33", "API Key Update", models.ActivityCategorySecurity, models.ActivityStatusSuccess,
			"Updated Google Workspace API credentials - connection verified successfully", "api_credentials", "api-google-workspace", seedBrowserUA, 1.8, 1),
		seedLog("7", "2025-07-18 16:20:12", "Bulk DNS Update", models.ActivityCategoryDNS, models.ActivityStatusError,
			"Failed to update SPF records for 3 domains - rate limit exceeded", "bulk_operation", "bulk-dns-001", seedBrowserUA, 15.2, 3),
		seedLog("8", "2025-07-18 16:15:47", "System Backup", models.ActivityCategorySystem, models.ActivityStatusSuccess,
			"Completed automated daily backup - 2.3GB of data backed up successfully", "system_backup", "backup-2025-07-18", seedSystemUA, 45.7, 1250),
		seedLog("9", "2025-07-18 16:10:29", "Inbox Warmup", models.ActivityCategoryInbox, models.ActivityStatusInfo,
			"Started warmup process for 5 new inboxes - Day 1 of 14", "warmup_batch", "warmup-batch-001", seedBrowserUA, 0.5, 5),
		seedLog("10", "2025-07-18 16:05:14", "Health Check", models.ActivityCategorySystem, models.ActivityStatusWarning,
			`High bounce rate detected on domain "b2b-connect-pro.com" - 8.5% exceeds threshold`, "domain", "b2b-connect-pro.com", seedSystemUA, 2.1, 1),
	}
}

// SeedSettings returns the factory settings with every integration connected
func SeedSettings() *models.Settings {
	s := models.DefaultSettings()
	s.APIKeys = models.APIKeys{
		GoogleWorkspaceCredentialsName: "google-workspace-service-account.json",
		GoogleDomains:                  "gd-seed-0000-0000-4a1f",
		WholesaleProviderA:             "wpa-seed-0000-0000-9b2c",
		WholesaleProviderB:             "wpb-seed-0000-0000-3d7e",
		Smartlead:                      "sl-seed-0000-0000-5e8a",
		Lemlist:                        "lm-seed-0000-0000-1c6d",
		Instantly:                      "in-seed-0000-0000-7f0b",
	}
	s.UpdatedAt = at("2025-07-18 16:25:33")
	s.UpdatedBy = seedUser
	return &s
}
