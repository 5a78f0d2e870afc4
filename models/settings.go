package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MaskPrefix is prepended to the visible tail of a masked secret
const MaskPrefix = "••••"

// BackupFrequency values accepted by the system settings
const (
	BackupDaily   = "daily"
	BackupWeekly  = "weekly"
	BackupMonthly = "monthly"
)

// APIKeys holds the integration credentials of the console
type APIKeys struct {
	GoogleWorkspaceCredentialsName string `json:"google_workspace_credentials_name"`
	GoogleDomains                  string `json:"google_domains_api_key"`
	WholesaleProviderA             string `json:"wholesale_provider_a_api_key"`
	WholesaleProviderB             string `json:"wholesale_provider_b_api_key"`
	Smartlead                      string `json:"smartlead_api_key"`
	Lemlist                        string `json:"lemlist_api_key"`
	Instantly                      string `json:"instantly_api_key"`
}

// PasswordPolicy holds operator password rules
type PasswordPolicy struct {
	MinLength        int  `json:"min_length" validate:"min=8,max=128"`
	RequireUppercase bool `json:"require_uppercase"`
	RequireLowercase bool `json:"require_lowercase"`
	RequireNumbers   bool `json:"require_numbers"`
	RequireSpecial   bool `json:"require_special_chars"`
}

// SecuritySettings holds access control settings
type SecuritySettings struct {
	TwoFactorEnabled bool           `json:"two_factor_enabled"`
	SessionTimeout   int            `json:"session_timeout" validate:"min=5,max=480"` // minutes
	MaxLoginAttempts int            `json:"max_login_attempts" validate:"min=1,max=20"`
	PasswordPolicy   PasswordPolicy `json:"password_policy"`
	AuditLogging     bool           `json:"audit_logging"`
	IPWhitelist      []string       `json:"ip_whitelist" validate:"dive,cidr"`
}

// NotificationTypes toggles individual notification classes
type NotificationTypes struct {
	DomainIssues   bool `json:"domain_issues"`
	InboxWarnings  bool `json:"inbox_warnings"`
	SystemAlerts   bool `json:"system_alerts"`
	CostAlerts     bool `json:"cost_alerts"`
	SecurityEvents bool `json:"security_events"`
}

// NotificationSettings holds notification channel settings
type NotificationSettings struct {
	EmailNotifications bool              `json:"email_notifications"`
	SlackNotifications bool              `json:"slack_notifications"`
	SlackWebhookURL    string            `json:"slack_webhook_url" validate:"required_if=SlackNotifications true,omitempty,url"`
	NotificationTypes  NotificationTypes `json:"notification_types"`
}

// SystemPreferences holds provisioning defaults and housekeeping settings
type SystemPreferences struct {
	DefaultInboxesPerDomain int             `json:"default_inboxes_per_domain" validate:"min=1,max=10"`
	DefaultWarmupDays       int             `json:"default_warmup_days" validate:"min=7,max=30"`
	MaxDomainsPerCampaign   int             `json:"max_domains_per_campaign" validate:"min=1,max=100"`
	AutoRenewalEnabled      bool            `json:"auto_renewal_enabled"`
	BackupFrequency         string          `json:"backup_frequency" validate:"oneof=daily weekly monthly"`
	LogRetentionDays        int             `json:"log_retention_days" validate:"min=1,max=3650"`
	CostThreshold           decimal.Decimal `json:"cost_threshold"`
}

// Settings is the single system settings document
type Settings struct {
	APIKeys       APIKeys              `json:"api_keys"`
	Security      SecuritySettings     `json:"security"`
	Notifications NotificationSettings `json:"notifications"`
	System        SystemPreferences    `json:"system"`
	UpdatedAt     time.Time            `json:"updated_at"`
	UpdatedBy     string               `json:"updated_by"`
}

// TableName returns the table name for the Settings model
func (Settings) TableName() string {
	return "system_settings"
}

// DefaultSettings returns the factory settings of the console
func DefaultSettings() Settings {
	return Settings{
		Security: SecuritySettings{
			TwoFactorEnabled: true,
			SessionTimeout:   30,
			MaxLoginAttempts: 5,
			PasswordPolicy: PasswordPolicy{
				MinLength:        12,
				RequireUppercase: true,
				RequireLowercase: true,
				RequireNumbers:   true,
				RequireSpecial:   true,
			},
			AuditLogging: true,
			IPWhitelist:  []string{"192.168.1.0/24", "10.0.0.0/8"},
		},
		Notifications: NotificationSettings{
			EmailNotifications: true,
			NotificationTypes: NotificationTypes{
				DomainIssues:   true,
				InboxWarnings:  true,
				SystemAlerts:   true,
				CostAlerts:     true,
				SecurityEvents: true,
			},
		},
		System: SystemPreferences{
			DefaultInboxesPerDomain: 3,
			DefaultWarmupDays:       14,
			MaxDomainsPerCampaign:   10,
			AutoRenewalEnabled:      true,
			BackupFrequency:         BackupDaily,
			LogRetentionDays:        90,
			CostThreshold:           decimal.NewFromInt(500),
		},
	}
}

// Integration is the connection status of one external integration
type Integration struct {
	Name      string `json:"name"`
	Connected bool   `json:"connected"`
}

// Integrations reports which integrations have credentials configured
func (k APIKeys) Integrations() []Integration {
	return []Integration{
		{Name: "Google Workspace", Connected: k.GoogleWorkspaceCredentialsName != ""},
		{Name: "Google Domains", Connected: k.GoogleDomains != ""},
		{Name: "Wholesale Provider A", Connected: k.WholesaleProviderA != ""},
		{Name: "Wholesale Provider B", Connected: k.WholesaleProviderB != ""},
		{Name: "Smartlead", Connected: k.Smartlead != ""},
		{Name: "Lemlist", Connected: k.Lemlist != ""},
		{Name: "Instantly", Connected: k.Instantly != ""},
	}
}

// Masked returns a copy of the keys with every secret masked.
// The credentials file name is not a secret and is kept.
func (k APIKeys) Masked() APIKeys {
	return APIKeys{
		GoogleWorkspaceCredentialsName: k.GoogleWorkspaceCredentialsName,
		GoogleDomains:                  MaskSecret(k.GoogleDomains),
		WholesaleProviderA:             MaskSecret(k.WholesaleProviderA),
		WholesaleProviderB:             MaskSecret(k.WholesaleProviderB),
		Smartlead:                      MaskSecret(k.Smartlead),
		Lemlist:                        MaskSecret(k.Lemlist),
		Instantly:                      MaskSecret(k.Instantly),
	}
}

// MergeSecrets returns incoming with any masked value replaced by the stored one
func (k APIKeys) MergeSecrets(incoming APIKeys) APIKeys {
	keep := func(in, stored string) string {
		if IsMasked(in) {
			return stored
		}
		return in
	}
	out := incoming
	out.GoogleDomains = keep(incoming.GoogleDomains, k.GoogleDomains)
	out.WholesaleProviderA = keep(incoming.WholesaleProviderA, k.WholesaleProviderA)
	out.WholesaleProviderB = keep(incoming.WholesaleProviderB, k.WholesaleProviderB)
	out.Smartlead = keep(incoming.Smartlead, k.Smartlead)
	out.Lemlist = keep(incoming.Lemlist, k.Lemlist)
	out.Instantly = keep(incoming.Instantly, k.Instantly)
	return out
}

// MaskSecret replaces all but the last four characters of secret
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	n := utf8.RuneCountInString(secret)
	if n <= 4 {
		return MaskPrefix
	}
	runes := []rune(secret)
	return MaskPrefix + string(runes[n-4:])
}

// IsMasked reports whether value is a masked secret echoed back by a client
func IsMasked(value string) bool {
	return strings.HasPrefix(value, MaskPrefix)
}
