package models

import (
	"math"
	"time"

	"github.com/greysolve/outreach-console/internal/pricing"
)

// InboxStatus represents the sending state of an inbox
type InboxStatus string

const (
	InboxStatusActive InboxStatus = "active"
	InboxStatusWarmup InboxStatus = "warmup"
	InboxStatusPaused InboxStatus = "paused"
	InboxStatusError  InboxStatus = "error"
)

// BlacklistStatus represents the reputation state of an inbox
type BlacklistStatus string

const (
	BlacklistClean       BlacklistStatus = "clean"
	BlacklistWarned      BlacklistStatus = "warned"
	BlacklistBlacklisted BlacklistStatus = "blacklisted"
)

// Inbox represents a provisioned mailbox on a sending domain
type Inbox struct {
	ID                 string                      `json:"id" db:"id"`
	Email              string                      `json:"email" db:"email"`
	Domain             string                      `json:"domain" db:"domain"`
	Provider           pricing.WorkspaceProvider   `json:"provider" db:"provider"`
	Status             InboxStatus                 `json:"status" db:"status"`
	WarmupProgress     int                         `json:"warmup_progress" db:"warmup_progress"` // percent
	WarmupDays         int                         `json:"warmup_days" db:"warmup_days"`
	SendingLimit       int                         `json:"sending_limit" db:"sending_limit"`
	CurrentUsage       int                         `json:"current_usage" db:"current_usage"`
	SequencerConnected bool                        `json:"sequencer_connected" db:"sequencer_connected"`
	SequencerTool      *pricing.SequencingPlatform `json:"sequencer_tool" db:"sequencer_tool"`
	LastActivity       time.Time                   `json:"last_activity" db:"last_activity"`
	BounceRate         float64                     `json:"bounce_rate" db:"bounce_rate"`
	SpamComplaints     int                         `json:"spam_complaints" db:"spam_complaints"`
	BlacklistStatus    BlacklistStatus             `json:"blacklist_status" db:"blacklist_status"`
}

// TableName returns the table name for the Inbox model
func (Inbox) TableName() string {
	return "inboxes"
}

// UsagePercent returns today's usage as a rounded percentage of the sending limit
func (i *Inbox) UsagePercent() int {
	if i.SendingLimit <= 0 {
		return 0
	}
	return int(math.Round(float64(i.CurrentUsage) / float64(i.SendingLimit) * 100))
}

// HasIssue reports whether the inbox needs operator attention
func (i *Inbox) HasIssue() bool {
	return i.Status == InboxStatusError || i.BlacklistStatus == BlacklistBlacklisted
}
