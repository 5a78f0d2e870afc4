package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityCategory groups activity entries by the area they touch
type ActivityCategory string

const (
	ActivityCategoryDomain   ActivityCategory = "domain"
	ActivityCategoryCampaign ActivityCategory = "campaign"
	ActivityCategoryInbox    ActivityCategory = "inbox"
	ActivityCategoryDNS      ActivityCategory = "dns"
	ActivityCategorySystem   ActivityCategory = "system"
	ActivityCategorySecurity ActivityCategory = "security"
)

// ActivityStatus represents the outcome of a logged action
type ActivityStatus string

const (
	ActivityStatusSuccess ActivityStatus = "success"
	ActivityStatusError   ActivityStatus = "error"
	ActivityStatusWarning ActivityStatus = "warning"
	ActivityStatusInfo    ActivityStatus = "info"
)

// ActivityLog represents an entry of the operator activity trail
type ActivityLog struct {
	ID              string           `json:"id" db:"id"`
	Timestamp       time.Time        `json:"timestamp" db:"timestamp"`
	User            string           `json:"user" db:"user_email"`
	Action          string           `json:"action" db:"action"`
	Category        ActivityCategory `json:"category" db:"category"`
	Status          ActivityStatus   `json:"status" db:"status"`
	Details         string           `json:"details" db:"details"`
	ResourceID      string           `json:"resource_id,omitempty" db:"resource_id"`
	ResourceType    string           `json:"resource_type,omitempty" db:"resource_type"`
	IPAddress       string           `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent       string           `json:"user_agent,omitempty" db:"user_agent"`
	RequestID       string           `json:"request_id,omitempty" db:"request_id"`
	Duration        float64          `json:"duration,omitempty" db:"duration_seconds"` // seconds
	AffectedRecords int              `json:"affected_records,omitempty" db:"affected_records"`
}

// TableName returns the table name for the ActivityLog model
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// NewActivityLog creates a new ActivityLog instance
func NewActivityLog(user, action string, category ActivityCategory, status ActivityStatus, details string) *ActivityLog {
	return &ActivityLog{
		ID:              uuid.NewString(),
		Timestamp:       time.Now().UTC(),
		User:            user,
		Action:          action,
		Category:        category,
		Status:          status,
		Details:         details,
		AffectedRecords: 1,
	}
}

// WithResource sets the resource the action touched
func (a *ActivityLog) WithResource(resourceType, resourceID string) *ActivityLog {
	a.ResourceType = resourceType
	a.ResourceID = resourceID
	return a
}

// WithRequest sets request metadata
func (a *ActivityLog) WithRequest(requestID, ipAddress, userAgent string) *ActivityLog {
	a.RequestID = requestID
	a.IPAddress = ipAddress
	a.UserAgent = userAgent
	return a
}

// WithDuration sets how long the action took
func (a *ActivityLog) WithDuration(d time.Duration) *ActivityLog {
	a.Duration = d.Seconds()
	return a
}

// WithAffected sets the number of records the action touched
func (a *ActivityLog) WithAffected(n int) *ActivityLog {
	a.AffectedRecords = n
	return a
}
