package services

import (
	"context"

	"github.com/greysolve/outreach-console/models"
)

// Actor is the operator on whose behalf a service call runs
type Actor struct {
	Subject   string   `json:"sub"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	RequestID string   `json:"-"`
	IPAddress string   `json:"-"`
	UserAgent string   `json:"-"`
}

// Name identifies the actor in activity entries
func (a Actor) Name() string {
	switch {
	case a.Email != "":
		return a.Email
	case a.Subject != "":
		return a.Subject
	default:
		return "anonymous"
	}
}

// HasRole reports whether the actor holds role
func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// NewActivity starts an activity entry attributed to the actor
func (a Actor) NewActivity(action string, category models.ActivityCategory, status models.ActivityStatus, details string) *models.ActivityLog {
	return models.NewActivityLog(a.Name(), action, category, status, details).
		WithRequest(a.RequestID, a.IPAddress, a.UserAgent)
}

// ActivityRecorder appends entries to the activity trail
type ActivityRecorder interface {
	Record(ctx context.Context, entry *models.ActivityLog) error
}
