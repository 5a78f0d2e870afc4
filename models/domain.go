package models

import (
	"fmt"
	"time"
)

// DomainStatus represents the registration state of a sending domain
type DomainStatus string

const (
	DomainStatusActive  DomainStatus = "active"
	DomainStatusPending DomainStatus = "pending"
	DomainStatusError   DomainStatus = "error"
)

// DNSHealth represents the aggregate DNS state of a domain
type DNSHealth string

const (
	DNSHealthHealthy     DNSHealth = "healthy"
	DNSHealthConfiguring DNSHealth = "configuring"
	DNSHealthError       DNSHealth = "error"
)

// Domain represents a registered sending domain
type Domain struct {
	ID            string       `json:"id" db:"id"`
	Name          string       `json:"domain" db:"domain"`
	Registrar     string       `json:"registrar" db:"registrar"`
	Status        DomainStatus `json:"status" db:"status"`
	InboxCount    int          `json:"inbox_count" db:"inbox_count"`
	InboxCapacity int          `json:"inbox_capacity" db:"inbox_capacity"`
	DNSHealth     DNSHealth    `json:"dns_health" db:"dns_health"`
	CreatedAt     time.Time    `json:"created" db:"created_at"`
}

// TableName returns the table name for the Domain model
func (Domain) TableName() string {
	return "domains"
}

// Inboxes renders the provisioned/capacity pair shown in the domain table, e.g. "2/3"
func (d *Domain) Inboxes() string {
	return fmt.Sprintf("%d/%d", d.InboxCount, d.InboxCapacity)
}
