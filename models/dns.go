package models

import "time"

// DNSRecordType enumerates the record types managed for sending domains
type DNSRecordType string

const (
	DNSRecordA     DNSRecordType = "A"
	DNSRecordCNAME DNSRecordType = "CNAME"
	DNSRecordMX    DNSRecordType = "MX"
	DNSRecordTXT   DNSRecordType = "TXT"
	DNSRecordSPF   DNSRecordType = "SPF"
	DNSRecordDMARC DNSRecordType = "DMARC"
)

// DNSRecordStatus represents the verification state of a single record
type DNSRecordStatus string

const (
	DNSRecordVerified DNSRecordStatus = "verified"
	DNSRecordPending  DNSRecordStatus = "pending"
	DNSRecordError    DNSRecordStatus = "error"
)

// PropagationStatus represents how far a domain's records have propagated
type PropagationStatus string

const (
	PropagationComplete   PropagationStatus = "complete"
	PropagationInProgress PropagationStatus = "in_progress"
	PropagationFailed     PropagationStatus = "failed"
)

// DNSRecord is a single DNS record of a domain
type DNSRecord struct {
	ID     string          `json:"id" db:"id"`
	Type   DNSRecordType   `json:"type" db:"type"`
	Name   string          `json:"name" db:"name"`
	Value  string          `json:"value" db:"value"`
	TTL    int             `json:"ttl" db:"ttl"`
	Status DNSRecordStatus `json:"status" db:"status"`
}

// DomainDNS is the DNS configuration of one domain
type DomainDNS struct {
	ID                string            `json:"id" db:"id"`
	Domain            string            `json:"domain" db:"domain"`
	Registrar         string            `json:"registrar" db:"registrar"`
	DNSHealth         DNSHealth         `json:"dns_health" db:"dns_health"`
	PropagationStatus PropagationStatus `json:"propagation_status" db:"propagation_status"`
	Records           []DNSRecord       `json:"records"`
	LastVerified      time.Time         `json:"last_verified" db:"last_verified"`
}

// TableName returns the table name for the DomainDNS model
func (DomainDNS) TableName() string {
	return "dns_domains"
}

// Record returns the record with the given id
func (d *DomainDNS) Record(id string) (*DNSRecord, bool) {
	for i := range d.Records {
		if d.Records[i].ID == id {
			return &d.Records[i], true
		}
	}
	return nil, false
}

// UnverifiedRecords returns the records that are pending or in error
func (d *DomainDNS) UnverifiedRecords() []DNSRecord {
	issues := []DNSRecord{}
	for _, r := range d.Records {
		if r.Status != DNSRecordVerified {
			issues = append(issues, r)
		}
	}
	return issues
}

// Clone returns a deep copy so callers cannot alias stored records
func (d *DomainDNS) Clone() *DomainDNS {
	out := *d
	out.Records = append([]DNSRecord(nil), d.Records...)
	return &out
}
