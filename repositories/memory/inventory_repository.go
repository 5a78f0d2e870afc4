package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/repositories"
)

// InventoryRepository implements repositories.InventoryRepository in memory
type InventoryRepository struct {
	mu      sync.RWMutex
	domains []*models.Domain
	inboxes []*models.Inbox
	dns     []*models.DomainDNS
}

// NewInventoryRepository creates a repository over the given inventory
func NewInventoryRepository(domains []*models.Domain, inboxes []*models.Inbox, dns []*models.DomainDNS) *InventoryRepository {
	return &InventoryRepository{domains: domains, inboxes: inboxes, dns: dns}
}

// ListDomains returns all sending domains
func (r *InventoryRepository) ListDomains(_ context.Context) ([]*models.Domain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Domain, 0, len(r.domains))
	for _, d := range r.domains {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

// ListInboxes returns all inboxes
func (r *InventoryRepository) ListInboxes(_ context.Context) ([]*models.Inbox, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Inbox, 0, len(r.inboxes))
	for _, i := range r.inboxes {
		cp := *i
		out = append(out, &cp)
	}
	return out, nil
}

// ListDNS returns the DNS configuration of every domain
func (r *InventoryRepository) ListDNS(_ context.Context) ([]*models.DomainDNS, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.DomainDNS, 0, len(r.dns))
	for _, d := range r.dns {
		out = append(out, d.Clone())
	}
	return out, nil
}

// GetDNS returns the DNS configuration of one domain
func (r *InventoryRepository) GetDNS(_ context.Context, id string) (*models.DomainDNS, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.dns {
		if d.ID == id {
			return d.Clone(), nil
		}
	}
	return nil, fmt.Errorf("dns domain %s: %w", id, repositories.ErrNotFound)
}

// SaveDNS replaces the DNS configuration of one domain
func (r *InventoryRepository) SaveDNS(_ context.Context, dns *models.DomainDNS) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, d := range r.dns {
		if d.ID == dns.ID {
			r.dns[i] = dns.Clone()
			return nil
		}
	}
	return fmt.Errorf("dns domain %s: %w", dns.ID, repositories.ErrNotFound)
}

// TouchVerified sets the verification time of one domain
func (r *InventoryRepository) TouchVerified(_ context.Context, id string, at time.Time) (*models.DomainDNS, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.dns {
		if d.ID == id {
			d.LastVerified = at
			return d.Clone(), nil
		}
	}
	return nil, fmt.Errorf("dns domain %s: %w", id, repositories.ErrNotFound)
}
