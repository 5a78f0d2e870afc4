package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/greysolve/outreach-console/internal/pricing"
	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/repositories"
	"go.uber.org/zap"
)

// InventoryRepository implements the repositories.InventoryRepository interface
type InventoryRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *DB, logger *zap.Logger) repositories.InventoryRepository {
	return &InventoryRepository{
		db:     db,
		logger: logger,
	}
}

// ListDomains returns all sending domains
func (r *InventoryRepository) ListDomains(ctx context.Context) ([]*models.Domain, error) {
	query := `
		SELECT id, domain, registrar, status, inbox_count, inbox_capacity, dns_health, created_at
		FROM domains
		ORDER BY id
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}
	defer rows.Close()

	domains := make([]*models.Domain, 0)
	for rows.Next() {
		d := &models.Domain{}
		if err := rows.Scan(&d.ID, &d.Name, &d.Registrar, &d.Status, &d.InboxCount, &d.InboxCapacity, &d.DNSHealth, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating domains: %w", err)
	}
	return domains, nil
}

// ListInboxes returns all inboxes
func (r *InventoryRepository) ListInboxes(ctx context.Context) ([]*models.Inbox, error) {
	query := `
		SELECT id, email, domain, provider, status, warmup_progress, warmup_days, sending_limit,
		       current_usage, sequencer_connected, sequencer_tool, last_activity, bounce_rate,
		       spam_complaints, blacklist_status
		FROM inboxes
		ORDER BY id
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list inboxes: %w", err)
	}
	defer rows.Close()

	inboxes := make([]*models.Inbox, 0)
	for rows.Next() {
		i := &models.Inbox{}
		var tool sql.NullString
		err := rows.Scan(
			&i.ID,
			&i.Email,
			&i.Domain,
			&i.Provider,
			&i.Status,
			&i.WarmupProgress,
			&i.WarmupDays,
			&i.SendingLimit,
			&i.CurrentUsage,
			&i.SequencerConnected,
			&tool,
			&i.LastActivity,
			&i.BounceRate,
			&i.SpamComplaints,
			&i.BlacklistStatus,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inbox: %w", err)
		}
		if tool.Valid {
			s := pricing.SequencingPlatform(tool.String)
			i.SequencerTool = &s
		}
		inboxes = append(inboxes, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inboxes: %w", err)
	}
	return inboxes, nil
}

// ListDNS returns the DNS configuration of every domain
func (r *InventoryRepository) ListDNS(ctx context.Context) ([]*models.DomainDNS, error) {
	return r.queryDNS(ctx, "")
}

// GetDNS returns the DNS configuration of one domain
func (r *InventoryRepository) GetDNS(ctx context.Context, id string) (*models.DomainDNS, error) {
	all, err := r.queryDNS(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("dns domain %s: %w", id, repositories.ErrNotFound)
	}
	return all[0], nil
}

// queryDNS loads domains with their records in one pass; an empty id loads all.
func (r *InventoryRepository) queryDNS(ctx context.Context, id string) ([]*models.DomainDNS, error) {
	query := `
		SELECT d.id, d.domain, d.registrar, d.dns_health, d.propagation_status, d.last_verified,
		       rec.id, rec.type, rec.name, rec.value, rec.ttl, rec.status
		FROM dns_domains d
		LEFT JOIN dns_records rec ON rec.dns_domain_id = d.id
		WHERE ($1 = '' OR d.id = $1)
		ORDER BY d.id, rec.position
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query dns configuration: %w", err)
	}
	defer rows.Close()

	out := make([]*models.DomainDNS, 0)
	var current *models.DomainDNS
	for rows.Next() {
		var (
			d                           models.DomainDNS
			recID, recType, name, value sql.NullString
			recStatus                   sql.NullString
			ttl                         sql.NullInt64
		)
		err := rows.Scan(&d.ID, &d.Domain, &d.Registrar, &d.DNSHealth, &d.PropagationStatus, &d.LastVerified,
			&recID, &recType, &name, &value, &ttl, &recStatus)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dns row: %w", err)
		}

		if current == nil || current.ID != d.ID {
			d.Records = []models.DNSRecord{}
			current = &d
			out = append(out, current)
		}
		if recID.Valid {
			current.Records = append(current.Records, models.DNSRecord{
				ID:     recID.String,
				Type:   models.DNSRecordType(recType.String),
				Name:   name.String,
				Value:  value.String,
				TTL:    int(ttl.Int64),
				Status: models.DNSRecordStatus(recStatus.String),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dns rows: %w", err)
	}
	return out, nil
}

// SaveDNS replaces the DNS configuration of one domain
func (r *InventoryRepository) SaveDNS(ctx context.Context, dns *models.DomainDNS) error {
	if _, ok := GetTransactionFromContext(ctx); ok {
		return r.saveDNS(ctx, dns)
	}
	return NewTransactionManager(r.db, r.logger).InTransaction(ctx, func(txCtx context.Context, _ repositories.Transaction) error {
		return r.saveDNS(txCtx, dns)
	})
}

// TouchVerified sets only last_verified, leaving records untouched
func (r *InventoryRepository) TouchVerified(ctx context.Context, id string, at time.Time) (*models.DomainDNS, error) {
	executor := GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, `UPDATE dns_domains SET last_verified = $2 WHERE id = $1`, id, at)
	if err != nil {
		return nil, fmt.Errorf("failed to touch dns domain: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("dns domain %s: %w", id, repositories.ErrNotFound)
	}
	return r.GetDNS(ctx, id)
}

func (r *InventoryRepository) saveDNS(ctx context.Context, dns *models.DomainDNS) error {
	executor := GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, `
		UPDATE dns_domains
		SET dns_health = $2, propagation_status = $3, last_verified = $4
		WHERE id = $1
	`, dns.ID, dns.DNSHealth, dns.PropagationStatus, dns.LastVerified)
	if err != nil {
		return fmt.Errorf("failed to update dns domain: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("dns domain %s: %w", dns.ID, repositories.ErrNotFound)
	}

	if _, err := executor.ExecContext(ctx, `DELETE FROM dns_records WHERE dns_domain_id = $1`, dns.ID); err != nil {
		return fmt.Errorf("failed to clear dns records: %w", err)
	}

	for pos, rec := range dns.Records {
		_, err := executor.ExecContext(ctx, `
			INSERT INTO dns_records (id, dns_domain_id, position, type, name, value, ttl, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, rec.ID, dns.ID, pos, rec.Type, rec.Name, rec.Value, rec.TTL, rec.Status)
		if err != nil {
			return fmt.Errorf("failed to insert dns record %s: %w", rec.ID, err)
		}
	}

	r.logger.Debug("dns configuration saved", zap.String("id", dns.ID), zap.Int("records", len(dns.Records)))
	return nil
}
