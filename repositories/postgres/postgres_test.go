package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/greysolve/outreach-console/internal/pricing"
	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return WrapDB(sqlDB, zap.NewNop()), mock
}

func TestDB_HealthCheck(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectPing()
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	require.NoError(t, db.HealthCheck(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	err := db.HealthCheck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "health check failed")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func campaignRow(id uuid.UUID, created time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "client", "domain_registrar", "domain_pattern", "keywords",
		"number_of_domains", "inboxes_per_domain", "workspace_provider", "inbox_pattern",
		"sequencing_platform", "warmup_days", "domain_registration_cost", "workspace_cost",
		"sequencing_tool_cost", "total_first_month_cost", "status", "created_by", "created_at", "updated_at",
	}).AddRow(
		id.String(), "Q3 Outbound", "Acme Corp", "Namecheap", "{keyword}-hub.com", "{sales,b2b}",
		10, 3, "Google Workspace", "{first}.{last}",
		"Smartlead", 14, "129.9000", "180.0000",
		"97.0000", "406.9000", "launching", "ops@greysolve.com", created, created,
	)
}

func TestCampaignRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCampaignRepository(db, zap.NewNop())

	c := models.NewCampaign("Q3 Outbound", models.CampaignStatusLaunching)
	c.Keywords = []string{"sales"}
	c.Estimate = pricing.Estimate(pricing.DefaultConfig())

	args := make([]driver.Value, 20)
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO campaigns")).
		WithArgs(args...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), c))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCampaignRepository(db, zap.NewNop())
	id := uuid.New()
	created := time.Date(2025, 7, 18, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM campaigns WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(campaignRow(id, created))

		c, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, c.ID)
		assert.Equal(t, []string{"sales", "b2b"}, c.Keywords)
		assert.Equal(t, pricing.SequencerSmartlead, c.SequencingPlatform)
		assert.True(t, c.Estimate.TotalFirstMonth.Equal(decimal.RequireFromString("406.90")))
		assert.Equal(t, models.CampaignStatusLaunching, c.Status)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM campaigns WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(context.Background(), id)
		assert.True(t, errors.Is(err, repositories.ErrNotFound))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignRepository_UpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCampaignRepository(db, zap.NewNop())
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE campaigns SET status = $2")).
		WithArgs(id, models.CampaignStatusActive).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatus(context.Background(), id, models.CampaignStatusActive))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE campaigns SET status = $2")).
		WithArgs(id, models.CampaignStatusActive).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateStatus(context.Background(), id, models.CampaignStatusActive)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignRepository_CountByStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCampaignRepository(db, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM campaigns WHERE status = $1")).
		WithArgs(models.CampaignStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.CountByStatus(context.Background(), models.CampaignStatusActive)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var activityCols = []string{
	"id", "timestamp", "user_email", "action", "category", "status", "details",
	"resource_id", "resource_type", "ip_address", "user_agent", "request_id",
	"duration_seconds", "affected_records",
}

func TestActivityLogRepository_GetByIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActivityLogRepository(db, zap.NewNop())
	ts := time.Date(2025, 7, 18, 14, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(activityCols).
			AddRow("2", ts, "admin@greysolve.com", "Campaign Setup", "campaign", "success", "Created", "c-1", "campaign", "10.0.0.1", "curl", "req-1", 1.5, 1))

	logs, err := repo.GetByIDs(context.Background(), []string{"2", "missing"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActivityCategoryCampaign, logs[0].Category)
	assert.Equal(t, 1.5, logs[0].Duration)

	empty, err := repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db, zap.NewNop())

	t.Run("defaults before first save", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM system_settings")).
			WillReturnRows(sqlmock.NewRows([]string{"document", "updated_at", "updated_by"}))

		s, err := repo.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, models.DefaultSettings().System.MaxDomainsPerCampaign, s.System.MaxDomainsPerCampaign)
	})

	t.Run("stored document", func(t *testing.T) {
		updated := time.Date(2025, 7, 18, 9, 0, 0, 0, time.UTC)
		mock.ExpectQuery(regexp.QuoteMeta("FROM system_settings")).
			WillReturnRows(sqlmock.NewRows([]string{"document", "updated_at", "updated_by"}).
				AddRow([]byte(`{"system":{"max_domains_per_campaign":25,"cost_threshold":"750"}}`), updated, "ops@greysolve.com"))

		s, err := repo.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 25, s.System.MaxDomainsPerCampaign)
		assert.True(t, s.System.CostThreshold.Equal(decimal.NewFromInt(750)))
		assert.Equal(t, "ops@greysolve.com", s.UpdatedBy)
		assert.Equal(t, updated, s.UpdatedAt)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db, zap.NewNop())
	s := models.DefaultSettings()
	s.UpdatedBy = "ops@greysolve.com"

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (id) DO UPDATE")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "ops@greysolve.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), &s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

var dnsCols = []string{
	"id", "domain", "registrar", "dns_health", "propagation_status", "last_verified",
	"rec_id", "type", "name", "value", "ttl", "status",
}

func TestInventoryRepository_ListDNS(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db, zap.NewNop())
	ts := time.Date(2025, 7, 18, 14, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM dns_domains d")).
		WithArgs("").
		WillReturnRows(sqlmock.NewRows(dnsCols).
			AddRow("1", "client-outreach-hub.com", "Namecheap", "healthy", "complete", ts, "1", "A", "@", "192.168.1.1", 300, "verified").
			AddRow("1", "client-outreach-hub.com", "Namecheap", "healthy", "complete", ts, "2", "CNAME", "www", "@", 300, "verified").
			AddRow("4", "empty.com", "GoDaddy", "error", "failed", ts, nil, nil, nil, nil, nil, nil))

	all, err := repo.ListDNS(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Len(t, all[0].Records, 2)
	assert.Equal(t, models.DNSRecordCNAME, all[0].Records[1].Type)
	assert.Empty(t, all[1].Records)
	assert.NotNil(t, all[1].Records)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepository_GetDNSNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("FROM dns_domains d")).
		WithArgs("99").
		WillReturnRows(sqlmock.NewRows(dnsCols))

	_, err := repo.GetDNS(context.Background(), "99")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepository_TouchVerified(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db, zap.NewNop())
	at := time.Date(2025, 7, 19, 9, 0, 0, 0, time.UTC)

	t.Run("updates only last_verified", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE dns_domains SET last_verified = $2 WHERE id = $1")).
			WithArgs("1", at).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta("FROM dns_domains d")).
			WithArgs("1").
			WillReturnRows(sqlmock.NewRows(dnsCols).
				AddRow("1", "client-outreach-hub.com", "Namecheap", "configuring", "in_progress", at, "1", "A", "@", "192.168.1.1", 300, "pending"))

		d, err := repo.TouchVerified(context.Background(), "1", at)
		require.NoError(t, err)
		assert.Equal(t, at, d.LastVerified)
		assert.Equal(t, models.DNSRecordPending, d.Records[0].Status)
	})

	t.Run("unknown domain", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE dns_domains")).
			WithArgs("99", at).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.TouchVerified(context.Background(), "99", at)
		assert.True(t, errors.Is(err, repositories.ErrNotFound))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepository_SaveDNS(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db, zap.NewNop())

	dns := &models.DomainDNS{
		ID:                "2",
		DNSHealth:         models.DNSHealthConfiguring,
		PropagationStatus: models.PropagationInProgress,
		LastVerified:      time.Now(),
		Records: []models.DNSRecord{
			{ID: "5", Type: models.DNSRecordA, Name: "@", Value: "192.168.1.2", TTL: 300, Status: models.DNSRecordPending},
		},
	}

	t.Run("commits", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE dns_domains")).
			WithArgs("2", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM dns_records")).
			WithArgs("2").
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO dns_records")).
			WithArgs("5", "2", 0, sqlmock.AnyArg(), "@", "192.168.1.2", 300, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.SaveDNS(context.Background(), dns))
	})

	t.Run("rolls back unknown domain", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE dns_domains")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.SaveDNS(context.Background(), dns)
		assert.True(t, errors.Is(err, repositories.ErrNotFound))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
