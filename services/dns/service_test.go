package dns

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/repositories/memory"
	"github.com/greysolve/outreach-console/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

// MockActivityRecorder is a mock implementation of services.ActivityRecorder
type MockActivityRecorder struct {
	mock.Mock
}

func (m *MockActivityRecorder) Record(ctx context.Context, entry *models.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

var operator = services.Actor{Email: "ops@greysolve.com"}

func newTestService(recorder services.ActivityRecorder, cfg Config) *Service {
	repo := memory.NewInventoryRepository(memory.SeedDomains(), memory.SeedInboxes(), memory.SeedDNS())
	return NewService(repo, recorder, cfg, zap.NewNop())
}

func TestService_List(t *testing.T) {
	svc := newTestService(new(MockActivityRecorder), Config{})

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list.Domains, 3)
	assert.Equal(t, Summary{Healthy: 1, Configuring: 1, Error: 1}, list.Summary)
}

func TestService_Get(t *testing.T) {
	svc := newTestService(new(MockActivityRecorder), Config{})

	d, err := svc.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "b2b-connect-pro.com", d.Domain)
	assert.Len(t, d.Records, 3)

	_, err = svc.Get(context.Background(), "42")
	assert.True(t, errors.Is(err, services.ErrDNSDomainNotFound))
}

func TestService_Verify(t *testing.T) {
	defer goleak.VerifyNone(t)

	recorder := new(MockActivityRecorder)
	recorder.On("Record", mock.Anything, mock.MatchedBy(func(e *models.ActivityLog) bool {
		return e.Category == models.ActivityCategoryDNS && e.ResourceID == "b2b-connect-pro.com" && e.AffectedRecords == 3
	})).Return(nil)
	svc := newTestService(recorder, Config{VerifyDelay: 20 * time.Millisecond})

	before := time.Now()
	d, err := svc.Verify(context.Background(), operator, "2")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(before), 20*time.Millisecond)
	assert.False(t, d.LastVerified.Before(before.UTC().Truncate(time.Second)))

	stored, err := svc.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, d.LastVerified, stored.LastVerified)
	recorder.AssertExpectations(t)
}

func TestService_VerifyKeepsConcurrentUpdate(t *testing.T) {
	defer goleak.VerifyNone(t)

	recorder := new(MockActivityRecorder)
	recorder.On("Record", mock.Anything, mock.Anything).Return(nil)
	svc := newTestService(recorder, Config{VerifyDelay: 100 * time.Millisecond})

	type result struct {
		d   *models.DomainDNS
		err error
	}
	verified := make(chan result, 1)
	go func() {
		d, err := svc.Verify(context.Background(), operator, "1")
		verified <- result{d, err}
	}()

	time.Sleep(20 * time.Millisecond)
	updated, err := svc.BulkUpdate(context.Background(), operator, "1", []string{"1"})
	require.NoError(t, err)
	require.Equal(t, models.DNSRecordPending, updated.Records[0].Status)

	res := <-verified
	require.NoError(t, res.err)
	assert.Equal(t, models.DNSRecordPending, res.d.Records[0].Status)
	assert.Equal(t, models.DNSHealthConfiguring, res.d.DNSHealth)

	stored, err := svc.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, models.DNSRecordPending, stored.Records[0].Status)
	assert.Equal(t, models.PropagationInProgress, stored.PropagationStatus)
	assert.Equal(t, res.d.LastVerified, stored.LastVerified)
}

func TestService_VerifyCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	recorder := new(MockActivityRecorder)
	svc := newTestService(recorder, Config{VerifyDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := svc.Verify(ctx, operator, "1")
	assert.True(t, errors.Is(err, context.Canceled))
	recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestService_Diagnose(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := newTestService(new(MockActivityRecorder), Config{DiagnoseDelay: 5 * time.Millisecond})

	healthy, err := svc.Diagnose(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, healthy.Healthy)
	assert.Empty(t, healthy.Issues)

	broken, err := svc.Diagnose(context.Background(), "2")
	require.NoError(t, err)
	assert.False(t, broken.Healthy)
	require.Len(t, broken.Issues, 3)
	assert.Equal(t, models.DNSRecordError, broken.Issues[2].Status)
}

func TestService_BulkUpdate(t *testing.T) {
	recorder := new(MockActivityRecorder)
	recorder.On("Record", mock.Anything, mock.MatchedBy(func(e *models.ActivityLog) bool {
		return e.Action == "Bulk DNS Update" && e.AffectedRecords == 2
	})).Return(nil)
	svc := newTestService(recorder, Config{})

	d, err := svc.BulkUpdate(context.Background(), operator, "1", []string{"1", "3"})
	require.NoError(t, err)

	assert.Equal(t, models.DNSRecordPending, d.Records[0].Status)
	assert.Equal(t, models.DNSRecordVerified, d.Records[1].Status)
	assert.Equal(t, models.DNSRecordPending, d.Records[2].Status)
	assert.Equal(t, models.PropagationInProgress, d.PropagationStatus)
	assert.Equal(t, models.DNSHealthConfiguring, d.DNSHealth)

	stored, err := svc.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, models.DNSRecordPending, stored.Records[0].Status)
	recorder.AssertExpectations(t)
}

func TestService_BulkUpdateRejects(t *testing.T) {
	recorder := new(MockActivityRecorder)
	svc := newTestService(recorder, Config{})

	t.Run("nothing selected", func(t *testing.T) {
		_, err := svc.BulkUpdate(context.Background(), operator, "1", nil)
		assert.True(t, services.IsValidationError(err))
	})

	t.Run("record of another domain", func(t *testing.T) {
		_, err := svc.BulkUpdate(context.Background(), operator, "1", []string{"1", "8"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, services.ErrDNSRecordNotFound))
		assert.Equal(t, "8", services.GetErrorDetails(err)["record_id"])

		stored, err := svc.Get(context.Background(), "1")
		require.NoError(t, err)
		assert.Equal(t, models.DNSRecordVerified, stored.Records[0].Status, "no partial update")
	})

	t.Run("unknown domain", func(t *testing.T) {
		_, err := svc.BulkUpdate(context.Background(), operator, "9", []string{"1"})
		assert.True(t, services.IsNotFoundError(err))
	})

	recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}
