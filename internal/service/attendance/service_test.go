package attendance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/daksa-hr/attendance-gateway/internal/config"
	"github.com/daksa-hr/attendance-gateway/internal/domain/attendance"
	"github.com/daksa-hr/attendance-gateway/internal/domain/employee"
	"github.com/daksa-hr/attendance-gateway/internal/pkg/cache"
	"github.com/daksa-hr/attendance-gateway/internal/pkg/zoho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirectory struct {
	ids []string
	err error
}

func (s *stubDirectory) List(ctx context.Context) ([]employee.Employee, error) { return nil, s.err }
func (s *stubDirectory) IDs(ctx context.Context) ([]string, error)            { return s.ids, s.err }

func newTestService(t *testing.T) (attendance.Service, *atomic.Int32) {
	t.Helper()

	var apiHits atomic.Int32

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-1","token_type":"Bearer","expires_in":3600}`))
	}))
	t.Cleanup(tokenSrv.Close)

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiHits.Add(1)
		w.Write([]byte(`{"29-04-2025": {"FirstIn": "29-04-2025 09:00 AM", "LastOut": "29-04-2025 06:00 PM"}}`))
	}))
	t.Cleanup(apiSrv.Close)

	cfg := config.ZohoConfig{
		ClientID:     "cid",
		ClientSecret: "secret",
		RefreshToken: "rtok",
		TokenURL:     tokenSrv.URL,
		APIBaseURL:   apiSrv.URL,
		Timeout:      5 * time.Second,
	}
	tokens := zoho.NewTokenManager(cfg)
	t.Cleanup(tokens.Close)

	fetcher := NewFetcher(zoho.NewClient(cfg, tokens), 30)
	fetcher.now = func() time.Time { return testNow }

	svc := NewAttendanceService(fetcher, &stubDirectory{ids: []string{"E1"}}, cache.New(time.Minute), time.Minute)
	svc.(*AttendanceServiceImpl).now = func() time.Time { return testNow }
	return svc, &apiHits
}

func TestOverviewBuildsSnapshotOnce(t *testing.T) {
	svc, hits := newTestService(t)

	first, err := svc.Overview(context.Background(), attendance.PeriodMonth)
	require.NoError(t, err)
	require.Len(t, first.Employees["E1"], 1)
	assert.Equal(t, attendance.StatusPresent, first.Employees["E1"][0].Status)
	assert.Equal(t, "2025-03-30", first.StartDate)
	assert.Equal(t, "2025-04-29", first.EndDate)

	_, err = svc.Overview(context.Background(), attendance.PeriodToday)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load(), "second overview served from the snapshot")
}

func TestRefreshForcesRebuild(t *testing.T) {
	svc, hits := newTestService(t)

	_, err := svc.Overview(context.Background(), attendance.PeriodMonth)
	require.NoError(t, err)

	got, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "month", got.Period)
	assert.Equal(t, int32(2), hits.Load(), "refresh bypasses the cached snapshot")
}

func TestSummaryFoldsSnapshot(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.Summary(context.Background(), attendance.PeriodMonth)
	require.NoError(t, err)

	s := got.Employees["E1"]
	assert.Equal(t, 1, s.Present)
	assert.InDelta(t, 9.0, s.TotalHours, 0.001)
}

func TestSnapshotFailureIsWrapped(t *testing.T) {
	svc, _ := newTestService(t)
	svc.(*AttendanceServiceImpl).directory = &stubDirectory{err: employee.ErrDirectoryUnavailable}

	_, err := svc.Overview(context.Background(), attendance.PeriodMonth)
	require.Error(t, err)
	assert.ErrorIs(t, err, employee.ErrDirectoryUnavailable)
}
