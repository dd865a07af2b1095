package attendance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/daksa-hr/attendance-gateway/internal/config"
	"github.com/daksa-hr/attendance-gateway/internal/domain/attendance"
	"github.com/daksa-hr/attendance-gateway/internal/pkg/zoho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestFetcher wires a Fetcher against two stub servers: one issuing
// tokens, one playing the People API.
func newTestFetcher(t *testing.T, apiHandler http.HandlerFunc) *Fetcher {
	t.Helper()

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-1","token_type":"Bearer","expires_in":3600}`))
	}))
	t.Cleanup(tokenSrv.Close)

	apiSrv := httptest.NewServer(apiHandler)
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

	f := NewFetcher(zoho.NewClient(cfg, tokens), 30)
	f.now = func() time.Time { return testNow }
	return f
}

func TestFetchRangeNormalizesAndSorts(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		// Keys deliberately out of order.
		w.Write([]byte(`{
			"29-04-2025": {"FirstIn": "29-04-2025 10:20 AM", "LastOut": "-"},
			"28-04-2025": {"FirstIn": "-", "LastOut": "-", "Status": "Absent"}
		}`))
	})

	month, err := f.FetchRange(context.Background(), []string{"E1"}, testNow.AddDate(0, 0, -1), testNow)
	require.NoError(t, err)

	days := month["E1"]
	require.Len(t, days, 2)
	assert.Equal(t, "2025-04-28", days[0].Date)
	assert.Equal(t, attendance.StatusAbsent, days[0].Status)
	assert.Equal(t, "2025-04-29", days[1].Date)
	assert.Equal(t, attendance.StatusPresent, days[1].Status)
}

func TestFetchRangeIsolatesFailures(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("empId") == "E2" {
			http.Error(w, "upstream broke", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"29-04-2025": {"FirstIn": "29-04-2025 09:00 AM", "LastOut": "-"}}`))
	})

	month, err := f.FetchRange(context.Background(), []string{"E1", "E2", "E3"}, testNow, testNow)
	require.NoError(t, err)
	require.Len(t, month, 3)

	assert.Equal(t, attendance.StatusPresent, month["E1"][0].Status)
	assert.Equal(t, attendance.StatusPresent, month["E3"][0].Status)

	failed := month["E2"]
	require.Len(t, failed, 1)
	assert.True(t, failed[0].FetchFailed)
	assert.Equal(t, attendance.StatusYetToCheckIn, failed[0].Status)
	assert.Equal(t, "2025-04-29", failed[0].Date)
}

func TestFetchRangeEmptyReportGetsDefaultDay(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": {"result": {}}}`))
	})

	month, err := f.FetchRange(context.Background(), []string{"E1"}, testNow, testNow)
	require.NoError(t, err)

	days := month["E1"]
	require.Len(t, days, 1)
	assert.False(t, days[0].FetchFailed)
	assert.Equal(t, attendance.StatusYetToCheckIn, days[0].Status)
}

func TestFetchRangeFailsWithoutAnyToken(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	t.Cleanup(tokenSrv.Close)

	cfg := config.ZohoConfig{
		ClientID:     "cid",
		ClientSecret: "secret",
		RefreshToken: "rtok",
		TokenURL:     tokenSrv.URL,
		APIBaseURL:   "http://unused.invalid",
		Timeout:      5 * time.Second,
	}
	tokens := zoho.NewTokenManager(cfg)
	t.Cleanup(tokens.Close)

	f := NewFetcher(zoho.NewClient(cfg, tokens), 30)
	f.now = func() time.Time { return testNow }

	_, err := f.FetchRange(context.Background(), []string{"E1"}, testNow, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no cached token")
}

func TestWindowHelpers(t *testing.T) {
	f := &Fetcher{windowDays: 30, now: func() time.Time { return testNow }}

	start := f.WindowStart(testNow)
	assert.Equal(t, testNow.AddDate(0, 0, -30), start)
}
