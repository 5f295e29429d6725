package monitor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aleister1102/webwatch/internal/config"
	"github.com/aleister1102/webwatch/internal/datastore"
	"github.com/aleister1102/webwatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSite is a controllable origin for one monitored target.
type fakeSite struct {
	mu     sync.Mutex
	body   string
	status int
}

func (fs *fakeSite) set(body string, status int) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.body = body
	fs.status = status
}

func (fs *fakeSite) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		body, status := fs.body, fs.status
		fs.mu.Unlock()
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_, _ = w.Write([]byte(body))
	}
}

func newTestService(t *testing.T, targets []config.TargetConfig) (*MonitoringService, *datastore.HashStore) {
	t.Helper()

	cfg := config.NewDefaultMonitorConfig()
	cfg.Targets = targets
	cfg.DelaySeconds = 0 // No throttling in tests

	store := datastore.NewHashStore(filepath.Join(t.TempDir(), "url_hashes.json"), zerolog.Nop())
	fetcher := NewFetcher(&http.Client{Timeout: 5 * time.Second}, zerolog.Nop(), &cfg)
	processor := NewContentProcessor(zerolog.Nop())
	checker := NewTargetChecker(zerolog.Nop(), fetcher, processor)

	return NewMonitoringService(&cfg, store, checker, nil, zerolog.Nop()), store
}

func digestOf(body string) string {
	return NewContentProcessor(zerolog.Nop()).Digest([]byte(body))
}

// TestMonitoringService_Lifecycle walks one target through the full
// initial -> unchanged -> changed -> error sequence across four runs.
func TestMonitoringService_Lifecycle(t *testing.T) {
	site := &fakeSite{body: "hello", status: http.StatusOK}
	server := httptest.NewServer(site.handler())
	defer server.Close()

	service, store := newTestService(t, []config.TargetConfig{{Name: "A", URL: server.URL}})
	ctx := context.Background()

	d1 := digestOf("hello")
	d2 := digestOf("world")

	// Run 1: empty prior state -> Initial referencing the new digest.
	result, err := service.RunCycle(ctx)
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, models.ReportStatusInitial, result.Events[0].Status)
	assert.Contains(t, result.Events[0].HashDetails, d1[:8])
	assert.Equal(t, d1, store.Load()["A"])

	// Run 2: same body -> Unchanged, no report entry, store untouched.
	result, err = service.RunCycle(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Events)
	require.Len(t, result.Results, 1)
	assert.Equal(t, models.StatusUnchanged, result.Results[0].Status)
	assert.Equal(t, d1, store.Load()["A"])

	// Run 3: body changes -> Changed referencing old and new digests.
	site.set("world", http.StatusOK)
	result, err = service.RunCycle(ctx)
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, models.ReportStatusChanged, result.Events[0].Status)
	assert.Contains(t, result.Events[0].HashDetails, d1[:8])
	assert.Contains(t, result.Events[0].HashDetails, d2[:8])
	assert.Equal(t, d2, store.Load()["A"])

	// Run 4: HTTP 500 -> Error, persisted digest remains d2.
	site.set("", http.StatusInternalServerError)
	result, err = service.RunCycle(ctx)
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Contains(t, result.Events[0].Status, "Error:")
	assert.Equal(t, "N/A", result.Events[0].HashDetails)
	assert.Equal(t, d2, store.Load()["A"], "a failed fetch must not overwrite or erase the prior digest")
}

func TestMonitoringService_Idempotence(t *testing.T) {
	site := &fakeSite{body: "stable", status: http.StatusOK}
	server := httptest.NewServer(site.handler())
	defer server.Close()

	service, _ := newTestService(t, []config.TargetConfig{{Name: "A", URL: server.URL}})
	ctx := context.Background()

	first, err := service.RunCycle(ctx)
	require.NoError(t, err)
	assert.Len(t, first.Events, 1)

	second, err := service.RunCycle(ctx)
	require.NoError(t, err)
	assert.Empty(t, second.Events, "a repeat run over unchanged bodies must report nothing")
}

func TestMonitoringService_ErrorAfterChange(t *testing.T) {
	// A transient error immediately after a real content change: the next
	// successful run still compares against the pre-change digest and
	// reports Changed.
	site := &fakeSite{body: "before", status: http.StatusOK}
	server := httptest.NewServer(site.handler())
	defer server.Close()

	service, store := newTestService(t, []config.TargetConfig{{Name: "A", URL: server.URL}})
	ctx := context.Background()

	_, err := service.RunCycle(ctx) // Initial with digest("before")
	require.NoError(t, err)

	site.set("after", http.StatusInternalServerError) // Change masked by an error
	result, err := service.RunCycle(ctx)
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, models.StatusError, result.Results[0].Status)
	assert.Equal(t, digestOf("before"), store.Load()["A"])

	site.set("after", http.StatusOK) // Recovery
	result, err = service.RunCycle(ctx)
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, models.ReportStatusChanged, result.Events[0].Status)
	assert.Contains(t, result.Events[0].HashDetails, digestOf("before")[:8])
	assert.Contains(t, result.Events[0].HashDetails, digestOf("after")[:8])
}

func TestMonitoringService_TargetFailureDoesNotAbortRemaining(t *testing.T) {
	good := &fakeSite{body: "ok", status: http.StatusOK}
	goodServer := httptest.NewServer(good.handler())
	defer goodServer.Close()

	badServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	badServer.Close() // Refuses connections

	service, store := newTestService(t, []config.TargetConfig{
		{Name: "Bad", URL: badServer.URL},
		{Name: "Good", URL: goodServer.URL},
	})

	result, err := service.RunCycle(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Results, 2)
	assert.Equal(t, models.StatusError, result.Results[0].Status)
	assert.Equal(t, models.StatusInitial, result.Results[1].Status)

	hashes := store.Load()
	assert.NotContains(t, hashes, "Bad", "a target that has never succeeded has no persisted digest")
	assert.Equal(t, digestOf("ok"), hashes["Good"])
}

func TestMonitoringService_EventOrderFollowsConfiguration(t *testing.T) {
	var targets []config.TargetConfig
	for i := 0; i < 4; i++ {
		site := &fakeSite{body: fmt.Sprintf("body-%d", i), status: http.StatusOK}
		server := httptest.NewServer(site.handler())
		defer server.Close()
		targets = append(targets, config.TargetConfig{Name: fmt.Sprintf("target-%d", i), URL: server.URL})
	}

	service, _ := newTestService(t, targets)

	result, err := service.RunCycle(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Events, 4)
	for i, event := range result.Events {
		assert.Equal(t, fmt.Sprintf("target-%d", i), event.Name)
	}
}

func TestMonitoringService_RoundTripAcrossRuns(t *testing.T) {
	site := &fakeSite{body: "persisted", status: http.StatusOK}
	server := httptest.NewServer(site.handler())
	defer server.Close()

	service, store := newTestService(t, []config.TargetConfig{{Name: "A", URL: server.URL}})

	first, err := service.RunCycle(context.Background())
	require.NoError(t, err)

	// What run N saved is exactly what run N+1 loads.
	assert.Equal(t, first.Digests, store.Load())
}

func TestMonitoringService_CancelledContextLeavesStoreUntouched(t *testing.T) {
	site := &fakeSite{body: "x", status: http.StatusOK}
	server := httptest.NewServer(site.handler())
	defer server.Close()

	service, store := newTestService(t, []config.TargetConfig{{Name: "A", URL: server.URL}})
	require.NoError(t, store.Save(map[string]string{"A": "pre-run-digest"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.RunCycle(ctx)

	require.Error(t, err)
	assert.Equal(t, map[string]string{"A": "pre-run-digest"}, store.Load(), "an aborted run must leave the store in its pre-run state")
}
