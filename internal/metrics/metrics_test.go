package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_Exposition(t *testing.T) {
	m := New()
	m.Request(OutcomeFull)
	m.Request(OutcomeFull)
	m.Request(OutcomeFetch)
	m.CacheLookup(true)
	m.CacheLookup(false)
	m.Duration("fetch", 150*time.Millisecond)
	m.Bytes(StageRaw, 4096)
	m.QueueDepth(3)

	out := scrape(t, m)
	assert.Contains(t, out, `html2md_requests_total{outcome="full"} 2`)
	assert.Contains(t, out, `html2md_requests_total{outcome="fetch_error"} 1`)
	assert.Contains(t, out, `html2md_cache_lookups_total{result="hit"} 1`)
	assert.Contains(t, out, `html2md_cache_lookups_total{result="miss"} 1`)
	assert.Contains(t, out, `html2md_conversion_duration_seconds_count{method="fetch"} 1`)
	assert.Contains(t, out, `html2md_document_bytes_count{stage="raw"} 1`)
	assert.Contains(t, out, "html2md_worker_queue_depth 3")
	assert.Contains(t, out, "go_goroutines")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Request(OutcomeFull)
		m.CacheLookup(true)
		m.Duration("fetch", time.Second)
		m.Bytes(StageMarkdown, 1)
		m.QueueDepth(1)
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
