package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rec.Code, rec.Body.String()
}

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest(KindPalette, OutcomeOK, 1500*time.Millisecond)
	m.ObserveRequest(KindPalette, OutcomeOK, time.Second)
	m.ObserveRequest(KindVariations, OutcomeRateLimited, time.Second)
	m.SetSaved(3)

	code, body := scrape(t, m)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `brpalette_generation_requests_total{kind="palette",outcome="ok"} 2`)
	assert.Contains(t, body, `brpalette_generation_requests_total{kind="variations",outcome="rate_limited"} 1`)
	assert.Contains(t, body, `brpalette_generation_duration_seconds_count{kind="palette"} 2`)
	assert.Contains(t, body, "brpalette_saved_palettes 3")
}

func TestSeparateRegistries(t *testing.T) {
	a, b := New(), New()
	a.SetSaved(7)

	_, body := scrape(t, b)
	assert.Contains(t, body, "brpalette_saved_palettes 0")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest(KindPalette, OutcomeFailed, time.Second)
		m.SetSaved(1)
	})

	code, _ := scrape(t, m)
	assert.Equal(t, http.StatusNotFound, code)
}
