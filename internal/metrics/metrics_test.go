package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentCountsByRouteAndStatus(t *testing.T) {
	h := Instrument("/test/:id", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("/test/:id", http.MethodGet, "418"))
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test/1", nil))
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test/2", nil))

	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("/test/:id", http.MethodGet, "418"))
	assert.Equal(t, before+2, after)
}

func TestExposerServesRegisteredMetrics(t *testing.T) {
	FavoriteMutations.WithLabelValues("favorite").Inc()

	rec := httptest.NewRecorder()
	Exposer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "conduit_favorite_mutations_total"))
}
