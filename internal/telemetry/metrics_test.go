package telemetry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordSave(t *testing.T) {
	before := testutil.ToFloat64(savesTotal.WithLabelValues("created"))
	RecordSave("created", time.Millisecond)
	require.Equal(t, before+1, testutil.ToFloat64(savesTotal.WithLabelValues("created")))
}

func TestRecordRecompute(t *testing.T) {
	before := testutil.ToFloat64(recomputationsTotal.WithLabelValues("visible"))
	RecordRecompute("visible")
	RecordRecompute("visible")
	require.Equal(t, before+2, testutil.ToFloat64(recomputationsTotal.WithLabelValues("visible")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	SetStoreRevision(42)
	require.Equal(t, 42.0, testutil.ToFloat64(storeRevision))

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "reworkdesk_store_revision 42"))
}
