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

func TestRecordQuery(t *testing.T) {
	before := testutil.ToFloat64(queryTotal.WithLabelValues("dijkstra", OUTCOME_FOUND))
	RecordQuery("dijkstra", OUTCOME_FOUND, 0.002, 12)
	RecordQuery("dijkstra", OUTCOME_FOUND, 0.003, 40)

	after := testutil.ToFloat64(queryTotal.WithLabelValues("dijkstra", OUTCOME_FOUND))
	assert.Equal(t, before+2, after)
}

func TestRecordBatch(t *testing.T) {
	before := testutil.ToFloat64(batchUnreachable.WithLabelValues("astar"))
	RecordBatch("astar", 1.5, 4, 3)

	assert.Equal(t, before+3, testutil.ToFloat64(batchUnreachable.WithLabelValues("astar")))
}

func TestSetGraphSize(t *testing.T) {
	SetGraphSize(10, 24)

	assert.Equal(t, 10.0, testutil.ToFloat64(graphSize.WithLabelValues("vertices")))
	assert.Equal(t, 24.0, testutil.ToFloat64(graphSize.WithLabelValues("edges")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordQuery("astar", OUTCOME_NO_PATH, 0.001, 3)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "optirota_routing_queries_total"))
}
