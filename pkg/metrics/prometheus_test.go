package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := NewWithRegisterer(prometheus.NewRegistry())

	r.RecordDiagnostic("pool_view")
	r.RecordDiagnostic("pool_view")
	r.RecordSinkError("kafka")
	r.RecordPageRender("pools")
	r.RecordAnalytics(600000, 27.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.diagnostics.WithLabelValues("pool_view")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sinkErrors.WithLabelValues("kafka")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.pageRenders.WithLabelValues("pools")))
	assert.Equal(t, 600000.0, testutil.ToFloat64(r.totalLiquidity))
	assert.Equal(t, 27.5, testutil.ToFloat64(r.averageRisk))
}
