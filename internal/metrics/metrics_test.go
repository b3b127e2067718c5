package metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/AndrewDonelson/rediscodec/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNoop_AllMethods(t *testing.T) {
	n := metrics.Noop{}
	n.RecordHit("product")
	n.RecordMiss("user")
	n.RecordLatency("get", 100*time.Millisecond)
	n.RecordError("get", "Decode")
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestOTel_Records(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	rec, err := metrics.NewOTel(mp.Meter("rediscodec-test"))
	require.NoError(t, err)

	rec.RecordHit("players")
	rec.RecordHit("players")
	rec.RecordMiss("players")
	rec.RecordError("get", "Decode")
	rec.RecordLatency("get", 5*time.Millisecond)

	data := collect(t, reader)

	hits, ok := data[metrics.HitsName].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, hits.DataPoints, 1)
	assert.Equal(t, int64(2), hits.DataPoints[0].Value)

	misses, ok := data[metrics.MissesName].(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Equal(t, int64(1), misses.DataPoints[0].Value)

	errs, ok := data[metrics.ErrorsName].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, errs.DataPoints, 1)
	cat, _ := errs.DataPoints[0].Attributes.Value("category")
	assert.Equal(t, "Decode", cat.AsString())

	hist, ok := data[metrics.DurationName].(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
}
