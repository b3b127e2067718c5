package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names exported by OTel.
const (
	HitsName     = "rediscodec_hits_total"
	MissesName   = "rediscodec_misses_total"
	ErrorsName   = "rediscodec_errors_total"
	DurationName = "rediscodec_operation_duration_seconds"
)

// OTel records store metrics through an OpenTelemetry meter.
type OTel struct {
	hits     metric.Int64Counter
	misses   metric.Int64Counter
	errors   metric.Int64Counter
	duration metric.Float64Histogram
}

// NewOTel creates the instruments on meter.
func NewOTel(meter metric.Meter) (*OTel, error) {
	r := &OTel{}
	var err error

	r.hits, err = meter.Int64Counter(HitsName,
		metric.WithDescription("Number of reads that decoded a stored value"))
	if err != nil {
		return nil, fmt.Errorf("failed to create hits counter: %w", err)
	}
	r.misses, err = meter.Int64Counter(MissesName,
		metric.WithDescription("Number of reads for keys that were absent"))
	if err != nil {
		return nil, fmt.Errorf("failed to create misses counter: %w", err)
	}
	r.errors, err = meter.Int64Counter(ErrorsName,
		metric.WithDescription("Number of failed operations by error category"))
	if err != nil {
		return nil, fmt.Errorf("failed to create errors counter: %w", err)
	}
	r.duration, err = meter.Float64Histogram(DurationName,
		metric.WithDescription("Duration of store operations in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}
	return r, nil
}

func (r *OTel) RecordHit(keyspace string) {
	r.hits.Add(context.Background(), 1, metric.WithAttributes(attribute.String("keyspace", keyspace)))
}

func (r *OTel) RecordMiss(keyspace string) {
	r.misses.Add(context.Background(), 1, metric.WithAttributes(attribute.String("keyspace", keyspace)))
}

func (r *OTel) RecordLatency(op string, d time.Duration) {
	r.duration.Record(context.Background(), d.Seconds(), metric.WithAttributes(attribute.String("op", op)))
}

func (r *OTel) RecordError(op, category string) {
	r.errors.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("category", category),
	))
}
