// Package metrics provides the MetricsRecorder interface used by the typed
// store, a noop implementation and an OpenTelemetry-backed recorder.
package metrics

import "time"

// MetricsRecorder is the interface for recording store operation metrics.
type MetricsRecorder interface {
	RecordHit(keyspace string)
	RecordMiss(keyspace string)
	RecordLatency(op string, d time.Duration)
	RecordError(op, category string)
}

// Noop is a MetricsRecorder that discards all data.
type Noop struct{}

func (Noop) RecordHit(keyspace string)                {}
func (Noop) RecordMiss(keyspace string)               {}
func (Noop) RecordLatency(op string, d time.Duration) {}
func (Noop) RecordError(op, category string)          {}
