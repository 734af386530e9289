package planner

// Computation kinds reported to the metrics recorder
const (
	KindThroughput = "throughput"
	KindExpansion  = "expansion"
)

// MetricsRecorder receives one event per planner computation.
// The prometheus adapter implements it; the default discards everything.
type MetricsRecorder interface {
	RecordComputation(kind string, durationSeconds float64, visits int, success bool)
}

type noOpRecorder struct{}

func (noOpRecorder) RecordComputation(kind string, durationSeconds float64, visits int, success bool) {}
