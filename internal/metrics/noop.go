package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserCreated is a no-op.
func (n *NoopRecorder) IncUserCreated() {}

// IncUserUpdated is a no-op.
func (n *NoopRecorder) IncUserUpdated() {}

// IncUserDeleted is a no-op.
func (n *NoopRecorder) IncUserDeleted() {}

// IncItemCreated is a no-op.
func (n *NoopRecorder) IncItemCreated() {}

// IncItemUpdated is a no-op.
func (n *NoopRecorder) IncItemUpdated() {}

// IncItemDeleted is a no-op.
func (n *NoopRecorder) IncItemDeleted() {}

// ObserveSearchDuration is a no-op.
func (n *NoopRecorder) ObserveSearchDuration(duration time.Duration) {}
