package recorder

import "context"

// NoopRecorder is used when scan history is disabled.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordScan(_ context.Context, _ *ScanRun) error { return nil }
func (n *NoopRecorder) Recent(_ context.Context, _ int) ([]ScanRun, error) {
	return []ScanRun{}, nil
}
func (n *NoopRecorder) Close() error { return nil }
