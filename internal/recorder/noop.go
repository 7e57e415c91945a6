package recorder

import "context"

// NoopRecorder is a no-op implementation used when no store is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSignal(context.Context, HistoryEntry) error { return nil }
func (n *NoopRecorder) RecentSignals(context.Context, int64, int) ([]HistoryEntry, error) {
	return nil, nil
}
func (n *NoopRecorder) UserStats(context.Context, int64) (UserStats, error) { return UserStats{}, nil }
func (n *NoopRecorder) SystemStats(context.Context) (SystemStats, error)    { return SystemStats{}, nil }
func (n *NoopRecorder) Prune(context.Context, int) (int64, error)           { return 0, nil }
func (n *NoopRecorder) Close() error                                        { return nil }
