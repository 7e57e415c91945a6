package recorder

import (
	"context"
	"time"

	"PipSignal/internal/model"
)

// HistoryEntry is one signal delivered to a user.
type HistoryEntry struct {
	UserID     int64     `json:"user_id"`
	SignalID   int       `json:"signal_id"`
	Instrument string    `json:"instrument"`
	Direction  string    `json:"direction"`
	Confidence int       `json:"confidence"`
	Risk       string    `json:"risk"`
	Entry      string    `json:"entry"`
	Target     string    `json:"target"`
	StopLoss   string    `json:"stop_loss"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewHistoryEntry flattens a signal for storage. Prices keep the
// instrument's display precision.
func NewHistoryEntry(userID int64, sig model.TradingSignal) HistoryEntry {
	places := sig.Instrument.Precision()
	return HistoryEntry{
		UserID:     userID,
		SignalID:   sig.ID,
		Instrument: string(sig.Instrument),
		Direction:  string(sig.Direction()),
		Confidence: sig.Confidence(),
		Risk:       string(sig.Risk),
		Entry:      sig.Levels.Entry.StringFixed(places),
		Target:     sig.Levels.Target.StringFixed(places),
		StopLoss:   sig.Levels.StopLoss.StringFixed(places),
		CreatedAt:  sig.GeneratedAt,
	}
}

// UserStats summarises one user's signal history.
type UserStats struct {
	TotalSignals      int
	AverageConfidence float64
	FavoritePair      string
	LastSignalAt      time.Time
}

// SystemStats summarises the whole signal history.
type SystemStats struct {
	TotalUsers        int
	TotalSignals      int
	TodaySignals      int
	AverageConfidence float64
	MostPopularPair   string
}

// Recorder persists the signal history. It is owned by the bot layer;
// the signal engine never touches it.
type Recorder interface {
	RecordSignal(ctx context.Context, entry HistoryEntry) error
	RecentSignals(ctx context.Context, userID int64, limit int) ([]HistoryEntry, error)
	UserStats(ctx context.Context, userID int64) (UserStats, error)
	SystemStats(ctx context.Context) (SystemStats, error)
	// Prune keeps the newest `keep` entries and returns how many were removed.
	// SQLite stats are computed from the remaining rows and shrink after a
	// prune; Redis keeps running counters, so its stats stay lifetime totals.
	Prune(ctx context.Context, keep int) (int64, error)
	Close() error
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
