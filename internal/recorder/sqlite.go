package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists signal history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so /history reads don't block writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	zap.L().Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signal_history (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			user_id     INTEGER NOT NULL,
			signal_id   INTEGER NOT NULL,
			instrument  TEXT NOT NULL,
			direction   TEXT NOT NULL,
			confidence  INTEGER NOT NULL,
			risk        TEXT,
			entry       TEXT,
			target      TEXT,
			stop_loss   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_ts ON signal_history(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_history_user ON signal_history(user_id, id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSignal(ctx context.Context, e HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `INSERT INTO signal_history
		(timestamp, user_id, signal_id, instrument, direction, confidence, risk, entry, target, stop_loss)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		e.CreatedAt.Unix(), e.UserID, e.SignalID, e.Instrument, e.Direction,
		e.Confidence, e.Risk, e.Entry, e.Target, e.StopLoss,
	)
	return err
}

// RecentSignals returns the user's newest entries first.
func (r *SQLiteRecorder) RecentSignals(ctx context.Context, userID int64, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `SELECT
		timestamp, user_id, signal_id, instrument, direction, confidence, risk, entry, target, stop_loss
		FROM signal_history WHERE user_id = ? ORDER BY id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var ts int64
		if err := rows.Scan(&ts, &e.UserID, &e.SignalID, &e.Instrument, &e.Direction,
			&e.Confidence, &e.Risk, &e.Entry, &e.Target, &e.StopLoss); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.CreatedAt = time.Unix(ts, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) UserStats(ctx context.Context, userID int64) (UserStats, error) {
	var st UserStats
	var last sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(AVG(confidence), 0), MAX(timestamp)
		FROM signal_history WHERE user_id = ?`, userID).Scan(&st.TotalSignals, &st.AverageConfidence, &last); err != nil {
		return UserStats{}, fmt.Errorf("query user stats: %w", err)
	}
	if last.Valid {
		st.LastSignalAt = time.Unix(last.Int64, 0)
	}
	if st.TotalSignals == 0 {
		return st, nil
	}
	if err := r.db.QueryRowContext(ctx, `SELECT instrument FROM signal_history WHERE user_id = ?
		GROUP BY instrument ORDER BY COUNT(*) DESC, instrument LIMIT 1`, userID).Scan(&st.FavoritePair); err != nil {
		return UserStats{}, fmt.Errorf("query favorite pair: %w", err)
	}
	return st, nil
}

func (r *SQLiteRecorder) SystemStats(ctx context.Context) (SystemStats, error) {
	var st SystemStats
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT user_id), COUNT(*), COALESCE(AVG(confidence), 0)
		FROM signal_history`).Scan(&st.TotalUsers, &st.TotalSignals, &st.AverageConfidence); err != nil {
		return SystemStats{}, fmt.Errorf("query system stats: %w", err)
	}
	if st.TotalSignals == 0 {
		return st, nil
	}
	since := startOfDay(time.Now()).Unix()
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM signal_history WHERE timestamp >= ?`,
		since).Scan(&st.TodaySignals); err != nil {
		return SystemStats{}, fmt.Errorf("query today count: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, `SELECT instrument FROM signal_history
		GROUP BY instrument ORDER BY COUNT(*) DESC, instrument LIMIT 1`).Scan(&st.MostPopularPair); err != nil {
		return SystemStats{}, fmt.Errorf("query popular pair: %w", err)
	}
	return st, nil
}

func (r *SQLiteRecorder) Prune(ctx context.Context, keep int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, `DELETE FROM signal_history WHERE id NOT IN
		(SELECT id FROM signal_history ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteRecorder) Close() error {
	zap.L().Info("closing sqlite recorder")
	return r.db.Close()
}
