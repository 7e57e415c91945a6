package bot

import (
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"PipSignal/internal/collector"
	"PipSignal/internal/metrics"
	"PipSignal/internal/notifier"
	"PipSignal/internal/recorder"
	"PipSignal/internal/strategy"
)

var pairs = []string{"EURUSD", "USDJPY", "GBPUSD"}

func newTestHandler(t *testing.T, provider collector.Provider) (*Handler, *recorder.SQLiteRecorder) {
	t.Helper()
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "bot.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { rec.Close() })

	engine := strategy.NewEngine(collector.NewCollector(provider, collector.DefaultPeriods()), pairs)
	engine.NewRand = func() strategy.Rand { return rand.New(rand.NewPCG(3, 5)) }
	return NewHandler(engine, rec, metrics.NewMetrics(), pairs), rec
}

func syntheticProvider() collector.Provider {
	return collector.NewSyntheticProvider(func() collector.Rand { return rand.New(rand.NewPCG(7, 11)) })
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		in, name, arg string
	}{
		{"/signals usdjpy", "/signals", "usdjpy"},
		{"/Signals@PipSignalBot GBPUSD extra", "/signals", "GBPUSD"},
		{"  /pairs  ", "/pairs", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		name, arg := splitCommand(tt.in)
		if name != tt.name || arg != tt.arg {
			t.Errorf("%q: expected (%q, %q), got (%q, %q)", tt.in, tt.name, tt.arg, name, arg)
		}
	}
}

func TestHandleCommand_SignalsRecordsHistory(t *testing.T) {
	h, rec := newTestHandler(t, syntheticProvider())
	ctx := context.Background()

	reply := h.HandleCommand(ctx, notifier.Command{ChatID: 1, UserID: 42, Text: "/signals usdjpy"})
	if !strings.Contains(reply, "USDJPY ANALYSIS") {
		t.Fatalf("unexpected reply:\n%s", reply)
	}

	entries, err := rec.RecentSignals(ctx, 42, 10)
	if err != nil {
		t.Fatalf("recent signals: %v", err)
	}
	if len(entries) != 1 || entries[0].Instrument != "USDJPY" {
		t.Fatalf("expected one USDJPY entry, got %+v", entries)
	}
	if got := testutil.ToFloat64(h.Metrics.CommandsTotal.WithLabelValues("signals")); got != 1 {
		t.Errorf("expected 1 signals command, got %v", got)
	}

	hist := h.HandleCommand(ctx, notifier.Command{UserID: 42, Text: "/history"})
	if !strings.Contains(hist, "USDJPY") {
		t.Errorf("history missing signal:\n%s", hist)
	}
	stats := h.HandleCommand(ctx, notifier.Command{UserID: 42, Text: "/stats"})
	if !strings.Contains(stats, "Signals received: 1") {
		t.Errorf("unexpected stats:\n%s", stats)
	}
}

func TestHandleCommand_DefaultPair(t *testing.T) {
	h, _ := newTestHandler(t, syntheticProvider())
	reply := h.HandleCommand(context.Background(), notifier.Command{UserID: 1, Text: "/signals"})
	if !strings.Contains(reply, "EURUSD ANALYSIS") {
		t.Errorf("expected default EURUSD signal, got:\n%s", reply)
	}
}

func TestHandleCommand_Unsupported(t *testing.T) {
	h, rec := newTestHandler(t, syntheticProvider())
	ctx := context.Background()
	reply := h.HandleCommand(ctx, notifier.Command{UserID: 1, Text: "/signals xauusd"})
	if !strings.Contains(reply, "Unsupported pair: XAUUSD") {
		t.Errorf("unexpected reply:\n%s", reply)
	}
	if got := testutil.ToFloat64(h.Metrics.FailuresTotal.WithLabelValues("unsupported")); got != 1 {
		t.Errorf("expected 1 unsupported failure, got %v", got)
	}
	if entries, _ := rec.RecentSignals(ctx, 1, 10); len(entries) != 0 {
		t.Errorf("expected no history, got %+v", entries)
	}
}

func TestHandleCommand_GenerationFailure(t *testing.T) {
	h, _ := newTestHandler(t, &collector.StaticProvider{Err: errors.New("feed down")})
	reply := h.HandleCommand(context.Background(), notifier.Command{UserID: 1, Text: "/signals EURUSD"})
	if !strings.Contains(reply, "temporarily unavailable") || !strings.Contains(reply, "Reference: ") {
		t.Errorf("unexpected reply:\n%s", reply)
	}
	if got := testutil.ToFloat64(h.Metrics.FailuresTotal.WithLabelValues("generation")); got != 1 {
		t.Errorf("expected 1 generation failure, got %v", got)
	}
}

func TestHandleCommand_StaticReplies(t *testing.T) {
	h, _ := newTestHandler(t, syntheticProvider())
	tests := []struct {
		text string
		want string
	}{
		{"/start", "Hello Ann"},
		{"/pairs", "• GBPUSD"},
		{"/help", "/signals [PAIR]"},
		{"/whatever", "Commands"},
	}
	for _, tt := range tests {
		reply := h.HandleCommand(context.Background(), notifier.Command{UserID: 1, FirstName: "Ann", Text: tt.text})
		if !strings.Contains(reply, tt.want) {
			t.Errorf("%s: expected reply containing %q, got:\n%s", tt.text, tt.want, reply)
		}
	}
}
