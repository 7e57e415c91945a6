package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"PipSignal/internal/metrics"
	"PipSignal/internal/model"
	"PipSignal/internal/notifier"
	"PipSignal/internal/recorder"
	"PipSignal/internal/strategy"
)

// DefaultPair is used by /signals when no pair is given.
const DefaultPair = "EURUSD"

const historyReplyLimit = 10

// Handler routes bot commands to the signal engine and the history store.
type Handler struct {
	Engine   *strategy.Engine
	Recorder recorder.Recorder
	Metrics  *metrics.Metrics
	Pairs    []string
}

// NewHandler creates a Handler.
func NewHandler(engine *strategy.Engine, rec recorder.Recorder, m *metrics.Metrics, pairs []string) *Handler {
	return &Handler{Engine: engine, Recorder: rec, Metrics: m, Pairs: pairs}
}

// HandleCommand processes a user command and returns a reply.
func (h *Handler) HandleCommand(ctx context.Context, cmd notifier.Command) string {
	name, arg := splitCommand(cmd.Text)
	reqID := uuid.NewString()
	log := zap.L().With(
		zap.String("request_id", reqID),
		zap.String("command", name),
		zap.Int64("user_id", cmd.UserID),
	)
	log.Info("command received")

	switch name {
	case "/start":
		h.countCommand("start")
		return notifier.FormatWelcome(cmd.FirstName)
	case "/signals", "/signal":
		h.countCommand("signals")
		return h.handleSignals(ctx, log, reqID, cmd.UserID, arg)
	case "/pairs":
		h.countCommand("pairs")
		return notifier.FormatPairs(h.Pairs)
	case "/history":
		h.countCommand("history")
		entries, err := h.Recorder.RecentSignals(ctx, cmd.UserID, historyReplyLimit)
		if err != nil {
			log.Error("load history", zap.Error(err))
		}
		return notifier.FormatHistory(entries)
	case "/stats":
		h.countCommand("stats")
		user, err := h.Recorder.UserStats(ctx, cmd.UserID)
		if err != nil {
			log.Error("load user stats", zap.Error(err))
		}
		sys, err := h.Recorder.SystemStats(ctx)
		if err != nil {
			log.Error("load system stats", zap.Error(err))
		}
		return notifier.FormatStats(user, sys)
	case "/help":
		h.countCommand("help")
		return notifier.FormatHelp(h.Pairs)
	default:
		h.countCommand("unknown")
		return notifier.FormatHelp(h.Pairs)
	}
}

func (h *Handler) handleSignals(ctx context.Context, log *zap.Logger, reqID string, userID int64, arg string) string {
	pair := DefaultPair
	if arg != "" {
		pair = string(model.NormalizeInstrument(arg))
	}

	start := time.Now()
	sig, err := h.Engine.Generate(ctx, pair)
	if h.Metrics != nil {
		h.Metrics.GenerateDur.Observe(time.Since(start).Seconds())
	}
	switch {
	case errors.Is(err, strategy.ErrUnsupportedInstrument):
		h.countFailure("unsupported")
		log.Warn("unsupported pair", zap.String("pair", pair))
		return notifier.FormatUnsupported(pair)
	case err != nil:
		h.countFailure("generation")
		log.Error("generate signal", zap.String("pair", pair), zap.Error(err))
		return notifier.FormatUnavailable(reqID)
	}

	if h.Metrics != nil {
		h.Metrics.SignalsTotal.WithLabelValues(string(sig.Instrument), string(sig.Direction())).Inc()
		h.Metrics.Confidence.Observe(float64(sig.Confidence()))
	}
	if err := h.Recorder.RecordSignal(ctx, recorder.NewHistoryEntry(userID, sig)); err != nil {
		log.Error("record signal", zap.Int("signal_id", sig.ID), zap.Error(err))
	}
	log.Info("signal sent",
		zap.Int("signal_id", sig.ID),
		zap.String("instrument", string(sig.Instrument)),
		zap.String("direction", string(sig.Direction())),
		zap.Int("confidence", sig.Confidence()),
	)
	return notifier.FormatSignal(sig)
}

func (h *Handler) countCommand(name string) {
	if h.Metrics != nil {
		h.Metrics.CommandsTotal.WithLabelValues(name).Inc()
	}
}

func (h *Handler) countFailure(reason string) {
	if h.Metrics != nil {
		h.Metrics.FailuresTotal.WithLabelValues(reason).Inc()
	}
}

// splitCommand returns the lower-cased command without any @botname
// suffix and its first argument.
func splitCommand(text string) (string, string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", ""
	}
	name := strings.ToLower(fields[0])
	if i := strings.Index(name, "@"); i >= 0 {
		name = name[:i]
	}
	var arg string
	if len(fields) > 1 {
		arg = fields[1]
	}
	return name, arg
}
