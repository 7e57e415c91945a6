package strategy

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"PipSignal/internal/calculator"
	"PipSignal/internal/collector"
	"PipSignal/internal/model"
)

var (
	// ErrUnsupportedInstrument is returned for symbols outside the configured set.
	ErrUnsupportedInstrument = errors.New("unsupported instrument")
	// ErrGenerationFailure wraps any failure while building a signal.
	ErrGenerationFailure = errors.New("signal generation failed")
)

// NewRand returns an independently seeded source. It is the default Engine.NewRand.
func NewRand() Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Engine assembles trading signals. It keeps no state between calls and
// Generate may be called concurrently.
type Engine struct {
	Collector *collector.Collector
	Supported map[model.Instrument]bool
	Risk      RiskThresholds
	NewRand   func() Rand
	Now       func() time.Time
}

// NewEngine creates an Engine for the given supported symbols.
func NewEngine(col *collector.Collector, supported []string) *Engine {
	set := make(map[model.Instrument]bool, len(supported))
	for _, s := range supported {
		set[model.NormalizeInstrument(s)] = true
	}
	return &Engine{
		Collector: col,
		Supported: set,
		Risk:      DefaultRiskThresholds(),
		NewRand:   NewRand,
		Now:       time.Now,
	}
}

// IsSupported reports whether symbol is in the configured set.
func (e *Engine) IsSupported(symbol string) bool {
	return e.Supported[model.NormalizeInstrument(symbol)]
}

// Generate builds a complete signal for symbol. It either returns a fully
// populated signal or an error matching ErrUnsupportedInstrument or
// ErrGenerationFailure.
func (e *Engine) Generate(ctx context.Context, symbol string) (sig model.TradingSignal, err error) {
	inst := model.NormalizeInstrument(symbol)
	if !e.Supported[inst] {
		return model.TradingSignal{}, fmt.Errorf("%w: %q", ErrUnsupportedInstrument, symbol)
	}

	defer func() {
		if p := recover(); p != nil {
			zap.L().Error("signal generation panicked", zap.String("instrument", string(inst)), zap.Any("panic", p))
			sig = model.TradingSignal{}
			err = fmt.Errorf("%w for %s: panic: %v", ErrGenerationFailure, inst, p)
		}
	}()

	r := e.NewRand()

	basePrice := collector.BasePrice(inst, r)
	snap, err := e.Collector.Collect(ctx, inst, basePrice, r)
	if err != nil {
		return model.TradingSignal{}, fmt.Errorf("%w for %s: %w", ErrGenerationFailure, inst, err)
	}

	score := ScoreSnapshot(snap, r)
	levels := Levels(snap.CurrentPrice, score.Direction, inst, r)

	return model.TradingSignal{
		ID:            100000 + r.IntN(900000),
		Instrument:    inst,
		Score:         score,
		Risk:          e.Risk.Level(score.Confidence),
		ConfidenceBar: ConfidenceBar(score.Confidence),
		Levels:        levels,
		Indicators:    snap,
		RSIStatus:     calculator.RSIStatus(snap.RSI),
		SMAStatus:     calculator.SMATrendStatus(snap.CurrentPrice, snap.SMA),
		GeneratedAt:   e.Now(),
	}, nil
}
