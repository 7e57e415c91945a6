package collector

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"PipSignal/internal/calculator"
	"PipSignal/internal/model"
)

// StaticProvider returns a fixed series, for development and testing.
type StaticProvider struct {
	Prices model.PriceSeries
	Err    error
}

func (m *StaticProvider) Name() string { return "static" }

func (m *StaticProvider) History(_ context.Context, _ model.Instrument, _ float64, _ int) (model.PriceSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append(model.PriceSeries(nil), m.Prices...), nil
}

// Periods configures the indicator windows.
type Periods struct {
	HistoryLength       int
	RSI                 int
	MACDFast            int
	MACDSlow            int
	Bollinger           int
	BollingerMultiplier float64
	SMA                 int
}

// DefaultPeriods returns the standard indicator settings.
func DefaultPeriods() Periods {
	return Periods{
		HistoryLength:       100,
		RSI:                 14,
		MACDFast:            12,
		MACDSlow:            26,
		Bollinger:           20,
		BollingerMultiplier: 2,
		SMA:                 50,
	}
}

// Collector orchestrates history fetching and indicator computation.
type Collector struct {
	Provider Provider
	Periods  Periods
}

// NewCollector creates a new Collector.
func NewCollector(provider Provider, periods Periods) *Collector {
	return &Collector{Provider: provider, Periods: periods}
}

// Collect fetches a price history and computes every indicator over it.
// Any failure aborts the whole snapshot.
func (c *Collector) Collect(ctx context.Context, inst model.Instrument, basePrice float64, r Rand) (model.IndicatorSnapshot, error) {
	prices, err := c.Provider.History(ctx, inst, basePrice, c.Periods.HistoryLength)
	if err != nil {
		return model.IndicatorSnapshot{}, fmt.Errorf("fetch history: %w", err)
	}
	if err := prices.Validate(); err != nil {
		return model.IndicatorSnapshot{}, fmt.Errorf("invalid history from %s: %w", c.Provider.Name(), err)
	}
	zap.L().Debug("history fetched",
		zap.String("instrument", string(inst)),
		zap.String("provider", c.Provider.Name()),
		zap.Int("points", len(prices)))

	snap := model.IndicatorSnapshot{CurrentPrice: prices.Last()}

	if snap.RSI, err = calculator.CalculateRSI(prices, c.Periods.RSI); err != nil {
		return model.IndicatorSnapshot{}, fmt.Errorf("rsi: %w", err)
	}
	if snap.MACD, err = calculator.CalculateMACD(prices, c.Periods.MACDFast, c.Periods.MACDSlow); err != nil {
		return model.IndicatorSnapshot{}, fmt.Errorf("macd: %w", err)
	}
	if snap.Bollinger, err = calculator.CalculateBollinger(prices, c.Periods.Bollinger, c.Periods.BollingerMultiplier); err != nil {
		return model.IndicatorSnapshot{}, fmt.Errorf("bollinger: %w", err)
	}
	if snap.SMA, err = calculator.CalculateSMA(prices, c.Periods.SMA); err != nil {
		return model.IndicatorSnapshot{}, fmt.Errorf("sma: %w", err)
	}
	snap.Volume = calculator.EstimateVolume(r)

	return snap, nil
}
