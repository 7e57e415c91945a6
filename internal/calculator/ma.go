package calculator

import (
	"errors"

	"PipSignal/internal/model"
)

// CalculateSMA computes the simple moving average of the last `period` prices.
// With fewer prices than the period it falls back to the latest price (0 when empty).
func CalculateSMA(prices model.PriceSeries, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return prices.Last(), nil
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// CalculateEMA returns the exponential moving average aligned to the input,
// seeded with the first price. An empty input yields a single zero value.
func CalculateEMA(prices model.PriceSeries, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(prices) == 0 {
		return []float64{0}, nil
	}

	k := 2.0 / (float64(period) + 1.0)
	ema := make([]float64, len(prices))
	ema[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		ema[i] = prices[i]*k + ema[i-1]*(1-k)
	}
	return ema, nil
}
