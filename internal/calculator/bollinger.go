package calculator

import (
	"errors"
	"math"

	"PipSignal/internal/model"
)

// CalculateBollinger computes mean ± multiplier·σ over the last `period` prices.
// σ is the population deviation of the window. With fewer than `period` prices
// it returns a NEUTRAL result whose bands are both zero.
func CalculateBollinger(prices model.PriceSeries, period int, multiplier float64) (model.BollingerResult, error) {
	if period <= 0 {
		return model.BollingerResult{}, errors.New("period must be positive")
	}
	if len(prices) < period {
		return model.BollingerResult{Status: model.BandNeutral}, nil
	}

	window := prices[len(prices)-period:]
	sum := 0.0
	for _, p := range window {
		sum += p
	}
	mean := sum / float64(period)

	sumSqDiff := 0.0
	for _, p := range window {
		diff := p - mean
		sumSqDiff += diff * diff
	}
	stdDev := math.Sqrt(sumSqDiff / float64(period))

	res := model.BollingerResult{
		Upper:  mean + multiplier*stdDev,
		Lower:  mean - multiplier*stdDev,
		Middle: mean,
	}
	current := prices.Last()
	switch {
	case current > res.Upper:
		res.Status = model.BandOverbought
	case current < res.Lower:
		res.Status = model.BandOversold
	default:
		res.Status = model.BandNeutral
	}
	return res, nil
}
