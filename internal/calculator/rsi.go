package calculator

import (
	"errors"

	"PipSignal/internal/model"
)

// CalculateRSI computes the relative strength index over the last `period` price changes.
// Gains and losses are plain averages over that window, not Wilder-smoothed.
// Returns 50.0 if there are fewer than period+1 prices.
func CalculateRSI(prices model.PriceSeries, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period+1 {
		return 50.0, nil // default when data insufficient
	}

	var avgGain, avgLoss float64
	for i := len(prices) - period; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
