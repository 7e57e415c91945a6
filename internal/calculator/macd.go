package calculator

import (
	"fmt"

	"PipSignal/internal/model"
)

// CalculateMACD returns the spread between the latest fast and slow EMA values.
func CalculateMACD(prices model.PriceSeries, fastPeriod, slowPeriod int) (model.MACDResult, error) {
	fast, err := CalculateEMA(prices, fastPeriod)
	if err != nil {
		return model.MACDResult{}, fmt.Errorf("fast ema: %w", err)
	}
	slow, err := CalculateEMA(prices, slowPeriod)
	if err != nil {
		return model.MACDResult{}, fmt.Errorf("slow ema: %w", err)
	}
	value := fast[len(fast)-1] - slow[len(slow)-1]
	return model.MACDResult{Value: value, Bullish: value > 0}, nil
}
