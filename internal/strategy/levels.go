package strategy

import (
	"github.com/shopspring/decimal"

	"PipSignal/internal/model"
)

// Pip distances.
const (
	minTargetPips = 15.0
	targetPipSpan = 15.0 // target in [15, 30)
	minStopPips   = 8.0
	stopPipSpan   = 7.0 // stop in [8, 15)
)

// Levels derives entry, target and stop-loss prices. Entry carries up to one pip
// of slippage either way; the target sits in the signal's direction and the stop
// on the opposite side. All three are rounded to the instrument's precision.
func Levels(currentPrice float64, dir model.Direction, inst model.Instrument, r Rand) model.TradeLevels {
	pip := inst.PipSize()

	entry := currentPrice + (r.Float64()-0.5)*pip*2
	targetDist := (r.Float64()*targetPipSpan + minTargetPips) * pip
	stopDist := (r.Float64()*stopPipSpan + minStopPips) * pip

	sign := 1.0
	if dir != model.DirectionUp {
		sign = -1.0
	}
	target := entry + sign*targetDist
	stop := entry - sign*stopDist

	places := inst.Precision()
	return model.TradeLevels{
		Entry:    decimal.NewFromFloat(entry).Round(places),
		Target:   decimal.NewFromFloat(target).Round(places),
		StopLoss: decimal.NewFromFloat(stop).Round(places),
	}
}
