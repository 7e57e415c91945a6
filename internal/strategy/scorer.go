package strategy

import (
	"math"

	"PipSignal/internal/model"
)

// Rand is the random source the strategy draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Vote weights.
const (
	rsiExtremeVote  = 25.0
	rsiBiasVote     = 10.0
	macdVote        = 20.0
	bandExtremeVote = 15.0
	bandNeutralVote = 7.0
	trendVote       = 20.0
	maxNoise        = 10.0
)

// Confidence is always reported within [MinConfidence, MaxConfidence]. This is a
// fixed product policy, not a statistical bound on the vote ratio.
const (
	MinConfidence = 60
	MaxConfidence = 95
)

// Score runs the indicator vote. RSI, MACD, Bollinger and SMA trend each add
// to one side (NEUTRAL bands add to both), then momentum and volatility noise
// terms in [0, 10) are each added to a side picked by a coin flip.
func Score(rsi float64, macd model.MACDResult, bb model.BollingerResult, currentPrice, sma float64, r Rand) model.ScoreResult {
	var bullish, bearish float64

	switch {
	case rsi < 30:
		bullish += rsiExtremeVote
	case rsi > 70:
		bearish += rsiExtremeVote
	case rsi > 50:
		bullish += rsiBiasVote
	default:
		bearish += rsiBiasVote
	}

	if macd.Value > 0 {
		bullish += macdVote
	} else {
		bearish += macdVote
	}

	switch bb.Status {
	case model.BandOversold:
		bullish += bandExtremeVote
	case model.BandOverbought:
		bearish += bandExtremeVote
	default:
		bullish += bandNeutralVote
		bearish += bandNeutralVote
	}

	if currentPrice > sma {
		bullish += trendVote
	} else {
		bearish += trendVote
	}

	// momentum, then volatility
	for i := 0; i < 2; i++ {
		noise := r.Float64() * maxNoise
		if r.Float64() > 0.5 {
			bullish += noise
		} else {
			bearish += noise
		}
	}

	res := model.ScoreResult{
		Direction:    model.DirectionDown,
		BullishScore: bullish,
		BearishScore: bearish,
	}
	winning := bearish
	if bullish > bearish {
		res.Direction = model.DirectionUp
		winning = bullish
	}
	res.Confidence = clampConfidence(int(math.Round(winning / (bullish + bearish) * 100)))
	return res
}

func clampConfidence(c int) int {
	if c < MinConfidence {
		return MinConfidence
	}
	if c > MaxConfidence {
		return MaxConfidence
	}
	return c
}

// ScoreSnapshot is Score applied to a computed snapshot.
func ScoreSnapshot(snap model.IndicatorSnapshot, r Rand) model.ScoreResult {
	return Score(snap.RSI, snap.MACD, snap.Bollinger, snap.CurrentPrice, snap.SMA, r)
}
