package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the predicted price move.
type Direction string

const (
	DirectionUp   Direction = "UP"
	DirectionDown Direction = "DOWN"
)

// RiskLevel is derived from confidence.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// ScoreResult is the outcome of the indicator vote.
type ScoreResult struct {
	Direction    Direction
	Confidence   int // always within [60, 95]
	BullishScore float64
	BearishScore float64
}

// TradeLevels are rounded to the instrument's display precision.
type TradeLevels struct {
	Entry    decimal.Decimal
	Target   decimal.Decimal
	StopLoss decimal.Decimal
}

// TradingSignal is the final output of the signal engine.
type TradingSignal struct {
	ID            int
	Instrument    Instrument
	Score         ScoreResult
	Risk          RiskLevel
	ConfidenceBar string
	Levels        TradeLevels
	Indicators    IndicatorSnapshot
	RSIStatus     string
	SMAStatus     string
	GeneratedAt   time.Time
}

// Direction is a shortcut for s.Score.Direction.
func (s TradingSignal) Direction() Direction { return s.Score.Direction }

// Confidence is a shortcut for s.Score.Confidence.
func (s TradingSignal) Confidence() int { return s.Score.Confidence }
