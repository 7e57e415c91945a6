package strategy

import (
	"strings"

	"PipSignal/internal/model"
)

// RiskThresholds maps confidence to a risk level.
type RiskThresholds struct {
	LowMin    int // confidence >= LowMin is LOW risk
	MediumMin int // confidence >= MediumMin is MEDIUM risk
}

// DefaultRiskThresholds returns the standard 80/65 split.
func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{LowMin: 80, MediumMin: 65}
}

// Level returns the risk level for a confidence value.
func (t RiskThresholds) Level(confidence int) model.RiskLevel {
	switch {
	case confidence >= t.LowMin:
		return model.RiskLow
	case confidence >= t.MediumMin:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}

// ConfidenceBar renders confidence as ten blocks.
func ConfidenceBar(confidence int) string {
	filled := confidence / 10
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
