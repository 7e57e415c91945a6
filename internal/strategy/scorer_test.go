package strategy

import (
	"math/rand/v2"
	"testing"

	"PipSignal/internal/model"
)

// scriptedRand replays fixed values so each vote can be controlled.
type scriptedRand struct {
	vals []float64
	i    int
}

func (s *scriptedRand) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func (s *scriptedRand) IntN(n int) int { return 0 }

func TestScore_Votes(t *testing.T) {
	bullMACD := model.MACDResult{Value: 0.001, Bullish: true}
	bearMACD := model.MACDResult{Value: -0.001}
	neutral := model.BollingerResult{Status: model.BandNeutral}

	tests := []struct {
		name       string
		rsi        float64
		macd       model.MACDResult
		bb         model.BollingerResult
		price, sma float64
		noise      []float64
		dir        model.Direction
		bull, bear float64
		confidence int
	}{
		{
			name: "all bullish clamps to ceiling",
			rsi:  20, macd: bullMACD, bb: model.BollingerResult{Status: model.BandOversold},
			price: 1.1, sma: 1.0, noise: []float64{0},
			dir: model.DirectionUp, bull: 80, bear: 0, confidence: 95,
		},
		{
			name: "unclamped ratio",
			rsi:  20, macd: bullMACD, bb: neutral,
			price: 1.0, sma: 1.1, noise: []float64{0},
			dir: model.DirectionUp, bull: 52, bear: 27, confidence: 66,
		},
		{
			name: "weak bearish clamps to floor",
			rsi:  50, macd: bearMACD, bb: neutral,
			price: 1.1, sma: 1.0, noise: []float64{0},
			dir: model.DirectionDown, bull: 27, bear: 37, confidence: 60,
		},
		{
			name: "overbought extreme",
			rsi:  75, macd: bearMACD, bb: model.BollingerResult{Status: model.BandOverbought},
			price: 1.0, sma: 1.1, noise: []float64{0},
			dir: model.DirectionDown, bull: 0, bear: 80, confidence: 95,
		},
		{
			name: "noise breaks toward bullish",
			rsi:  40, macd: bullMACD, bb: neutral,
			price: 1.0, sma: 1.1, noise: []float64{0.9, 0.9},
			dir: model.DirectionUp, bull: 45, bear: 37, confidence: 60,
		},
		{
			name: "tie goes down",
			rsi:  40, macd: bullMACD, bb: neutral,
			price: 1.0, sma: 1.1, noise: []float64{0.5, 0.9},
			dir: model.DirectionDown, bull: 37, bear: 37, confidence: 60,
		},
	}
	for _, tt := range tests {
		res := Score(tt.rsi, tt.macd, tt.bb, tt.price, tt.sma, &scriptedRand{vals: tt.noise})
		if res.Direction != tt.dir {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.dir, res.Direction)
		}
		if res.BullishScore != tt.bull || res.BearishScore != tt.bear {
			t.Errorf("%s: expected %.1f/%.1f, got %.1f/%.1f", tt.name, tt.bull, tt.bear, res.BullishScore, res.BearishScore)
		}
		if res.Confidence != tt.confidence {
			t.Errorf("%s: expected confidence %d, got %d", tt.name, tt.confidence, res.Confidence)
		}
	}
}

func TestScore_ConfidenceAlwaysInBand(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 12))
	statuses := []model.BandStatus{model.BandOverbought, model.BandOversold, model.BandNeutral}
	for i := 0; i < 5000; i++ {
		rsi := r.Float64() * 100
		macd := model.MACDResult{Value: r.Float64() - 0.5}
		bb := model.BollingerResult{Status: statuses[r.IntN(len(statuses))]}
		res := Score(rsi, macd, bb, r.Float64()+1, r.Float64()+1, r)
		if res.Confidence < MinConfidence || res.Confidence > MaxConfidence {
			t.Fatalf("confidence %d out of band for rsi=%.2f macd=%.3f bb=%s", res.Confidence, rsi, macd.Value, bb.Status)
		}
		if (res.Direction == model.DirectionUp) != (res.BullishScore > res.BearishScore) {
			t.Fatalf("direction %s disagrees with scores %.2f/%.2f", res.Direction, res.BullishScore, res.BearishScore)
		}
	}
}

func TestRiskThresholds(t *testing.T) {
	th := DefaultRiskThresholds()
	tests := []struct {
		confidence int
		want       model.RiskLevel
	}{
		{95, model.RiskLow},
		{80, model.RiskLow},
		{79, model.RiskMedium},
		{65, model.RiskMedium},
		{64, model.RiskHigh},
		{60, model.RiskHigh},
	}
	for _, tt := range tests {
		if got := th.Level(tt.confidence); got != tt.want {
			t.Errorf("confidence %d: expected %s, got %s", tt.confidence, tt.want, got)
		}
	}
}

func TestConfidenceBar(t *testing.T) {
	if got := ConfidenceBar(87); got != "████████░░" {
		t.Errorf("unexpected bar %q", got)
	}
	if got := ConfidenceBar(60); got != "██████░░░░" {
		t.Errorf("unexpected bar %q", got)
	}
}
