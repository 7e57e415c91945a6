package strategy

import (
	"math/rand/v2"
	"testing"

	"PipSignal/internal/model"
)

func TestLevels_Precision(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	tests := []struct {
		inst   model.Instrument
		price  float64
		places int32
	}{
		{"USDJPY", 149.4987654, 3},
		{"EURJPY", 161.5012345, 3},
		{"EURUSD", 1.085123456, 5},
		{"GBPUSD", 1.265098765, 5},
	}
	for _, tt := range tests {
		for i := 0; i < 200; i++ {
			lv := Levels(tt.price, model.DirectionUp, tt.inst, r)
			if !lv.Entry.Equal(lv.Entry.Round(tt.places)) ||
				!lv.Target.Equal(lv.Target.Round(tt.places)) ||
				!lv.StopLoss.Equal(lv.StopLoss.Round(tt.places)) {
				t.Fatalf("%s: levels not rounded to %d places: %s %s %s", tt.inst, tt.places, lv.Entry, lv.Target, lv.StopLoss)
			}
			if lv.Entry.Exponent() != -tt.places {
				t.Fatalf("%s: expected exponent %d, got %d", tt.inst, -tt.places, lv.Entry.Exponent())
			}
		}
	}
}

func TestLevels_DirectionConsistency(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 10))
	for _, inst := range []model.Instrument{"EURUSD", "USDJPY"} {
		price := 1.085
		if inst.IsJPYQuoted() {
			price = 149.5
		}
		for i := 0; i < 500; i++ {
			up := Levels(price, model.DirectionUp, inst, r)
			if !up.Target.GreaterThan(up.Entry) || !up.StopLoss.LessThan(up.Entry) {
				t.Fatalf("%s UP: expected stop < entry < target, got %s %s %s", inst, up.StopLoss, up.Entry, up.Target)
			}
			down := Levels(price, model.DirectionDown, inst, r)
			if !down.Target.LessThan(down.Entry) || !down.StopLoss.GreaterThan(down.Entry) {
				t.Fatalf("%s DOWN: expected target < entry < stop, got %s %s %s", inst, down.Target, down.Entry, down.StopLoss)
			}
		}
	}
}

func TestLevels_Distances(t *testing.T) {
	// Entry jitter 0 (0.5 draw), target 15 pips, stop 8 pips.
	r := &scriptedRand{vals: []float64{0.5, 0, 0}}
	lv := Levels(1.08500, model.DirectionUp, "EURUSD", r)
	if lv.Entry.String() != "1.085" {
		t.Errorf("expected entry 1.085, got %s", lv.Entry)
	}
	if lv.Target.String() != "1.0865" {
		t.Errorf("expected target 1.0865, got %s", lv.Target)
	}
	if lv.StopLoss.String() != "1.0842" {
		t.Errorf("expected stop 1.0842, got %s", lv.StopLoss)
	}
}
