package model

import "testing"

func TestInstrumentConventions(t *testing.T) {
	tests := []struct {
		in        string
		want      Instrument
		pip       float64
		precision int32
	}{
		{" usdjpy ", "USDJPY", 0.01, 3},
		{"EURUSD", "EURUSD", 0.0001, 5},
		{"chfjpy", "CHFJPY", 0.01, 3},
		{"JPYUSD", "JPYUSD", 0.0001, 5},
	}
	for _, tt := range tests {
		inst := NormalizeInstrument(tt.in)
		if inst != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.in, tt.want, inst)
		}
		if inst.PipSize() != tt.pip || inst.Precision() != tt.precision {
			t.Errorf("%s: expected pip %v precision %d, got %v %d", inst, tt.pip, tt.precision, inst.PipSize(), inst.Precision())
		}
	}
}

func TestPriceSeries(t *testing.T) {
	if (PriceSeries{}).Last() != 0 {
		t.Error("expected 0 for empty series")
	}
	if got := (PriceSeries{1, 2, 3}).Last(); got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
	if err := (PriceSeries{}).Validate(); err == nil {
		t.Error("expected error for empty series")
	}
	if err := (PriceSeries{1, -1}).Validate(); err == nil {
		t.Error("expected error for negative price")
	}
	if err := (PriceSeries{1.1, 1.2}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
