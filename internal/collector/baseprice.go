package collector

import "PipSignal/internal/model"

// basePrices are reference quotes used to anchor synthetic histories.
var basePrices = map[model.Instrument]float64{
	"EURUSD": 1.0850,
	"GBPUSD": 1.2650,
	"USDJPY": 149.50,
	"AUDUSD": 0.6750,
	"USDCAD": 1.3550,
	"USDCHF": 0.9150,
	"NZDUSD": 0.6250,
	"EURGBP": 0.8580,
	"EURJPY": 161.50,
	"GBPJPY": 189.30,
	"AUDJPY": 100.25,
	"CHFJPY": 163.80,
}

// BasePrice returns the reference quote for inst plus a fluctuation of up to ±0.005.
// Unknown instruments are anchored at 1.0.
func BasePrice(inst model.Instrument, r Rand) float64 {
	base, ok := basePrices[inst]
	if !ok {
		base = 1.0
	}
	return base + (r.Float64()-0.5)*0.01
}
