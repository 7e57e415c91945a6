package model

// BandStatus classifies the latest price against the Bollinger envelope.
type BandStatus string

const (
	BandOverbought BandStatus = "OVERBOUGHT"
	BandOversold   BandStatus = "OVERSOLD"
	BandNeutral    BandStatus = "NEUTRAL"
)

// MACDResult is the fast/slow EMA spread at the latest price.
type MACDResult struct {
	Value   float64
	Bullish bool
}

// BollingerResult holds the bands over the trailing window.
// Upper == Lower == 0 means there was not enough data for a band.
type BollingerResult struct {
	Upper  float64
	Lower  float64
	Middle float64
	Status BandStatus
}

// HasData reports whether the bands were actually computed.
func (b BollingerResult) HasData() bool {
	return b.Upper != 0 || b.Lower != 0
}

// IndicatorSnapshot holds all computed technical indicators for one series.
type IndicatorSnapshot struct {
	CurrentPrice float64
	RSI          float64 // 0 ~ 100
	MACD         MACDResult
	Bollinger    BollingerResult
	SMA          float64
	Volume       int64
}
