package calculator

// RSIStatus labels an RSI reading.
func RSIStatus(rsi float64) string {
	switch {
	case rsi > 70:
		return "OVERBOUGHT"
	case rsi < 30:
		return "OVERSOLD"
	case rsi > 50:
		return "BULLISH"
	default:
		return "BEARISH"
	}
}

// SMATrendStatus labels how far the price sits from its SMA, in percent.
func SMATrendStatus(currentPrice, sma float64) string {
	if sma == 0 {
		return "BEARISH"
	}
	diff := (currentPrice - sma) / sma * 100
	switch {
	case diff > 1:
		return "STRONG BULLISH"
	case diff > 0:
		return "BULLISH"
	case diff > -1:
		return "BEARISH"
	default:
		return "STRONG BEARISH"
	}
}
