package model

import (
	"errors"
	"fmt"
	"strings"
)

// PriceSeries is an ordered sequence of prices, oldest first.
type PriceSeries []float64

// Last returns the most recent price, or 0 for an empty series.
func (s PriceSeries) Last() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// Validate checks the series is non-empty and strictly positive.
func (s PriceSeries) Validate() error {
	if len(s) == 0 {
		return errors.New("empty price series")
	}
	for i, p := range s {
		if p <= 0 {
			return fmt.Errorf("non-positive price %v at index %d", p, i)
		}
	}
	return nil
}

// Instrument is a six-letter currency pair symbol such as EURUSD.
type Instrument string

// NormalizeInstrument upper-cases and trims a user supplied symbol.
func NormalizeInstrument(s string) Instrument {
	return Instrument(strings.ToUpper(strings.TrimSpace(s)))
}

// QuoteCurrency returns the last three letters of the pair.
func (i Instrument) QuoteCurrency() string {
	s := string(i)
	if len(s) < 3 {
		return s
	}
	return s[len(s)-3:]
}

// IsJPYQuoted reports whether the pair is quoted in yen.
func (i Instrument) IsJPYQuoted() bool {
	return i.QuoteCurrency() == "JPY"
}

// PipSize is 0.01 for yen-quoted pairs and 0.0001 otherwise.
func (i Instrument) PipSize() float64 {
	if i.IsJPYQuoted() {
		return 0.01
	}
	return 0.0001
}

// Precision is the number of decimals prices are displayed with.
func (i Instrument) Precision() int32 {
	if i.IsJPYQuoted() {
		return 3
	}
	return 5
}
