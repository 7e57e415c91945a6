package collector

import (
	"context"
	"errors"

	"PipSignal/internal/model"
)

const (
	trendStep    = 0.0005
	noiseStep    = 0.001
	trendFlipP   = 0.1
	minimumPrice = 0.0001
)

// SyntheticProvider generates a bounded random walk instead of reading a feed.
type SyntheticProvider struct {
	// NewRand returns the random source for one History call.
	NewRand func() Rand
}

// NewSyntheticProvider creates a provider drawing each walk from newRand().
func NewSyntheticProvider(newRand func() Rand) *SyntheticProvider {
	return &SyntheticProvider{NewRand: newRand}
}

func (p *SyntheticProvider) Name() string { return "synthetic" }

func (p *SyntheticProvider) History(_ context.Context, _ model.Instrument, basePrice float64, length int) (model.PriceSeries, error) {
	if basePrice <= 0 {
		return nil, errors.New("base price must be positive")
	}
	return RandomWalk(p.NewRand(), basePrice, length), nil
}

// RandomWalk starts at basePrice and applies a trend bias plus noise at each step.
// Each step moves the price by at most 0.1% of its current value and the trend
// reverses with probability 0.1. Prices never drop below 0.0001.
func RandomWalk(r Rand, basePrice float64, length int) model.PriceSeries {
	if length < 1 {
		length = 1
	}
	prices := make(model.PriceSeries, length)
	prices[0] = basePrice

	trend := -1.0
	if r.Float64() > 0.5 {
		trend = 1.0
	}
	for i := 1; i < length; i++ {
		change := trend*r.Float64()*trendStep + (r.Float64()-0.5)*noiseStep
		if r.Float64() < trendFlipP {
			trend = -trend
		}
		next := prices[i-1] * (1 + change)
		if next < minimumPrice {
			next = minimumPrice
		}
		prices[i] = next
	}
	return prices
}
