package collector

import (
	"context"
	"errors"

	"PipSignal/internal/model"
)

// ErrFeedUnavailable is returned by live providers that could not answer in time.
// It is transient; callers may retry.
var ErrFeedUnavailable = errors.New("price feed unavailable")

// Provider supplies a price history for an instrument, oldest price first.
// basePrice anchors synthetic providers; live feeds ignore it.
type Provider interface {
	History(ctx context.Context, inst model.Instrument, basePrice float64, length int) (model.PriceSeries, error)
	Name() string
}

// Rand is the subset of *rand.Rand used for synthetic data.
type Rand interface {
	Float64() float64
}
