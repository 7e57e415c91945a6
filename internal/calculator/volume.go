package calculator

import "math"

// Rand is the subset of *rand.Rand the calculator needs.
type Rand interface {
	Float64() float64
}

// EstimateVolume produces a plausible synthetic trading volume.
// There is no live volume feed, so this stands in for one.
func EstimateVolume(r Rand) int64 {
	base := r.Float64()*5_000_000 + 1_000_000
	change := (r.Float64() - 0.5) * 1_000_000
	return int64(math.Round(base + change))
}
