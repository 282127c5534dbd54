package demand

import (
	"math/rand"
)

// ArrivalSampler generates inter-arrival times between demand events.
type ArrivalSampler interface {
	// NextInterarrival returns the next inter-arrival time in days.
	// Always returns a positive value.
	NextInterarrival(rng *rand.Rand) float64
}

// PoissonArrivals generates exponentially-distributed inter-arrival times,
// i.e. demand events form a Poisson process with the configured rate.
type PoissonArrivals struct {
	ratePerDay float64 // demand units per day
}

// NewPoissonArrivals creates a PoissonArrivals sampler.
// rate is the demand rate in units/day.
func NewPoissonArrivals(rate float64) *PoissonArrivals {
	// Defensive floor: avoid division by zero or numerical instability
	if rate < 1e-15 {
		rate = 1e-15
	}
	return &PoissonArrivals{ratePerDay: rate}
}

func (s *PoissonArrivals) NextInterarrival(rng *rand.Rand) float64 {
	return rng.ExpFloat64() / s.ratePerDay
}
