package demand

import (
	"math"
	"math/rand"
	"testing"
)

func TestPoissonArrivals_MeanMatchesRate(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewPoissonArrivals(20) // 20 units/day → mean gap 0.05 days
	n := 100000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += s.NextInterarrival(rng)
	}
	mean := sum / float64(n)
	if math.Abs(mean-0.05)/0.05 > 0.05 {
		t.Errorf("poisson mean gap = %.5f, want ≈ 0.05 (within 5%%)", mean)
	}
}

func TestPoissonArrivals_AlwaysPositive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewPoissonArrivals(500)
	for i := 0; i < 10000; i++ {
		if gap := s.NextInterarrival(rng); gap <= 0 {
			t.Fatalf("sample %d: interarrival %f is not positive", i, gap)
		}
	}
}

func TestPoissonArrivals_ZeroRateDoesNotPanic(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewPoissonArrivals(0)
	if gap := s.NextInterarrival(rng); math.IsNaN(gap) || gap <= 0 {
		t.Errorf("floored rate produced bad interarrival %f", gap)
	}
}
