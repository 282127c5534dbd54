package demand

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// LeadTimeSpec parameterizes the replenishment lead-time distribution.
// For "uniform", A and B are the minimum and maximum in days.
// For "normal", A is the mean and B the standard deviation in days.
type LeadTimeSpec struct {
	Dist string  `yaml:"dist"`
	A    float64 `yaml:"a"`
	B    float64 `yaml:"b"`
}

// Validate checks the spec before any sampler is built.
func (s *LeadTimeSpec) Validate() error {
	switch s.Dist {
	case "uniform":
		if s.A < 0 || s.B < 0 {
			return fmt.Errorf("uniform lead time bounds must be non-negative, got a=%f b=%f", s.A, s.B)
		}
		if s.B < s.A {
			return fmt.Errorf("uniform lead time requires b >= a, got a=%f b=%f", s.A, s.B)
		}
	case "normal":
		if s.A < 0 {
			return fmt.Errorf("normal lead time mean must be non-negative, got %f", s.A)
		}
		if s.B < 0 {
			return fmt.Errorf("normal lead time std dev must be non-negative, got %f", s.B)
		}
	default:
		return fmt.Errorf("unknown lead time dist %q; valid: uniform, normal", s.Dist)
	}
	return nil
}

// LeadTimeSampler generates replenishment lead times.
type LeadTimeSampler interface {
	// NextLeadTime returns the next lead time in days. Never negative.
	NextLeadTime(rng *rand.Rand) float64
}

// UniformLeadTime draws lead times uniformly from [min, max] days.
type UniformLeadTime struct {
	min, max float64
}

func (s *UniformLeadTime) NextLeadTime(rng *rand.Rand) float64 {
	return s.min + rng.Float64()*(s.max-s.min)
}

// NormalLeadTime draws Gaussian lead times clamped at zero.
// The clamp is a deliberate policy: a physical lead time cannot be
// negative, so misconfigured draws are floored rather than rejected.
type NormalLeadTime struct {
	mean, stdDev float64
}

func (s *NormalLeadTime) NextLeadTime(rng *rand.Rand) float64 {
	lt := rng.NormFloat64()*s.stdDev + s.mean
	if lt < 0 {
		logrus.Debugf("normal lead time draw %.4f clamped to 0", lt)
		return 0
	}
	return lt
}

// NewLeadTimeSampler creates a LeadTimeSampler from a validated spec.
func NewLeadTimeSampler(spec LeadTimeSpec) (LeadTimeSampler, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	switch spec.Dist {
	case "uniform":
		return &UniformLeadTime{min: spec.A, max: spec.B}, nil
	case "normal":
		return &NormalLeadTime{mean: spec.A, stdDev: spec.B}, nil
	default:
		// Validated above; defensive fallback
		return nil, fmt.Errorf("unknown lead time dist %q", spec.Dist)
	}
}
