package workload

import (
	"math"
	"math/rand"
)

// ArrivalSampler draws the arrival times of a generated workload.
type ArrivalSampler interface {
	// SampleArrival returns the arrival of the next process given the
	// previous one. Results are non-decreasing across calls.
	SampleArrival(rng *rand.Rand, prev int64) int64
}

// UniformSampler scatters arrivals uniformly over [0, span].
// Each call is independent of prev; Generate sorts the result.
type UniformSampler struct {
	span int64
}

func (s *UniformSampler) SampleArrival(rng *rand.Rand, _ int64) int64 {
	if s.span <= 0 {
		return 0
	}
	return rng.Int63n(s.span + 1)
}

// PoissonSampler spaces arrivals by exponentially-distributed gaps (CV=1).
// Unlike the continuous case, gaps may be 0 so simultaneous arrivals occur.
type PoissonSampler struct {
	meanGap float64
}

// Arrivals saturate at math.MaxInt64 instead of wrapping.
func (s *PoissonSampler) SampleArrival(rng *rand.Rand, prev int64) int64 {
	gap := rng.ExpFloat64() * s.meanGap
	if gap >= math.MaxInt64 {
		return math.MaxInt64
	}
	g := int64(gap)
	if g > math.MaxInt64-prev {
		return math.MaxInt64
	}
	return prev + g
}

// NewArrivalSampler builds the sampler for a generator spec.
// Poisson arrivals use span/count as the mean gap, so both processes cover
// roughly the same window.
func NewArrivalSampler(g *GeneratorSpec) ArrivalSampler {
	switch g.ArrivalProcess {
	case ArrivalPoisson:
		meanGap := 0.0
		if g.Count > 0 {
			meanGap = float64(g.ArrivalSpan) / float64(g.Count)
		}
		return &PoissonSampler{meanGap: meanGap}
	default:
		return &UniformSampler{span: g.ArrivalSpan}
	}
}
