package montecarlo

import (
	"math"
	"math/rand"
	"time"
)

// NormalSource yields standard-normal variates for path generation.
// Injected into the simulators so tests can pin a seed and reproduce
// bit-identical output.
type NormalSource interface {
	Norm() float64
}

// BoxMullerSource draws standard normals via the Box–Muller transform
// from two independent uniform(0,1) draws.
type BoxMullerSource struct {
	rng *rand.Rand
}

// NewBoxMullerSource creates a normal source from a seed.
// Seed 0 means time-based (non-reproducible) seeding.
func NewBoxMullerSource(seed int64) *BoxMullerSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &BoxMullerSource{rng: rand.New(rand.NewSource(seed))}
}

// Norm returns one standard-normal variate.
// z = sqrt(-2 ln u1) * cos(2π u2), with u1 shifted into (0,1] so the
// log never sees zero.
func (s *BoxMullerSource) Norm() float64 {
	u1 := 1.0 - s.rng.Float64()
	u2 := s.rng.Float64()
	return math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
}
