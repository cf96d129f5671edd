package bank

import (
	"math/rand"
	"time"

	"devprep/internal/model"
)

// Sampler draws random question sequences from a pool.
type Sampler struct {
	rnd *rand.Rand
}

// NewSampler returns a Sampler seeded with the current time.
func NewSampler() *Sampler {
	return &Sampler{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSamplerWithRand returns a Sampler using the provided source, so tests
// can make sampling deterministic.
func NewSamplerWithRand(rnd *rand.Rand) *Sampler {
	return &Sampler{rnd: rnd}
}

// Sample draws up to count questions uniformly without repetition. When
// count exceeds the pool size the whole pool is returned in random order;
// callers must handle a shorter-than-requested result.
func (s *Sampler) Sample(pool []model.Question, count int) []model.Question {
	if count <= 0 || len(pool) == 0 {
		return nil
	}
	if count > len(pool) {
		count = len(pool)
	}
	perm := s.rnd.Perm(len(pool))
	out := make([]model.Question, 0, count)
	for _, idx := range perm[:count] {
		out = append(out, pool[idx])
	}
	return out
}

// SampleWithRepeats draws exactly count questions, each independently and
// uniformly, so any question may repeat.
func (s *Sampler) SampleWithRepeats(pool []model.Question, count int) []model.Question {
	if count <= 0 || len(pool) == 0 {
		return nil
	}
	out := make([]model.Question, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, pool[s.rnd.Intn(len(pool))])
	}
	return out
}

// Perm returns a random permutation of [0, n), used to shuffle answer
// options with the same injected randomness as question draws.
func (s *Sampler) Perm(n int) []int {
	return s.rnd.Perm(n)
}
