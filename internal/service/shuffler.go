package service

import (
	"math/rand"
	"sync"
	"time"
)

// Shuffler permutes sequences uniformly using Fisher–Yates.
// It is safe for concurrent use.
type Shuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewShuffler creates a Shuffler with a fixed seed.
func NewShuffler(seed int64) *Shuffler {
	return &Shuffler{
		rng: rand.New(rand.NewSource(seed)), // #nosec G404
	}
}

// NewRandomShuffler creates a Shuffler seeded from the current time.
func NewRandomShuffler() *Shuffler {
	return NewShuffler(time.Now().UnixNano())
}

// Shuffle permutes n elements in place through swap.
// It is a no-op for n <= 1.
func (s *Shuffler) Shuffle(n int, swap func(i, j int)) {
	if n <= 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := n - 1; i >= 1; i-- {
		j := s.rng.Intn(i + 1)
		swap(i, j)
	}
}

// ShuffleSlice permutes items in place.
func ShuffleSlice[T any](s *Shuffler, items []T) {
	s.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
