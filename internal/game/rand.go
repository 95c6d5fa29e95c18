package game

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the random source used for placement and computer shots.
type Rand interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a seeded source that is safe for concurrent use.
// A zero seed is replaced by the current time.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
