package app

import (
	"math/rand"
	"time"

	"quizcast/internal/domain"
)

// SeedMode controls how the selection shuffle is seeded.
type SeedMode int

const (
	// SeedHourly derives the seed from the current hour bucket, so repeated
	// draws within the same hour return the same batch. This makes scheduled
	// sends idempotent against accidental double-triggering.
	SeedHourly SeedMode = iota
	// SeedRandom draws with a fresh seed every time (manual triggers).
	SeedRandom
)

// HourSeed is a pure function of t: the local year-month-day-hour collapsed
// into a single integer.
func HourSeed(t time.Time) int64 {
	return int64(t.Year())*1_000_000 +
		int64(t.Month())*10_000 +
		int64(t.Day())*100 +
		int64(t.Hour())
}

// Selector draws bounded batches from the pool while avoiding recent repeats.
type Selector struct {
	clock func() time.Time
}

func NewSelector() *Selector {
	return &Selector{clock: time.Now}
}

// NewSelectorWithClock allows deterministic seeds in tests.
func NewSelectorWithClock(clock func() time.Time) *Selector {
	return &Selector{clock: clock}
}

// Select returns up to count questions drawn from pool minus the excluded IDs.
// If the exclusion leaves fewer than count candidates the draw falls back to
// the full pool: repeats are preferred over under-filling the batch.
func (s *Selector) Select(pool []domain.Question, exclude map[string]struct{}, count int, mode SeedMode) []domain.Question {
	if count <= 0 || len(pool) == 0 {
		return nil
	}

	candidates := make([]domain.Question, 0, len(pool))
	for _, q := range pool {
		if _, skip := exclude[q.ID]; !skip {
			candidates = append(candidates, q)
		}
	}
	if len(candidates) < count {
		candidates = append(candidates[:0:0], pool...)
	}

	var seed int64
	switch mode {
	case SeedHourly:
		seed = HourSeed(s.clock())
	default:
		seed = s.clock().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))
	rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if count > len(candidates) {
		count = len(candidates)
	}
	return candidates[:count]
}
