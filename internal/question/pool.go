package question

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"quizcast/internal/domain"
)

// Pool caches the validated question pool with TTL to avoid repeated source
// reads. Records get a synthetic ID at load time; question text is never used
// as a key.
type Pool struct {
	loader Loader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	questions []domain.Question
	expiresAt time.Time
}

func NewPool(loader Loader, ttl time.Duration) *Pool {
	return &Pool{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewPoolWithClock allows deterministic expiry in tests.
func NewPoolWithClock(loader Loader, ttl time.Duration, clock func() time.Time) *Pool {
	p := NewPool(loader, ttl)
	p.clock = clock
	return p
}

func (p *Pool) Questions(ctx context.Context) ([]domain.Question, error) {
	now := p.clock()

	p.mu.RLock()
	if p.questions != nil && p.expiresAt.After(now) {
		cached := p.questions
		p.mu.RUnlock()
		return cached, nil
	}
	p.mu.RUnlock()

	result, err, _ := p.sf.Do("pool", func() (interface{}, error) {
		now := p.clock()
		p.mu.RLock()
		if p.questions != nil && p.expiresAt.After(now) {
			cached := p.questions
			p.mu.RUnlock()
			return cached, nil
		}
		p.mu.RUnlock()

		raw, err := p.loader.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}
		questions := normalize(raw)
		if len(questions) == 0 {
			return nil, domain.ErrDataEmpty
		}

		p.mu.Lock()
		p.questions = questions
		p.expiresAt = now.Add(p.ttlWithJitter())
		p.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// idNamespace scopes content-derived question IDs.
var idNamespace = uuid.MustParse("5f8d2a6e-1c3b-4b9a-9e47-d21f6a70c4a1")

// normalize assigns synthetic IDs and drops malformed records. A single bad
// record never fails the load.
func normalize(raw []domain.Question) []domain.Question {
	questions := make([]domain.Question, 0, len(raw))
	for _, q := range raw {
		if len(q.Options) < 2 || len(q.Options) > 10 {
			log.Printf("skipping question with %d options: %.40q", len(q.Options), q.Text)
			continue
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			log.Printf("skipping question with correct index %d out of range: %.40q", q.CorrectIndex, q.Text)
			continue
		}
		if q.ID == "" {
			q.ID = deriveID(q)
		}
		questions = append(questions, q)
	}
	return questions
}

// deriveID builds a synthetic identifier that is stable across process runs,
// so recent-usage exclusion survives restarts. Two questions with identical
// wording but different topics or options no longer collide.
func deriveID(q domain.Question) string {
	material := q.Topic + "\x00" + q.Text
	for _, opt := range q.Options {
		material += "\x00" + opt
	}
	return uuid.NewSHA1(idNamespace, []byte(material)).String()
}

func (p *Pool) ttlWithJitter() time.Duration {
	if p.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(p.ttl) / 10
	return p.ttl + time.Duration(p.rnd.Int63n(jitterMax+1))
}
