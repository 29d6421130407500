// Package memory holds in-process store implementations, used by tests and
// by runs without a configured database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"quizcast/internal/domain"
)

// DistributionLog is an in-memory implementation of app.DistributionLog.
type DistributionLog struct {
	mu        sync.RWMutex
	instances map[string]*domain.Instance
}

func NewDistributionLog() *DistributionLog {
	return &DistributionLog{instances: make(map[string]*domain.Instance)}
}

func (l *DistributionLog) RecordSent(_ context.Context, inst domain.Instance) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	stored := inst
	l.instances[inst.ID] = &stored
	return nil
}

func (l *DistributionLog) MarkOutcome(_ context.Context, instanceID string, correct, total int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	inst, ok := l.instances[instanceID]
	if !ok {
		return domain.ErrUnknownInstance
	}
	inst.CorrectCount = correct
	inst.TotalCount = total
	return nil
}

func (l *DistributionLog) Recent(_ context.Context, since time.Time) (map[string]struct{}, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	recent := make(map[string]struct{})
	for _, inst := range l.instances {
		if !inst.SentAt.Before(since) {
			recent[inst.QuestionID] = struct{}{}
		}
	}
	return recent, nil
}

func (l *DistributionLog) Aggregate(_ context.Context, date time.Time) ([]domain.TopicTally, error) {
	y, m, d := date.Date()

	l.mu.RLock()
	byTopic := make(map[string]*domain.TopicTally)
	for _, inst := range l.instances {
		iy, im, id := inst.SentAt.Date()
		if iy != y || im != m || id != d {
			continue
		}
		tally, ok := byTopic[inst.Topic]
		if !ok {
			tally = &domain.TopicTally{Topic: inst.Topic}
			byTopic[inst.Topic] = tally
		}
		tally.Correct += inst.CorrectCount
		tally.Total += inst.TotalCount
	}
	l.mu.RUnlock()

	tallies := make([]domain.TopicTally, 0, len(byTopic))
	for _, tally := range byTopic {
		tallies = append(tallies, *tally)
	}
	sort.Slice(tallies, func(i, j int) bool { return tallies[i].Topic < tallies[j].Topic })
	return tallies, nil
}

// bump increments an instance's counters for one attributed vote. Missing
// instances are ignored so a vote on a stale instance still scores.
func (l *DistributionLog) bump(instanceID string, correct bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	inst, ok := l.instances[instanceID]
	if !ok {
		return
	}
	inst.TotalCount++
	if correct {
		inst.CorrectCount++
	}
}
