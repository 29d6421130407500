package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"quizcast/internal/domain"
)

type voteKey struct {
	participantID string
	instanceID    string
}

// Tracker is an in-memory attributed response tracker. It enforces at most
// one vote per (participant, instance) pair and keeps the ranking in the same
// critical section, mirroring the transactional postgres variant.
type Tracker struct {
	dlog *DistributionLog

	mu      sync.Mutex
	votes   map[voteKey]bool
	ranking map[string]*domain.RankingEntry
	stats   map[string]*domain.ParticipantStats
}

func NewTracker(dlog *DistributionLog) *Tracker {
	return &Tracker{
		dlog:    dlog,
		votes:   make(map[voteKey]bool),
		ranking: make(map[string]*domain.RankingEntry),
		stats:   make(map[string]*domain.ParticipantStats),
	}
}

func (t *Tracker) RecordVote(_ context.Context, vote domain.Vote) (domain.VoteReceipt, error) {
	key := voteKey{participantID: vote.ParticipantID, instanceID: vote.InstanceID}

	t.mu.Lock()
	if _, dup := t.votes[key]; dup {
		t.mu.Unlock()
		return domain.VoteReceipt{}, domain.ErrDuplicateVote
	}
	t.votes[key] = vote.Correct

	entry, ok := t.ranking[vote.ParticipantID]
	if !ok {
		entry = &domain.RankingEntry{ParticipantID: vote.ParticipantID}
		t.ranking[vote.ParticipantID] = entry
	}
	entry.DisplayName = vote.DisplayName

	stat, ok := t.stats[vote.ParticipantID]
	if !ok {
		stat = &domain.ParticipantStats{}
		t.stats[vote.ParticipantID] = stat
	}
	stat.Attempts++

	awarded := 0
	if vote.Correct {
		awarded = 1
		entry.Points++
		stat.Points++
	}
	total := entry.Points
	t.mu.Unlock()

	if t.dlog != nil {
		t.dlog.bump(vote.InstanceID, vote.Correct)
	}
	return domain.VoteReceipt{Correct: vote.Correct, Awarded: awarded, TotalPoints: total}, nil
}

func (t *Tracker) ApplyAggregate(ctx context.Context, instanceID string, correct, total int) error {
	if t.dlog == nil {
		return nil
	}
	err := t.dlog.MarkOutcome(ctx, instanceID, correct, total)
	if errors.Is(err, domain.ErrUnknownInstance) {
		return nil
	}
	return err
}

func (t *Tracker) TopN(_ context.Context, n int) ([]domain.RankingEntry, error) {
	t.mu.Lock()
	entries := make([]domain.RankingEntry, 0, len(t.ranking))
	for _, entry := range t.ranking {
		entries = append(entries, *entry)
	}
	t.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].DisplayName < entries[j].DisplayName
	})
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}

func (t *Tracker) ParticipantStats(_ context.Context, participantID string) (domain.ParticipantStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if stat, ok := t.stats[participantID]; ok {
		return *stat, nil
	}
	return domain.ParticipantStats{}, nil
}
