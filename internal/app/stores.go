package app

import (
	"context"
	"time"

	"quizcast/internal/domain"
)

// DistributionLog is the persistent record of every question instance sent.
type DistributionLog interface {
	// RecordSent inserts a freshly delivered instance with zero counts.
	RecordSent(ctx context.Context, inst domain.Instance) error
	// MarkOutcome overwrites the accumulated counts for an instance.
	// Unknown instances yield domain.ErrUnknownInstance.
	MarkOutcome(ctx context.Context, instanceID string, correct, total int) error
	// Recent returns the set of question IDs sent at or after since.
	Recent(ctx context.Context, since time.Time) (map[string]struct{}, error)
	// Aggregate sums correct/total per topic for the given calendar day.
	Aggregate(ctx context.Context, date time.Time) ([]domain.TopicTally, error)
}

// ResponseTracker records participant answers. Implementations are either
// attributed (per-participant rows plus ranking) or anonymous (aggregate
// counts only).
type ResponseTracker interface {
	// RecordVote registers an answer exactly once per (participant, instance)
	// pair. A repeated pair yields domain.ErrDuplicateVote. Anonymous trackers
	// yield domain.ErrRankingUnavailable.
	RecordVote(ctx context.Context, vote domain.Vote) (domain.VoteReceipt, error)
	// ApplyAggregate folds transport-native poll counts into the log.
	ApplyAggregate(ctx context.Context, instanceID string, correct, total int) error
}

// RankingStore reads cumulative participant standings.
type RankingStore interface {
	TopN(ctx context.Context, n int) ([]domain.RankingEntry, error)
}

// StatsReader exposes one participant's lifetime record. Attributed trackers
// implement it; anonymous mode has nothing to read.
type StatsReader interface {
	ParticipantStats(ctx context.Context, participantID string) (domain.ParticipantStats, error)
}

// QuestionSource provides the full question pool.
type QuestionSource interface {
	Questions(ctx context.Context) ([]domain.Question, error)
}

// Transport delivers outbound messages to the channel. Implementations wrap
// an external messaging system; delivery of a single item may block for
// seconds and should fail rather than hang.
type Transport interface {
	SendAnnouncement(ctx context.Context, text string) (string, error)
	SendQuizItem(ctx context.Context, item domain.QuizItem) (string, error)
}
