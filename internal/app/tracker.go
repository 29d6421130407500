package app

import (
	"context"
	"errors"
	"log"

	"quizcast/internal/domain"
)

// AnonymousTracker handles transports whose polls only report aggregate
// counts. It cannot attribute votes to participants, so ranking is
// unavailable.
type AnonymousTracker struct {
	dlog DistributionLog
}

func NewAnonymousTracker(dlog DistributionLog) *AnonymousTracker {
	return &AnonymousTracker{dlog: dlog}
}

func (t *AnonymousTracker) RecordVote(context.Context, domain.Vote) (domain.VoteReceipt, error) {
	return domain.VoteReceipt{}, domain.ErrRankingUnavailable
}

// ApplyAggregate folds poll counts into the log. Aggregate callbacks may
// reference instances recorded by a different process run, so an unknown
// instance is tolerated as a no-op.
func (t *AnonymousTracker) ApplyAggregate(ctx context.Context, instanceID string, correct, total int) error {
	err := t.dlog.MarkOutcome(ctx, instanceID, correct, total)
	if errors.Is(err, domain.ErrUnknownInstance) {
		log.Printf("outcome for unknown instance %s ignored", instanceID)
		return nil
	}
	return err
}
