package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizcast/internal/app"
	"quizcast/internal/domain"
	"quizcast/internal/infra/memory"
)

func TestAnonymousTrackerRejectsAttributedVotes(t *testing.T) {
	tracker := app.NewAnonymousTracker(memory.NewDistributionLog())

	_, err := tracker.RecordVote(context.Background(), domain.Vote{ParticipantID: "u1", InstanceID: "i1"})
	if !errors.Is(err, domain.ErrRankingUnavailable) {
		t.Fatalf("expected ranking-unavailable error, got %v", err)
	}
}

func TestAnonymousTrackerFoldsAggregates(t *testing.T) {
	dlog := memory.NewDistributionLog()
	tracker := app.NewAnonymousTracker(dlog)
	ctx := context.Background()

	sent := time.Date(2026, 1, 7, 14, 0, 0, 0, time.Local)
	if err := dlog.RecordSent(ctx, domain.Instance{ID: "i1", QuestionID: "q1", Topic: "penal", SentAt: sent}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := tracker.ApplyAggregate(ctx, "i1", 4, 7); err != nil {
		t.Fatalf("apply aggregate: %v", err)
	}

	tallies, err := dlog.Aggregate(ctx, sent)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(tallies) != 1 || tallies[0].Correct != 4 || tallies[0].Total != 7 {
		t.Fatalf("unexpected tallies: %+v", tallies)
	}
}

func TestAnonymousTrackerToleratesUnknownInstance(t *testing.T) {
	tracker := app.NewAnonymousTracker(memory.NewDistributionLog())

	// Callbacks may reference instances recorded by a previous process run.
	if err := tracker.ApplyAggregate(context.Background(), "ghost", 1, 2); err != nil {
		t.Fatalf("unknown instance must be a no-op, got %v", err)
	}
}
