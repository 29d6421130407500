package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizcast/internal/domain"
)

func TestLogMarkOutcomeUnknownInstance(t *testing.T) {
	dlog := NewDistributionLog()
	err := dlog.MarkOutcome(context.Background(), "ghost", 1, 2)
	if !errors.Is(err, domain.ErrUnknownInstance) {
		t.Fatalf("expected ErrUnknownInstance, got %v", err)
	}
}

func TestLogRecentWindow(t *testing.T) {
	dlog := NewDistributionLog()
	ctx := context.Background()
	now := time.Date(2026, 1, 7, 14, 0, 0, 0, time.Local)

	_ = dlog.RecordSent(ctx, domain.Instance{ID: "i1", QuestionID: "q-new", SentAt: now.Add(-time.Hour)})
	_ = dlog.RecordSent(ctx, domain.Instance{ID: "i2", QuestionID: "q-old", SentAt: now.Add(-48 * time.Hour)})

	recent, err := dlog.Recent(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if _, ok := recent["q-new"]; !ok {
		t.Fatalf("expected q-new inside the lookback window, got %v", recent)
	}
	if _, ok := recent["q-old"]; ok {
		t.Fatalf("q-old is outside the lookback window, got %v", recent)
	}
}

func TestLogAggregateSumsByTopic(t *testing.T) {
	dlog := NewDistributionLog()
	ctx := context.Background()
	day := time.Date(2026, 1, 7, 10, 0, 0, 0, time.Local)

	_ = dlog.RecordSent(ctx, domain.Instance{ID: "i1", QuestionID: "q1", Topic: "penal", SentAt: day})
	_ = dlog.RecordSent(ctx, domain.Instance{ID: "i2", QuestionID: "q2", Topic: "penal", SentAt: day.Add(4 * time.Hour)})
	_ = dlog.RecordSent(ctx, domain.Instance{ID: "i3", QuestionID: "q3", Topic: "logic", SentAt: day})
	if err := dlog.MarkOutcome(ctx, "i1", 2, 3); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := dlog.MarkOutcome(ctx, "i2", 1, 4); err != nil {
		t.Fatalf("mark: %v", err)
	}

	tallies, err := dlog.Aggregate(ctx, day)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(tallies) != 2 {
		t.Fatalf("expected 2 topics, got %+v", tallies)
	}
	// Sorted by topic: logic first, penal second.
	if tallies[0].Topic != "logic" || tallies[0].Total != 0 {
		t.Fatalf("unexpected logic tally: %+v", tallies[0])
	}
	if tallies[1].Topic != "penal" || tallies[1].Correct != 3 || tallies[1].Total != 7 {
		t.Fatalf("unexpected penal tally: %+v", tallies[1])
	}
}
