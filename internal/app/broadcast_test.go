package app_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"quizcast/internal/app"
	"quizcast/internal/config"
	"quizcast/internal/domain"
	"quizcast/internal/infra/memory"
)

type fakeTransport struct {
	mu       sync.Mutex
	events   []string
	failCall int
	itemSeen int
}

func (f *fakeTransport) SendAnnouncement(_ context.Context, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, "announcement:"+text)
	return fmt.Sprintf("ann-%d", len(f.events)), nil
}

func (f *fakeTransport) SendQuizItem(_ context.Context, item domain.QuizItem) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.itemSeen++
	if f.failCall == f.itemSeen {
		return "", errors.New("delivery timed out")
	}
	f.events = append(f.events, "item:"+item.QuestionID)
	return fmt.Sprintf("inst-%d", f.itemSeen), nil
}

type staticSource struct {
	questions []domain.Question
	err       error
}

func (s staticSource) Questions(context.Context) ([]domain.Question, error) {
	return s.questions, s.err
}

type broadcastFixture struct {
	transport *fakeTransport
	dlog      *memory.DistributionLog
	b         *app.Broadcaster
	sleeps    []time.Duration
}

func newBroadcastFixture(t *testing.T, now time.Time, pool []domain.Question, blackout string) *broadcastFixture {
	t.Helper()
	cfg := config.Default()
	cfg.Cadence.BlackoutDate = blackout

	cadence, err := app.NewCadence(cfg.Cadence)
	if err != nil {
		t.Fatalf("new cadence: %v", err)
	}

	f := &broadcastFixture{
		transport: &fakeTransport{},
		dlog:      memory.NewDistributionLog(),
	}
	clock := func() time.Time { return now }
	sleep := func(d time.Duration) { f.sleeps = append(f.sleeps, d) }
	f.b = app.NewBroadcasterWithClock(
		f.transport,
		f.dlog,
		staticSource{questions: pool},
		app.NewSelectorWithClock(clock),
		cadence,
		app.NewReporter(f.dlog, cfg.Report),
		app.BroadcasterConfig{Lookback: 24 * time.Hour, Pace: 3 * time.Second},
		clock,
		sleep,
	)
	return f
}

func weekdayAfternoon() time.Time {
	// 2026-01-07 is a Wednesday.
	return time.Date(2026, time.January, 7, 14, 0, 0, 0, time.Local)
}

func TestBatchOrderingAndPacing(t *testing.T) {
	f := newBroadcastFixture(t, weekdayAfternoon(), makePool(5), "")

	result, err := f.b.SendBatch(context.Background(), 3, app.SeedHourly, false)
	if err != nil {
		t.Fatalf("send batch: %v", err)
	}
	if result.Requested != 3 || result.Failed() != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	events := f.transport.events
	if len(events) != 5 {
		t.Fatalf("expected greeting + 3 items + closing, got %v", events)
	}
	if !strings.HasPrefix(events[0], "announcement:") {
		t.Fatalf("greeting must precede all items, got %v", events)
	}
	for i := 1; i <= 3; i++ {
		if !strings.HasPrefix(events[i], "item:") {
			t.Fatalf("expected item at position %d, got %v", i, events)
		}
	}
	if !strings.HasPrefix(events[4], "announcement:") {
		t.Fatalf("closing must follow all items, got %v", events)
	}

	if len(f.sleeps) != 2 {
		t.Fatalf("expected a pacing sleep between consecutive items, got %d sleeps", len(f.sleeps))
	}
}

func TestBatchItemFailureDoesNotAbort(t *testing.T) {
	f := newBroadcastFixture(t, weekdayAfternoon(), makePool(3), "")
	f.transport.failCall = 2

	result, err := f.b.SendBatch(context.Background(), 3, app.SeedHourly, false)
	if err != nil {
		t.Fatalf("send batch: %v", err)
	}
	if result.Requested != 3 || result.Failed() != 1 {
		t.Fatalf("expected 3 requested with 1 failure, got %+v", result)
	}

	recent, err := f.dlog.Recent(context.Background(), weekdayAfternoon().Add(-time.Hour))
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 instances logged (failed item skipped), got %d", len(recent))
	}
}

func TestClosingBatchSendsReportBeforeClosingMessage(t *testing.T) {
	now := weekdayAfternoon()
	f := newBroadcastFixture(t, now, makePool(3), "")

	// Seed an answered instance so the report has data.
	if err := f.dlog.RecordSent(context.Background(), domain.Instance{ID: "seed", QuestionID: "qx", Topic: "penal", SentAt: now}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := f.dlog.MarkOutcome(context.Background(), "seed", 2, 3); err != nil {
		t.Fatalf("mark outcome: %v", err)
	}

	if _, err := f.b.SendBatch(context.Background(), 1, app.SeedHourly, true); err != nil {
		t.Fatalf("send batch: %v", err)
	}

	reportIdx, closingIdx := -1, -1
	for i, ev := range f.transport.events {
		if strings.Contains(ev, "DAILY RESULTS") {
			reportIdx = i
		}
		if strings.Contains(ev, "OBJECTIVE COMPLETE") {
			closingIdx = i
		}
	}
	if reportIdx == -1 || closingIdx == -1 {
		t.Fatalf("expected report and closing announcements, got %v", f.transport.events)
	}
	if reportIdx > closingIdx {
		t.Fatalf("report must precede the closing message: %v", f.transport.events)
	}
	lastItem := -1
	for i, ev := range f.transport.events {
		if strings.HasPrefix(ev, "item:") {
			lastItem = i
		}
	}
	if lastItem > reportIdx {
		t.Fatalf("report must follow the item loop: %v", f.transport.events)
	}
}

func TestBlackoutSpecialFiresExactlyOnce(t *testing.T) {
	now := time.Date(2026, time.February, 25, 14, 0, 0, 0, time.Local)
	f := newBroadcastFixture(t, now, makePool(3), "2026-02-25")

	for i := 0; i < 3; i++ {
		result, err := f.b.RunCycle(context.Background())
		if err != nil {
			t.Fatalf("cycle %d: %v", i, err)
		}
		if result != nil {
			t.Fatalf("cycle %d: ordinary batch sent on blackout date", i)
		}
	}

	if len(f.transport.events) != 1 {
		t.Fatalf("expected exactly one special message, got %v", f.transport.events)
	}
}

func TestGatedHourSendsNothing(t *testing.T) {
	// Sunday 11:00 is not a scheduled weekend hour.
	now := time.Date(2026, time.January, 11, 11, 0, 0, 0, time.Local)
	f := newBroadcastFixture(t, now, makePool(3), "")

	result, err := f.b.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if result != nil || len(f.transport.events) != 0 {
		t.Fatalf("expected suppressed cycle, got result=%+v events=%v", result, f.transport.events)
	}
}

func TestEmptyPoolSkipsCycle(t *testing.T) {
	f := newBroadcastFixture(t, weekdayAfternoon(), nil, "")
	f.b = app.NewBroadcasterWithClock(
		f.transport,
		f.dlog,
		staticSource{err: domain.ErrDataEmpty},
		app.NewSelector(),
		testCadence(t, ""),
		app.NewReporter(f.dlog, config.Default().Report),
		app.BroadcasterConfig{Lookback: 24 * time.Hour},
		weekdayAfternoon,
		func(time.Duration) {},
	)

	result, err := f.b.SendBatch(context.Background(), 2, app.SeedHourly, false)
	if err != nil {
		t.Fatalf("expected empty pool to skip, got error %v", err)
	}
	if result != nil || len(f.transport.events) != 0 {
		t.Fatalf("expected skipped cycle, got result=%+v events=%v", result, f.transport.events)
	}
}

func TestRecentQuestionsExcluded(t *testing.T) {
	now := weekdayAfternoon()
	f := newBroadcastFixture(t, now, makePool(3), "")

	if err := f.dlog.RecordSent(context.Background(), domain.Instance{ID: "old", QuestionID: "q0", Topic: "general", SentAt: now.Add(-2 * time.Hour)}); err != nil {
		t.Fatalf("record: %v", err)
	}

	if _, err := f.b.SendBatch(context.Background(), 2, app.SeedHourly, false); err != nil {
		t.Fatalf("send batch: %v", err)
	}
	for _, ev := range f.transport.events {
		if ev == "item:q0" {
			t.Fatalf("recently sent question q0 was selected again: %v", f.transport.events)
		}
	}
}
