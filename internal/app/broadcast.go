package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"quizcast/internal/domain"
)

const specialMessage = "🎖️ TODAY IS THE DAY. No more drills — you are ready. Good luck out there! 🍀"

const closingMessage = "✅ OBJECTIVE COMPLETE FOR NOW\n\n" +
	"📈 If these quizzes are helping you, share the channel with your classmates right now! 🚀"

// DeliveryResult is the per-item outcome of a batch. Failures are collected
// here instead of aborting the remaining items.
type DeliveryResult struct {
	QuestionID string
	InstanceID string
	Err        error
}

// BatchResult summarizes one broadcast cycle.
type BatchResult struct {
	Requested int
	Items     []DeliveryResult
}

// Failed counts the items that did not reach the transport.
func (r *BatchResult) Failed() int {
	n := 0
	for _, item := range r.Items {
		if item.Err != nil {
			n++
		}
	}
	return n
}

// BroadcasterConfig carries the policy knobs the broadcaster needs beyond its
// collaborators.
type BroadcasterConfig struct {
	Lookback   time.Duration
	Pace       time.Duration
	ExamDate   time.Time
	ShareURL   string
	TopicIcons map[string]string
	Anonymous  bool
}

// Broadcaster runs the distribution cycle: cadence gate, selection, paced
// delivery, logging, and the closing report.
type Broadcaster struct {
	transport Transport
	dlog      DistributionLog
	source    QuestionSource
	selector  *Selector
	cadence   *Cadence
	reporter  *Reporter
	cfg       BroadcasterConfig

	clock func() time.Time
	sleep func(time.Duration)

	mu          sync.Mutex
	specialSent bool
}

func NewBroadcaster(t Transport, dlog DistributionLog, source QuestionSource, selector *Selector, cadence *Cadence, reporter *Reporter, cfg BroadcasterConfig) *Broadcaster {
	return NewBroadcasterWithClock(t, dlog, source, selector, cadence, reporter, cfg, time.Now, time.Sleep)
}

// NewBroadcasterWithClock allows deterministic time and pacing in tests.
func NewBroadcasterWithClock(t Transport, dlog DistributionLog, source QuestionSource, selector *Selector, cadence *Cadence, reporter *Reporter, cfg BroadcasterConfig, clock func() time.Time, sleep func(time.Duration)) *Broadcaster {
	return &Broadcaster{
		transport: t,
		dlog:      dlog,
		source:    source,
		selector:  selector,
		cadence:   cadence,
		reporter:  reporter,
		cfg:       cfg,
		clock:     clock,
		sleep:     sleep,
	}
}

// RunCycle evaluates the cadence for the current hour and sends whatever it
// calls for. A nil result means the cycle was gated off or skipped.
func (b *Broadcaster) RunCycle(ctx context.Context) (*BatchResult, error) {
	now := b.clock()
	decision := b.cadence.Evaluate(now)

	if decision.Special {
		b.sendSpecialOnce(ctx)
		return nil, nil
	}
	if !decision.Send {
		return nil, nil
	}
	return b.SendBatch(ctx, decision.BatchSize, SeedHourly, decision.Closing)
}

// SendBatch selects and delivers one batch. When withReport is set, the
// day's report goes out after the items and before the closing message.
func (b *Broadcaster) SendBatch(ctx context.Context, size int, mode SeedMode, withReport bool) (*BatchResult, error) {
	now := b.clock()

	pool, err := b.source.Questions(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrDataEmpty) {
			log.Printf("question pool empty, skipping cycle")
			return nil, nil
		}
		return nil, fmt.Errorf("load question pool: %w", err)
	}

	exclude, err := b.dlog.Recent(ctx, now.Add(-b.cfg.Lookback))
	if err != nil {
		// Availability wins: an unreadable lookback degrades to no exclusion.
		log.Printf("recent-usage lookup failed, sending without exclusion: %v", err)
		exclude = nil
	}

	batch := b.selector.Select(pool, exclude, size, mode)
	if len(batch) == 0 {
		return nil, nil
	}

	// The greeting must be acknowledged before the first question goes out.
	if _, err := b.transport.SendAnnouncement(ctx, b.greeting(now)); err != nil {
		log.Printf("greeting delivery failed: %v", err)
	}

	result := &BatchResult{Requested: len(batch)}
	for i, q := range batch {
		if i > 0 {
			b.sleep(b.cfg.Pace)
		}
		id, err := b.transport.SendQuizItem(ctx, b.quizItem(q))
		result.Items = append(result.Items, DeliveryResult{QuestionID: q.ID, InstanceID: id, Err: err})
		if err != nil {
			log.Printf("item delivery failed for question %s: %v", q.ID, err)
			continue
		}
		inst := domain.Instance{
			ID:           id,
			QuestionID:   q.ID,
			QuestionText: q.Text,
			Topic:        q.Topic,
			Subject:      q.Subject,
			SentAt:       now,
		}
		if err := b.dlog.RecordSent(ctx, inst); err != nil {
			log.Printf("record instance %s: %v", id, err)
		}
	}

	if withReport {
		report, err := b.reporter.Build(ctx, now)
		if err != nil {
			log.Printf("daily report failed: %v", err)
		} else {
			if _, err := b.transport.SendAnnouncement(ctx, RenderReport(report)); err != nil {
				log.Printf("report delivery failed: %v", err)
			}
		}
	}

	if _, err := b.transport.SendAnnouncement(ctx, b.closing()); err != nil {
		log.Printf("closing delivery failed: %v", err)
	}
	return result, nil
}

// RunScheduler ticks at interval until ctx is canceled.
func (b *Broadcaster) RunScheduler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := b.RunCycle(ctx)
			if err != nil {
				log.Printf("broadcast cycle failed: %v", err)
				continue
			}
			if result != nil {
				log.Printf("broadcast cycle: %d requested, %d failed", result.Requested, result.Failed())
			}
		}
	}
}

// sendSpecialOnce fires the blackout-date message at most once per process.
func (b *Broadcaster) sendSpecialOnce(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.specialSent {
		return
	}
	if _, err := b.transport.SendAnnouncement(ctx, specialMessage); err != nil {
		log.Printf("special message delivery failed: %v", err)
		return
	}
	b.specialSent = true
}

func (b *Broadcaster) closing() string {
	if b.cfg.ShareURL == "" {
		return closingMessage
	}
	return closingMessage + "\n" + b.cfg.ShareURL
}

func (b *Broadcaster) greeting(now time.Time) string {
	var shift string
	switch hour := now.Hour(); {
	case hour >= 6 && hour < 13:
		shift = "🌅 Morning shift"
	case hour >= 13 && hour < 20:
		shift = "☀️ Afternoon shift"
	default:
		shift = "🌙 Night shift"
	}

	header := shift
	if !b.cfg.ExamDate.IsZero() {
		days := int(b.cfg.ExamDate.Sub(now).Hours() / 24)
		if days >= 0 {
			header = fmt.Sprintf("⏳ COUNTDOWN: only %d days left! 🎯\n\n%s", days, shift)
		}
	}
	return header + "\n--------------------------------"
}

func (b *Broadcaster) quizItem(q domain.Question) domain.QuizItem {
	icon := "📜"
	topic := strings.ToLower(q.Topic)
	for key, candidate := range b.cfg.TopicIcons {
		if strings.Contains(topic, strings.ToLower(key)) {
			icon = candidate
			break
		}
	}
	return domain.QuizItem{
		QuestionID:   q.ID,
		Title:        fmt.Sprintf("%s %s", icon, q.Topic),
		Text:         q.Text,
		Options:      q.Options,
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
		Anonymous:    b.cfg.Anonymous,
	}
}
