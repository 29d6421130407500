package app

import (
	"time"

	"quizcast/internal/config"
)

// Decision is the outcome of one cadence evaluation.
type Decision struct {
	// Send reports whether an ordinary batch should go out now.
	Send bool
	// BatchSize is how many questions to send when Send is true.
	BatchSize int
	// Special marks the blackout date: ordinary sends are suppressed in
	// favor of a one-time message (the one-shot guard lives in the caller).
	Special bool
	// Closing marks the final batch of the day, which is followed by a report.
	Closing bool
}

// Cadence decides when and how much to broadcast. Evaluation is pure: same
// input time, same decision, no side effects.
type Cadence struct {
	weekdayBatch int
	weekendBatch int
	weekendHours map[int]struct{}
	activeStart  int
	activeEnd    int
	closingHour  int
	closingBatch int
	blackout     time.Time
}

func NewCadence(cfg config.CadenceConfig) (*Cadence, error) {
	blackout, err := config.Date(cfg.BlackoutDate)
	if err != nil {
		return nil, err
	}
	hours := make(map[int]struct{}, len(cfg.WeekendHours))
	for _, h := range cfg.WeekendHours {
		hours[h] = struct{}{}
	}
	return &Cadence{
		weekdayBatch: cfg.WeekdayBatch,
		weekendBatch: cfg.WeekendBatch,
		weekendHours: hours,
		activeStart:  cfg.ActiveStartHour,
		activeEnd:    cfg.ActiveEndHour,
		closingHour:  cfg.ClosingHour,
		closingBatch: cfg.ClosingBatch,
		blackout:     blackout,
	}, nil
}

// Evaluate applies the policy table to now.
func (c *Cadence) Evaluate(now time.Time) Decision {
	if sameDate(now, c.blackout) {
		return Decision{Special: true}
	}

	hour := now.Hour()
	if hour < c.activeStart || hour > c.activeEnd {
		return Decision{}
	}

	// The closing batch is decoupled from the ordinary weekday/weekend rules.
	if hour == c.closingHour {
		return Decision{Send: true, BatchSize: c.closingBatch, Closing: true}
	}

	if weekend(now.Weekday()) {
		if _, ok := c.weekendHours[hour]; !ok {
			return Decision{}
		}
		return Decision{Send: true, BatchSize: c.weekendBatch}
	}
	return Decision{Send: true, BatchSize: c.weekdayBatch}
}

func weekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

func sameDate(a, b time.Time) bool {
	if b.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
