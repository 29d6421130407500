package app_test

import (
	"testing"
	"time"

	"quizcast/internal/app"
	"quizcast/internal/config"
)

func testCadence(t *testing.T, blackout string) *app.Cadence {
	t.Helper()
	cfg := config.Default().Cadence
	cfg.BlackoutDate = blackout
	cadence, err := app.NewCadence(cfg)
	if err != nil {
		t.Fatalf("new cadence: %v", err)
	}
	return cadence
}

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.Local)
}

func TestCadencePolicyTable(t *testing.T) {
	cadence := testCadence(t, "")

	cases := []struct {
		name    string
		now     time.Time
		send    bool
		size    int
		closing bool
	}{
		// 2026-01-07 is a Wednesday, 2026-01-11 a Sunday.
		{"weekday afternoon", at(2026, time.January, 7, 14), true, 2, false},
		{"weekday early morning suppressed", at(2026, time.January, 7, 5), false, 0, false},
		{"weekday late night suppressed", at(2026, time.January, 7, 23), false, 0, false},
		{"weekend off-hour suppressed", at(2026, time.January, 11, 11), false, 0, false},
		{"weekend scheduled hour", at(2026, time.January, 11, 14), true, 10, false},
		{"closing hour weekday", at(2026, time.January, 7, 22), true, 1, true},
		{"closing hour weekend", at(2026, time.January, 11, 22), true, 1, true},
	}
	for _, tc := range cases {
		d := cadence.Evaluate(tc.now)
		if d.Send != tc.send || d.Closing != tc.closing {
			t.Fatalf("%s: got send=%v closing=%v, want send=%v closing=%v", tc.name, d.Send, d.Closing, tc.send, tc.closing)
		}
		if tc.send && d.BatchSize != tc.size {
			t.Fatalf("%s: got batch %d, want %d", tc.name, d.BatchSize, tc.size)
		}
		if d.Special {
			t.Fatalf("%s: unexpected special decision", tc.name)
		}
	}
}

func TestCadenceBlackoutSuppressesOrdinarySends(t *testing.T) {
	cadence := testCadence(t, "2026-02-25")

	for _, hour := range []int{8, 14, 22} {
		d := cadence.Evaluate(at(2026, time.February, 25, hour))
		if d.Send {
			t.Fatalf("hour %d: ordinary send not suppressed on blackout date", hour)
		}
		if !d.Special {
			t.Fatalf("hour %d: expected special decision on blackout date", hour)
		}
	}

	// The day after behaves normally again.
	d := cadence.Evaluate(at(2026, time.February, 26, 14))
	if !d.Send || d.Special {
		t.Fatalf("day after blackout: got %+v", d)
	}
}

func TestCadenceEvaluationIsPure(t *testing.T) {
	cadence := testCadence(t, "")
	now := at(2026, time.January, 7, 14)
	first := cadence.Evaluate(now)
	second := cadence.Evaluate(now)
	if first != second {
		t.Fatalf("same input produced different decisions: %+v vs %+v", first, second)
	}
}
