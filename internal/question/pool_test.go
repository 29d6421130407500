package question

import (
	"context"
	"testing"
	"time"

	"quizcast/internal/domain"
)

type countingLoader struct {
	Loader
	calls int
}

func (l *countingLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	l.calls++
	return l.Loader.LoadQuestions(ctx)
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			Text:         "What is 2 + 2?",
			Options:      []string{"3", "4", "5"},
			CorrectIndex: 1,
			Topic:        "logic",
		},
		{
			Text:         "Pick the capital of Spain.",
			Options:      []string{"Madrid", "Barcelona"},
			CorrectIndex: 0,
			Topic:        "geography",
		},
	}
}

func TestPoolCaches(t *testing.T) {
	loader := &countingLoader{Loader: NewStaticLoader(sampleQuestions())}
	pool := NewPool(loader, time.Minute)

	if _, err := pool.Questions(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := pool.Questions(context.Background()); err != nil {
		t.Fatalf("load 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestPoolAssignsStableIDs(t *testing.T) {
	first, err := NewPool(NewStaticLoader(sampleQuestions()), time.Minute).Questions(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	second, err := NewPool(NewStaticLoader(sampleQuestions()), time.Minute).Questions(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	for i := range first {
		if first[i].ID == "" {
			t.Fatalf("question %d has no synthetic ID", i)
		}
		// Stable across independent loads, so exclusion survives restarts.
		if first[i].ID != second[i].ID {
			t.Fatalf("question %d got unstable ID: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
	if first[0].ID == first[1].ID {
		t.Fatalf("distinct questions share an ID")
	}
}

func TestPoolDropsMalformedRecords(t *testing.T) {
	raw := sampleQuestions()
	raw = append(raw,
		domain.Question{Text: "one option only", Options: []string{"a"}, Topic: "broken"},
		domain.Question{Text: "index out of range", Options: []string{"a", "b"}, CorrectIndex: 5, Topic: "broken"},
	)

	questions, err := NewPool(NewStaticLoader(raw), time.Minute).Questions(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected malformed records dropped, got %d questions", len(questions))
	}
	for _, q := range questions {
		if q.Topic == "broken" {
			t.Fatalf("malformed record survived normalization: %+v", q)
		}
	}
}

func TestPoolEmptySource(t *testing.T) {
	_, err := NewPool(NewStaticLoader(nil), time.Minute).Questions(context.Background())
	if err != domain.ErrDataEmpty {
		t.Fatalf("expected ErrDataEmpty, got %v", err)
	}
}
