// Package question loads and caches the immutable question pool.
package question

import (
	"context"

	"quizcast/internal/domain"
)

// Loader fetches the raw question pool from a backing store.
type Loader interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// StaticLoader is a simple loader backed by an in-memory slice (useful for tests/demos).
type StaticLoader struct {
	questions []domain.Question
}

func NewStaticLoader(questions []domain.Question) *StaticLoader {
	return &StaticLoader{questions: questions}
}

func (l *StaticLoader) LoadQuestions(context.Context) ([]domain.Question, error) {
	if len(l.questions) == 0 {
		return nil, domain.ErrDataEmpty
	}
	return l.questions, nil
}
