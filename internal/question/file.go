package question

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"quizcast/internal/domain"
)

// FileLoader reads the pool from a JSON array file.
type FileLoader struct {
	path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

func (l *FileLoader) LoadQuestions(context.Context) ([]domain.Question, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrDataUnavailable, l.path, err)
	}
	var questions []domain.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrDataUnavailable, l.path, err)
	}
	if len(questions) == 0 {
		return nil, domain.ErrDataEmpty
	}
	return questions, nil
}
