package question

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"quizcast/internal/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestFileLoaderReadsQuestions(t *testing.T) {
	path := writeFile(t, `[
		{"text":"What is 2 + 2?","options":["3","4"],"correctIndex":1,"topic":"logic","explanation":"count it"}
	]`)

	questions, err := NewFileLoader(path).LoadQuestions(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(questions) != 1 || questions[0].Topic != "logic" || questions[0].CorrectIndex != 1 {
		t.Fatalf("unexpected questions: %+v", questions)
	}
}

func TestFileLoaderMissingFile(t *testing.T) {
	_, err := NewFileLoader(filepath.Join(t.TempDir(), "missing.json")).LoadQuestions(context.Background())
	if !errors.Is(err, domain.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestFileLoaderCorruptFile(t *testing.T) {
	path := writeFile(t, `{not json`)
	_, err := NewFileLoader(path).LoadQuestions(context.Background())
	if !errors.Is(err, domain.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestFileLoaderEmptyPool(t *testing.T) {
	path := writeFile(t, `[]`)
	_, err := NewFileLoader(path).LoadQuestions(context.Background())
	if !errors.Is(err, domain.ErrDataEmpty) {
		t.Fatalf("expected ErrDataEmpty, got %v", err)
	}
}
