package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"quizcast/internal/domain"
)

// RankingStore reads standings from the ranking table, the source of truth
// behind any read-model mirror.
type RankingStore struct {
	db *bun.DB
}

func NewRankingStore(db *bun.DB) *RankingStore {
	return &RankingStore{db: db}
}

func (s *RankingStore) TopN(ctx context.Context, n int) ([]domain.RankingEntry, error) {
	var rows []RankingRow
	err := s.db.NewSelect().
		Model(&rows).
		OrderExpr("points DESC, display_name ASC").
		Limit(n).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("top ranking: %w", err)
	}
	entries := make([]domain.RankingEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.RankingEntry{
			ParticipantID: row.ParticipantID,
			DisplayName:   row.DisplayName,
			Points:        row.Points,
		})
	}
	return entries, nil
}
