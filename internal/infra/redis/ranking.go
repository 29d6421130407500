// Package redis holds the ranking read model: a sorted set mirror of the
// persistent ranking table, serving top-N queries without touching postgres.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"quizcast/internal/domain"
)

const (
	scoresKey = "ranking:scores"
	namesKey  = "ranking:names"
)

// RankingStore mirrors cumulative scores into a sorted set.
type RankingStore struct {
	client *redis.Client
}

func NewRankingStore(client *redis.Client) *RankingStore {
	return &RankingStore{client: client}
}

// SetScore overwrites a participant's mirrored score and display name.
func (s *RankingStore) SetScore(ctx context.Context, participantID, displayName string, points int) error {
	pipe := s.client.Pipeline()
	pipe.ZAdd(ctx, scoresKey, redis.Z{Score: float64(points), Member: participantID})
	pipe.HSet(ctx, namesKey, participantID, displayName)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("mirror score for %s: %w", participantID, err)
	}
	return nil
}

func (s *RankingStore) TopN(ctx context.Context, n int) ([]domain.RankingEntry, error) {
	if n <= 0 {
		return nil, nil
	}
	scored, err := s.client.ZRevRangeWithScores(ctx, scoresKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("top ranking: %w", err)
	}
	entries := make([]domain.RankingEntry, 0, len(scored))
	for _, z := range scored {
		id, _ := z.Member.(string)
		name, err := s.client.HGet(ctx, namesKey, id).Result()
		if err != nil && err != redis.Nil {
			return nil, fmt.Errorf("ranking name for %s: %w", id, err)
		}
		entries = append(entries, domain.RankingEntry{
			ParticipantID: id,
			DisplayName:   name,
			Points:        int(z.Score),
		})
	}
	return entries, nil
}
