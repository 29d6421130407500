package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"

	"quizcast/internal/domain"
)

// RankingMirror receives best-effort copies of ranking updates (the redis
// read model). A failing mirror never fails the vote.
type RankingMirror interface {
	SetScore(ctx context.Context, participantID, displayName string, points int) error
}

// AttributedTracker records named votes. The vote insert, the ranking update
// and the instance counter bump share one transaction; the composite primary
// key on votes serializes concurrent votes for the same pair.
type AttributedTracker struct {
	db     *bun.DB
	mirror RankingMirror
}

func NewAttributedTracker(db *bun.DB, mirror RankingMirror) *AttributedTracker {
	return &AttributedTracker{db: db, mirror: mirror}
}

func (t *AttributedTracker) RecordVote(ctx context.Context, vote domain.Vote) (domain.VoteReceipt, error) {
	delta := 0
	if vote.Correct {
		delta = 1
	}
	rank := &RankingRow{
		ParticipantID: vote.ParticipantID,
		DisplayName:   vote.DisplayName,
		Points:        delta,
	}

	err := t.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewInsert().
			Model(&VoteRow{
				ParticipantID: vote.ParticipantID,
				InstanceID:    vote.InstanceID,
				IsCorrect:     vote.Correct,
			}).
			On("CONFLICT DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("insert vote: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrDuplicateVote
		}

		if _, err := tx.NewInsert().
			Model(rank).
			On("CONFLICT (participant_id) DO UPDATE").
			Set("display_name = EXCLUDED.display_name").
			Set("points = r.points + EXCLUDED.points").
			Returning("points").
			Exec(ctx); err != nil {
			return fmt.Errorf("update ranking: %w", err)
		}

		// Counter bump is tolerant: a vote on an instance from a previous
		// process run still scores.
		if _, err := tx.NewUpdate().
			Model((*InstanceRow)(nil)).
			Set("total_count = total_count + 1").
			Set("correct_count = correct_count + ?", delta).
			Where("id = ?", vote.InstanceID).
			Exec(ctx); err != nil {
			return fmt.Errorf("bump instance counters: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.VoteReceipt{}, err
	}

	if t.mirror != nil {
		if err := t.mirror.SetScore(ctx, vote.ParticipantID, vote.DisplayName, rank.Points); err != nil {
			log.Printf("ranking mirror update failed for %s: %v", vote.ParticipantID, err)
		}
	}
	return domain.VoteReceipt{Correct: vote.Correct, Awarded: delta, TotalPoints: rank.Points}, nil
}

// ApplyAggregate folds transport-native poll counts into the log, tolerating
// unknown instances the same way the anonymous tracker does.
func (t *AttributedTracker) ApplyAggregate(ctx context.Context, instanceID string, correct, total int) error {
	res, err := t.db.NewUpdate().
		Model((*InstanceRow)(nil)).
		Set("correct_count = ?", correct).
		Set("total_count = ?", total).
		Where("id = ?", instanceID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("apply aggregate %s: %w", instanceID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		log.Printf("outcome for unknown instance %s ignored", instanceID)
	}
	return nil
}

func (t *AttributedTracker) ParticipantStats(ctx context.Context, participantID string) (domain.ParticipantStats, error) {
	var stats struct {
		Points   int
		Attempts int
	}
	err := t.db.NewSelect().
		Model((*VoteRow)(nil)).
		ColumnExpr("COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0) AS points").
		ColumnExpr("COUNT(*) AS attempts").
		Where("participant_id = ?", participantID).
		Scan(ctx, &stats)
	if err != nil {
		return domain.ParticipantStats{}, fmt.Errorf("participant stats: %w", err)
	}
	return domain.ParticipantStats{Points: stats.Points, Attempts: stats.Attempts}, nil
}
