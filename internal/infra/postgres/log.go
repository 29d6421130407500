package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"quizcast/internal/domain"
)

// DistributionLog is the bun-backed implementation of app.DistributionLog.
type DistributionLog struct {
	db *bun.DB
}

func NewDistributionLog(db *bun.DB) *DistributionLog {
	return &DistributionLog{db: db}
}

func (l *DistributionLog) RecordSent(ctx context.Context, inst domain.Instance) error {
	row := &InstanceRow{
		ID:           inst.ID,
		QuestionID:   inst.QuestionID,
		QuestionText: inst.QuestionText,
		Topic:        inst.Topic,
		Subject:      inst.Subject,
		SentAt:       inst.SentAt,
		SendDate:     truncateToDay(inst.SentAt),
		CorrectCount: inst.CorrectCount,
		TotalCount:   inst.TotalCount,
	}
	if _, err := l.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("record instance %s: %w", inst.ID, err)
	}
	return nil
}

func (l *DistributionLog) MarkOutcome(ctx context.Context, instanceID string, correct, total int) error {
	res, err := l.db.NewUpdate().
		Model((*InstanceRow)(nil)).
		Set("correct_count = ?", correct).
		Set("total_count = ?", total).
		Where("id = ?", instanceID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("mark outcome %s: %w", instanceID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUnknownInstance
	}
	return nil
}

func (l *DistributionLog) Recent(ctx context.Context, since time.Time) (map[string]struct{}, error) {
	var ids []string
	err := l.db.NewSelect().
		Model((*InstanceRow)(nil)).
		Column("question_id").
		Where("sent_at >= ?", since).
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("recent instances: %w", err)
	}
	recent := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		recent[id] = struct{}{}
	}
	return recent, nil
}

func (l *DistributionLog) Aggregate(ctx context.Context, date time.Time) ([]domain.TopicTally, error) {
	var tallies []domain.TopicTally
	err := l.db.NewSelect().
		Model((*InstanceRow)(nil)).
		ColumnExpr("topic").
		ColumnExpr("COALESCE(SUM(correct_count), 0) AS correct").
		ColumnExpr("COALESCE(SUM(total_count), 0) AS total").
		Where("send_date = ?", truncateToDay(date)).
		GroupExpr("topic").
		OrderExpr("topic ASC").
		Scan(ctx, &tallies)
	if err != nil {
		return nil, fmt.Errorf("aggregate instances: %w", err)
	}
	return tallies, nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
