// Package postgres holds the bun-backed persistent stores.
package postgres

import (
	"database/sql"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// InstanceRow is one distributed question instance.
type InstanceRow struct {
	bun.BaseModel `bun:"table:instances,alias:i"`

	ID           string    `bun:"id,pk"`
	QuestionID   string    `bun:"question_id,notnull"`
	QuestionText string    `bun:"question_text"`
	Topic        string    `bun:"topic,notnull"`
	Subject      string    `bun:"subject"`
	SentAt       time.Time `bun:"sent_at,notnull"`
	SendDate     time.Time `bun:"send_date,notnull,type:date"`
	CorrectCount int       `bun:"correct_count,notnull"`
	TotalCount   int       `bun:"total_count,notnull"`
}

// VoteRow is one attributed answer. The composite primary key is the
// at-most-one-vote concurrency primitive.
type VoteRow struct {
	bun.BaseModel `bun:"table:votes,alias:v"`

	ParticipantID string `bun:"participant_id,pk"`
	InstanceID    string `bun:"instance_id,pk"`
	IsCorrect     bool   `bun:"is_correct,notnull"`
}

// RankingRow is one participant's cumulative score.
type RankingRow struct {
	bun.BaseModel `bun:"table:ranking,alias:r"`

	ParticipantID string `bun:"participant_id,pk"`
	DisplayName   string `bun:"display_name,notnull"`
	Points        int    `bun:"points,notnull"`
}

// Open builds a bun DB over the pgdriver connector.
func Open(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}
