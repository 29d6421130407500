package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(createStatsSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`DROP TABLE IF EXISTS votes; DROP TABLE IF EXISTS ranking; DROP TABLE IF EXISTS instances; DROP TABLE IF EXISTS questions`)
			return err
		},
	)
}
