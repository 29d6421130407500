package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	// Additive only: reruns against an already-upgraded schema are no-ops.
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(addSubjectSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`ALTER TABLE instances DROP COLUMN IF EXISTS subject`)
			return err
		},
	)
}
