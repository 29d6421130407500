package migrations

import (
	_ "embed"

	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_create_stats.sql
var createStatsSQL string

//go:embed 0002_add_subject.sql
var addSubjectSQL string

var Migrations = migrate.NewMigrations()
