package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"dota-stats/internal/config"
	"dota-stats/internal/database"
	"dota-stats/internal/db"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// Epoch is the instant every mock clock starts at.
var Epoch = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

// NewDB opens a migrated SQLite database in the test's temp dir.
func NewDB(t *testing.T) (*sql.DB, *db.Queries) {
	t.Helper()

	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "test.db")}
	sqlDB, err := database.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return sqlDB, db.New(sqlDB)
}

func NewClock() *clock.Mock {
	c := clock.NewMock()
	c.Set(Epoch)
	return c
}
