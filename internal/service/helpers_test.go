package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arizona-prime/community-api/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// openTestDB opens an isolated in-memory database migrated with the full
// schema. Each test passes its own name so state never leaks between tests.
func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Staff{},
		&models.Punishment{},
		&models.InactiveRequest{},
		&models.ActivityLog{},
		&models.Application{},
		&models.Leadership{},
	))

	return db
}

type recorderStub struct {
	entries []ActivityEntry
}

func (r *recorderStub) Record(ctx context.Context, entry ActivityEntry) {
	r.entries = append(r.entries, entry)
}

func (r *recorderStub) lastAction() string {
	if len(r.entries) == 0 {
		return ""
	}
	return r.entries[len(r.entries)-1].Action
}
