package db

import (
	"testing"

	"studynotes/internal/auth"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openObserved(t *testing.T) (*gorm.DB, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(zap.New(core)),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrateAndIndexes(gdb))
	logs.TakeAll()
	return gdb, logs
}

func TestGormLogger_NotFoundIsSilent(t *testing.T) {
	gdb, logs := openObserved(t)

	var u auth.User
	err := gdb.Where("email = ?", "zz@x.com").First(&u).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.Zero(t, logs.Len())
}

func TestGormLogger_ErrorOmitsBindValues(t *testing.T) {
	gdb, logs := openObserved(t)

	err := gdb.Exec("select * from missing where email = ?", "zz@x.com").Error
	require.Error(t, err)

	entries := logs.FilterMessage("query failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)

	sql := entries[0].ContextMap()["sql"].(string)
	assert.Contains(t, sql, "email = ?")
	assert.NotContains(t, sql, "zz@x.com")
}

func TestGormLogger_Silent(t *testing.T) {
	gdb, logs := openObserved(t)

	quiet := gdb.Session(&gorm.Session{Logger: gdb.Logger.LogMode(logger.Silent)})
	require.Error(t, quiet.Exec("select * from missing").Error)

	assert.Zero(t, logs.Len())
}
