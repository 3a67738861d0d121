package db

import (
	"fmt"
	"time"

	"studynotes/internal/auth"
	"studynotes/internal/study"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres pool. Driver errors such as unique violations
// are translated into gorm sentinel errors.
func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if log != nil {
		log.Info("database connected")
	}
	return gdb, nil
}

// Models lists every table the service owns, in dependency order.
func Models() []any {
	return []any{
		&auth.User{},
		&study.Category{},
		&study.Note{},
	}
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	// Reads are always scoped by owner.
	stmts := []string{
		`create index if not exists idx_categories_user on categories(user_id, id);`,
		`create index if not exists idx_notes_user on notes(user_id, id);`,
		`create index if not exists idx_notes_user_updated on notes(user_id, updated_at desc);`,
		`create index if not exists idx_notes_category on notes(category_id);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
