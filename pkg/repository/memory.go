package repository

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"moul.io/zapgorm2"
)

// OpenInMemory returns a migrated, private in-memory sqlite repository.
// It holds a single connection: callers must not touch the outer repository
// from inside InTransaction.
func OpenInMemory(logger *zap.Logger) (*Repository, error) {
	gormLogger := zapgorm2.New(logger)

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger, TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(1)

	repo := &Repository{DB: db, Logger: logger}
	if err := repo.Migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}
