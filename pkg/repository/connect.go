package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"moul.io/zapgorm2"

	"droscher.com/BeerCritic/configs"
	"droscher.com/BeerCritic/pkg/model"
)

type Repository struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

const (
	maxIdleTime = 5 * time.Minute
	maxLifetime = time.Hour
)

// Store is everything a request can read or write.
type Store interface {
	BeerRepository
	ReviewRepository
	CommentRepository
	UserRepository
}

// UnitOfWork runs fn against a Store bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	Store
	InTransaction(ctx context.Context, fn func(store Store) error) error
}

func Open(conf *configs.Config, logger *zap.Logger) (*Repository, error) {
	gormLogger := zapgorm2.New(logger)
	gormLogger.SetAsDefault()

	gormConfig := &gorm.Config{Logger: gormLogger, TranslateError: true}

	var dialector gorm.Dialector

	switch conf.DB.Driver {
	case "sqlite":
		dialector = sqlite.Open(conf.DB.Path)
	default:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
			conf.DB.Host, conf.DB.User, conf.DB.Password, conf.DB.Database, conf.DB.Port)
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(conf.DB.MaxIdleConnections)
	sqlDB.SetMaxOpenConns(conf.DB.MaxOpenConnections)
	sqlDB.SetConnMaxIdleTime(maxIdleTime)
	sqlDB.SetConnMaxLifetime(maxLifetime)

	return &Repository{DB: db, Logger: logger}, err
}

func (r *Repository) Close() {
	sqlDB, err := r.DB.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

func (r *Repository) Migrate() error {
	return r.DB.AutoMigrate(&model.User{}, &model.Beer{}, &model.Review{}, &model.Comment{})
}

func (r *Repository) InTransaction(ctx context.Context, fn func(store Store) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{DB: tx, Logger: r.Logger})
	})
}
