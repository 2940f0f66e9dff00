package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ketanMehtaa/gymone/internal/model"
	"github.com/ketanMehtaa/gymone/pkg/config"
)

// Open connects to PostgreSQL and configures the connection pool. The
// handle is returned, not stored in a package global, so callers inject it
// into the components that need it and tests can substitute their own.
func Open(cfg *config.Config) (*gorm.DB, error) {
	logLevel := cfg.DB.LogLevel
	if logLevel == 0 {
		logLevel = logger.Warn
	}

	// PreferSimpleProtocol disables implicit prepared statements, which
	// otherwise collide when the pool is shared behind pgbouncer.
	pgConfig := postgres.Config{
		DSN:                  cfg.DB.GetDSN(),
		PreferSimpleProtocol: true,
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// TranslateError turns driver duplicate-key failures into
		// gorm.ErrDuplicatedKey, which the stores rely on for the
		// once-per-day check-in guard.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}

	return db, nil
}

// Migrate creates or updates the table structure for all models, including
// the unique index backing the one-check-in-per-day rule.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.SuperAdmin{},
		&model.Admin{},
		&model.Staff{},
		&model.Gym{},
		&model.Member{},
		&model.Membership{},
		&model.Attendance{},
		&model.Payment{},
	)
}
