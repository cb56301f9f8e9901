package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/pkg/envutil"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
)

type DatabaseService interface {
	DB() *gorm.DB
	Close() error
}

type databaseService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewDatabaseService opens the configured database and runs migrations.
// DB_DRIVER selects the engine: "postgres" (default) or "sqlite".
func NewDatabaseService(log *logger.Logger) (DatabaseService, error) {
	driver := envutil.GetEnv("DB_DRIVER", "postgres", log)

	var (
		db  *gorm.DB
		err error
	)
	cfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	switch driver {
	case "sqlite":
		path := envutil.GetEnv("SQLITE_PATH", "levelpath.db", log)
		db, err = gorm.Open(sqlite.Open(path), cfg)
	default:
		host := envutil.GetEnv("POSTGRES_HOST", "localhost", log)
		port := envutil.GetEnv("POSTGRES_PORT", "5432", log)
		user := envutil.GetEnv("POSTGRES_USER", "postgres", log)
		pass := envutil.GetEnv("POSTGRES_PASSWORD", "postgres", log)
		name := envutil.GetEnv("POSTGRES_NAME", "levelpath", log)
		sslmode := envutil.GetEnv("POSTGRES_SSLMODE", "disable", log)
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, pass, name, sslmode,
		)
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(envutil.GetEnvAsInt("DB_MAX_OPEN_CONNS", 25, log))
		sqlDB.SetMaxIdleConns(envutil.GetEnvAsInt("DB_MAX_IDLE_CONNS", 5, log))
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := AutoMigrateAll(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("database ready", "driver", driver)
	return &databaseService{db: db, log: log}, nil
}

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Mission{},
		&domain.UserMission{},
		&domain.DailyMission{},
		&domain.UserBadge{},
		&domain.Module{},
		&domain.ModuleProgress{},
		&domain.VideoWatch{},
		&domain.Quiz{},
		&domain.QuizAttempt{},
	)
}

func (s *databaseService) DB() *gorm.DB { return s.db }

func (s *databaseService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
