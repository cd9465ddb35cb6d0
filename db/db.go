package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/4GeeksAcademy/Place-Between-Daniel/config"
	"github.com/4GeeksAcademy/Place-Between-Daniel/models"
	"github.com/4GeeksAcademy/Place-Between-Daniel/utils"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens postgres with retries.
func Connect(cfg config.DBConfig) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 1
	}

	var err error
	for i := 0; i < retries; i++ {
		var conn *gorm.DB
		conn, err = Open(postgres.Open(cfg.DSN()), gormLogger)
		if err == nil {
			sqlDB, dbErr := conn.DB()
			if dbErr == nil {
				if dbErr = sqlDB.Ping(); dbErr == nil {
					sqlDB.SetMaxIdleConns(10)
					sqlDB.SetMaxOpenConns(100)
					sqlDB.SetConnMaxLifetime(time.Hour)

					utils.Logger.Info("database_connected",
						zap.String("host", cfg.Host),
						zap.String("port", cfg.Port))
					return conn, nil
				}
			}
			err = dbErr
		}

		utils.Logger.Warn("database_connect_retry",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", retries),
			zap.Error(err))
		if i < retries-1 {
			time.Sleep(2 * time.Second)
		}
	}

	return nil, fmt.Errorf("connect to database after %d attempts: %w", retries, err)
}

// Open applies the gorm settings every connection uses. Storage errors are
// translated so callers can match gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector, gormLogger logger.Interface) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		TranslateError: true,
	})
}

func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&models.User{},
		&models.DailySession{},
		&models.ActivityCategory{},
		&models.Activity{},
		&models.ActivityCompletion{},
		&models.Emotion{},
		&models.EmotionCheckin{},
		&models.Goal{},
		&models.DailySessionGoal{},
		&models.GoalProgress{},
		&models.Reminder{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
