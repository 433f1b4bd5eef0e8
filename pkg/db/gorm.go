package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewGormDB opens the run-history database. dbType selects "mysql" or
// "sqlite"; anything else (including empty) defaults to SQLite so local
// development needs no setup.
func NewGormDB(dbType, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dbType {
	case "mysql":
		if dsn == "" {
			dsn = "root:@tcp(127.0.0.1:3306)/marketing_automation?charset=utf8mb4&parseTime=True&loc=Local"
			log.Println("Using default MySQL DSN:", dsn)
		}
		dialector = mysql.Open(dsn)
	default:
		if dsn == "" {
			dsn = "marketing.db"
			log.Println("Using default SQLite DSN:", dsn)
		}
		dialector = sqlite.Open(dsn)
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	gormDB, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return gormDB, nil
}

// AutoMigrate performs auto-migration for the given GORM models.
func AutoMigrate(gormDB *gorm.DB, models ...interface{}) error {
	if err := gormDB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}
