package model

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"healthmate/backend/common"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenGorm opens the relational backend: MySQL when dsn is set, otherwise
// SQLite at sqlitePath.
func OpenGorm(dsn string, sqlitePath string) (*gorm.DB, error) {
	config := &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
	if dsn != "" {
		common.SysLog("Using MySQL database")
		return gorm.Open(mysql.Open(dsn), config)
	}
	common.SysLog("SQL_DSN not set, using SQLite as database: " + sqlitePath)
	if sqlitePath != ":memory:" {
		if dir := filepath.Dir(sqlitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
	}
	return gorm.Open(sqlite.Open(sqlitePath), config)
}

// InitDB selects the document store when MONGO_URI is configured, otherwise
// the relational store.
func InitDB() (err error) {
	if common.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		repo, err := NewMongoRepository(ctx, common.MongoURI, common.MongoDB)
		if err != nil {
			return err
		}
		Repo = repo
		common.SysLog("Mongo connected", "database", common.MongoDB)
		return nil
	}

	db, err := OpenGorm(common.SQLDSN, common.SQLitePath)
	if err != nil {
		return err
	}
	repo, err := NewGormRepository(db)
	if err != nil {
		return err
	}
	Repo = repo
	common.SysLog("Database initialized successfully.", "backend", repo.Backend())
	return nil
}

func CloseDB() error {
	if Repo == nil {
		return nil
	}
	common.SysLog("Closing database connection.")
	return Repo.Close()
}
