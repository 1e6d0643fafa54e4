// Package storage 将扫描结果落入本地 SQLite，供事后审计查询
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vaiey22/Sensitive-data-detector/internal/logger"
)

var (
	db   *gorm.DB
	once sync.Once
)

// Options 数据库初始化选项
type Options struct {
	DataDir         string
	FileName        string
	LogLevel        string        // silent, error, warn, info
	MaxOpenConns    int           // SQLite 建议 1
	MaxIdleConns    int           // SQLite 建议 1
	ConnMaxLifetime time.Duration // 建议 1h
	JournalMode     string        // WAL
	Synchronous     string        // NORMAL
	TempStore       string        // MEMORY
}

// Setup 初始化数据库
// 失败返回 error 由调用方决定是否降级为仅 CSV 输出
func Setup(opts Options) error {
	var err error

	once.Do(func() {
		if mkErr := os.MkdirAll(opts.DataDir, 0755); mkErr != nil {
			err = fmt.Errorf("failed to create db dir %s: %w", opts.DataDir, mkErr)
			return
		}

		dbPath := filepath.Join(opts.DataDir, opts.FileName)

		var gormLogLevel gormlogger.LogLevel
		switch strings.ToLower(opts.LogLevel) {
		case "silent":
			gormLogLevel = gormlogger.Silent
		case "error":
			gormLogLevel = gormlogger.Error
		case "info":
			gormLogLevel = gormlogger.Info
		default:
			gormLogLevel = gormlogger.Warn
		}

		gormConfig := &gorm.Config{
			Logger:                 gormlogger.Default.LogMode(gormLogLevel),
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
		}

		dbConn, openErr := gorm.Open(sqlite.Open(dbPath), gormConfig)
		if openErr != nil {
			err = fmt.Errorf("failed to open sqlite %s: %w", dbPath, openErr)
			return
		}

		sqlDB, sqlErr := dbConn.DB()
		if sqlErr != nil {
			err = fmt.Errorf("failed to get sql.DB: %w", sqlErr)
			return
		}

		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

		// Journal/同步模式在连接级生效，MaxOpenConns=1 时执行一次即可
		pragmas := []string{
			fmt.Sprintf("PRAGMA journal_mode = %s;", opts.JournalMode),
			fmt.Sprintf("PRAGMA synchronous = %s;", opts.Synchronous),
			fmt.Sprintf("PRAGMA temp_store = %s;", opts.TempStore),
		}
		for _, p := range pragmas {
			if execErr := dbConn.Exec(p).Error; execErr != nil {
				err = fmt.Errorf("failed to exec pragma %s: %w", p, execErr)
				return
			}
		}

		if migErr := dbConn.AutoMigrate(&ScanRun{}, &ScanRecord{}); migErr != nil {
			err = fmt.Errorf("failed to migrate schema: %w", migErr)
			return
		}

		db = dbConn

		logger.Info("数据库初始化完成",
			"path", dbPath,
			"journal_mode", opts.JournalMode,
		)
	})

	return err
}

// Ready 数据库是否可用
func Ready() bool {
	return db != nil
}

// DB 返回数据库句柄，未初始化时为 nil
func DB() *gorm.DB {
	return db
}
