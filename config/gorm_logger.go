package config

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// GormLogger routes gorm's SQL trace through the standard logger.
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger(level gormLogger.LogLevel) gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

// ParseLogLevel maps DB_LOG_LEVEL values onto gorm levels. Unknown values mean warn.
func ParseLogLevel(level string) gormLogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormLogger.Silent
	case "error":
		return gormLogger.Error
	case "info":
		return gormLogger.Info
	default:
		return gormLogger.Warn
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	clone := *l
	clone.LogLevel = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	// Missing rows are reported to callers as 404/422, not as SQL failures.
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		sql, rows := fc()
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", utils.FileWithLineNum(), err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		sql, rows := fc()
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", utils.FileWithLineNum(), elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		sql, rows := fc()
		log.Printf("[QUERY] %s | %s | %d rows | %s", utils.FileWithLineNum(), elapsed, rows, sql)
	}
}
