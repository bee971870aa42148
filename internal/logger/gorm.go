package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger implements gorm's logger.Interface on top of zap. Queries
// slower than SlowThreshold are logged at warn level.
type GormLogger struct {
	logger *zap.Logger
	// LogLevel is the minimum gorm log level to record.
	LogLevel gormlogger.LogLevel
	// SlowThreshold marks queries slower than this as slow. Zero disables it.
	SlowThreshold time.Duration
	// IgnoreRecordNotFoundError skips gorm.ErrRecordNotFound in Trace.
	IgnoreRecordNotFoundError bool
}

// NewGormLogger creates a GormLogger writing through the given zap logger.
func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{
		logger:                    zapLogger,
		LogLevel:                  level,
		SlowThreshold:             slowThreshold,
		IgnoreRecordNotFoundError: true,
	}
}

// LogMode returns a copy of the logger with the given level.
func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *g
	newLogger.LogLevel = level
	return &newLogger
}

func (g *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if g.LogLevel < gormlogger.Info {
		return
	}
	g.logger.Sugar().Infof(msg, data...)
}

func (g *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if g.LogLevel < gormlogger.Warn {
		return
	}
	g.logger.Sugar().Warnf(msg, data...)
}

func (g *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if g.LogLevel < gormlogger.Error {
		return
	}
	g.logger.Sugar().Errorf(msg, data...)
}

// Trace logs the SQL, elapsed time and affected rows of each query.
func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && (!g.IgnoreRecordNotFoundError || !errors.Is(err, gorm.ErrRecordNotFound)) {
		g.logger.Error("gorm query error",
			zap.Error(err),
			zap.Duration("elapsed", elapsed),
			zap.String("sql", sql),
			zap.Int64("rows", rows),
		)
		return
	}

	if g.SlowThreshold != 0 && elapsed > g.SlowThreshold {
		g.logger.Warn("gorm slow query",
			zap.Duration("elapsed", elapsed),
			zap.String("sql", sql),
			zap.Int64("rows", rows),
		)
		return
	}

	if g.LogLevel >= gormlogger.Info {
		g.logger.Info("gorm query",
			zap.Duration("elapsed", elapsed),
			zap.String("sql", sql),
			zap.Int64("rows", rows),
		)
	}
}
