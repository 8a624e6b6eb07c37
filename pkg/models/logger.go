package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

// SlowQueryThreshold is the duration after which a query is logged
// as a warning.
const SlowQueryThreshold = 200 * time.Millisecond

// gormLogger sends all gorm log output to zerolog.
type gormLogger struct {
	logger zerolog.Logger
}

// NewGormLogger returns a gorm logger that writes to the given zerolog logger.
func NewGormLogger(l zerolog.Logger) gorm_logger.Interface {
	return &gormLogger{logger: l.With().Str("component", "gorm").Logger()}
}

// LogMode is a no-op, the level is controlled by zerolog.
func (l *gormLogger) LogMode(gorm_logger.LogLevel) gorm_logger.Interface {
	return l
}

func (l *gormLogger) Info(_ context.Context, s string, args ...interface{}) {
	l.logger.Info().Msgf(s, args...)
}

func (l *gormLogger) Warn(_ context.Context, s string, args ...interface{}) {
	l.logger.Warn().Msgf(s, args...)
}

func (l *gormLogger) Error(_ context.Context, s string, args ...interface{}) {
	l.logger.Error().Msgf(s, args...)
}

// Trace logs every SQL statement at debug level. Failed statements are
// logged as errors unless the failure is a missing record, which is an
// expected outcome for lookups by name.
func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, ErrResourceNotFound) {
		l.logger.Error().Err(err).Str("sql", sql).Int64("rows", rows).Dur("duration", elapsed).Msg("query error")
		return
	}

	if elapsed > SlowQueryThreshold {
		l.logger.Warn().Str("sql", sql).Int64("rows", rows).Dur("duration", elapsed).Msg("slow query")
		return
	}

	l.logger.Debug().Str("sql", sql).Int64("rows", rows).Dur("duration", elapsed).Msg("query")
}
