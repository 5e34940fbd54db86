// Package gormlogger routes gorm's logging through the zerolog global logger.
package gormlogger

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	gormlog "gorm.io/gorm/logger"
)

// slowThreshold marks queries worth a warning.
const slowThreshold = 200 * time.Millisecond

// Adapter implements gorm's logger.Interface on top of zerolog.
type Adapter struct {
	level gormlog.LogLevel
}

// New creates a gorm logger adapter.
func New() *Adapter {
	return &Adapter{level: gormlog.Warn}
}

// LogMode sets the gorm log level.
func (a *Adapter) LogMode(level gormlog.LogLevel) gormlog.Interface {
	out := *a
	out.level = level

	return &out
}

// Info logs informational gorm messages.
func (a *Adapter) Info(_ context.Context, msg string, args ...interface{}) {
	if a.level >= gormlog.Info {
		log.Info().Msgf(msg, args...)
	}
}

// Warn logs gorm warnings.
func (a *Adapter) Warn(_ context.Context, msg string, args ...interface{}) {
	if a.level >= gormlog.Warn {
		log.Warn().Msgf(msg, args...)
	}
}

// Error logs gorm errors.
func (a *Adapter) Error(_ context.Context, msg string, args ...interface{}) {
	if a.level >= gormlog.Error {
		log.Error().Msgf(msg, args...)
	}
}

// Trace logs finished queries; slow ones and failures get their own levels.
func (a *Adapter) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if a.level <= gormlog.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && a.level >= gormlog.Error:
		log.Error().Err(err).Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("query failed")
	case elapsed > slowThreshold && a.level >= gormlog.Warn:
		log.Warn().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("slow query")
	case a.level >= gormlog.Info:
		log.Trace().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("query")
	}
}
