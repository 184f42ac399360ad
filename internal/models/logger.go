package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// dbLogger forwards gorm log output to zerolog.
type dbLogger struct {
	log zerolog.Logger
}

// LogMode is a no-op, the level is controlled by zerolog's global level.
func (l *dbLogger) LogMode(gorm_logger.LogLevel) gorm_logger.Interface {
	return l
}

func (l *dbLogger) Info(_ context.Context, s string, args ...interface{}) {
	l.log.Info().Msgf(s, args...)
}

func (l *dbLogger) Warn(_ context.Context, s string, args ...interface{}) {
	l.log.Warn().Msgf(s, args...)
}

func (l *dbLogger) Error(_ context.Context, s string, args ...interface{}) {
	l.log.Error().Msgf(s, args...)
}

func (l *dbLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, rows := fc()

	// Not found is reported to the client, not an error worth logging
	if err != nil && !errors.Is(err, ErrResourceNotFound) {
		l.log.Error().Err(err).Str("sql", sql).Msg("query failed")
		return
	}

	l.log.Debug().
		Str("sql", sql).
		Int64("rows", rows).
		Dur("duration", time.Since(begin)).
		Msg("query")
}
