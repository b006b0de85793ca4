package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// slowQuery is the duration after which a query is logged at warn level.
const slowQuery = 200 * time.Millisecond

type logger struct {
	Logger zerolog.Logger
}

// NewLogger returns a gorm logger writing to the zerolog logger passed in.
func NewLogger(l zerolog.Logger) gorm_logger.Interface {
	return &logger{Logger: l}
}

func (l *logger) LogMode(gorm_logger.LogLevel) gorm_logger.Interface {
	return l
}

func (l *logger) Info(_ context.Context, s string, args ...any) {
	l.Logger.Info().Msgf(s, args...)
}

func (l *logger) Warn(_ context.Context, s string, args ...any) {
	l.Logger.Warn().Msgf(s, args...)
}

func (l *logger) Error(_ context.Context, s string, args ...any) {
	l.Logger.Error().Msgf(s, args...)
}

func (l *logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	event := l.Logger.Debug()
	switch {
	case err != nil && !errors.Is(err, ErrResourceNotFound) && !errors.Is(err, gorm_logger.ErrRecordNotFound):
		event = l.Logger.Error().Err(err)
	case elapsed > slowQuery:
		event = l.Logger.Warn()
	}

	event.Str("sql", sql).Int64("rows", rows).Dur("duration", elapsed).Msg("[GORM] query")
}
