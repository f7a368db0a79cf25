// Package stdlogger adapts zerolog to printf style logger interfaces such as gorm's logger.Writer.
package stdlogger

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger forwards printf style calls to zerolog.
type Logger struct {
	zl *zerolog.Logger
}

// New creates a Logger writing to the global zerolog logger.
func New() *Logger {
	return &Logger{zl: &log.Logger}
}

// NewWithLogger creates a Logger writing to zl.
func NewWithLogger(zl zerolog.Logger) *Logger {
	return &Logger{zl: &zl}
}

// Printf logs at debug level. It satisfies gorm.io/gorm/logger.Writer.
func (l *Logger) Printf(format string, v ...interface{}) {
	l.zl.Debug().Str("component", "gorm").Msg(fmt.Sprintf(format, v...))
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

// Warningf logs at warn level.
func (l *Logger) Warningf(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
}
