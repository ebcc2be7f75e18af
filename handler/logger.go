package handler

import (
	"fmt"
	"io"
	"log/slog"
)

// Logger is the logging interface used by the handler and the commands.
type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...any)
	Info(msg string)
	Infof(format string, args ...any)
	Warn(msg string)
	Warnf(format string, args ...any)
	Error(msg string)
	Errorf(format string, args ...any)
}

var _ Logger = (*SlogLogger)(nil)

// SlogLogger writes text records through log/slog.
type SlogLogger struct {
	logger *slog.Logger
}

// NewLogger returns a logger writing to w. Debug records are only written
// when verbose is set.
func NewLogger(w io.Writer, verbose bool) *SlogLogger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return &SlogLogger{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
	}
}

// With returns a logger that adds the attributes to every record.
func (l *SlogLogger) With(args ...any) *SlogLogger {
	return &SlogLogger{logger: l.logger.With(args...)}
}

func (l *SlogLogger) Debug(msg string) { l.logger.Debug(msg) }

func (l *SlogLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Info(msg string) { l.logger.Info(msg) }

func (l *SlogLogger) Infof(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Warn(msg string) { l.logger.Warn(msg) }

func (l *SlogLogger) Warnf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Error(msg string) { l.logger.Error(msg) }

func (l *SlogLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}
