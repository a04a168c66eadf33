package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

const RequestIDHeader = "X-Request-ID"

// New builds the application logger: console output on stdout and, when
// cfg.LogFile is set, warnings and errors as JSON lines in that file.
func New(cfg *config.Config) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	if cfg.LogFile == "" {
		return zerolog.New(console).Level(level).With().Timestamp().Logger(), nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	fileWriter := &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{Writer: f},
		Level:  zerolog.WarnLevel,
	}
	multi := zerolog.MultiLevelWriter(console, fileWriter)

	return zerolog.New(multi).Level(level).With().Timestamp().Logger(), f, nil
}

// Gin logs one line per request and tags it with a request id.
func Gin(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		reqLog := log.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(reqLog.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		event := reqLog.Info()
		switch {
		case status >= 500:
			event = reqLog.Error()
		case status >= 400:
			event = reqLog.Warn()
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// FromContext returns the request-scoped logger stored by Gin.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type gormWriter struct {
	log   zerolog.Logger
	level zerolog.Level
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.WithLevel(w.level).Msgf(format, args...)
}

// Gorm bridges gorm's logger onto zerolog. Slow queries and errors are
// reported at warn level through gorm's own thresholds.
func Gorm(log zerolog.Logger) gormlogger.Interface {
	writer := gormWriter{log: log.With().Str("component", "gorm").Logger(), level: zerolog.WarnLevel}
	if log.GetLevel() <= zerolog.DebugLevel {
		writer.level = zerolog.DebugLevel
	}
	return gormlogger.New(writer, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormLevel(log.GetLevel()),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func gormLevel(level zerolog.Level) gormlogger.LogLevel {
	switch {
	case level <= zerolog.DebugLevel:
		return gormlogger.Info
	case level <= zerolog.WarnLevel:
		return gormlogger.Warn
	case level == zerolog.Disabled:
		return gormlogger.Silent
	default:
		return gormlogger.Error
	}
}
