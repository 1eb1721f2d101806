package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Niiaks/pixcode/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/nrzerolog"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

const timeFormat = "2006-01-02 15:04:05"

type LoggerService struct {
	nrApp *newrelic.Application
}

func New(c *config.ObservabilityConfig) *LoggerService {
	service := &LoggerService{}

	if c.NewRelic.LicenseKey == "" {
		return service
	}

	configurations := []newrelic.ConfigOption{
		newrelic.ConfigAppName(c.ServiceName),
		newrelic.ConfigLicense(c.NewRelic.LicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(c.NewRelic.AppLogForwardingEnabled),
		newrelic.ConfigDistributedTracerEnabled(c.NewRelic.DistributedTracingEnabled),
	}

	if c.NewRelic.DebugLogging {
		configurations = append(configurations, newrelic.ConfigDebugLogger(os.Stdout))
	}

	app, err := newrelic.NewApplication(configurations...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize New Relic: %v\n", err)
		return service
	}

	service.nrApp = app
	return service
}

// GetApplication returns the New Relic application instance, nil when disabled.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	if ls == nil {
		return nil
	}
	return ls.nrApp
}

func (ls *LoggerService) Shutdown() {
	if ls.nrApp != nil {
		ls.nrApp.Shutdown(10 * time.Second)
	}
}

// Level maps the configured level name onto zerolog, defaulting to info.
func Level(cfg *config.ObservabilityConfig) zerolog.Level {
	level, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// NewLoggerWithService creates the application logger writing to stdout.
func NewLoggerWithService(cfg *config.ObservabilityConfig, loggerService *LoggerService) zerolog.Logger {
	return NewLogger(cfg, loggerService, os.Stdout)
}

// NewLogger creates the application logger writing to out. Production with
// json format writes JSON lines; everything else uses the console writer.
func NewLogger(cfg *config.ObservabilityConfig, loggerService *LoggerService, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = timeFormat
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var baseLogger zerolog.Logger
	if cfg.IsProduction() && cfg.Logging.Format == "json" {
		baseLogger = zerolog.New(out)
	} else {
		baseLogger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat})
	}

	if cfg.IsProduction() && loggerService.GetApplication() != nil {
		baseLogger = baseLogger.Hook(nrzerolog.NewRelicHook{App: loggerService.nrApp})
	}

	logger := baseLogger.
		Level(Level(cfg)).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Logger()

	// Include stack traces for errors in development
	if !cfg.IsProduction() {
		logger = logger.With().Stack().Logger()
	}

	return logger
}

// WithTraceContext adds New Relic transaction context to logger
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}

	metadata := txn.GetTraceMetadata()

	return logger.With().
		Str("trace.id", metadata.TraceID).
		Str("span.id", metadata.SpanID).
		Logger()
}

// NewPgxLogger creates the database component logger.
func NewPgxLogger(base zerolog.Logger) zerolog.Logger {
	return base.With().Str("component", "database").Logger()
}

// GetPgxTraceLogLevel converts zerolog level to pgx tracelog level
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return tracelog.LogLevelTrace
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}

// NewPgxTracer routes pgx query logs into log. Queries taking at least
// slowQuery are raised to warn and flagged; zero disables the check.
func NewPgxTracer(log zerolog.Logger, level zerolog.Level, slowQuery time.Duration) *tracelog.TraceLog {
	return &tracelog.TraceLog{
		Logger: tracelog.LoggerFunc(func(ctx context.Context, lvl tracelog.LogLevel, msg string, data map[string]any) {
			slow := false
			if d, ok := data["time"].(time.Duration); ok && slowQuery > 0 && d >= slowQuery {
				slow = true
				if lvl > tracelog.LogLevelWarn {
					lvl = tracelog.LogLevelWarn
				}
			}

			var event *zerolog.Event
			switch lvl {
			case tracelog.LogLevelError:
				event = log.Error()
			case tracelog.LogLevelWarn:
				event = log.Warn()
			case tracelog.LogLevelInfo:
				event = log.Info()
			default:
				event = log.Debug()
			}
			if slow {
				event = event.Bool("slow_query", true)
			}
			event.Fields(data).Msg(msg)
		}),
		LogLevel: GetPgxTraceLogLevel(level),
	}
}
