package middleware

import (
	"context"
	"net/http"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/Niiaks/pixcode/internal/logger"
	"github.com/Niiaks/pixcode/internal/server"
)

const loggerContextKey contextKey = "logger"

type ContextEnhancer struct {
	Server *server.Server
}

func NewContextEnhancer(srv *server.Server) *ContextEnhancer {
	return &ContextEnhancer{
		Server: srv,
	}
}

// EnhanceContext stores a request-scoped logger carrying request id, client
// and route fields plus New Relic trace ids when a transaction is active.
func (ce *ContextEnhancer) EnhanceContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contextLogger := ce.Server.Logger.With().
			Str("request_id", GetRequestID(r)).
			Str("ip", r.RemoteAddr).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()

		if txn := newrelic.FromContext(r.Context()); txn != nil {
			contextLogger = logger.WithTraceContext(contextLogger, txn)
		}

		next.ServeHTTP(w, r.WithContext(WithLogger(r.Context(), &contextLogger)))
	})
}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, l)
}

// GetLogger retrieves the logger from the context.
func GetLogger(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*zerolog.Logger); ok {
		return logger
	}
	logger := zerolog.Nop()
	return &logger
}
