package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Niiaks/pixcode/internal/server"
)

type Global struct {
	s *server.Server
}

func NewGlobal(s *server.Server) *Global {
	return &Global{
		s: s,
	}
}

// RequestLogger writes one line per request once the handler returns. 5xx
// responses log at error, 4xx at warn. Must run after EnhanceContext so the
// request-scoped logger is available.
func (g *Global) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log := GetLogger(r.Context())
		if log.GetLevel() == zerolog.Disabled {
			log = g.s.Logger
		}

		var event *zerolog.Event
		switch {
		case rec.status >= http.StatusInternalServerError:
			event = log.Error()
		case rec.status >= http.StatusBadRequest:
			event = log.Warn()
		default:
			event = log.Info()
		}

		if pattern := routePattern(r); pattern != "" {
			event = event.Str("route", pattern)
		}

		event.
			Int("status", rec.status).
			Int("bytes", rec.bytes).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}

// statusRecorder captures the status code and body size.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n
	return n, err
}

func (rec *statusRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}
