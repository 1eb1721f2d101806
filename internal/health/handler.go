package health

import (
	"context"
	"net/http"
	"time"

	"github.com/Niiaks/pixcode/internal/config"
	"github.com/Niiaks/pixcode/internal/middleware"
	"github.com/Niiaks/pixcode/internal/response"
)

// Pinger is satisfied by *database.Database and *redis.Client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	cfg      config.HealthChecksConfig
	checkers map[string]Pinger
}

func NewHealthHandler(cfg config.HealthChecksConfig, checkers map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		cfg:      cfg,
		checkers: checkers,
	}
}

type Status struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Check pings every configured dependency and answers 503 if any fails.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.Enabled {
		response.JSON(w, http.StatusOK, Status{Status: "ok"})
		return
	}

	logger := middleware.GetLogger(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
	defer cancel()

	status := Status{Status: "ok", Checks: map[string]string{}}
	code := http.StatusOK

	for _, name := range h.cfg.Checks {
		checker, ok := h.checkers[name]
		if !ok || checker == nil {
			status.Checks[name] = "not configured"
			continue
		}
		if err := checker.Ping(ctx); err != nil {
			logger.Error().Err(err).Str("check", name).Msg("health check failed")
			status.Checks[name] = "down"
			status.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		status.Checks[name] = "up"
	}

	response.JSON(w, code, status)
}

func (h *HealthHandler) timeout() time.Duration {
	if h.cfg.Timeout <= 0 {
		return 5 * time.Second
	}
	return h.cfg.Timeout
}
