package middleware

import (
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/Niiaks/pixcode/internal/server"
)

type Middlewares struct {
	Global          *Global
	ContextEnhancer *ContextEnhancer
	Tracing         *Tracing
	RateLimit       *RateLimit
}

func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application

	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	var rateLimit *RateLimit
	if s.Redis != nil {
		rateLimit = NewRateLimit(s.Redis, s.Config.RateLimit)
	}

	return &Middlewares{
		Global:          NewGlobal(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracing(nrApp),
		RateLimit:       rateLimit,
	}
}
