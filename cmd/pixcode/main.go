package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Niiaks/pixcode/internal/brcode"
	"github.com/Niiaks/pixcode/internal/config"
	"github.com/Niiaks/pixcode/internal/database"
	"github.com/Niiaks/pixcode/internal/health"
	"github.com/Niiaks/pixcode/internal/logger"
	"github.com/Niiaks/pixcode/internal/payee"
	"github.com/Niiaks/pixcode/internal/redis"
	"github.com/Niiaks/pixcode/internal/render"
	"github.com/Niiaks/pixcode/internal/router"
	"github.com/Niiaks/pixcode/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	loggerService := logger.New(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	db, err := database.New(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	rdb, err := redis.New(&log, &cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize redis client")
	}

	srv, err := server.NewServer(cfg, &log, loggerService, db, rdb)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server")
	}

	payeeRepo := payee.NewPayeeRepository(db.Pool)

	brcodeService := brcode.NewBRCodeService(render.NewQRRenderer(cfg.Render.QRSize))
	payeeService := payee.NewPayeeService(payeeRepo, brcodeService)

	handlers := &router.Handlers{
		BRCode: brcode.NewBRCodeHandler(brcodeService),
		Payee:  payee.NewPayeeHandler(payeeService),
		Health: health.NewHealthHandler(cfg.Observability.HealthChecks, map[string]health.Pinger{
			"database": db,
			"redis":    rdb,
		}),
	}

	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	go func() {
		if err := srv.Start(); err != nil {
			log.Error().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Give outstanding requests 10 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server stopped")
}
