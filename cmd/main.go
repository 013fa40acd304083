package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "stepping_debug/docs"
	"stepping_debug/internal/handlers"
	"stepping_debug/internal/logger"
	"stepping_debug/internal/repository"
	"stepping_debug/internal/repository/db"
	"stepping_debug/internal/server"
	"stepping_debug/internal/service"
	"stepping_debug/internal/warehouse"

	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// @title                       Stepping Debug API
// @version                     1.0
// @description                 Range-filtered stepping timeline of chunk servers.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := loadConfig(viper.GetViper(), []string{"configs"})
	if err != nil {
		// logger level is not known yet
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Init(cfg.Log)
	defer func() { _ = log.Sync() }()

	conn, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DBPath, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, rowSource(cfg, log), cfg.Auth)
	apiHandler := handlers.NewHandler(services, log)

	srv := server.New(cfg.Server)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, srv, apiHandler, log); err != nil {
		log.Errorw("server stopped with error", "err", err)
		os.Exit(1)
	}
	log.Infow("server stopped")
}

// rowSource picks the timeline query backend; nil means the local stepping table.
func rowSource(cfg appConfig, log *logger.Logger) service.RowSource {
	if cfg.Backend != backendBigQuery {
		log.Infow("timeline backend", "backend", backendSQLite, "db", cfg.DBPath)
		return nil
	}
	log.Infow("timeline backend", "backend", backendBigQuery,
		"project", cfg.Warehouse.ProjectID, "endpoint", cfg.Warehouse.Endpoint)
	return warehouse.NewClient(cfg.Warehouse, nil)
}

// run serves HTTP until ctx is cancelled or the server fails, then shuts down gracefully.
func run(ctx context.Context, srv *server.Server, h *handlers.Handler, log *logger.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infow("http server listening", "addr", srv.Addr())
		return srv.Run(h.InitRoutes())
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Infow("shutting down server...")

		// allow in-flight requests to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
