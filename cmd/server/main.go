package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/davez1000/dbo-stats/internal/config"
	"github.com/davez1000/dbo-stats/internal/controller"
	"github.com/davez1000/dbo-stats/internal/db"
	httpserver "github.com/davez1000/dbo-stats/internal/http"
	"github.com/davez1000/dbo-stats/internal/logger"
	"github.com/davez1000/dbo-stats/internal/report"
	"github.com/davez1000/dbo-stats/internal/repository"
	"github.com/davez1000/dbo-stats/internal/roles"
	"github.com/davez1000/dbo-stats/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog := logger.New(cfg.AppMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := db.NewConnection(ctx, cfg)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(ctx, conn); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	repo := repository.NewStatsRepository(conn)
	dir := roles.NewDirectory(repo, cfg.ExcludedRoles)
	engine := report.NewEngine(cfg.ExcludedRoles)
	statsService := service.NewStatsService(repo, dir, engine)
	statsController := controller.NewStatsController(statsService, appLog)

	server := httpserver.NewServer(cfg, statsController)

	appLog.Info().Str("addr", cfg.HTTPPort).Msg("starting server")
	if err := server.Listen(cfg.HTTPPort); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
