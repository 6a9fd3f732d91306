package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/davez1000/dbo-stats/internal/config"
	"github.com/davez1000/dbo-stats/internal/db"
	"github.com/davez1000/dbo-stats/internal/export"
	"github.com/davez1000/dbo-stats/internal/logger"
	"github.com/davez1000/dbo-stats/internal/report"
	"github.com/davez1000/dbo-stats/internal/repository"
	"github.com/davez1000/dbo-stats/internal/roles"
)

// jobs maps export subcommands to their runners.
var jobs = map[string]struct {
	description string
	run         func(context.Context, *export.Exporter) error
}{
	"search-terms": {
		description: "export all logged search terms",
		run:         func(ctx context.Context, e *export.Exporter) error { return e.ExportSearchTerms(ctx) },
	},
	"failed-searches": {
		description: "export failed-search counts per role, grouped by date",
		run:         func(ctx context.Context, e *export.Exporter) error { return e.ExportFailedSearches(ctx) },
	},
	"popular-content": {
		description: "export page hits per role, grouped by content",
		run:         func(ctx context.Context, e *export.Exporter) error { return e.ExportPopularContent(ctx) },
	},
	"total-hits": {
		description: "export total hits per content across all roles",
		run:         func(ctx context.Context, e *export.Exporter) error { return e.ExportTotalHits(ctx) },
	},
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	job, ok := jobs[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown job %q\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

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

	repo := repository.NewStatsRepository(conn)
	dir := roles.NewDirectory(repo, cfg.ExcludedRoles)
	engine := report.NewEngine(cfg.ExcludedRoles)
	writer := &export.DiskWriter{BaseDir: cfg.ExportDir}
	exporter := export.NewExporter(repo, dir, engine, writer, cfg.ContentURLPrefix, appLog, os.Stdout)

	if err := job.run(ctx, exporter); err != nil {
		log.Fatalf("export: %v", err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <job>\n\njobs:\n", os.Args[0])
	for name, job := range jobs {
		fmt.Fprintf(os.Stderr, "  %-16s %s\n", name, job.description)
	}
}
