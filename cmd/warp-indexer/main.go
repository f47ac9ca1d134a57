package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/warp-lab/warp-indexer/internal/core/config"
	"github.com/warp-lab/warp-indexer/internal/core/storage/postgres"
	"github.com/warp-lab/warp-indexer/internal/indexer"
	"github.com/warp-lab/warp-indexer/internal/migrations"
	"github.com/warp-lab/warp-indexer/internal/projection"
	"github.com/warp-lab/warp-indexer/internal/server"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "warp.yaml", "Path to configuration file")
	once := flag.Bool("once", false, "Run a single pass and exit")
	currentHeight := flag.Int64("current-height", -1, "Current height for -once (default: event log tip minus confirmations)")
	flag.Parse()

	// 0. Initialize Logger
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))
	slog.Info("Loaded config",
		"indexer", cfg.Indexer.Name,
		"namespace", cfg.Indexer.Namespace,
		"genesis_height", cfg.Indexer.GenesisHeight,
		"definitions", len(cfg.MetricLoading.Definitions),
	)

	// 2. Initialize Storage (PostgreSQL)
	events, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer events.Close()

	// 2.1. Run Database Migrations
	if err := migrations.RunMigrations(events.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	metricStore := postgres.NewMetricAdapter(events.DB())
	checkpointStore := postgres.NewCheckpointAdapter(events.DB())

	// 3. Initialize Indexer
	writer := indexer.NewWriter(metricStore)
	selector := indexer.NewSelector(events, cfg.Indexer.CompleteStraddledBuckets)
	pipelines, err := indexer.NewPipelines(
		cfg.Indexer.Namespace,
		cfg.MetricLoading.Definitions,
		selector,
		writer,
		indexer.NewCascader(metricStore, writer),
	)
	if err != nil {
		slog.Error("Failed to build metric pipelines", "error", err)
		os.Exit(1)
	}

	driver := indexer.NewDriver(
		cfg.Indexer.Name,
		indexer.NewCheckpointTracker(checkpointStore, cfg.Indexer.Name),
		indexer.Runners(pipelines),
	)
	scheduler := indexer.NewScheduler(cfg.Indexer.Name, driver, events, indexer.SchedulerOptions{
		Interval:      cfg.Indexer.IntervalDuration(),
		GenesisHeight: cfg.Indexer.GenesisHeight,
		Confirmations: cfg.Indexer.Confirmations,
	})

	slog.Info("Indexer initialized",
		"pipelines", len(pipelines),
		"interval", cfg.Indexer.IntervalDuration(),
		"confirmations", cfg.Indexer.Confirmations,
		"complete_straddled_buckets", selector.CompletesBuckets(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		if err := runOnce(ctx, driver, scheduler, cfg.Indexer.GenesisHeight, *currentHeight); err != nil {
			slog.Error("Pass failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// 4. Initialize Query API + Server
	querySvc := projection.NewService(
		metricStore,
		checkpointStore,
		cfg.MetricLoading.Definitions,
		cfg.Indexer.Namespace,
		cfg.Indexer.Name,
		cfg.Indexer.GenesisHeight,
	)
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), events.DB(), cfg.Server.Mode)
	querySvc.RegisterRoutes(srv.Engine)

	// 5. Start Services
	g, gctx := errgroup.WithContext(ctx)

	if cfg.Indexer.Enabled {
		g.Go(func() error { return scheduler.Start(gctx) })
	} else {
		slog.Info("Indexer scheduler disabled by config")
	}

	if cfg.Server.Enabled {
		g.Go(func() error { return srv.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		slog.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}

	slog.Info("Shutdown complete")
}

func runOnce(ctx context.Context, driver *indexer.Driver, scheduler *indexer.Scheduler, genesis, current int64) error {
	var (
		result indexer.PassResult
		err    error
	)
	if current >= 0 {
		result, err = driver.RunPass(ctx, indexer.PassRequest{GenesisHeight: genesis, CurrentHeight: current})
	} else {
		result, err = scheduler.RunOnce(ctx)
	}
	if err != nil {
		return err
	}

	slog.Info("Pass finished",
		"run_id", result.RunID,
		"state", result.State,
		"from_height", result.FromHeight,
		"to_height", result.ToHeight,
		"entities_written", result.EntitiesWritten,
		"duration", result.Duration,
	)
	return nil
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
