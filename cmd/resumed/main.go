package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/ingest"
	"github.com/joseph-ayodele/resume-extractor/internal/server"
	"github.com/joseph-ayodele/resume-extractor/internal/services/extraction"
)

func main() {
	var (
		configPath  = flag.StringP("config", "c", "", "YAML config file (default $"+common.ConfigPathEnv+")")
		dir         = flag.StringP("dir", "d", "", "directory to watch")
		out         = flag.StringP("out", "o", "", "output XLSX file path")
		addr        = flag.String("addr", "", "gRPC health listen address")
		inmem       = flag.Bool("inmem", false, "use an in-memory SQLite database")
		healthEvery = flag.Duration("health-interval", 15*time.Second, "database health check interval")
	)
	flag.Parse()

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if flag.CommandLine.Changed("dir") {
		cfg.Ingest.Dir = *dir
	}
	if flag.CommandLine.Changed("out") {
		cfg.Export.Output = *out
	}
	if flag.CommandLine.Changed("addr") {
		cfg.Server.GRPCAddr = *addr
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger := common.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := server.ConnectDB(ctx, cfg.Database, *inmem, logger)
	if err != nil {
		os.Exit(1)
	}
	defer server.CloseDB(db, logger)

	app, err := extraction.Build(cfg, db, logger)
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		os.Exit(1)
	}

	// gRPC health
	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		logger.Error("failed to listen on address", "addr", cfg.Server.GRPCAddr, "error", err)
		os.Exit(1)
	}
	grpcServer := grpc.NewServer()
	health := server.NewHealth(db, cfg.Database.DialTimeout, logger)
	health.Register(grpcServer)
	reflection.Register(grpcServer)
	go health.Watch(ctx, *healthEvery)

	logger.Info("resumed listening", "addr", cfg.Server.GRPCAddr, "dir", cfg.Ingest.Dir)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC serve error", "error", err)
			stop()
		}
	}()

	// the watcher walks the root, so it has to exist first
	if err := os.MkdirAll(cfg.Ingest.Dir, 0o755); err != nil {
		logger.Error("failed to create data directory", "dir", cfg.Ingest.Dir, "error", err)
		os.Exit(1)
	}
	batches, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       []string{cfg.Ingest.Dir},
		InitialScan: true,
		SkipHidden:  cfg.Ingest.SkipHidden,
		Debounce:    cfg.Ingest.Debounce,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	for batches != nil || errs != nil {
		select {
		case paths, ok := <-batches:
			if !ok {
				batches = nil
				continue
			}
			logger.Info("watch.batch", "changed", len(paths))
			// every batch rebuilds the whole workbook; unchanged files reuse stored fields
			if _, err := app.Service.Run(ctx, extraction.RunRequest{
				Root:       cfg.Ingest.Dir,
				SkipHidden: cfg.Ingest.SkipHidden,
				Output:     cfg.Export.Output,
			}); err != nil {
				logger.Error("watch.run.failed", "error", err)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("watcher error", "error", err)
		}
	}

	logger.Info("shutting down")
	health.Shutdown()
	grpcServer.GracefulStop()
}
