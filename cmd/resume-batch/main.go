package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/server"
	"github.com/joseph-ayodele/resume-extractor/internal/services/extraction"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		configPath = flag.StringP("config", "c", "", "YAML config file (default $"+common.ConfigPathEnv+")")
		dir        = flag.StringP("dir", "d", "", "directory to read résumés from")
		out        = flag.StringP("out", "o", "", "output XLSX file path")
		inmem      = flag.Bool("inmem", false, "use an in-memory SQLite database")
		force      = flag.Bool("force", false, "re-extract files whose fields are already stored")
		workers    = flag.IntP("workers", "w", 0, "parallel workers")
		backends   = flag.StringSlice("backends", nil, "PDF text backends in order (gopdf, pdftotext, docconv)")
		hidden     = flag.Bool("include-hidden", false, "also read hidden files and directories")
		logLevel   = flag.String("log-level", "", "debug, info, warn or error")
	)
	flag.Parse()

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(2)
	}
	if flag.CommandLine.Changed("dir") {
		cfg.Ingest.Dir = *dir
	}
	if flag.CommandLine.Changed("out") {
		cfg.Export.Output = *out
	}
	if flag.CommandLine.Changed("workers") {
		cfg.Workers.Count = *workers
	}
	if flag.CommandLine.Changed("backends") {
		cfg.Extract.Backends = *backends
	}
	if flag.CommandLine.Changed("include-hidden") {
		cfg.Ingest.SkipHidden = !*hidden
	}
	if flag.CommandLine.Changed("log-level") {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
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

	res, err := app.Service.Run(ctx, extraction.RunRequest{
		Root:       cfg.Ingest.Dir,
		SkipHidden: cfg.Ingest.SkipHidden,
		Force:      *force,
		Output:     cfg.Export.Output,
	})
	if err != nil {
		logger.Error("batch run failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Files found: %d\n", res.Stats.Total)
	fmt.Printf("- Succeeded: %d (reused: %d)\n", res.Stats.Succeeded, res.Stats.Reused)
	fmt.Printf("- Failed: %d\n", res.Stats.Failed)
	for _, f := range res.Stats.FailedFiles {
		fmt.Printf("    %s: %s\n", f.Path, f.Error)
	}
	fmt.Printf("- Output: %s\n", res.Output)
	fmt.Printf("- Elapsed: %s\n", res.Duration.Round(time.Millisecond))
}
