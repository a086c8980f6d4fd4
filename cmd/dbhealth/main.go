package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/google/uuid"
	flag "github.com/spf13/pflag"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
	repo "github.com/joseph-ayodele/resume-extractor/internal/repository"
	"github.com/joseph-ayodele/resume-extractor/internal/server"
)

func main() {
	var (
		configPath = flag.StringP("config", "c", "", "YAML config file (default $"+common.ConfigPathEnv+")")
		jobID      = flag.String("job", "", "print one extract job by id")
	)
	flag.Parse()

	if *jobID != "" {
		if err := common.ValidateAndReturnError(common.NewValidator().Field("job", *jobID, common.UUID)); err != nil {
			log.Printf("ERROR: %v", err)
			os.Exit(2)
		}
	}

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := common.NewLoggerTo(os.Stderr, common.LogConfig{Level: "warn", Format: "text"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := server.ConnectDB(ctx, cfg.Database, false, logger)
	if err != nil {
		log.Fatalf("opening DB: %v", err)
	}
	defer server.CloseDB(db, logger)

	if err := server.PingDB(ctx, db, logger, time.Second); err != nil {
		log.Fatalf("DB health: FAIL (%v)", err)
	}
	log.Printf("DB health: OK (driver %s)", db.Driver)

	files := repo.NewResumeFileRepository(db, logger)
	jobs := repo.NewExtractJobRepository(db, logger)

	n, err := files.Count(ctx)
	if err != nil {
		log.Fatalf("counting files: %v", err)
	}
	log.Printf("files: %d", n)

	counts, err := jobs.CountByStatus(ctx)
	if err != nil {
		log.Fatalf("counting jobs: %v", err)
	}
	statuses := make([]string, 0, len(counts))
	for s := range counts {
		statuses = append(statuses, string(s))
	}
	sort.Strings(statuses)
	for _, s := range statuses {
		log.Printf("- jobs %-8s %d", s, counts[constants.JobStatus(s)])
	}

	if *jobID == "" {
		return
	}
	job, err := jobs.GetByID(ctx, uuid.MustParse(*jobID))
	if err != nil {
		log.Fatalf("job %s: %v", *jobID, err)
	}
	log.Printf("job %s file=%s status=%s pages=%d started=%s", job.ID, job.FileID, job.Status, job.Pages, job.StartedAt.Format(time.RFC3339))
	if job.Method != nil {
		log.Printf("  method: %s", *job.Method)
	}
	if job.ErrorMessage != nil {
		log.Printf("  error: %s", *job.ErrorMessage)
	}
	if len(job.Fields) > 0 {
		log.Printf("  fields: %s", job.Fields)
	}
}
