package async

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job is the smallest useful unit: one discovered résumé.
type Job struct {
	FileID       uuid.UUID
	Path         string
	Deduplicated bool // content already known to the store
	Force        bool // re-extract even if stored fields exist
	SubmittedAt  time.Time
	RunID        string
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context) error
}
