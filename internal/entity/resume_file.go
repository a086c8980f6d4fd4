package entity

import (
	"time"

	"github.com/google/uuid"
)

// ResumeFile represents an ingested résumé file for data transfer between layers.
type ResumeFile struct {
	ID          uuid.UUID `json:"id"`
	SourcePath  string    `json:"source_path"`
	ContentHash []byte    `json:"content_hash"`
	Filename    string    `json:"filename"`
	FileExt     string    `json:"file_ext"`
	FileSize    int64     `json:"file_size"`
	IngestedAt  time.Time `json:"ingested_at"`
}
