package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ExtractJob represents one extraction attempt over a file for data transfer between layers.
type ExtractJob struct {
	ID           uuid.UUID       `json:"id"`
	FileID       uuid.UUID       `json:"file_id"`
	Format       string          `json:"format"`
	Status       string          `json:"status"`
	Method       *string         `json:"method,omitempty"`
	Pages        int             `json:"pages"`
	Text         *string         `json:"text,omitempty"`
	Fields       json.RawMessage `json:"fields,omitempty"`
	FieldsRules  *string         `json:"fields_rules,omitempty"` // extractor fingerprint that produced Fields
	ErrorMessage *string         `json:"error_message,omitempty"`
	StartedAt    time.Time       `json:"started_at"`
	FinishedAt   *time.Time      `json:"finished_at,omitempty"`
}
