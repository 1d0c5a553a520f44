package entity

import (
	"time"

	"github.com/google/uuid"
)

type RecordStatus string

const (
	RecordStatusOK    RecordStatus = "ok"
	RecordStatusError RecordStatus = "error"
)

type ExplanationMode string

const (
	ModeSingle ExplanationMode = "single"
	ModeMulti  ExplanationMode = "multi"
)

// ExplanationRecord is the audit trail entry written after a request
// is served. It is write-only from the request path: nothing in
// explanation processing ever reads it back.
type ExplanationRecord struct {
	ID         string          `json:"id" bson:"id"`
	Mode       ExplanationMode `json:"mode" bson:"mode"`
	Language   string          `json:"language" bson:"language"`
	LineCount  int             `json:"line_count" bson:"line_count"`
	Status     RecordStatus    `json:"status" bson:"status"`
	Fallback   bool            `json:"fallback" bson:"fallback"`
	DurationMS int64           `json:"duration_ms" bson:"duration_ms"`
	CreatedAt  time.Time       `json:"created_at" bson:"created_at"`
}

func NewExplanationRecord(mode ExplanationMode, language string, lineCount int) *ExplanationRecord {
	return &ExplanationRecord{
		ID:        uuid.New().String(),
		Mode:      mode,
		Language:  language,
		LineCount: lineCount,
		Status:    RecordStatusOK,
		CreatedAt: time.Now(),
	}
}

func (r *ExplanationRecord) Finish(status RecordStatus, fallback bool, d time.Duration) {
	r.Status = status
	r.Fallback = fallback
	r.DurationMS = d.Milliseconds()
}
