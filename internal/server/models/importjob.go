package models

import (
	"encoding/json"
	"time"
)

type ImportStatus string

const (
	ImportIdle       ImportStatus = "idle"
	ImportProcessing ImportStatus = "processing"
	ImportComplete   ImportStatus = "complete"
)

// ImportJob tracks a bulk import from an external source. Processed and
// Imported are monotonic within a job's lifetime.
type ImportJob struct {
	ID       string
	UserID   string
	FamilyID string
	Source   string
	Settings json.RawMessage

	Total      int
	Processed  int
	Duplicates int
	Imported   int

	Status    ImportStatus
	CreatedAt time.Time
}

type ImportJobPatch struct {
	Total      *int
	Processed  *int
	Duplicates *int
	Imported   *int
	Status     *ImportStatus
}

func (p *ImportJobPatch) Apply(j *ImportJob) {
	if p.Total != nil {
		j.Total = *p.Total
	}
	if p.Processed != nil {
		j.Processed = *p.Processed
	}
	if p.Duplicates != nil {
		j.Duplicates = *p.Duplicates
	}
	if p.Imported != nil {
		j.Imported = *p.Imported
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
}
