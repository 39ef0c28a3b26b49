package models

import "time"

// Story is a recorded family narration.
type Story struct {
	ID        string
	FamilyID  string
	CreatedBy string
	Title     string

	Transcript          string // plaintext sibling, never persisted
	TranscriptEncrypted string
	Location            string // plaintext sibling, never persisted
	LocationEncrypted   string

	Date         string
	Duration     int // seconds
	Prompt       string
	Participants []string
	CreatedAt    time.Time
}
