package models

import "time"

// Highlight is a curated reel over existing memories. Nothing on it is
// encrypted.
type Highlight struct {
	ID         string
	FamilyID   string
	Title      string
	Type       string
	MemoryIDs  []string
	UnlockDate string // optional, free-form
	Views      int
	Shares     int
	CreatedAt  time.Time
}
