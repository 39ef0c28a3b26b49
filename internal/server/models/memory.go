package models

import "time"

type MemoryType string

const (
	MemoryPhoto    MemoryType = "photo"
	MemoryVideo    MemoryType = "video"
	MemoryDocument MemoryType = "document"
	MemoryAudio    MemoryType = "audio"
	MemoryStory    MemoryType = "story"
)

type Significance string

const (
	SignificanceLow       Significance = "low"
	SignificanceMedium    Significance = "medium"
	SignificanceHigh      Significance = "high"
	SignificanceMilestone Significance = "milestone"
)

type Memory struct {
	ID        string
	FamilyID  string
	CreatedBy string
	Title     string

	Description          string // plaintext sibling, never persisted
	DescriptionEncrypted string
	Location             string // plaintext sibling, never persisted
	LocationEncrypted    string

	Date         string // free-form, as supplied by the client
	Type         MemoryType
	Significance Significance
	Participants []string
	Tags         []string
	Thumbnail    string
	AIEnhanced   bool
	IsVault      bool

	SentimentScore *float64
	SentimentLabel string

	CreatedAt time.Time
}

// MemoryPatch is a partial update: nil fields are left untouched.
// Encrypted siblings arrive already sealed; the contract never sees plaintext.
type MemoryPatch struct {
	Title                *string
	DescriptionEncrypted *string
	LocationEncrypted    *string
	Date                 *string
	Type                 *MemoryType
	Significance         *Significance
	Participants         *[]string
	Tags                 *[]string
	Thumbnail            *string
	AIEnhanced           *bool
	IsVault              *bool
	SentimentScore       *float64
	SentimentLabel       *string
}

// Apply merges the patch into m, key by key.
func (p *MemoryPatch) Apply(m *Memory) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.DescriptionEncrypted != nil {
		m.DescriptionEncrypted = *p.DescriptionEncrypted
	}
	if p.LocationEncrypted != nil {
		m.LocationEncrypted = *p.LocationEncrypted
	}
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.Type != nil {
		m.Type = *p.Type
	}
	if p.Significance != nil {
		m.Significance = *p.Significance
	}
	if p.Participants != nil {
		m.Participants = *p.Participants
	}
	if p.Tags != nil {
		m.Tags = *p.Tags
	}
	if p.Thumbnail != nil {
		m.Thumbnail = *p.Thumbnail
	}
	if p.AIEnhanced != nil {
		m.AIEnhanced = *p.AIEnhanced
	}
	if p.IsVault != nil {
		m.IsVault = *p.IsVault
	}
	if p.SentimentScore != nil {
		m.SentimentScore = p.SentimentScore
	}
	if p.SentimentLabel != nil {
		m.SentimentLabel = *p.SentimentLabel
	}
}
