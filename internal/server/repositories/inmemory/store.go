// Package inmemory implements every storage contract against process-local
// keyed maps. It is the fallback backend bound at startup when the relational
// store cannot be reached; it reproduces the relational semantics by hand,
// with one documented divergence: deleting a memory does not cascade to its
// comments.
package inmemory

import (
	"sync"

	"github.com/heirloomhq/heirloom/internal/server/models"
)

// Store owns all entity maps plus the email index. One instance is
// constructed at startup and shared by the per-entity repositories; a single
// mutex serializes every mutation, which is what makes read-modify-write
// operations like reaction toggling safe under concurrent requests.
type Store struct {
	mu sync.Mutex

	users         map[string]*models.User
	families      map[string]*models.Family
	memories      map[string]*models.Memory
	comments      map[string]*models.Comment
	stories       map[string]*models.Story
	highlights    map[string]*models.Highlight
	capsules      map[string]*models.TimeCapsule
	importJobs    map[string]*models.ImportJob
	settings      map[string]*models.NotificationSettings // keyed by user id
	subscriptions map[string]*models.Subscription         // keyed by user id

	emailIndex map[string]string // email -> user id
}

func NewStore() *Store {
	return &Store{
		users:         make(map[string]*models.User),
		families:      make(map[string]*models.Family),
		memories:      make(map[string]*models.Memory),
		comments:      make(map[string]*models.Comment),
		stories:       make(map[string]*models.Story),
		highlights:    make(map[string]*models.Highlight),
		capsules:      make(map[string]*models.TimeCapsule),
		importJobs:    make(map[string]*models.ImportJob),
		settings:      make(map[string]*models.NotificationSettings),
		subscriptions: make(map[string]*models.Subscription),
		emailIndex:    make(map[string]string),
	}
}

func (s *Store) Users() *UserRepository           { return &UserRepository{s: s} }
func (s *Store) Families() *FamilyRepository      { return &FamilyRepository{s: s} }
func (s *Store) Memories() *MemoryRepository      { return &MemoryRepository{s: s} }
func (s *Store) Comments() *CommentRepository     { return &CommentRepository{s: s} }
func (s *Store) Stories() *StoryRepository        { return &StoryRepository{s: s} }
func (s *Store) Highlights() *HighlightRepository { return &HighlightRepository{s: s} }
func (s *Store) Capsules() *CapsuleRepository     { return &CapsuleRepository{s: s} }
func (s *Store) ImportJobs() *ImportJobRepository { return &ImportJobRepository{s: s} }
func (s *Store) Settings() *SettingsRepository    { return &SettingsRepository{s: s} }
func (s *Store) Subscriptions() *SubRepository    { return &SubRepository{s: s} }

// Records are deep-copied both on insert and on read so callers can never
// alias store memory.

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneReactions(in []models.Reaction) []models.Reaction {
	if in == nil {
		return nil
	}
	out := make([]models.Reaction, len(in))
	copy(out, in)
	return out
}

func cloneUser(u *models.User) *models.User {
	c := *u
	return &c
}

func cloneFamily(f *models.Family) *models.Family {
	c := *f
	return &c
}

func cloneMemory(m *models.Memory) *models.Memory {
	c := *m
	c.Participants = cloneStrings(m.Participants)
	c.Tags = cloneStrings(m.Tags)
	if m.SentimentScore != nil {
		v := *m.SentimentScore
		c.SentimentScore = &v
	}
	return &c
}

func cloneComment(cm *models.Comment) *models.Comment {
	c := *cm
	c.Reactions = cloneReactions(cm.Reactions)
	return &c
}

func cloneStory(st *models.Story) *models.Story {
	c := *st
	c.Participants = cloneStrings(st.Participants)
	return &c
}

func cloneHighlight(h *models.Highlight) *models.Highlight {
	c := *h
	c.MemoryIDs = cloneStrings(h.MemoryIDs)
	return &c
}

func cloneCapsule(tc *models.TimeCapsule) *models.TimeCapsule {
	c := *tc
	c.MemoryIDs = cloneStrings(tc.MemoryIDs)
	c.Recipients = cloneStrings(tc.Recipients)
	return &c
}

func cloneImportJob(j *models.ImportJob) *models.ImportJob {
	c := *j
	if j.Settings != nil {
		c.Settings = append([]byte(nil), j.Settings...)
	}
	return &c
}

func cloneSettings(ns *models.NotificationSettings) *models.NotificationSettings {
	c := *ns
	return &c
}

func cloneSubscription(sub *models.Subscription) *models.Subscription {
	c := *sub
	if sub.CancelAt != nil {
		t := *sub.CancelAt
		c.CancelAt = &t
	}
	if sub.CurrentPeriodEnd != nil {
		t := *sub.CurrentPeriodEnd
		c.CurrentPeriodEnd = &t
	}
	return &c
}
