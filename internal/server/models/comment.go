package models

import "time"

// Reaction is one (user, type) pair on a comment. JSON tags match the
// persisted list format.
type Reaction struct {
	Type     string `json:"type"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

// Comment lives under a memory. A comment with ReplyTo set is a one-level
// reply and is never itself a parent.
type Comment struct {
	ID       string
	MemoryID string

	UserID     string
	UserName   string
	UserAvatar string

	Content          string // plaintext sibling, never persisted
	ContentEncrypted string

	Timestamp time.Time
	Reactions []Reaction
	ReplyTo   string // empty for top-level comments
}

// ToggleReaction removes the (userID, type) pair when present, otherwise
// appends it. Both backends share this exact semantics: a toggle, not an
// upsert.
func ToggleReaction(reactions []Reaction, userID, userName, reactionType string) []Reaction {
	for i, r := range reactions {
		if r.UserID == userID && r.Type == reactionType {
			return append(reactions[:i:i], reactions[i+1:]...)
		}
	}
	return append(reactions, Reaction{Type: reactionType, UserID: userID, UserName: userName})
}
