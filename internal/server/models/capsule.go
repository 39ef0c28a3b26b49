package models

import "time"

// TimeCapsule holds a sealed message until its unlock date. IsLocked starts
// true and flips to false exactly once; it is never re-locked.
type TimeCapsule struct {
	ID        string
	FamilyID  string
	CreatedBy string
	Title     string

	Message          string // plaintext sibling, never persisted
	MessageEncrypted string

	MemoryIDs  []string
	UnlockDate string
	IsLocked   bool
	Recipients []string
	CreatedAt  time.Time
}

// UnlockTime parses the free-form unlock date, accepting RFC 3339 and plain
// dates. The second return is false when the value cannot be parsed;
// unparseable dates make the capsule unlockable immediately rather than
// locked forever.
func (c *TimeCapsule) UnlockTime() (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, c.UnlockDate); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", c.UnlockDate); err == nil {
		return t, true
	}
	return time.Time{}, false
}
