package models

import "time"

// Family groups users. Membership is by back-reference from User.FamilyID,
// not a join table.
type Family struct {
	ID        string
	Name      string
	CreatedBy string
	CreatedAt time.Time
}
