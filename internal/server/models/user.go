// Package models holds the persisted shape of every archive entity.
//
// Fields whose values are sensitive exist in two sibling forms: the plaintext
// logical field (never persisted) and its *_encrypted counterpart (the only
// form a backend ever sees). At most one of the two is populated in any
// in-flight record; the fieldcrypt package moves values between them.
package models

import (
	"strings"
	"time"
	"unicode"
)

type PackageTier string

const (
	TierFree    PackageTier = "free"
	TierPremium PackageTier = "premium"
	TierFamily  PackageTier = "family"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	FamilyID     string // empty when the user has not joined a family
	FamilyName   string
	Package      PackageTier
	CreatedAt    time.Time
}

// AvatarInitials derives the denormalized avatar text stored on comments:
// the first two runes of the author's name, upper-cased.
func AvatarInitials(name string) string {
	r := []rune(strings.TrimSpace(name))
	if len(r) > 2 {
		r = r[:2]
	}
	for i := range r {
		r[i] = unicode.ToUpper(r[i])
	}
	return string(r)
}
