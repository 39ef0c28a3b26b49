// Package fieldcrypt moves sensitive values between a plaintext field and
// its encrypted sibling. Services call the typed Seal*/Open* mappers around
// every storage call so that backends only ever transport ciphertext.
package fieldcrypt

import (
	"github.com/heirloomhq/heirloom/internal/cryptox"
	"github.com/heirloomhq/heirloom/internal/server/models"
)

// Seal encrypts *plain into *sealed and clears *plain. A record whose
// plaintext field is already empty is left untouched, so sealing twice is a
// no-op.
func Seal(c *cryptox.Codec, plain, sealed *string) error {
	if *plain == "" {
		return nil
	}
	env, err := c.Encrypt(*plain)
	if err != nil {
		return err
	}
	*sealed = env
	*plain = ""
	return nil
}

// Open decrypts *sealed into *plain and clears *sealed. A record without the
// ciphertext field is left untouched, which tolerates rows created before the
// field existed.
func Open(c *cryptox.Codec, sealed, plain *string) error {
	if *sealed == "" {
		return nil
	}
	v, err := c.Decrypt(*sealed)
	if err != nil {
		return err
	}
	*plain = v
	*sealed = ""
	return nil
}

func SealMemory(c *cryptox.Codec, m *models.Memory) error {
	if err := Seal(c, &m.Description, &m.DescriptionEncrypted); err != nil {
		return err
	}
	return Seal(c, &m.Location, &m.LocationEncrypted)
}

func OpenMemory(c *cryptox.Codec, m *models.Memory) error {
	if err := Open(c, &m.DescriptionEncrypted, &m.Description); err != nil {
		return err
	}
	return Open(c, &m.LocationEncrypted, &m.Location)
}

func SealComment(c *cryptox.Codec, cm *models.Comment) error {
	return Seal(c, &cm.Content, &cm.ContentEncrypted)
}

func OpenComment(c *cryptox.Codec, cm *models.Comment) error {
	return Open(c, &cm.ContentEncrypted, &cm.Content)
}

func SealStory(c *cryptox.Codec, s *models.Story) error {
	if err := Seal(c, &s.Transcript, &s.TranscriptEncrypted); err != nil {
		return err
	}
	return Seal(c, &s.Location, &s.LocationEncrypted)
}

func OpenStory(c *cryptox.Codec, s *models.Story) error {
	if err := Open(c, &s.TranscriptEncrypted, &s.Transcript); err != nil {
		return err
	}
	return Open(c, &s.LocationEncrypted, &s.Location)
}

func SealCapsule(c *cryptox.Codec, tc *models.TimeCapsule) error {
	return Seal(c, &tc.Message, &tc.MessageEncrypted)
}

func OpenCapsule(c *cryptox.Codec, tc *models.TimeCapsule) error {
	return Open(c, &tc.MessageEncrypted, &tc.Message)
}
