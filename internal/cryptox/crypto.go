// Package cryptox implements the at-rest field codec: AES-256-GCM over a
// process-wide key, with the result packed into a transport-safe envelope
//
//	base64( 12-byte nonce ‖ ciphertext ‖ 16-byte tag )
//
// which is what the storage backends persist in place of a plaintext field.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/heirloomhq/heirloom/internal/shared"
)

const keySize = 32 // AES-256

// hkdfInfo binds derived keys to their purpose. Changing it rotates every
// stored ciphertext, so treat it as part of the on-disk format.
const hkdfInfo = "heirloom/field-encryption/v1"

// Codec encrypts and decrypts individual field values. It holds only the
// immutable AEAD derived from the configured secret and is safe for
// concurrent use without locking.
type Codec struct {
	aead cipher.AEAD
}

// New derives a 256-bit key from the configured secret via HKDF-SHA256 and
// prepares the AEAD. The secret may be any length; an empty secret is
// rejected because it would silently make every archive decryptable with a
// well-known key.
func New(secret string) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("cryptox: empty encryption secret")
	}

	key := make([]byte, keySize)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("cryptox: key derivation: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: cipher init: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptox: gcm init: %w", err)
	}

	return &Codec{aead: aead}, nil
}

// Encrypt seals plaintext into an envelope using a fresh random nonce.
// An empty plaintext maps to an empty envelope without invoking the cipher;
// absent values stay absent at rest.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("cryptox: nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens an envelope produced by Encrypt. An empty envelope decodes
// to an empty plaintext. Malformed encoding, a truncated envelope, and a
// failed integrity check all return an error wrapping
// shared.ErrorDecryptionFailed; the ciphertext is never handed back as
// plaintext.
func (c *Codec) Decrypt(envelope string) (string, error) {
	if envelope == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return "", fmt.Errorf("%w: invalid envelope encoding", shared.ErrorDecryptionFailed)
	}

	n := c.aead.NonceSize()
	if len(raw) < n+c.aead.Overhead() {
		return "", fmt.Errorf("%w: envelope too short", shared.ErrorDecryptionFailed)
	}

	plaintext, err := c.aead.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: integrity check failed", shared.ErrorDecryptionFailed)
	}

	return string(plaintext), nil
}
