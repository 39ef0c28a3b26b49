// Package shared defines the sentinel errors used across the storage core.
// Callers should use errors.Is to match these values.
package shared

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound     = errors.New("not found")
	ErrorDuplicateKey = errors.New("duplicate key")

	// ErrorCounterRegression rejects an import job update that would move
	// the processed or imported counter backwards.
	ErrorCounterRegression = errors.New("import counters cannot decrease")

	// Codec-level errors. A stored ciphertext that is malformed or fails
	// its integrity check is data corruption and must surface loudly.
	ErrorDecryptionFailed = errors.New("decryption failed")

	// Service-level errors.
	ErrorAccessDenied  = errors.New("access denied")
	ErrorCapsuleLocked = errors.New("time capsule is still locked")
)
