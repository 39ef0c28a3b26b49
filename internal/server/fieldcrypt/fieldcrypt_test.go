package fieldcrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heirloomhq/heirloom/internal/cryptox"
	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/shared"
)

func newCodec(t *testing.T) *cryptox.Codec {
	t.Helper()
	c, err := cryptox.New("fieldcrypt-test")
	require.NoError(t, err)
	return c
}

func TestSealOpen_MovesValueBetweenSiblings(t *testing.T) {
	c := newCodec(t)

	plain, sealed := "Boston", ""
	require.NoError(t, Seal(c, &plain, &sealed))
	assert.Empty(t, plain, "plaintext must be cleared after sealing")
	assert.NotEmpty(t, sealed)
	assert.NotContains(t, sealed, "Boston")

	require.NoError(t, Open(c, &sealed, &plain))
	assert.Equal(t, "Boston", plain)
	assert.Empty(t, sealed, "ciphertext must be cleared after opening")
}

func TestSeal_NoopWithoutPlaintext(t *testing.T) {
	c := newCodec(t)

	plain, sealed := "", "existing-ciphertext"
	require.NoError(t, Seal(c, &plain, &sealed))
	assert.Equal(t, "existing-ciphertext", sealed, "sealing an already-sealed record must not touch it")
}

func TestOpen_NoopWithoutCiphertext(t *testing.T) {
	c := newCodec(t)

	// Legacy record from before the encrypted column existed.
	plain, sealed := "", ""
	require.NoError(t, Open(c, &sealed, &plain))
	assert.Empty(t, plain)
}

func TestOpen_CorruptCiphertextFailsLoudly(t *testing.T) {
	c := newCodec(t)

	plain, sealed := "", "bm90IGEgdmFsaWQgZW52ZWxvcGU="
	err := Open(c, &sealed, &plain)
	assert.ErrorIs(t, err, shared.ErrorDecryptionFailed)
	assert.Empty(t, plain, "corrupt data must never leak into the plaintext field")
}

func TestMemoryMapper_RoundTrip(t *testing.T) {
	c := newCodec(t)

	m := &models.Memory{Title: "First day", Description: "first day", Location: "Boston"}
	require.NoError(t, SealMemory(c, m))

	assert.Empty(t, m.Description)
	assert.Empty(t, m.Location)
	assert.NotEmpty(t, m.DescriptionEncrypted)
	assert.NotEmpty(t, m.LocationEncrypted)
	assert.Equal(t, "First day", m.Title, "unencrypted fields are untouched")

	require.NoError(t, OpenMemory(c, m))
	assert.Equal(t, "first day", m.Description)
	assert.Equal(t, "Boston", m.Location)
	assert.Empty(t, m.DescriptionEncrypted)
	assert.Empty(t, m.LocationEncrypted)
}

func TestStoryMapper_PartialFields(t *testing.T) {
	c := newCodec(t)

	// Location never set: only the transcript gets sealed.
	s := &models.Story{Transcript: "grandpa's war story"}
	require.NoError(t, SealStory(c, s))
	assert.NotEmpty(t, s.TranscriptEncrypted)
	assert.Empty(t, s.LocationEncrypted)

	require.NoError(t, OpenStory(c, s))
	assert.Equal(t, "grandpa's war story", s.Transcript)
	assert.Empty(t, s.Location)
}

func TestCommentAndCapsuleMappers(t *testing.T) {
	c := newCodec(t)

	cm := &models.Comment{Content: "so sweet"}
	require.NoError(t, SealComment(c, cm))
	assert.Empty(t, cm.Content)
	require.NoError(t, OpenComment(c, cm))
	assert.Equal(t, "so sweet", cm.Content)

	tc := &models.TimeCapsule{Message: "open in 2040"}
	require.NoError(t, SealCapsule(c, tc))
	assert.Empty(t, tc.Message)
	require.NoError(t, OpenCapsule(c, tc))
	assert.Equal(t, "open in 2040", tc.Message)
}
