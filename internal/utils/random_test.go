package utils

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(LinkTokenLength)
	require.Len(t, s, LinkTokenLength)
	for _, r := range s {
		require.Contains(t, alphanumeric, string(r))
	}
}

func TestGenerateRandomNumericString(t *testing.T) {
	s := GenerateRandomNumericString(6)
	require.Len(t, s, 6)
	for _, r := range s {
		require.Contains(t, numberBytes, string(r))
	}
}

func TestGenerateVerificationToken(t *testing.T) {
	token := GenerateVerificationToken()
	require.Len(t, token, VerificationTokenBytes*2)

	_, err := hex.DecodeString(token)
	require.NoError(t, err)

	// Astronomically unlikely to collide; a repeat means the source of
	// randomness is broken.
	require.NotEqual(t, token, GenerateVerificationToken())
}
