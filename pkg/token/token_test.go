package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManagerIssueAndVerify(t *testing.T) {
	manager := NewManager("secret", time.Hour)

	signed, expiresAt, err := manager.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	userID, err := manager.Verify(signed)
	require.NoError(t, err)
	require.EqualValues(t, 42, userID)
}

func TestManagerRejectsForeignSignature(t *testing.T) {
	signed, _, err := NewManager("secret-a", time.Hour).Issue(42)
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestManagerRejectsExpiredToken(t *testing.T) {
	manager := NewManager("secret", -time.Minute)

	signed, _, err := manager.Issue(42)
	require.NoError(t, err)

	_, err = manager.Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestManagerRejectsGarbage(t *testing.T) {
	_, err := NewManager("secret", time.Hour).Verify("garbage")
	require.ErrorIs(t, err, ErrInvalidToken)
}
