package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	raw, err := m.Issue("ada@example.com", "customer", 42)
	require.NoError(t, err)

	claims, err := m.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UID)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "ada@example.com", claims.Subject)
}

func TestVerify_WrongSecret(t *testing.T) {
	raw, err := NewManager("secret-a", time.Hour).Issue("ada@example.com", "customer", 42)
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	raw, err := NewManager("test-secret", -time.Minute).Issue("ada@example.com", "customer", 42)
	require.NoError(t, err)

	_, err = NewManager("test-secret", -time.Minute).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := NewManager("test-secret", time.Hour).Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
