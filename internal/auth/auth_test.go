package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.NoError(t, CheckPassword(hash, "s3cret!"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong1!"), ErrMismatch)
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	err := CheckPassword("not-a-hash", "s3cret!")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("user-1")
	require.NoError(t, err)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	token, err := NewIssuer("one", time.Hour).Issue("user-1")
	require.NoError(t, err)

	_, err = NewIssuer("two", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyExpired(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Minute)
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return start }

	token, err := issuer.Issue("user-1")
	require.NoError(t, err)

	issuer.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyGarbage(t *testing.T) {
	_, err := NewIssuer("test-secret", 0).Verify("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
