package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong password"))
	assert.False(t, CheckPassword("not a hash", "anything"))
}

func TestSessionLifecycle(t *testing.T) {
	store := NewSessionStore()

	token := store.Create(42)
	require.NotEmpty(t, token)

	userID, ok := store.UserID(token)
	require.True(t, ok)
	assert.Equal(t, int64(42), userID)

	store.Destroy(token)
	_, ok = store.UserID(token)
	assert.False(t, ok)
}

func TestSessionTokensAreUnique(t *testing.T) {
	store := NewSessionStore()

	first := store.Create(1)
	second := store.Create(1)
	assert.NotEqual(t, first, second)
}

func TestUnknownTokenRejected(t *testing.T) {
	store := NewSessionStore()

	_, ok := store.UserID("forged-token")
	assert.False(t, ok)
}

func TestUserContextRoundtrip(t *testing.T) {
	ctx := WithUser(context.Background(), 7)

	userID, ok := UserFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(7), userID)

	_, ok = UserFromContext(context.Background())
	assert.False(t, ok)
}
