package session

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wims/storefront/internal/models"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "key", []byte("value")))
	got, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	require.NoError(t, store.Delete(ctx, "key"))
	_, err = store.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete(ctx, "key"))
}

func TestFileStorePermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, TokenKey, []byte("secret")))

	info, err := os.Stat(store.path(TokenKey))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSessionTokenLifecycle(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	sess := New(store)
	ctx := context.Background()

	_, err = sess.Token(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, sess.SaveToken(ctx, "tok-123"))
	token, err := sess.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	// A new session over the same store sees the token: it survives
	// restarts until overwritten.
	token, err = New(store).Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestSessionBuyerLifecycle(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	sess := New(store)
	ctx := context.Background()

	_, err = sess.Buyer(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	buyer := models.BuyerProfile{
		Name: "Demo", Surname: "Buyer", Email: "demo.buyer@example.com",
		Country: "USA", City: "New York", ZipCode: "10001", Address: "123 Example St",
	}
	require.NoError(t, sess.SaveBuyer(ctx, buyer))

	got, err := sess.Buyer(ctx)
	require.NoError(t, err)
	assert.Equal(t, &buyer, got)
}

func TestSessionClear(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	sess := New(store)
	ctx := context.Background()

	require.NoError(t, sess.SaveToken(ctx, "tok"))
	require.NoError(t, sess.SaveBuyer(ctx, models.BuyerProfile{Name: "Demo", Surname: "Buyer"}))

	require.NoError(t, sess.Clear(ctx))

	_, err = sess.Token(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = sess.Buyer(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}
