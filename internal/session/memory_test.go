package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateAndGet(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	sess := store.Create()
	require.NotEmpty(t, sess.ID())

	got, err := store.Get(sess.ID())
	require.NoError(t, err)
	assert.Same(t, sess, got)

	other := store.Create()
	assert.NotEqual(t, sess.ID(), other.ID())
	assert.Equal(t, 2, store.Len())
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	sess := store.Create()

	store.Delete(sess.ID())
	_, err := store.Get(sess.ID())
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is a no-op.
	store.Delete(sess.ID())
}

func TestMemoryStoreSweep(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	idle := store.Create()
	_ = store.Create()

	time.Sleep(20 * time.Millisecond)

	live := store.Create()
	removed := store.Sweep()

	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, store.Len())

	_, err := store.Get(idle.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(live.ID())
	assert.NoError(t, err)
}

func TestMemoryStoreSweepUnlimited(t *testing.T) {
	store := NewMemoryStore(0)
	store.Create()
	assert.Equal(t, 0, store.Sweep())
	assert.Equal(t, 1, store.Len())
}
