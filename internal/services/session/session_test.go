package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kirana-assistant/internal/common/logger"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewStore(client, 30*time.Minute, logger.NewTestLogger(t)), mr
}

func TestStore_AppendAndHistory(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	userMsg, err := store.Append(ctx, "s1", "show me snacks", true)
	require.NoError(t, err)
	assert.NotEmpty(t, userMsg.ID)
	assert.True(t, userMsg.IsUser)

	_, err = store.Append(ctx, "s1", "Here are the snacks I found", false)
	require.NoError(t, err)

	history, err := store.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "show me snacks", history[0].Text)
	assert.True(t, history[0].IsUser)
	assert.Equal(t, "Here are the snacks I found", history[1].Text)
	assert.False(t, history[1].IsUser)
	assert.NotEqual(t, history[0].ID, history[1].ID)
}

func TestStore_HistoryOfUnknownSessionIsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	history, err := store.History(context.Background(), "never-seen")

	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestStore_AppendRefreshesTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	_, err := store.Append(ctx, "s1", "hello", true)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, mr.TTL("assistant:session:s1"))

	// Each append resets the window to the full TTL.
	mr.FastForward(10 * time.Minute)
	_, err = store.Append(ctx, "s1", "still here", true)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, mr.TTL("assistant:session:s1"))
}

func TestStore_ExpiredSessionReadsAsEmpty(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	_, err := store.Append(ctx, "s1", "hello", true)
	require.NoError(t, err)

	mr.FastForward(31 * time.Minute)

	history, err := store.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestStore_Clear(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Append(ctx, "s1", "hello", true)
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx, "s1"))

	history, err := store.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Append(ctx, "s1", "first session", true)
	require.NoError(t, err)
	_, err = store.Append(ctx, "s2", "second session", true)
	require.NoError(t, err)

	h1, err := store.History(ctx, "s1")
	require.NoError(t, err)
	h2, err := store.History(ctx, "s2")
	require.NoError(t, err)

	require.Len(t, h1, 1)
	require.Len(t, h2, 1)
	assert.Equal(t, "first session", h1[0].Text)
	assert.Equal(t, "second session", h2[0].Text)
}
