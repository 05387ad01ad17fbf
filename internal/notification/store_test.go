package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Mivy_Go/internal/domain"
)

var sample = Details{URL: "https://api.farcaster.xyz/v1/frame-notifications", Token: "tok-1"}

// exerciseStore runs the behavior every backend must share
func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()

	got, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got, "absent entry is not an error")

	require.NoError(t, store.Set(ctx, 42, sample))
	require.NoError(t, store.Set(ctx, 7, Details{URL: "https://example.com/n", Token: "tok-2"}))

	got, err = store.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sample, *got)

	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{7, 42}, fids(entries))

	require.NoError(t, store.Delete(ctx, 42))
	got, err = store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, store.Set(ctx, 0, sample), domain.ErrInvalidFid)
	_, err = store.Get(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidFid)
}

func fids(entries []Entry) []int64 {
	out := make([]int64, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Fid)
	}
	return out
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(10, time.Minute))
}

func TestMemoryStore_Expires(t *testing.T) {
	store := NewMemoryStore(10, 20*time.Millisecond)
	require.NoError(t, store.Set(context.Background(), 1, sample))

	assert.Eventually(t, func() bool {
		got, err := store.Get(context.Background(), 1)
		return err == nil && got == nil
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryStore_Bounded(t *testing.T) {
	store := NewMemoryStore(2, time.Minute)
	ctx := context.Background()
	for fid := int64(1); fid <= 3; fid++ {
		require.NoError(t, store.Set(ctx, fid, sample))
	}
	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, fids(entries))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "farcaster:miniapp:user:12345", Key(12345))

	fid, ok := parseKey(Key(12345))
	assert.True(t, ok)
	assert.Equal(t, int64(12345), fid)

	_, ok = parseKey("farcaster:miniapp:user:abc")
	assert.False(t, ok)
	_, ok = parseKey("other:12345")
	assert.False(t, ok)
}

func TestDetailsValidate(t *testing.T) {
	assert.NoError(t, sample.Validate())
	assert.ErrorIs(t, Details{URL: "not a url", Token: "t"}.Validate(), domain.ErrInvalidInput)
	assert.ErrorIs(t, Details{URL: "https://x.y"}.Validate(), domain.ErrInvalidInput)
}

func TestNewStore_FallsBackToMemory(t *testing.T) {
	store, closeFn, err := NewStore(context.Background(), "", time.Minute)
	require.NoError(t, err)
	require.NotNil(t, closeFn)
	assert.IsType(t, &MemoryStore{}, store)
	assert.NoError(t, closeFn())
}
