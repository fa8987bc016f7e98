package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeKV is an in-memory stand-in for the redis-backed cache.Cache
type fakeKV struct {
	data map[string][]byte
	// getErr simulates a corrupt blob / unreachable store on reads
	getErr error
	// setErr simulates write failures
	setErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte)}
}

func (f *fakeKV) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if f.getErr != nil {
		return false, f.getErr
	}
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeKV) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeKV) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (f *fakeKV) Ping(ctx context.Context) error                          { return nil }

func TestGetPendingCount_MissingBlobReadsZero(t *testing.T) {
	store := NewKVCounterStore(newFakeKV())

	assert.Equal(t, 0, store.GetPendingCount(context.Background(), "user-1"))
}

func TestGetPendingCount_MissingEntryReadsZero(t *testing.T) {
	kv := newFakeKV()
	kv.data[counterKey] = []byte(`{"someone-else": 7}`)
	store := NewKVCounterStore(kv)

	assert.Equal(t, 0, store.GetPendingCount(context.Background(), "user-1"))
}

// Corrupt stored data fails open to 0, never errors out the submission path
func TestGetPendingCount_CorruptBlobReadsZero(t *testing.T) {
	kv := newFakeKV()
	kv.data[counterKey] = []byte(`{definitely not json`)
	store := NewKVCounterStore(kv)

	assert.Equal(t, 0, store.GetPendingCount(context.Background(), "user-1"))
}

func TestGetPendingCount_NegativeEntryClampedToZero(t *testing.T) {
	kv := newFakeKV()
	kv.data[counterKey] = []byte(`{"user-1": -4}`)
	store := NewKVCounterStore(kv)

	assert.Equal(t, 0, store.GetPendingCount(context.Background(), "user-1"))
}

// increment(k) then get must equal prior + k, accumulating across calls
func TestIncrementPendingCount_Accumulates(t *testing.T) {
	kv := newFakeKV()
	store := NewKVCounterStore(kv)
	ctx := context.Background()

	require.NoError(t, store.IncrementPendingCount(ctx, "user-1", 1))
	assert.Equal(t, 1, store.GetPendingCount(ctx, "user-1"))

	require.NoError(t, store.IncrementPendingCount(ctx, "user-1", 5))
	assert.Equal(t, 6, store.GetPendingCount(ctx, "user-1"))

	require.NoError(t, store.IncrementPendingCount(ctx, "user-1", 1))
	assert.Equal(t, 7, store.GetPendingCount(ctx, "user-1"))
}

func TestIncrementPendingCount_IsolatedPerIdentity(t *testing.T) {
	store := NewKVCounterStore(newFakeKV())
	ctx := context.Background()

	require.NoError(t, store.IncrementPendingCount(ctx, "user-1", 2))
	require.NoError(t, store.IncrementPendingCount(ctx, "user-2", 9))

	assert.Equal(t, 2, store.GetPendingCount(ctx, "user-1"))
	assert.Equal(t, 9, store.GetPendingCount(ctx, "user-2"))
}

func TestIncrementPendingCount_RejectsNonPositiveDelta(t *testing.T) {
	store := NewKVCounterStore(newFakeKV())
	ctx := context.Background()

	assert.Error(t, store.IncrementPendingCount(ctx, "user-1", 0))
	assert.Error(t, store.IncrementPendingCount(ctx, "user-1", -1))
	assert.Equal(t, 0, store.GetPendingCount(ctx, "user-1"))
}

func TestIncrementPendingCount_SurfacesWriteFailure(t *testing.T) {
	kv := newFakeKV()
	kv.setErr = errors.New("store unavailable")
	store := NewKVCounterStore(kv)

	assert.Error(t, store.IncrementPendingCount(context.Background(), "user-1", 1))
}

// Counts live in a single durable blob: a fresh store instance over the same
// backing data sees the accumulated tally.
func TestCounter_PersistsAcrossInstances(t *testing.T) {
	kv := newFakeKV()
	ctx := context.Background()

	first := NewKVCounterStore(kv)
	require.NoError(t, first.IncrementPendingCount(ctx, "user-1", 3))

	second := NewKVCounterStore(kv)
	assert.Equal(t, 3, second.GetPendingCount(ctx, "user-1"))
}
