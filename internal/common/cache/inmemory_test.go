package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inMemoryCacheTestHelper(t *testing.T) *InMemoryClient[testObject] {
	t.Helper()
	t.Parallel()

	client := NewInMemoryClient[testObject]()
	t.Cleanup(client.Close)

	return client
}

func TestInMemoryClient_SetGet(t *testing.T) {
	client := inMemoryCacheTestHelper(t)

	obj := testObject{Name: "alice", Count: 3}

	require.NoError(t, client.Set(context.TODO(), "key-1", obj, time.Minute))

	got, err := client.Get(context.TODO(), "key-1")
	assert.NoError(t, err)
	assert.Equal(t, obj, got)

	_, err = client.Get(context.TODO(), "missing")
	assert.ErrorIs(t, err, ErrNotExists)
}

func TestInMemoryClient_GetExpired(t *testing.T) {
	client := inMemoryCacheTestHelper(t)

	obj := testObject{Name: "alice", Count: 3}

	require.NoError(t, client.Set(context.TODO(), "key-1", obj, -time.Second))

	_, err := client.Get(context.TODO(), "key-1")
	assert.ErrorIs(t, err, ErrNotExists)
}

func TestInMemoryClient_Del(t *testing.T) {
	client := inMemoryCacheTestHelper(t)

	obj := testObject{Name: "alice", Count: 3}

	require.NoError(t, client.Set(context.TODO(), "key-1", obj, time.Minute))
	require.NoError(t, client.Del(context.TODO(), "key-1"))

	_, err := client.Get(context.TODO(), "key-1")
	assert.ErrorIs(t, err, ErrNotExists)
}

func TestInMemoryClient_GetOrSet(t *testing.T) {
	client := inMemoryCacheTestHelper(t)

	obj := testObject{Name: "alice", Count: 3}

	t.Run("test cache miss fills from callback", func(t *testing.T) {
		got, err := client.GetOrSet(context.TODO(), GetOrSetOpts[testObject]{
			Key: "key-1",
			TTL: time.Minute,
			Callback: func() (testObject, error) {
				return obj, nil
			},
		})
		assert.NoError(t, err)
		assert.Equal(t, obj, got)
	})

	t.Run("test cache hit skips callback", func(t *testing.T) {
		got, err := client.GetOrSet(context.TODO(), GetOrSetOpts[testObject]{
			Key: "key-1",
			TTL: time.Minute,
			Callback: func() (testObject, error) {
				t.Fatal("callback must not be called on cache hit")
				return testObject{}, nil
			},
		})
		assert.NoError(t, err)
		assert.Equal(t, obj, got)
	})

	t.Run("test callback error", func(t *testing.T) {
		_, err := client.GetOrSet(context.TODO(), GetOrSetOpts[testObject]{
			Key: "key-2",
			TTL: time.Minute,
			Callback: func() (testObject, error) {
				return testObject{}, assert.AnError
			},
		})
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("test callback not provided", func(t *testing.T) {
		_, err := client.GetOrSet(context.TODO(), GetOrSetOpts[testObject]{
			Key: "key-2",
			TTL: time.Minute,
		})
		assert.ErrorIs(t, err, ErrCallbackNotProvided)
	})
}
