package slotlock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRedis отвечает на SET NX и EVALSHA из памяти, не ходя в сеть
type memoryRedis struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{data: make(map[string]string)}
}

func (m *memoryRedis) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (m *memoryRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (m *memoryRedis) ProcessHook(_ redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.err != nil {
			return m.err
		}

		args := cmd.Args()
		switch cmd.Name() {
		case "set":
			key, value := fmt.Sprint(args[1]), fmt.Sprint(args[2])
			c := cmd.(*redis.BoolCmd)
			if _, held := m.data[key]; held {
				c.SetVal(false)
				return nil
			}
			m.data[key] = value
			c.SetVal(true)
		case "evalsha":
			key, token := fmt.Sprint(args[3]), fmt.Sprint(args[4])
			c := cmd.(*redis.Cmd)
			if m.data[key] == token {
				delete(m.data, key)
				c.SetVal(int64(1))
				return nil
			}
			c.SetVal(int64(0))
		default:
			return fmt.Errorf("unexpected command %s", cmd.Name())
		}
		return nil
	}
}

func (m *memoryRedis) get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *memoryRedis) set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func newTestLocker(t *testing.T) (Locker, *memoryRedis) {
	t.Helper()
	store := newMemoryRedis()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(store)
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client, 5*time.Second), store
}

func TestKey(t *testing.T) {
	assert.Equal(t, "lock:slot:42:2025-01-06:10:00:00", Key(42, "2025-01-06", "10:00:00"))
}

func TestRedisLocker_HoldsKeyDuringFunctionAndReleases(t *testing.T) {
	locker, store := newTestLocker(t)
	key := Key(42, "2025-01-06", "10:00:00")

	err := locker.WithLock(context.Background(), key, func(ctx context.Context) error {
		token, held := store.get(key)
		assert.True(t, held)
		assert.NotEmpty(t, token)

		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
		return nil
	})

	require.NoError(t, err)
	_, held := store.get(key)
	assert.False(t, held)
}

func TestRedisLocker_ReleasesAfterFunctionError(t *testing.T) {
	locker, store := newTestLocker(t)
	want := errors.New("boom")

	err := locker.WithLock(context.Background(), "k", func(context.Context) error {
		return want
	})

	assert.ErrorIs(t, err, want)
	_, held := store.get("k")
	assert.False(t, held)
}

func TestRedisLocker_HeldKeyIsNotAcquired(t *testing.T) {
	locker, store := newTestLocker(t)
	store.set("k", "someone-else")
	called := false

	err := locker.WithLock(context.Background(), "k", func(context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrLockNotAcquired)
	assert.False(t, called)
	token, _ := store.get("k")
	assert.Equal(t, "someone-else", token)
}

func TestRedisLocker_DoesNotReleaseForeignToken(t *testing.T) {
	locker, store := newTestLocker(t)

	// TTL истек, и слот успел забрать другой запрос
	err := locker.WithLock(context.Background(), "k", func(context.Context) error {
		store.set("k", "next-holder")
		return nil
	})

	require.NoError(t, err)
	token, held := store.get("k")
	assert.True(t, held)
	assert.Equal(t, "next-holder", token)
}

func TestRedisLocker_BackendErrorIsUnavailable(t *testing.T) {
	locker, store := newTestLocker(t)
	store.err = errors.New("dial tcp 127.0.0.1:1: i/o timeout")
	called := false

	err := locker.WithLock(context.Background(), "k", func(context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrLockUnavailable)
	assert.NotErrorIs(t, err, ErrLockNotAcquired)
	assert.ErrorContains(t, err, "i/o timeout")
	assert.False(t, called)
}

func TestNoopLocker_RunsFunctionAndPropagatesError(t *testing.T) {
	locker := NewNoopLocker()
	called := false
	want := errors.New("boom")

	err := locker.WithLock(context.Background(), "k", func(ctx context.Context) error {
		called = true
		return want
	})

	assert.True(t, called)
	assert.ErrorIs(t, err, want)
}
