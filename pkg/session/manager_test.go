package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/arushahmd/compass-voice/pkg/adapters/memory"
	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/ports"
	"github.com/arushahmd/compass-voice/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	*memory.Store
}

func (s SlowStore) Save(ctx context.Context, sessionID string, sess *domain.Session) error {
	time.Sleep(5 * time.Millisecond)
	return s.Store.Save(ctx, sessionID, sess)
}

func (s SlowStore) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	time.Sleep(5 * time.Millisecond)
	return s.Store.Load(ctx, sessionID)
}

func TestManager_TurnSerializesUpdates(t *testing.T) {
	manager := session.NewManager(SlowStore{memory.NewStore()})
	ctx := context.Background()
	id := "race-test"

	var wg sync.WaitGroup
	writers := 10
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Read-modify-write without locking would lose updates.
			_, err := manager.Turn(ctx, id, "demo", func(_ context.Context, s *domain.Session) error {
				s.TurnCount++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	sess, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, writers, sess.TurnCount)
}

func TestManager_TurnFailureSavesNothing(t *testing.T) {
	store := memory.NewStore()
	manager := session.NewManager(store)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := manager.Turn(ctx, "call", "demo", func(_ context.Context, s *domain.Session) error {
		s.State = domain.StateWaitingForSide
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = store.Load(ctx, "call")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_LoadOrStart(t *testing.T) {
	manager := session.NewManager(SlowStore{memory.NewStore()})
	ctx := context.Background()
	id := "atomic-init"

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, err := manager.LoadOrStart(ctx, id, "demo")
			assert.NoError(t, err)
			assert.NotNil(t, sess)
		}()
	}
	wg.Wait()

	sess, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StateIdle, sess.State)
	assert.Equal(t, "demo", sess.RestaurantID)
}

// recordingLocker counts lock round trips.
type recordingLocker struct {
	mu       sync.Mutex
	locks    int
	unlocks  int
	ttl      time.Duration
	failWith error
}

func (l *recordingLocker) Lock(_ context.Context, _ string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failWith != nil {
		return nil, l.failWith
	}
	l.locks++
	l.ttl = ttl
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.unlocks++
		return nil
	}, nil
}

func TestManager_DistributedLock(t *testing.T) {
	locker := &recordingLocker{}
	manager := session.NewManager(memory.NewStore(), session.WithLocker(locker), session.WithLockTTL(5*time.Second))

	_, err := manager.Turn(context.Background(), "call", "demo", func(context.Context, *domain.Session) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, locker.locks)
	assert.Equal(t, 1, locker.unlocks)
	assert.Equal(t, 5*time.Second, locker.ttl)

	locker.failWith = errors.New("redis down")
	_, err = manager.Turn(context.Background(), "call", "demo", func(context.Context, *domain.Session) error {
		t.Fatal("callback must not run without the lock")
		return nil
	})
	assert.ErrorContains(t, err, "failed to acquire distributed lock")
}
