package presence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestTracker(t *testing.T, ttl time.Duration) (*Tracker, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewTracker(client, ttl), srv
}

func TestTracker_SetOnline(t *testing.T) {
	ctx := context.Background()

	t.Run("marks user online", func(t *testing.T) {
		tracker, _ := setupTestTracker(t, time.Minute)

		require.NoError(t, tracker.SetOnline(ctx, "user-1"))

		st, err := tracker.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, StatusOnline, st.Status)
		assert.Equal(t, "user-1", st.UserID)
		assert.WithinDuration(t, time.Now().UTC(), st.LastSeen, 5*time.Second)
	})

	t.Run("marker expires into offline", func(t *testing.T) {
		tracker, srv := setupTestTracker(t, time.Second)

		require.NoError(t, tracker.SetOnline(ctx, "user-1"))
		srv.FastForward(2 * time.Second)

		st, err := tracker.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, StatusOffline, st.Status)
	})

	t.Run("heartbeat extends the marker", func(t *testing.T) {
		tracker, srv := setupTestTracker(t, 10*time.Second)

		require.NoError(t, tracker.SetOnline(ctx, "user-1"))

		srv.FastForward(7 * time.Second)
		require.NoError(t, tracker.Heartbeat(ctx, "user-1"))
		srv.FastForward(7 * time.Second)

		st, err := tracker.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, StatusOnline, st.Status)
	})
}

func TestTracker_SetOffline(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit offline overrides online marker", func(t *testing.T) {
		tracker, _ := setupTestTracker(t, time.Minute)

		require.NoError(t, tracker.SetOnline(ctx, "user-1"))
		require.NoError(t, tracker.SetOffline(ctx, "user-1"))

		st, err := tracker.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, StatusOffline, st.Status)
		assert.False(t, st.LastSeen.IsZero())
	})

	t.Run("offline marker keeps last seen beyond the online ttl", func(t *testing.T) {
		tracker, srv := setupTestTracker(t, time.Second)

		require.NoError(t, tracker.SetOffline(ctx, "user-1"))
		srv.FastForward(time.Hour)

		st, err := tracker.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, StatusOffline, st.Status)
		assert.False(t, st.LastSeen.IsZero())
	})
}

func TestTracker_Get(t *testing.T) {
	t.Run("never-seen user reads as offline", func(t *testing.T) {
		tracker, _ := setupTestTracker(t, time.Minute)

		st, err := tracker.Get(context.Background(), "stranger")
		require.NoError(t, err)
		assert.Equal(t, StatusOffline, st.Status)
		assert.Equal(t, "stranger", st.UserID)
		assert.True(t, st.LastSeen.IsZero())
	})
}

func TestTracker_Online(t *testing.T) {
	ctx := context.Background()

	t.Run("returns only users marked online", func(t *testing.T) {
		tracker, _ := setupTestTracker(t, time.Minute)

		require.NoError(t, tracker.SetOnline(ctx, "user-1"))
		require.NoError(t, tracker.SetOnline(ctx, "user-2"))
		require.NoError(t, tracker.SetOffline(ctx, "user-3"))

		online, err := tracker.Online(ctx)
		require.NoError(t, err)
		require.Len(t, online, 2)

		ids := []string{online[0].UserID, online[1].UserID}
		assert.ElementsMatch(t, []string{"user-1", "user-2"}, ids)
	})

	t.Run("expired users drop out of the listing", func(t *testing.T) {
		tracker, srv := setupTestTracker(t, time.Second)

		require.NoError(t, tracker.SetOnline(ctx, "user-1"))
		srv.FastForward(2 * time.Second)

		online, err := tracker.Online(ctx)
		require.NoError(t, err)
		assert.Empty(t, online)
	})

	t.Run("empty store returns empty slice", func(t *testing.T) {
		tracker, _ := setupTestTracker(t, time.Minute)

		online, err := tracker.Online(ctx)
		require.NoError(t, err)
		assert.NotNil(t, online)
		assert.Empty(t, online)
	})
}

func TestTracker_Watch(t *testing.T) {
	ctx := context.Background()

	t.Run("connect transition writes online marker", func(t *testing.T) {
		tracker, _ := setupTestTracker(t, time.Minute)

		connectivity := make(chan bool)
		done := make(chan struct{})
		go func() {
			tracker.Watch(ctx, "user-1", connectivity)
			close(done)
		}()

		connectivity <- true
		close(connectivity)

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("watch did not return after channel close")
		}

		st, err := tracker.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, StatusOnline, st.Status)
	})

	t.Run("disconnect leaves the marker to expire", func(t *testing.T) {
		tracker, srv := setupTestTracker(t, time.Second)

		connectivity := make(chan bool)
		done := make(chan struct{})
		go func() {
			tracker.Watch(ctx, "user-1", connectivity)
			close(done)
		}()

		connectivity <- true
		connectivity <- false
		close(connectivity)
		<-done

		srv.FastForward(2 * time.Second)

		st, err := tracker.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, StatusOffline, st.Status)
	})

	t.Run("returns on context cancellation", func(t *testing.T) {
		tracker, _ := setupTestTracker(t, time.Minute)

		watchCtx, cancel := context.WithCancel(ctx)
		connectivity := make(chan bool)
		done := make(chan struct{})
		go func() {
			tracker.Watch(watchCtx, "user-1", connectivity)
			close(done)
		}()

		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("watch did not return after cancellation")
		}
	})
}
