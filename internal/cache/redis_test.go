package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisWithClient(client), srv
}

func TestProfileCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		expected string
	}{
		{"simple id", "123", "profile:123"},
		{"objectid format", "507f1f77bcf86cd799439011", "profile:507f1f77bcf86cd799439011"},
		{"empty string", "", "profile:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ProfileCacheKey(tt.userID))
		})
	}
}

func TestRedis_SetGetDelete(t *testing.T) {
	ctx := context.Background()

	type profile struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}

	t.Run("round-trips a struct value", func(t *testing.T) {
		r, _ := setupTestRedis(t)

		err := r.Set(ctx, "profile:abc", profile{Name: "Dana", Role: "lead"}, time.Minute)
		require.NoError(t, err)

		var got profile
		found, err := r.Get(ctx, "profile:abc", &got)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Dana", got.Name)
		assert.Equal(t, "lead", got.Role)
	})

	t.Run("get on missing key reports not found", func(t *testing.T) {
		r, _ := setupTestRedis(t)

		var got profile
		found, err := r.Get(ctx, "profile:missing", &got)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("value disappears after TTL", func(t *testing.T) {
		r, srv := setupTestRedis(t)

		err := r.Set(ctx, "profile:short", profile{Name: "Dana"}, time.Second)
		require.NoError(t, err)

		srv.FastForward(2 * time.Second)

		var got profile
		found, err := r.Get(ctx, "profile:short", &got)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("delete removes key", func(t *testing.T) {
		r, _ := setupTestRedis(t)

		require.NoError(t, r.Set(ctx, "profile:gone", profile{Name: "Dana"}, time.Minute))
		require.NoError(t, r.Delete(ctx, "profile:gone"))

		var got profile
		found, err := r.Get(ctx, "profile:gone", &got)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("delete on missing key is a no-op", func(t *testing.T) {
		r, _ := setupTestRedis(t)

		assert.NoError(t, r.Delete(ctx, "profile:never-existed"))
	})
}

func TestRedis_RefreshTokens(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and resolves token to user id", func(t *testing.T) {
		r, _ := setupTestRedis(t)

		err := r.SetRefreshToken(ctx, "tok-1", "user-1", time.Hour)
		require.NoError(t, err)

		userID, err := r.GetRefreshToken(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("unknown token resolves to empty string", func(t *testing.T) {
		r, _ := setupTestRedis(t)

		userID, err := r.GetRefreshToken(ctx, "never-issued")
		require.NoError(t, err)
		assert.Empty(t, userID)
	})

	t.Run("expired token resolves to empty string", func(t *testing.T) {
		r, srv := setupTestRedis(t)

		require.NoError(t, r.SetRefreshToken(ctx, "tok-short", "user-2", time.Second))
		srv.FastForward(2 * time.Second)

		userID, err := r.GetRefreshToken(ctx, "tok-short")
		require.NoError(t, err)
		assert.Empty(t, userID)
	})

	t.Run("deleted token no longer resolves", func(t *testing.T) {
		r, _ := setupTestRedis(t)

		require.NoError(t, r.SetRefreshToken(ctx, "tok-revoked", "user-3", time.Hour))
		require.NoError(t, r.DeleteRefreshToken(ctx, "tok-revoked"))

		userID, err := r.GetRefreshToken(ctx, "tok-revoked")
		require.NoError(t, err)
		assert.Empty(t, userID)
	})

	t.Run("tokens are isolated per user", func(t *testing.T) {
		r, _ := setupTestRedis(t)

		require.NoError(t, r.SetRefreshToken(ctx, "tok-a", "user-a", time.Hour))
		require.NoError(t, r.SetRefreshToken(ctx, "tok-b", "user-b", time.Hour))
		require.NoError(t, r.DeleteRefreshToken(ctx, "tok-a"))

		userID, err := r.GetRefreshToken(ctx, "tok-b")
		require.NoError(t, err)
		assert.Equal(t, "user-b", userID)
	})
}
