// Package presence tracks online/offline status of users in Redis.
//
// An online marker is written with a TTL that acts as the server-side
// disconnect hook: if the client vanishes without signing out, the marker
// expires and the user reads as offline without any further write.
// Heartbeats refresh the TTL while the connection is alive.
package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Presence status values.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// offlineRetention is how long an explicit offline marker (with its
// lastSeen timestamp) is kept around before Redis drops it.
const offlineRetention = 24 * time.Hour

// Status is the presence record stored per user.
type Status struct {
	UserID   string    `json:"userId"`
	Status   string    `json:"status"`
	LastSeen time.Time `json:"lastSeen"`
}

// Tracker mirrors user connectivity into Redis.
type Tracker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTracker creates a presence tracker. ttl bounds how long a user stays
// online without a heartbeat.
func NewTracker(client *redis.Client, ttl time.Duration) *Tracker {
	return &Tracker{client: client, ttl: ttl}
}

// SetOnline marks a user online. The TTL doubles as the disconnect hook.
func (t *Tracker) SetOnline(ctx context.Context, userID string) error {
	return t.write(ctx, userID, StatusOnline, t.ttl)
}

// Heartbeat refreshes the online marker and its TTL.
func (t *Tracker) Heartbeat(ctx context.Context, userID string) error {
	return t.write(ctx, userID, StatusOnline, t.ttl)
}

// SetOffline explicitly marks a user offline. Used on graceful sign-out,
// since the TTL hook may not have fired yet.
func (t *Tracker) SetOffline(ctx context.Context, userID string) error {
	return t.write(ctx, userID, StatusOffline, offlineRetention)
}

// Get returns the presence record for a user. A missing key means the TTL
// hook fired (or the user was never seen) and reads as offline.
func (t *Tracker) Get(ctx context.Context, userID string) (*Status, error) {
	data, err := t.client.Get(ctx, presenceKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return &Status{UserID: userID, Status: StatusOffline}, nil
		}
		return nil, err
	}

	var st Status
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Online returns all users currently marked online.
func (t *Tracker) Online(ctx context.Context) ([]Status, error) {
	var (
		online []Status
		cursor uint64
	)

	for {
		keys, next, err := t.client.Scan(ctx, cursor, "presence:*", 100).Result()
		if err != nil {
			return nil, err
		}

		for _, key := range keys {
			data, err := t.client.Get(ctx, key).Bytes()
			if err != nil {
				continue // expired between SCAN and GET
			}
			var st Status
			if err := json.Unmarshal(data, &st); err != nil {
				continue
			}
			if st.Status == StatusOnline {
				online = append(online, st)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	if online == nil {
		online = []Status{}
	}
	return online, nil
}

// Watch drives the presence state machine from a server-pushed connectivity
// signal. Each transition into connected re-writes the online marker (and
// with it, the TTL disconnect hook). Transitions into disconnected leave
// the marker to expire. Watch returns when the signal channel closes or the
// context is cancelled; callers should follow up with SetOffline on a
// graceful shutdown.
func (t *Tracker) Watch(ctx context.Context, userID string, connectivity <-chan bool) {
	connected := false

	for {
		select {
		case <-ctx.Done():
			return
		case isConnected, ok := <-connectivity:
			if !ok {
				return
			}
			if isConnected && !connected {
				if err := t.SetOnline(ctx, userID); err != nil {
					log.Printf("Failed to mark user %s online: %v", userID, err)
				}
			}
			connected = isConnected
		}
	}
}

func (t *Tracker) write(ctx context.Context, userID, status string, ttl time.Duration) error {
	data, err := json.Marshal(Status{
		UserID:   userID,
		Status:   status,
		LastSeen: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return t.client.Set(ctx, presenceKey(userID), data, ttl).Err()
}

func presenceKey(userID string) string {
	return fmt.Sprintf("presence:%s", userID)
}
