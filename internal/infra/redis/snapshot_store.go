package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SnapshotStore keeps session snapshot mirrors in Redis with a TTL. The
// mirror is a resume convenience, not durable state; the progress store in
// Postgres stays authoritative, so expiry only costs a fresh shuffle.
type SnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotStore(client *redis.Client, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{client: client, ttl: ttl}
}

func (s *SnapshotStore) Load(ctx context.Context, userID, quizID string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.key(userID, quizID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *SnapshotStore) Save(ctx context.Context, userID, quizID string, data []byte) error {
	return s.client.Set(ctx, s.key(userID, quizID), data, s.ttl).Err()
}

func (s *SnapshotStore) Delete(ctx context.Context, userID, quizID string) error {
	return s.client.Del(ctx, s.key(userID, quizID)).Err()
}

func (s *SnapshotStore) key(userID, quizID string) string {
	return "session:" + userID + ":" + quizID
}
