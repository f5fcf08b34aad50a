package memory

import (
	"context"
	"sync"
)

// SnapshotStore is an in-memory implementation of app.SnapshotStore.
type SnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{snapshots: make(map[string][]byte)}
}

func (s *SnapshotStore) Load(_ context.Context, userID, quizID string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.snapshots[key(userID, quizID)]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (s *SnapshotStore) Save(_ context.Context, userID, quizID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.snapshots[key(userID, quizID)] = stored
	return nil
}

func (s *SnapshotStore) Delete(_ context.Context, userID, quizID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, key(userID, quizID))
	return nil
}

func key(userID, quizID string) string {
	return userID + ":" + quizID
}
