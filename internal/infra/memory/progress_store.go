package memory

import (
	"context"
	"sync"

	"civiclearn-quiz-service/internal/domain"
)

// ProgressStore is an in-memory implementation of app.ProgressStore, used in
// tests and demo mode. Last-write-wins, like its Postgres counterpart.
type ProgressStore struct {
	mu      sync.RWMutex
	records map[string]map[string]domain.ModuleProgress // userID -> moduleID -> record
}

func NewProgressStore() *ProgressStore {
	return &ProgressStore{records: make(map[string]map[string]domain.ModuleProgress)}
}

func (s *ProgressStore) Get(_ context.Context, userID, moduleID string) (domain.ModuleProgress, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[userID][moduleID]
	if !ok {
		return domain.ModuleProgress{}, false, nil
	}
	return copyRecord(record), true, nil
}

func (s *ProgressStore) Put(_ context.Context, record domain.ModuleProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byModule, ok := s.records[record.UserID]
	if !ok {
		byModule = make(map[string]domain.ModuleProgress)
		s.records[record.UserID] = byModule
	}
	byModule[record.ModuleID] = copyRecord(record)
	return nil
}

func (s *ProgressStore) List(_ context.Context, userID string) ([]domain.ModuleProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byModule := s.records[userID]
	out := make([]domain.ModuleProgress, 0, len(byModule))
	for _, record := range byModule {
		out = append(out, copyRecord(record))
	}
	return out, nil
}

// copyRecord detaches the SubScores map so callers cannot alias stored state.
func copyRecord(record domain.ModuleProgress) domain.ModuleProgress {
	out := record
	out.SubScores = make(map[string]int, len(record.SubScores))
	for k, v := range record.SubScores {
		out.SubScores[k] = v
	}
	return out
}
