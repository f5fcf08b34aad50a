package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"civiclearn-quiz-service/internal/domain"
)

// ProgressStore persists progress records as JSONB documents, one row per
// user and module. Upserts are last-write-wins; there is no optimistic
// concurrency token (single-writer assumption, see app.ProgressStore).
type ProgressStore struct {
	pool *pgxpool.Pool
}

func NewProgressStore(pool *pgxpool.Pool) *ProgressStore {
	return &ProgressStore{pool: pool}
}

func (s *ProgressStore) Get(ctx context.Context, userID, moduleID string) (domain.ModuleProgress, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM user_progress WHERE user_id=$1 AND module_id=$2`,
		userID, moduleID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ModuleProgress{}, false, nil
	}
	if err != nil {
		return domain.ModuleProgress{}, false, fmt.Errorf("get progress: %w", err)
	}
	var record domain.ModuleProgress
	if err := json.Unmarshal(raw, &record); err != nil {
		return domain.ModuleProgress{}, false, fmt.Errorf("unmarshal progress: %w", err)
	}
	return record, true, nil
}

func (s *ProgressStore) Put(ctx context.Context, record domain.ModuleProgress) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO user_progress (user_id, module_id, data, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, module_id)
		 DO UPDATE SET data=EXCLUDED.data, updated_at=EXCLUDED.updated_at`,
		record.UserID, record.ModuleID, data, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("put progress: %w", err)
	}
	return nil
}

func (s *ProgressStore) List(ctx context.Context, userID string) ([]domain.ModuleProgress, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM user_progress WHERE user_id=$1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var out []domain.ModuleProgress
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		var record domain.ModuleProgress
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("unmarshal progress: %w", err)
		}
		out = append(out, record)
	}
	return out, rows.Err()
}
