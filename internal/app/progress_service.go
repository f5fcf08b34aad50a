package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"civiclearn-quiz-service/internal/domain"
)

// ProgressStore is the persistence gateway for per-user progress records.
// Writes are last-write-wins; the service assumes it is the sole writer for a
// given user code (cross-device concurrent play is out of scope).
type ProgressStore interface {
	Get(ctx context.Context, userID, moduleID string) (domain.ModuleProgress, bool, error)
	Put(ctx context.Context, record domain.ModuleProgress) error
	List(ctx context.Context, userID string) ([]domain.ModuleProgress, error)
}

// BankRepository loads quiz content (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// SnapshotStore mirrors in-flight session state so a reload can resume. It is
// a convenience cache, not a durability guarantee; the progress store stays
// the source of truth.
type SnapshotStore interface {
	Load(ctx context.Context, userID, quizID string) ([]byte, bool, error)
	Save(ctx context.Context, userID, quizID string, data []byte) error
	Delete(ctx context.Context, userID, quizID string) error
}

// ProgressOption configures a ProgressService.
type ProgressOption func(*ProgressService)

// WithCatalog overrides the module catalog.
func WithCatalog(c domain.Catalog) ProgressOption {
	return func(s *ProgressService) { s.catalog = c }
}

// WithClock injects a clock for deterministic timestamps in tests.
func WithClock(now func() time.Time) ProgressOption {
	return func(s *ProgressService) { s.now = now }
}

// ProgressService aggregates activity scores into module records and derives
// badge and certificate unlocks.
type ProgressService struct {
	store   ProgressStore
	catalog domain.Catalog
	now     func() time.Time
}

func NewProgressService(store ProgressStore, opts ...ProgressOption) *ProgressService {
	s := &ProgressService{
		store:   store,
		catalog: domain.DefaultCatalog(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog exposes the module catalog for read-only use.
func (s *ProgressService) Catalog() domain.Catalog {
	return s.catalog
}

// RecordResult stores an activity percent and recomputes the module record
// and the user's aggregate from scratch. A re-attempt overwrites the stored
// percent; points are never accumulated across attempts.
func (s *ProgressService) RecordResult(ctx context.Context, userID, moduleID, activityID string, percent int) (domain.UserAggregate, error) {
	module, ok := s.catalog.Module(moduleID)
	if !ok {
		return domain.UserAggregate{}, domain.ErrModuleNotFound
	}
	if _, ok := module.Activity(activityID); !ok {
		return domain.UserAggregate{}, domain.ErrActivityNotFound
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	record, found, err := s.store.Get(ctx, userID, moduleID)
	if err != nil {
		return domain.UserAggregate{}, fmt.Errorf("load progress: %w", err)
	}
	if !found {
		record = domain.ModuleProgress{UserID: userID, ModuleID: moduleID}
	}
	if record.SubScores == nil {
		record.SubScores = make(map[string]int)
	}
	record.SubScores[activityID] = percent
	recomputeModule(&record, module)
	record.UpdatedAt = s.now()

	if err := s.store.Put(ctx, record); err != nil {
		return domain.UserAggregate{}, fmt.Errorf("save progress: %w", err)
	}
	return s.aggregate(ctx, userID)
}

// RecordStatement feeds a normalized embedded-content statement into the
// aggregator. Progress-only verbs are ignored; the second return value
// reports whether the statement was scored.
func (s *ProgressService) RecordStatement(ctx context.Context, userID string, stmt domain.Statement) (domain.UserAggregate, bool, error) {
	switch stmt.Verb {
	case domain.VerbAnswered, domain.VerbCompleted:
	default:
		return domain.UserAggregate{}, false, nil
	}
	agg, err := s.RecordResult(ctx, userID, stmt.ModuleID, stmt.ActivityID, stmt.Percent())
	if err != nil {
		return domain.UserAggregate{}, false, err
	}
	return agg, true, nil
}

// recomputeModule derives points and completion from the recorded sub-scores.
// Unattempted activities contribute zero; completion requires every activity
// to have been attempted at least once, regardless of score.
func recomputeModule(record *domain.ModuleProgress, module domain.Module) {
	points := 0
	completed := true
	for _, activity := range module.Activities {
		pct, attempted := record.SubScores[activity.ID]
		if !attempted {
			completed = false
			continue
		}
		points += int(math.Round(float64(pct) / 100 * float64(activity.Weight)))
	}
	record.Points = points
	record.Completed = completed
}

// aggregate recomputes the user's totals across all modules from the stored
// records. Full recompute on every write avoids incremental drift.
func (s *ProgressService) aggregate(ctx context.Context, userID string) (domain.UserAggregate, error) {
	records, err := s.store.List(ctx, userID)
	if err != nil {
		return domain.UserAggregate{}, fmt.Errorf("list progress: %w", err)
	}
	byModule := make(map[string]domain.ModuleProgress, len(records))
	for _, r := range records {
		byModule[r.ModuleID] = r
	}

	totalPoints := 0
	totalMax := 0
	completed := 0
	for _, module := range s.catalog.Modules {
		totalMax += module.MaxPoints()
		record, ok := byModule[module.ID]
		if !ok {
			continue
		}
		totalPoints += record.Points
		if record.Completed {
			completed++
		}
	}

	agg := domain.UserAggregate{
		UserID:         userID,
		TotalPoints:    totalPoints,
		CompletedCount: completed,
		UpdatedAt:      s.now(),
	}
	if totalMax > 0 {
		agg.OverallPercent = int(math.Round(100 * float64(totalPoints) / float64(totalMax)))
	}
	if n := len(s.catalog.Modules); n > 0 {
		agg.ProgressPercent = int(math.Round(100 * float64(completed) / float64(n)))
	}
	return agg, nil
}

// ModuleBadgeInfo returns the badge view of one module. An absent record
// reads as zero percent.
func (s *ProgressService) ModuleBadgeInfo(ctx context.Context, userID, moduleID string) (domain.BadgeInfo, error) {
	module, ok := s.catalog.Module(moduleID)
	if !ok {
		return domain.BadgeInfo{}, domain.ErrModuleNotFound
	}
	record, found, err := s.store.Get(ctx, userID, moduleID)
	if err != nil {
		return domain.BadgeInfo{}, fmt.Errorf("load progress: %w", err)
	}
	percent := 0
	if found && module.MaxPoints() > 0 {
		percent = int(math.Round(100 * float64(record.Points) / float64(module.MaxPoints())))
	}
	return domain.BadgeInfo{
		ModuleID: moduleID,
		Percent:  percent,
		Tier:     domain.Tier(percent),
		Unlocked: domain.BadgeUnlocked(percent),
	}, nil
}

// CertificateInfo returns the certificate view: both the completed-module
// count and the overall average must clear their thresholds.
func (s *ProgressService) CertificateInfo(ctx context.Context, userID string) (domain.CertificateInfo, error) {
	agg, err := s.aggregate(ctx, userID)
	if err != nil {
		return domain.CertificateInfo{}, err
	}
	return domain.CertificateInfo{
		Unlocked:       domain.CertificateUnlocked(agg.CompletedCount, agg.OverallPercent),
		CompletedCount: agg.CompletedCount,
		OverallPercent: agg.OverallPercent,
	}, nil
}

// Overview is the dashboard view: the aggregate plus one badge entry per
// catalog module.
type Overview struct {
	Aggregate   domain.UserAggregate   `json:"aggregate"`
	Modules     []domain.BadgeInfo     `json:"modules"`
	Certificate domain.CertificateInfo `json:"certificate"`
}

// UserOverview assembles the full dashboard for one user.
func (s *ProgressService) UserOverview(ctx context.Context, userID string) (Overview, error) {
	agg, err := s.aggregate(ctx, userID)
	if err != nil {
		return Overview{}, err
	}
	overview := Overview{
		Aggregate: agg,
		Modules:   make([]domain.BadgeInfo, 0, len(s.catalog.Modules)),
		Certificate: domain.CertificateInfo{
			Unlocked:       domain.CertificateUnlocked(agg.CompletedCount, agg.OverallPercent),
			CompletedCount: agg.CompletedCount,
			OverallPercent: agg.OverallPercent,
		},
	}
	for _, module := range s.catalog.Modules {
		info, err := s.ModuleBadgeInfo(ctx, userID, module.ID)
		if err != nil {
			return Overview{}, err
		}
		overview.Modules = append(overview.Modules, info)
	}
	return overview, nil
}
