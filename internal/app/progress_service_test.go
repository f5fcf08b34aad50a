package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"civiclearn-quiz-service/internal/domain"
	"civiclearn-quiz-service/internal/infra/memory"
)

func newTestProgress() *ProgressService {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return NewProgressService(memory.NewProgressStore(), WithClock(func() time.Time { return fixed }))
}

func TestAggregatorWeightsAndCompletion(t *testing.T) {
	ctx := context.Background()
	service := newTestProgress()

	// Sub-quiz A at 80%, B unattempted: 40 points, not completed.
	if _, err := service.RecordResult(ctx, "u1", domain.ModuleSpielerisch, domain.ActivityFlashcardQuiz, 80); err != nil {
		t.Fatalf("record: %v", err)
	}
	record, found, err := service.store.Get(ctx, "u1", domain.ModuleSpielerisch)
	if err != nil || !found {
		t.Fatalf("get record: %v found=%v", err, found)
	}
	if record.Points != 40 {
		t.Fatalf("points = %d, want 40", record.Points)
	}
	if record.Completed {
		t.Fatal("module completed with an unattempted sub-quiz")
	}

	// B completes at 60%: 40 + 30 = 70, completed.
	if _, err := service.RecordResult(ctx, "u1", domain.ModuleSpielerisch, domain.ActivityTieredQuiz, 60); err != nil {
		t.Fatalf("record: %v", err)
	}
	record, _, _ = service.store.Get(ctx, "u1", domain.ModuleSpielerisch)
	if record.Points != 70 {
		t.Fatalf("points = %d, want 70", record.Points)
	}
	if !record.Completed {
		t.Fatal("module not completed after all sub-quizzes attempted")
	}

	// Re-running A at 100% overwrites, never accumulates: 50 + 30 = 80.
	if _, err := service.RecordResult(ctx, "u1", domain.ModuleSpielerisch, domain.ActivityFlashcardQuiz, 100); err != nil {
		t.Fatalf("record: %v", err)
	}
	record, _, _ = service.store.Get(ctx, "u1", domain.ModuleSpielerisch)
	if record.Points != 80 {
		t.Fatalf("points after replay = %d, want 80 (overwrite, not addition)", record.Points)
	}
}

func TestAggregateRecomputedAcrossModules(t *testing.T) {
	ctx := context.Background()
	service := newTestProgress()

	complete := func(moduleID string, percent int) {
		t.Helper()
		module, _ := service.Catalog().Module(moduleID)
		for _, activity := range module.Activities {
			if _, err := service.RecordResult(ctx, "u1", moduleID, activity.ID, percent); err != nil {
				t.Fatalf("record %s/%s: %v", moduleID, activity.ID, err)
			}
		}
	}

	complete(domain.ModuleGrundlagen, 90)
	complete(domain.ModuleSteuersystem, 70)
	agg, err := service.RecordResult(ctx, "u1", domain.ModuleProContra, "pro-video", 100)
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	// 90 + 70 + 50 points of 500 total.
	if agg.TotalPoints != 210 {
		t.Fatalf("total points = %d, want 210", agg.TotalPoints)
	}
	if agg.CompletedCount != 2 {
		t.Fatalf("completed = %d, want 2", agg.CompletedCount)
	}
	if agg.OverallPercent != 42 {
		t.Fatalf("overall percent = %d, want round(100*210/500) = 42", agg.OverallPercent)
	}
	if agg.ProgressPercent != 40 {
		t.Fatalf("progress percent = %d, want 40 (2 of 5 modules)", agg.ProgressPercent)
	}
}

func TestRecordResultRejectsUnknownIDs(t *testing.T) {
	ctx := context.Background()
	service := newTestProgress()

	if _, err := service.RecordResult(ctx, "u1", "nope", "x", 50); !errors.Is(err, domain.ErrModuleNotFound) {
		t.Fatalf("unknown module: %v", err)
	}
	if _, err := service.RecordResult(ctx, "u1", domain.ModuleGrundlagen, "nope", 50); !errors.Is(err, domain.ErrActivityNotFound) {
		t.Fatalf("unknown activity: %v", err)
	}
}

func TestStatementVerbFiltering(t *testing.T) {
	ctx := context.Background()
	service := newTestProgress()

	stmt := domain.Statement{
		ModuleID:   domain.ModuleGrundlagen,
		ActivityID: "einstieg",
		Verb:       domain.VerbProgressed,
		RawScore:   8,
		MaxScore:   10,
	}
	if _, scored, err := service.RecordStatement(ctx, "u1", stmt); err != nil || scored {
		t.Fatalf("progressed statement scored=%v err=%v, want ignored", scored, err)
	}
	if _, found, _ := service.store.Get(ctx, "u1", domain.ModuleGrundlagen); found {
		t.Fatal("ignored statement wrote a record")
	}

	stmt.Verb = domain.VerbAnswered
	if _, scored, err := service.RecordStatement(ctx, "u1", stmt); err != nil || !scored {
		t.Fatalf("answered statement scored=%v err=%v", scored, err)
	}
	record, _, _ := service.store.Get(ctx, "u1", domain.ModuleGrundlagen)
	if record.SubScores["einstieg"] != 80 {
		t.Fatalf("normalized percent = %d, want 80", record.SubScores["einstieg"])
	}

	stmt.Verb = domain.VerbCompleted
	stmt.RawScore = 10
	if _, scored, _ := service.RecordStatement(ctx, "u1", stmt); !scored {
		t.Fatal("completed statement not scored")
	}
}

func TestBadgeAndCertificateQueries(t *testing.T) {
	ctx := context.Background()
	service := newTestProgress()

	info, err := service.ModuleBadgeInfo(ctx, "u1", domain.ModuleGrundlagen)
	if err != nil {
		t.Fatalf("badge info: %v", err)
	}
	if info.Percent != 0 || info.Unlocked || info.Tier != domain.TierNone {
		t.Fatalf("empty module badge info = %+v", info)
	}

	complete := func(moduleID string, percent int) {
		t.Helper()
		module, _ := service.Catalog().Module(moduleID)
		for _, activity := range module.Activities {
			if _, err := service.RecordResult(ctx, "u1", moduleID, activity.ID, percent); err != nil {
				t.Fatalf("record: %v", err)
			}
		}
	}

	complete(domain.ModuleGrundlagen, 92)
	info, _ = service.ModuleBadgeInfo(ctx, "u1", domain.ModuleGrundlagen)
	if info.Percent != 92 || info.Tier != domain.TierGold || !info.Unlocked {
		t.Fatalf("badge info = %+v, want gold at 92%%", info)
	}

	cert, _ := service.CertificateInfo(ctx, "u1")
	if cert.Unlocked {
		t.Fatalf("certificate unlocked with 1 completed module: %+v", cert)
	}

	complete(domain.ModuleSteuersystem, 95)
	complete(domain.ModuleProContra, 95)
	cert, _ = service.CertificateInfo(ctx, "u1")
	// 92+95+95 = 282 of 500 = 56% overall: count met, average not.
	if cert.Unlocked {
		t.Fatalf("certificate unlocked below the average threshold: %+v", cert)
	}

	complete(domain.ModuleVertiefung, 95)
	cert, _ = service.CertificateInfo(ctx, "u1")
	if !cert.Unlocked || cert.CompletedCount != 4 {
		t.Fatalf("certificate info = %+v, want unlocked with 4 completed", cert)
	}
}

func TestUserOverviewListsAllModules(t *testing.T) {
	ctx := context.Background()
	service := newTestProgress()

	overview, err := service.UserOverview(ctx, "u1")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(overview.Modules) != len(service.Catalog().Modules) {
		t.Fatalf("overview lists %d modules, want %d", len(overview.Modules), len(service.Catalog().Modules))
	}
}
