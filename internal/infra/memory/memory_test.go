package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"civiclearn-quiz-service/internal/domain"
	"civiclearn-quiz-service/internal/questionbank"
)

func TestProgressStoreDetachesRecords(t *testing.T) {
	ctx := context.Background()
	store := NewProgressStore()

	record := domain.ModuleProgress{
		UserID:    "u1",
		ModuleID:  domain.ModuleSpielerisch,
		Points:    40,
		SubScores: map[string]int{domain.ActivityFlashcardQuiz: 80},
	}
	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("put: %v", err)
	}

	// Mutating the caller's map must not leak into the store.
	record.SubScores[domain.ActivityFlashcardQuiz] = 1

	got, found, err := store.Get(ctx, "u1", domain.ModuleSpielerisch)
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if got.SubScores[domain.ActivityFlashcardQuiz] != 80 {
		t.Fatalf("stored record aliased the caller's map: %v", got.SubScores)
	}

	// And mutating the returned copy must not touch the store either.
	got.SubScores[domain.ActivityFlashcardQuiz] = 2
	again, _, _ := store.Get(ctx, "u1", domain.ModuleSpielerisch)
	if again.SubScores[domain.ActivityFlashcardQuiz] != 80 {
		t.Fatal("returned record aliased stored state")
	}
}

func TestProgressStoreLastWriteWins(t *testing.T) {
	ctx := context.Background()
	store := NewProgressStore()

	first := domain.ModuleProgress{UserID: "u1", ModuleID: "m1", Points: 10, SubScores: map[string]int{"a": 20}}
	second := domain.ModuleProgress{UserID: "u1", ModuleID: "m1", Points: 50, SubScores: map[string]int{"a": 100}}
	_ = store.Put(ctx, first)
	_ = store.Put(ctx, second)

	got, _, _ := store.Get(ctx, "u1", "m1")
	if got.Points != 50 || got.SubScores["a"] != 100 {
		t.Fatalf("expected the later write, got %+v", got)
	}

	records, err := store.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("list returned %d records, want 1", len(records))
	}
}

func TestProgressStoreGetMissing(t *testing.T) {
	store := NewProgressStore()
	_, found, err := store.Get(context.Background(), "nobody", "m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatal("found a record that was never written")
	}
}

func TestSnapshotStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore()

	payload := []byte(`{"position":3}`)
	if err := store.Save(ctx, "u1", "wissensquiz", payload); err != nil {
		t.Fatalf("save: %v", err)
	}
	payload[0] = 'X' // the store must hold its own copy

	got, found, err := store.Load(ctx, "u1", "wissensquiz")
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if string(got) != `{"position":3}` {
		t.Fatalf("stored bytes aliased the caller's slice: %q", got)
	}

	if err := store.Delete(ctx, "u1", "wissensquiz"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := store.Load(ctx, "u1", "wissensquiz"); found {
		t.Fatal("snapshot survived delete")
	}
}

func TestSnapshotStoreKeysByUserAndQuiz(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore()

	_ = store.Save(ctx, "u1", "wissensquiz", []byte("a"))
	_ = store.Save(ctx, "u1", "millionenspiel", []byte("b"))
	_ = store.Save(ctx, "u2", "wissensquiz", []byte("c"))

	got, _, _ := store.Load(ctx, "u1", "millionenspiel")
	if string(got) != "b" {
		t.Fatalf("wrong snapshot for u1/millionenspiel: %q", got)
	}
	got, _, _ = store.Load(ctx, "u2", "wissensquiz")
	if string(got) != "c" {
		t.Fatalf("wrong snapshot for u2/wissensquiz: %q", got)
	}
}

// countingLoader wraps a loader and counts backing fetches.
type countingLoader struct {
	inner BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	l.calls++
	return l.inner.LoadBank(ctx, bankID)
}

func TestBankRepositoryCachesWithinTTL(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{inner: NewStaticBankLoader(questionbank.Default())}
	repo := NewBankRepository(loader, time.Minute)

	for i := 0; i < 5; i++ {
		if _, err := repo.GetBank(ctx, questionbank.FlashcardBankID); err != nil {
			t.Fatalf("get: %v", err)
		}
	}
	if loader.calls != 1 {
		t.Fatalf("loader hit %d times within TTL, want 1", loader.calls)
	}
}

func TestBankRepositoryRefetchesAfterExpiry(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{inner: NewStaticBankLoader(questionbank.Default())}
	repo := NewBankRepository(loader, time.Minute)

	now := time.Now()
	repo.clock = func() time.Time { return now }

	if _, err := repo.GetBank(ctx, questionbank.LadderBankID); err != nil {
		t.Fatalf("get: %v", err)
	}
	now = now.Add(2 * time.Minute) // past TTL even with jitter
	if _, err := repo.GetBank(ctx, questionbank.LadderBankID); err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("loader hit %d times across expiry, want 2", loader.calls)
	}
}

func TestBankRepositoryRejectsInvalidContent(t *testing.T) {
	broken := domain.Bank{ID: "broken", Kind: domain.BankKindPool}
	loader := NewStaticBankLoader(map[string]domain.Bank{"broken": broken})
	repo := NewBankRepository(loader, time.Minute)

	if _, err := repo.GetBank(context.Background(), "broken"); err == nil {
		t.Fatal("expected validation to reject an empty pool bank")
	}
}

func TestBankRepositoryUnknownBank(t *testing.T) {
	repo := NewBankRepository(NewStaticBankLoader(questionbank.Default()), time.Minute)
	_, err := repo.GetBank(context.Background(), "no-such-bank")
	if !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("err = %v, want ErrBankNotFound", err)
	}
}
