package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"civiclearn-quiz-service/internal/app"
	"civiclearn-quiz-service/internal/domain"
	pgstore "civiclearn-quiz-service/internal/infra/postgres"
	pgmigrations "civiclearn-quiz-service/internal/infra/postgres/migrations"
	infraredis "civiclearn-quiz-service/internal/infra/redis"
	"civiclearn-quiz-service/internal/questionbank"
	"civiclearn-quiz-service/internal/quiz"
)

func TestQuizProgressEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedBanks(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}

	loader := pgstore.NewBankLoader(pool)
	banks := infraredis.NewBankRepository(redisClient, loader, 5*time.Minute)
	snapshots := infraredis.NewSnapshotStore(redisClient, 5*time.Minute)
	progressStore := pgstore.NewProgressStore(pool)
	progress := app.NewProgressService(progressStore)
	sessions := app.NewSessionManager(banks, snapshots, progress, app.WithRevealDelay(0))

	// Play a full flashcard round, scoring 8 of 10.
	session, err := sessions.StartFlashcard(ctx, "code-1")
	if err != nil {
		t.Fatalf("start flashcard: %v", err)
	}
	playFlashcard(t, session, 8)

	record, found, err := progressStore.Get(ctx, "code-1", domain.ModuleSpielerisch)
	if err != nil || !found {
		t.Fatalf("progress row missing: found=%v err=%v", found, err)
	}
	if record.SubScores[domain.ActivityFlashcardQuiz] != 80 {
		t.Fatalf("stored percent = %d, want 80", record.SubScores[domain.ActivityFlashcardQuiz])
	}
	if record.Points != 40 || record.Completed {
		t.Fatalf("module state = points %d completed %v, want 40/false", record.Points, record.Completed)
	}

	// Win the tiered quiz; the module is then complete.
	tiered, err := sessions.StartTiered(ctx, "code-1")
	if err != nil {
		t.Fatalf("start tiered: %v", err)
	}
	winTiered(t, tiered)

	record, _, err = progressStore.Get(ctx, "code-1", domain.ModuleSpielerisch)
	if err != nil {
		t.Fatalf("reload progress: %v", err)
	}
	if record.Points != 90 || !record.Completed {
		t.Fatalf("module state = points %d completed %v, want 90/true", record.Points, record.Completed)
	}

	overview, err := progress.UserOverview(ctx, "code-1")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.Aggregate.TotalPoints != 90 || overview.Aggregate.CompletedCount != 1 {
		t.Fatalf("aggregate = %+v", overview.Aggregate)
	}
}

func TestSnapshotMirrorSurvivesReconnect(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedBanks(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}

	banks := infraredis.NewBankRepository(redisClient, pgstore.NewBankLoader(pool), 5*time.Minute)
	snapshots := infraredis.NewSnapshotStore(redisClient, 5*time.Minute)
	progress := app.NewProgressService(pgstore.NewProgressStore(pool))

	sessions := app.NewSessionManager(banks, snapshots, progress, app.WithRevealDelay(0))
	session, err := sessions.StartFlashcard(ctx, "code-2")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	snap := session.Snapshot()
	session.SelectAnswer(snap.Questions[0].CorrectIndex())
	session.Advance()
	sessions.Release(ctx, "code-2")

	// A second manager simulates a new process picking up the same user.
	rejoined := app.NewSessionManager(banks, snapshots, progress, app.WithRevealDelay(0))
	resumed, err := rejoined.StartFlashcard(ctx, "code-2")
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	got := resumed.Snapshot()
	if got.Position != 1 {
		t.Fatalf("resumed at position %d, want 1", got.Position)
	}
	if got.Questions[0].Prompt != snap.Questions[0].Prompt {
		t.Fatal("resumed round drew different questions")
	}
}

func playFlashcard(t *testing.T, session *quiz.FlashcardSession, correct int) {
	t.Helper()
	for i := 0; i < quiz.DefaultFlashcardDraw; i++ {
		snap := session.Snapshot()
		idx := snap.Questions[snap.Position].CorrectIndex()
		if i >= correct {
			idx = (idx + 1) % domain.AnswersPerQuestion
		}
		session.SelectAnswer(idx)
		session.Advance()
	}
}

func winTiered(t *testing.T, session *quiz.TieredSession) {
	t.Helper()
	for i := 0; i < questionbank.LadderLevels; i++ {
		snap := session.Snapshot()
		session.SelectAnswer(snap.Questions[snap.Level].CorrectIndex())
		session.ConfirmAnswer()
	}
	if !session.Snapshot().Won {
		t.Fatal("expected a winning run")
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedBanks(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for id, bank := range questionbank.Default() {
		data, err := json.Marshal(bank)
		if err != nil {
			t.Fatalf("marshal bank %s: %v", id, err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO banks (id, data) VALUES (?, ?::jsonb) ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data`, id, string(data)); err != nil {
			t.Fatalf("insert bank %s: %v", id, err)
		}
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
