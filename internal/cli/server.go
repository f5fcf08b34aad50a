package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"civiclearn-quiz-service/internal/app"
	"civiclearn-quiz-service/internal/config"
	"civiclearn-quiz-service/internal/infra/memory"
	pgstore "civiclearn-quiz-service/internal/infra/postgres"
	redisstore "civiclearn-quiz-service/internal/infra/redis"
	"civiclearn-quiz-service/internal/questionbank"
	"civiclearn-quiz-service/internal/quiz"
	transport "civiclearn-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	snapshotTTL := config.Duration(cfg.Redis.TTL, 24*time.Hour)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	// Banks: embedded content unless the document DB carries re-authored
	// versions; cached either way.
	var loader memory.BankLoader = memory.NewStaticBankLoader(questionbank.Default())
	if pool != nil {
		loader = pgstore.NewBankLoader(pool)
	}
	bankTTL := config.Duration(cfg.Banks.TTL, 10*time.Minute)
	var banks app.BankRepository
	if redisClient != nil {
		banks = redisstore.NewBankRepository(redisClient, loader, bankTTL)
	} else {
		banks = memory.NewBankRepository(loader, bankTTL)
	}

	var snapshots app.SnapshotStore
	if redisClient != nil {
		snapshots = redisstore.NewSnapshotStore(redisClient, snapshotTTL)
	} else {
		snapshots = memory.NewSnapshotStore()
	}

	var store app.ProgressStore
	if pool != nil {
		store = pgstore.NewProgressStore(pool)
	} else {
		store = memory.NewProgressStore()
	}

	progress := app.NewProgressService(store)
	revealDelay := config.Duration(cfg.Quiz.RevealDelay, quiz.DefaultRevealDelay)
	sessions := app.NewSessionManager(banks, snapshots, progress, app.WithRevealDelay(revealDelay))
	wsHandler := transport.NewWSHandler(sessions, progress)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
