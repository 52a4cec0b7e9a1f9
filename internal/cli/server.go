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
	"millionaire-game-service/internal/app"
	"millionaire-game-service/internal/config"
	"millionaire-game-service/internal/domain"
	"millionaire-game-service/internal/infra/memory"
	pgloader "millionaire-game-service/internal/infra/postgres"
	redisinfra "millionaire-game-service/internal/infra/redis"
	transport "millionaire-game-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game server",
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

	rules, err := gameRules(cfg)
	if err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 2*time.Hour)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.BankLoader = memory.NewStaticBankLoader(sampleBank())
	if pool != nil {
		loader = pgloader.NewBankLoader(pool)
	}

	bankTTL := config.TTLDuration(cfg.Game.BankTTL, 10*time.Minute)
	var bankRepo app.BankRepository
	if redisClient != nil {
		bankRepo = redisinfra.NewBankRepository(redisClient, loader, bankTTL)
	} else {
		bankRepo = memory.NewBankRepository(loader, bankTTL)
	}

	var sessions app.SessionRepository
	var balances app.BalanceRepository
	if redisClient != nil {
		sessions = redisinfra.NewSessionStore(redisClient, rules, redisTTL)
		balances = redisinfra.NewBalanceStore(redisClient)
	} else {
		sessions = memory.NewSessionStore()
		balances = memory.NewBalanceStore()
	}

	service := app.NewGameService(sessions, bankRepo, balances, rules)
	wsHandler := transport.NewWSHandler(service)

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
		log.Printf("starting game service on :%s", finalPort)
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

func gameRules(cfg config.Config) (app.Rules, error) {
	amounts := cfg.Game.Prizes
	fireproof := cfg.Game.Fireproof
	if len(amounts) == 0 {
		amounts = app.DefaultPrizeAmounts
		if len(fireproof) == 0 {
			fireproof = app.DefaultFireproofLevels
		}
	}
	table, err := app.NewPrizeTable(amounts, fireproof)
	if err != nil {
		return app.Rules{}, err
	}
	return app.Rules{
		Prizes:    table,
		TimeLimit: config.TTLDuration(cfg.Game.TimeLimit, app.DefaultTimeLimit),
	}, nil
}

// sampleBank provides a built-in 15-level bank; swap in the Postgres loader in production.
func sampleBank() domain.QuestionBank {
	questions := []domain.Question{
		{ID: "q0", Text: "Which planet is known as the Red Planet?", Level: 0, Answers: [4]string{"Mars", "Venus", "Jupiter", "Mercury"}},
		{ID: "q1", Text: "How many legs does a spider have?", Level: 1, Answers: [4]string{"Eight", "Six", "Ten", "Four"}},
		{ID: "q2", Text: "What is the capital of France?", Level: 2, Answers: [4]string{"Paris", "Lyon", "Marseille", "Nice"}},
		{ID: "q3", Text: "Which ocean is the largest?", Level: 3, Answers: [4]string{"Pacific", "Atlantic", "Indian", "Arctic"}},
		{ID: "q4", Text: "Who painted the Mona Lisa?", Level: 4, Answers: [4]string{"Leonardo da Vinci", "Michelangelo", "Raphael", "Donatello"}},
		{ID: "q5", Text: "What gas do plants absorb from the air?", Level: 5, Answers: [4]string{"Carbon dioxide", "Oxygen", "Nitrogen", "Helium"}},
		{ID: "q6", Text: "In which year did the Berlin Wall fall?", Level: 6, Answers: [4]string{"1989", "1991", "1985", "1979"}},
		{ID: "q7", Text: "Which element has the chemical symbol Au?", Level: 7, Answers: [4]string{"Gold", "Silver", "Aluminium", "Argon"}},
		{ID: "q8", Text: "Who wrote the novel 'War and Peace'?", Level: 8, Answers: [4]string{"Leo Tolstoy", "Fyodor Dostoevsky", "Anton Chekhov", "Ivan Turgenev"}},
		{ID: "q9", Text: "What is the longest river in the world?", Level: 9, Answers: [4]string{"Nile", "Amazon", "Yangtze", "Mississippi"}},
		{ID: "q10", Text: "Which composer became deaf later in life?", Level: 10, Answers: [4]string{"Beethoven", "Mozart", "Bach", "Haydn"}},
		{ID: "q11", Text: "What is the smallest prime number greater than 100?", Level: 11, Answers: [4]string{"101", "103", "107", "109"}},
		{ID: "q12", Text: "Which country hosted the first modern Olympic Games?", Level: 12, Answers: [4]string{"Greece", "France", "England", "Italy"}},
		{ID: "q13", Text: "What particle carries the electromagnetic force?", Level: 13, Answers: [4]string{"Photon", "Gluon", "Neutrino", "Boson W"}},
		{ID: "q14", Text: "Who was the first person to win two Nobel Prizes?", Level: 14, Answers: [4]string{"Marie Curie", "Linus Pauling", "John Bardeen", "Frederick Sanger"}},
	}
	return domain.QuestionBank{ID: "sample", Questions: questions}
}
