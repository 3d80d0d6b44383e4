package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/lockup/internal/common/clock"
	"github.com/KirkDiggler/lockup/internal/common/logger"
	"github.com/KirkDiggler/lockup/internal/common/uuid"
	"github.com/KirkDiggler/lockup/internal/config"
	"github.com/KirkDiggler/lockup/internal/dice"
	"github.com/KirkDiggler/lockup/internal/handlers/api"
	"github.com/KirkDiggler/lockup/internal/handlers/discord"
	"github.com/KirkDiggler/lockup/internal/models"
	"github.com/KirkDiggler/lockup/internal/realtime/redispub"
	"github.com/KirkDiggler/lockup/internal/realtime/websocket"
	achievementRepo "github.com/KirkDiggler/lockup/internal/repositories/achievement"
	characterRepo "github.com/KirkDiggler/lockup/internal/repositories/character"
	counterRepo "github.com/KirkDiggler/lockup/internal/repositories/counter"
	"github.com/KirkDiggler/lockup/internal/services/achievement"
	"github.com/KirkDiggler/lockup/internal/services/catalog"
	"github.com/KirkDiggler/lockup/internal/services/confinement"
	"github.com/KirkDiggler/lockup/internal/services/crime"
	"github.com/KirkDiggler/lockup/internal/services/events"
	"github.com/KirkDiggler/lockup/internal/services/ledger"
	"github.com/KirkDiggler/lockup/internal/services/messaging"
	"github.com/KirkDiggler/lockup/internal/services/sweep"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "path to an optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}

	log.Info().Msg("server has been shut down")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// Initialize repositories
	characters, err := characterRepo.NewRedis(&characterRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create character repository: %w", err)
	}

	unlocks, closeUnlocks, err := newUnlockStore(ctx, cfg, redisClient, &log)
	if err != nil {
		return err
	}
	defer closeUnlocks()

	// Realtime transports
	hub, err := websocket.New(&websocket.Config{
		CheckOrigin: allowOrigins(cfg.Server.AllowedOrigins),
		Logger:      &log,
	})
	if err != nil {
		return fmt.Errorf("failed to create websocket hub: %w", err)
	}
	defer hub.Close()

	var relay *redispub.Relay
	var counters events.CounterStore
	transports := []events.Transport{hub}
	if cfg.Realtime.RedisFanout {
		publisher, err := redispub.New(&redispub.Config{
			RedisClient:   redisClient,
			ChannelPrefix: cfg.Realtime.ChannelPrefix,
		})
		if err != nil {
			return fmt.Errorf("failed to create redis publisher: %w", err)
		}

		relay, err = redispub.NewRelay(&redispub.RelayConfig{
			RedisClient:   redisClient,
			ChannelPrefix: cfg.Realtime.ChannelPrefix,
			Local:         hub,
			Logger:        &log,
		})
		if err != nil {
			return fmt.Errorf("failed to create redis relay: %w", err)
		}

		// Every instance, this one included, receives through the relay
		transports = []events.Transport{publisher}

		// Counts broadcast on the shared channel must come from shared keys
		counters, err = counterRepo.NewRedis(&counterRepo.Config{
			RedisClient: redisClient,
		})
		if err != nil {
			return fmt.Errorf("failed to create counter store: %w", err)
		}
	}

	// Initialize services
	clk := clock.New()
	ids := uuid.New()

	dispatcher, err := events.New(&events.Config{
		Transports:    transports,
		Clock:         clk,
		UUIDGenerator: ids,
		BufferSize:    cfg.Engine.EventBuffer,
		Counters:      counters,
		Logger:        &log,
	})
	if err != nil {
		return fmt.Errorf("failed to create event dispatcher: %w", err)
	}

	ledgerSvc, err := ledger.New(&ledger.Config{
		CharacterRepo: characters,
		Clock:         clk,
		LockTimeout:   cfg.Engine.LockTimeout,
		Logger:        &log,
	})
	if err != nil {
		return fmt.Errorf("failed to create ledger: %w", err)
	}

	catalogSvc, err := catalog.New(&catalog.Config{Crimes: cfg.Crimes})
	if err != nil {
		return fmt.Errorf("failed to create crime catalog: %w", err)
	}

	achievementSvc, err := achievement.New(&achievement.Config{
		Ledger:          ledgerSvc,
		AchievementRepo: unlocks,
		Events:          dispatcher,
		Clock:           clk,
		UUIDGenerator:   ids,
		Logger:          &log,
	})
	if err != nil {
		return fmt.Errorf("failed to create achievement service: %w", err)
	}

	confinementSvc, err := confinement.New(&confinement.Config{
		Ledger:       ledgerSvc,
		Events:       dispatcher,
		Achievements: achievementSvc,
		Clock:        clk,
		Pricing: &confinement.Pricing{CostPerMinute: map[models.ConfinementType]int64{
			models.ConfinementTypeHospital: cfg.Confinement.CostPerMinute.Hospital,
			models.ConfinementTypeJail:     cfg.Confinement.CostPerMinute.Jail,
		}},
		Logger: &log,
	})
	if err != nil {
		return fmt.Errorf("failed to create confinement service: %w", err)
	}

	crimeSvc, err := crime.New(&crime.Config{
		Catalog:      catalogSvc,
		Ledger:       ledgerSvc,
		Confinement:  confinementSvc,
		Achievements: achievementSvc,
		Events:       dispatcher,
		DiceRoller:   dice.New(&dice.Config{}),
		Clock:        clk,
		Logger:       &log,
	})
	if err != nil {
		return fmt.Errorf("failed to create crime service: %w", err)
	}

	sweeper, err := sweep.New(&sweep.Config{
		CharacterRepo: characters,
		Confinement:   confinementSvc,
		Achievements:  achievementSvc,
		Events:        dispatcher,
		Interval:      cfg.Engine.SweepInterval,
		Concurrency:   cfg.Engine.SweepConcurrency,
		Logger:        &log,
	})
	if err != nil {
		return fmt.Errorf("failed to create sweep: %w", err)
	}

	if err := sweeper.SeedCounters(ctx); err != nil {
		return fmt.Errorf("failed to seed confinement counters: %w", err)
	}

	handler, err := api.New(&api.Config{
		Crime:          crimeSvc,
		Confinement:    confinementSvc,
		Achievements:   achievementSvc,
		Catalog:        catalogSvc,
		WebSocket:      http.HandlerFunc(hub.ServeWS),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         &log,
	})
	if err != nil {
		return fmt.Errorf("failed to create http handler: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if cfg.Discord.Enabled() {
		msgSvc, err := messaging.New(&messaging.Config{})
		if err != nil {
			return fmt.Errorf("failed to create messaging service: %w", err)
		}

		bot, err := discord.New(&discord.Config{
			Token:         cfg.Discord.Token,
			ApplicationID: cfg.Discord.ApplicationID,
			GuildID:       cfg.Discord.GuildID,
			Crime:         crimeSvc,
			Confinement:   confinementSvc,
			Achievements:  achievementSvc,
			Catalog:       catalogSvc,
			Messaging:     msgSvc,
			Logger:        &log,
		})
		if err != nil {
			return fmt.Errorf("failed to create Discord bot: %w", err)
		}

		if err := bot.Start(); err != nil {
			return fmt.Errorf("failed to start Discord bot: %w", err)
		}
		defer func() {
			if err := bot.Stop(); err != nil {
				log.Warn().Err(err).Msg("error stopping Discord bot")
			}
		}()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		dispatcher.Run(gctx)
		return nil
	})

	g.Go(func() error {
		sweeper.Run(gctx)
		return nil
	})

	if relay != nil {
		g.Go(func() error {
			return relay.Run(gctx, nil)
		})
	}

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newUnlockStore builds the configured achievement unlock store and its
// cleanup func
func newUnlockStore(ctx context.Context, cfg *config.Config, redisClient *redis.Client, log *zerolog.Logger) (achievementRepo.Repository, func(), error) {
	switch cfg.Store.Unlocks {
	case config.StoreSQLite, config.StorePostgres:
		dialect, dsn := achievementRepo.DialectSQLite, cfg.Store.SQLitePath
		if cfg.Store.Unlocks == config.StorePostgres {
			dialect, dsn = achievementRepo.DialectPostgres, cfg.Store.PostgresDSN
		}

		repo, err := achievementRepo.NewSQL(ctx, &achievementRepo.SQLConfig{
			Dialect: dialect,
			DSN:     dsn,
			Logger:  log,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create %s unlock store: %w", dialect, err)
		}

		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Warn().Err(err).Msg("error closing unlock store")
			}
		}, nil
	default:
		repo, err := achievementRepo.NewRedis(&achievementRepo.Config{RedisClient: redisClient})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redis unlock store: %w", err)
		}
		return repo, func() {}, nil
	}
}

// allowOrigins returns a websocket origin check for the configured list;
// an empty list accepts every origin
func allowOrigins(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 {
		return func(r *http.Request) bool { return true }
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}

	return func(r *http.Request) bool {
		if _, ok := allowed["*"]; ok {
			return true
		}
		_, ok := allowed[r.Header.Get("Origin")]
		return ok
	}
}
