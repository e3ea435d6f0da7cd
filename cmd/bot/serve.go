package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/poolbot/internal/config"
	"github.com/KirkDiggler/poolbot/internal/handlers/discord"
	"github.com/KirkDiggler/poolbot/internal/intent"
	"github.com/KirkDiggler/poolbot/internal/metrics"
	buyinRepo "github.com/KirkDiggler/poolbot/internal/repositories/buyin"
	"github.com/KirkDiggler/poolbot/internal/repositories/lock"
	rosterRepo "github.com/KirkDiggler/poolbot/internal/repositories/roster"
	sessionRepo "github.com/KirkDiggler/poolbot/internal/repositories/session"
	"github.com/KirkDiggler/poolbot/internal/repositories/store"
	"github.com/KirkDiggler/poolbot/internal/services/approval"
	"github.com/KirkDiggler/poolbot/internal/services/projector"
	"github.com/KirkDiggler/poolbot/internal/services/roster"
	"github.com/KirkDiggler/poolbot/internal/services/session"
	"github.com/KirkDiggler/poolbot/internal/services/status"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to Discord and serve the /pool command (default)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	if err := cfg.RequireDiscord(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, dialect, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Migrate(ctx, db, dialect); err != nil {
		return fmt.Errorf("migrate %s store: %w", dialect, err)
	}
	logger.Info("store ready", "dialect", string(dialect))

	locker, closeLocker, err := newLocker(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeLocker()

	dg, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		return err
	}

	bot, err := wire(cfg, db, locker, dg, logger)
	if err != nil {
		return err
	}

	srv := startMetrics(cfg, db, logger)

	if err := bot.Start(); err != nil {
		return fmt.Errorf("start bot: %w", err)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to stop metrics server", "error", err)
		}
	}

	return bot.Stop()
}

// wire builds repositories, services and the bot over one store
func wire(cfg *config.Config, db *sql.DB, locker lock.Locker, dg *discordgo.Session, logger *slog.Logger) (*discord.Bot, error) {
	sessions, err := sessionRepo.NewSQL(&sessionRepo.Config{DB: db})
	if err != nil {
		return nil, err
	}
	participants, err := rosterRepo.NewSQL(&rosterRepo.Config{DB: db})
	if err != nil {
		return nil, err
	}
	buyins, err := buyinRepo.NewSQL(&buyinRepo.Config{DB: db})
	if err != nil {
		return nil, err
	}

	proj, err := projector.New(&projector.Config{RosterRepo: participants, BuyInRepo: buyins})
	if err != nil {
		return nil, err
	}

	messenger, err := discord.NewMessenger(&discord.MessengerConfig{Session: dg})
	if err != nil {
		return nil, err
	}

	publisher, err := status.New(&status.Config{
		SessionRepo: sessions,
		Projector:   proj,
		Messenger:   messenger,
		Locker:      locker,
		LeaseTTL:    cfg.LeaseTTL,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	sessionSvc, err := session.New(&session.Config{
		SessionRepo: sessions,
		BuyInRepo:   buyins,
		Notifier:    publisher,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	rosterSvc, err := roster.New(&roster.Config{
		SessionRepo: sessions,
		RosterRepo:  participants,
		Notifier:    publisher,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	approvalSvc, err := approval.New(&approval.Config{
		SessionRepo: sessions,
		BuyInRepo:   buyins,
		Roster:      rosterSvc,
		Notifier:    publisher,
		Threshold:   cfg.VoteThreshold,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	dispatcher, err := intent.NewDispatcher(&intent.Config{
		Sessions: sessionSvc,
		Roster:   rosterSvc,
		Approval: approvalSvc,
		Status:   publisher,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	return discord.New(&discord.Config{
		Session:       dg,
		ApplicationID: cfg.ApplicationID,
		GuildID:       cfg.GuildID,
		Dispatcher:    dispatcher,
		Logger:        logger,
	})
}

// newLocker connects to Redis when configured, otherwise every lease is granted
func newLocker(ctx context.Context, cfg *config.Config, logger *slog.Logger) (lock.Locker, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info("no redis configured, status publishing is single-process")
		return lock.NoopLocker{}, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	locker, err := lock.NewRedis(&lock.Config{RedisClient: client})
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	return locker, func() { _ = client.Close() }, nil
}

// startMetrics serves /metrics and /healthz when an address is configured
func startMetrics(cfg *config.Config, db *sql.DB, logger *slog.Logger) *http.Server {
	if cfg.MetricsAddr == "" {
		return nil
	}

	srv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           metrics.NewRouter(db),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("serving metrics", "addr", cfg.MetricsAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()

	return srv
}
