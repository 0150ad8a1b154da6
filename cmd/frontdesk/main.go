package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"frontdesk/internal/app/commands"
	blocksapp "frontdesk/internal/app/handlers/blocks"
	bookingapp "frontdesk/internal/app/handlers/booking"
	gridapp "frontdesk/internal/app/handlers/grid"
	ratesapp "frontdesk/internal/app/handlers/rates"
	"frontdesk/internal/app/middleware"
	appoutbox "frontdesk/internal/app/outbox"
	"frontdesk/internal/app/policies"
	"frontdesk/internal/app/queries"
	"frontdesk/internal/app/snapshot"
	"frontdesk/internal/infra/broker/kafka"
	"frontdesk/internal/infra/config"
	inframongo "frontdesk/internal/infra/db/mongo"
	ginserver "frontdesk/internal/infra/http/gin"
	"frontdesk/internal/infra/obs"
	infraoutbox "frontdesk/internal/infra/outbox"
	"frontdesk/internal/infra/pms"
	"frontdesk/internal/infra/storage/memory"
	redisstore "frontdesk/internal/infra/storage/redis"
	pmssync "frontdesk/internal/infra/sync"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	app, cleanup, err := buildApplication(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: func() error {
			if !app.snapshots.Loaded() {
				return snapshot.ErrNotLoaded
			}
			return nil
		},
	}, app.handlers)

	// The first refresh may race a PMS that is still starting; readiness
	// stays false until one succeeds, the ticker below keeps retrying.
	refreshCtx, cancel := context.WithTimeout(ctx, cfg.PMSTimeout+5*time.Second)
	if err := app.snapshots.Refresh(refreshCtx); err != nil {
		logger.Warn("initial snapshot refresh failed", "error", err)
	}
	cancel()

	go refreshLoop(ctx, app.snapshots, cfg.RefreshInterval, logger)
	app.startBackground(ctx, cfg, logger)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers  ginserver.Handlers
	snapshots *snapshot.Store
	producer  *kafka.Producer
	worker    *infraoutbox.Worker
	consumer  *kafka.Consumer
	topics    []string
}

func buildApplication(cfg config.Config, logger *slog.Logger) (*application, func(), error) {
	cleanups := []func(){}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	pmsClient := pms.NewClient(cfg.PMSBaseURL, cfg.PMSTimeout, logger)

	var source snapshot.Source = pmsClient
	var outboxStore appoutbox.Outbox = memory.NewOutbox()
	var mongoStore *infraoutbox.Store
	if cfg.MongoURI != "" {
		mc, err := inframongo.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = mc.Close(closeCtx)
		})
		source = inframongo.NewCachedSource(mc.DB, pmsClient, logger)
		mongoStore = infraoutbox.NewStore(mc.DB)
		outboxStore = mongoStore
		logger.Info("mongo connected", "db", cfg.MongoDB)
	}

	var idStore middleware.IdempotencyStore = memory.NewIdempotencyStore(cfg.IdempotencyTTL)
	if cfg.RedisAddr != "" {
		rs := redisstore.NewIdempotencyStore(cfg.RedisAddr, cfg.IdempotencyTTL)
		cleanups = append(cleanups, func() { _ = rs.Close() })
		idStore = rs
		logger.Info("redis idempotency store enabled", "addr", cfg.RedisAddr)
	}

	encoder := appoutbox.JSONEventEncoder{}
	snapshots := &snapshot.Store{
		Source:      source,
		HorizonDays: cfg.HorizonDays,
		Logger:      logger,
		Outbox:      outboxStore,
		Encoder:     encoder,
	}
	var refresher policies.Refresher = snapshots

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.SplitBookingCommand{}.Key(), &bookingapp.SplitBookingHandler{
		Snapshots: snapshots,
		Booking:   pmsClient,
		Refresher: refresher,
		Outbox:    outboxStore,
		Encoder:   encoder,
		Logger:    logger,
	})
	commands.RegisterHandler(commandBus, ratesapp.BulkUpdateRatesCommand{}.Key(), &ratesapp.BulkUpdateRatesHandler{
		Rates:   pmsClient,
		Outbox:  outboxStore,
		Encoder: encoder,
		Logger:  logger,
	})
	commands.RegisterHandler(commandBus, blocksapp.UnblockDatesCommand{}.Key(), &blocksapp.UnblockHandler{
		Snapshots: snapshots,
		Blocks:    pmsClient,
		Refresher: refresher,
		Outbox:    outboxStore,
		Encoder:   encoder,
		Logger:    logger,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, gridapp.GetGridQuery{}.Key(), &gridapp.GetGridHandler{
		Snapshots:        snapshots,
		DefaultCellWidth: cfg.CellWidthPx,
	})
	queries.RegisterHandler(queryBus, gridapp.CheckRangeQuery{}.Key(), &gridapp.CheckRangeHandler{
		Snapshots: snapshots,
	})

	structValidator := middleware.NewStructValidator()
	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Validation(structValidator),
		middleware.Idempotency(idStore, nil),
		middleware.OutboxFlush(outboxStore),
	)
	queryBusWithMiddleware := middleware.ChainQueries(
		queryBus,
		middleware.QueryValidation(structValidator),
	)

	app := &application{
		handlers: ginserver.Handlers{
			Grid:    ginserver.GridHandler{Queries: queryBusWithMiddleware},
			Booking: ginserver.BookingHandler{Commands: commandBusWithMiddleware},
			Rates:   ginserver.RatesHandler{Commands: commandBusWithMiddleware},
			Blocks:  ginserver.BlocksHandler{Commands: commandBusWithMiddleware},
		},
		snapshots: snapshots,
		topics:    cfg.KafkaSyncTopics,
	}

	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, func() { _ = producer.Close() })
		app.producer = producer
		if mongoStore != nil {
			app.worker = &infraoutbox.Worker{
				Store:       mongoStore,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Source:      "app://frontdesk",
				Backoff:     cfg.RetryBackoff,
			}
		}
		if len(cfg.KafkaSyncTopics) > 0 {
			consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaConsumerGroup, nil, &pmssync.RefreshHandler{
				Refresher: refresher,
				Logger:    logger,
			})
			if err != nil {
				cleanup()
				return nil, nil, err
			}
			cleanups = append(cleanups, func() { _ = consumer.Close() })
			app.consumer = consumer
		}
	}

	return app, cleanup, nil
}

func (a *application) startBackground(ctx context.Context, cfg config.Config, logger *slog.Logger) {
	if a.worker != nil {
		go func() {
			if err := a.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
		logger.Info("outbox worker started", "interval", cfg.OutboxPollInterval)
	}
	if a.consumer != nil {
		go func() {
			if err := a.consumer.Run(ctx, a.topics); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("kafka consumer stopped", "error", err)
			}
		}()
		logger.Info("kafka sync consumer started", "topics", a.topics)
	}
}

func refreshLoop(ctx context.Context, store *snapshot.Store, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.Refresh(ctx); err != nil {
				logger.Warn("periodic snapshot refresh failed", "error", err)
			}
		}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
