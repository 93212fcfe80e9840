package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/pestbooking/api"
	"github.com/Domenick1991/pestbooking/config"
	"github.com/Domenick1991/pestbooking/internal/bootstrap"
	"github.com/Domenick1991/pestbooking/internal/cache"
	"github.com/Domenick1991/pestbooking/internal/calendar"
	"github.com/Domenick1991/pestbooking/internal/catalog"
	"github.com/Domenick1991/pestbooking/internal/kafka"
	"github.com/Domenick1991/pestbooking/internal/logging"
	"github.com/Domenick1991/pestbooking/internal/metrics"
	"github.com/Domenick1991/pestbooking/internal/repository"
	"github.com/Domenick1991/pestbooking/internal/service/availability"
	"github.com/Domenick1991/pestbooking/internal/service/booking"
	"github.com/Domenick1991/pestbooking/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Production)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	if cfg.Log.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()
	if err := repository.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.CacheTTL())
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, availability is served uncached", zap.Error(err))
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers,
		kafka.WithRetries(3, 500*time.Millisecond),
		kafka.WithProducerLogger(logger))
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		logger.Warn("kafka unavailable, booking events may be lost", zap.Error(err))
	}

	holidays, err := calendar.NewHolidaySet(cfg.Holidays)
	if err != nil {
		logger.Fatal("holiday calendar", zap.Error(err))
	}
	evaluator := calendar.NewEvaluator(holidays)
	loc, err := cfg.Booking.Location()
	if err != nil {
		logger.Fatal("timezone", zap.Error(err))
	}
	packs, err := catalog.New(cfg.Packs, cfg.Booking.DefaultPack)
	if err != nil {
		logger.Fatal("pack catalog", zap.Error(err))
	}

	bookingMetrics := metrics.NewBookingMetrics(prometheus.DefaultRegisterer)

	bookingRepo := repository.NewBookingRepository(pool)
	bookingService := booking.NewBookingService(
		bookingRepo,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithLogger(logger),
	)
	availabilityService := availability.NewAvailabilityService(evaluator, loc,
		availability.WithCache(redisCache),
		availability.WithLogger(logger),
		availability.WithMetrics(bookingMetrics),
	)

	manager := session.NewManager(packs, session.Env{
		Evaluator:       evaluator,
		TimeSlots:       cfg.Booking.TimeSlots,
		Location:        loc,
		Submitter:       bookingService,
		SubmitTimeout:   cfg.Booking.SubmitTimeout(),
		ConfirmationURL: cfg.Booking.ConfirmationURL,
		Logger:          logger,
		Metrics:         bookingMetrics,
	}, cfg.Booking.SessionIdleTTL())

	limiters := bootstrap.NewLimiterStore(cfg.HTTP.RateLimitPerMinute, cfg.HTTP.RateLimitBurst)
	go sweep(ctx, manager, limiters, cfg.Booking.SessionIdleTTL(), time.Duration(cfg.Worker.SessionSweepMinutes)*time.Minute, logger)

	router := bootstrap.NewRouter(cfg.HTTP, bootstrap.Handlers{
		Packs:        api.NewPackHandler(packs),
		Availability: api.NewAvailabilityHandler(availabilityService),
		Sessions:     api.NewSessionHandler(manager),
		Bookings:     api.NewBookingHandler(bookingService),
		Limiters:     limiters,
	}, prometheus.DefaultGatherer, logger)

	if err := bootstrap.Run(ctx, cfg.HTTP.Address, router, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// sweep drops idle sessions and the rate limit buckets of clients gone quiet.
func sweep(ctx context.Context, manager *session.Manager, limiters *bootstrap.LimiterStore, idle, every time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions := manager.Sweep()
			clients := limiters.Evict(idle)
			if sessions > 0 || clients > 0 {
				log.Debug("sweep done", zap.Int("sessions", sessions), zap.Int("limiters", clients))
			}
		}
	}
}
