package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/contactdesk/internal/api"
	"github.com/dmitrymomot/contactdesk/internal/contact"
	"github.com/dmitrymomot/contactdesk/pkg/config"
	"github.com/dmitrymomot/contactdesk/pkg/email"
	"github.com/dmitrymomot/contactdesk/pkg/health"
	"github.com/dmitrymomot/contactdesk/pkg/httpserver"
	"github.com/dmitrymomot/contactdesk/pkg/logger"
	"github.com/dmitrymomot/contactdesk/pkg/mongo"
	"github.com/dmitrymomot/contactdesk/pkg/ratelimiter"
	"github.com/dmitrymomot/contactdesk/pkg/redis"
	"github.com/dmitrymomot/contactdesk/pkg/requestid"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg   api.Config
		mongoCfg mongo.Config
		redisCfg redis.Config
		httpCfg  httpserver.Config
		mailCfg  email.Config
	)
	if err := errors.Join(
		config.Load(&appCfg),
		config.Load(&mongoCfg),
		config.Load(&redisCfg),
		config.Load(&httpCfg),
		config.Load(&mailCfg),
	); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(appCfg.Environment, appCfg.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	conn := mongo.NewConnector(mongoCfg, mongo.WithLogger(log))
	repo := contact.NewRepository(conn)
	if mongoCfg.ConnectionURL == "" {
		log.Warn("MONGODB_URI is not set, database routes will answer 503",
			logger.Component("bootstrap"),
		)
	} else {
		go ensureIndexes(ctx, log, repo)
	}

	readiness := []func(context.Context) error{mongo.Healthcheck(conn)}
	stopHooks := []httpserver.Option{httpserver.WithStopHook(conn.Disconnect)}

	limiterStore, closeStore, redisCheck, err := rateLimitStore(ctx, log, redisCfg)
	if err != nil {
		return err
	}
	stopHooks = append(stopHooks, httpserver.WithStopHook(closeStore))
	if redisCheck != nil {
		readiness = append(readiness, redisCheck)
	}

	limiter, err := ratelimiter.NewBucket(limiterStore, ratelimiter.Config{
		Capacity:       appCfg.ContactRateLimit,
		RefillRate:     appCfg.ContactRateLimit,
		RefillInterval: appCfg.ContactRateInterval,
	})
	if err != nil {
		return err
	}

	serviceOpts := []contact.ServiceOption{contact.WithServiceLogger(log)}
	notifier, err := contactNotifier(log, mailCfg)
	if err != nil {
		return err
	}
	if notifier != nil {
		serviceOpts = append(serviceOpts, contact.WithNotifier(notifier))
	}

	router := api.NewRouter(api.Deps{
		Config:          appCfg,
		Logger:          log,
		DB:              conn,
		Reporter:        health.NewReporter(conn, appCfg.Environment, health.WithLogger(log)),
		Contacts:        contact.NewService(repo, serviceOpts...),
		ContactLimiter:  limiter,
		ReadinessChecks: readiness,
	})

	server := httpserver.NewFromConfig(httpCfg,
		append(stopHooks, httpserver.WithLogger(log))...,
	)
	log.Info("starting contactdesk",
		logger.Component("bootstrap"),
		slog.String("addr", httpCfg.Addr()),
		slog.String("env", appCfg.Environment.String()),
	)
	return server.Run(ctx, router)
}

// rateLimitStore picks Redis when REDIS_URL is set and memory otherwise.
func rateLimitStore(ctx context.Context, log *slog.Logger, cfg redis.Config) (ratelimiter.Store, func(context.Context) error, func(context.Context) error, error) {
	client, err := redis.Connect(ctx, cfg)
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		store := ratelimiter.NewMemoryStore()
		log.Info("rate limits kept in memory", logger.Component("bootstrap"))
		return store, func(context.Context) error { store.Close(); return nil }, nil, nil
	case err != nil:
		return nil, nil, nil, err
	}

	log.Info("rate limits shared through redis", logger.Component("bootstrap"))
	closeClient := func(context.Context) error { return client.Close() }
	return ratelimiter.NewRedisStore(client), closeClient, redis.Healthcheck(client), nil
}

// contactNotifier returns nil when CONTACT_NOTIFY_EMAIL is not set.
func contactNotifier(log *slog.Logger, cfg email.Config) (contact.Notifier, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	if !cfg.UsePostmark() {
		log.Info("contact notifications written to disk",
			logger.Component("bootstrap"),
			slog.String("dir", cfg.DevOutputDir),
		)
		return contact.NewMailNotifier(email.NewDevSender(cfg.DevOutputDir, log), cfg.NotifyEmail), nil
	}
	sender, err := email.NewPostmarkClient(cfg)
	if err != nil {
		return nil, err
	}
	return contact.NewMailNotifier(sender, cfg.NotifyEmail), nil
}

func ensureIndexes(ctx context.Context, log *slog.Logger, repo *contact.Repository) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.WarnContext(ctx, "contact indexes not ensured", logger.Component("bootstrap"), logger.Error(err))
	}
}
