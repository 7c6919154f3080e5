package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"givelink/internal/auth"
	"givelink/internal/org"
	orgstore "givelink/internal/org/store"
	"givelink/internal/platform/config"
	"givelink/internal/platform/httpserver"
	"givelink/internal/platform/logger"
	"givelink/internal/platform/metrics"
	"givelink/internal/platform/middleware"
	platformredis "givelink/internal/platform/redis"
	"givelink/internal/qr"
	"givelink/internal/ratelimit"
	"givelink/internal/redirect"
	redirectlog "givelink/internal/redirect/log"
	"givelink/internal/registry"
	"givelink/internal/shortcode"
	httptransport "givelink/internal/transport/http"
)

// tokenValidator adapts the JWT service to the middleware's claim shape.
type tokenValidator struct {
	jwt *auth.JWTService
}

func (v tokenValidator) Validate(tokenString string) (middleware.Claims, error) {
	claims, err := v.jwt.ValidateToken(tokenString)
	if err != nil {
		return middleware.Claims{}, err
	}
	return middleware.Claims{OrgID: claims.OrgID, Email: claims.Email}, nil
}

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("configuration", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURI)
	if err != nil {
		log.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Error("database unreachable", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	directory := orgstore.NewPostgres(db)
	eventStore := redirectlog.NewPostgresStore(db)

	recorder := redirectlog.NewRecorder(0, log, m)
	var sink redirectlog.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := redirectlog.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			log.Error("kafka sink", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
	}
	worker := redirectlog.NewWorker(eventStore, sink, recorder.Inbox(), log, m)

	jwtService := auth.NewJWTService(cfg.JWTSigningKey, "givelink", 0)
	registryClient := registry.New(cfg.RegistryBaseURL, cfg.RegistryAPIKey, cfg.RegistryTimeout, log)
	hasher := auth.NewBcryptHasher()

	registrations := org.NewService(
		directory,
		registryClient,
		shortcode.New(),
		hasher,
		jwtService,
		qr.NewEncoder(),
		cfg.BaseURL,
		log,
		m,
	)
	logins := auth.NewLoginService(directory, hasher, jwtService, log)
	redirects := redirect.NewService(directory, recorder, log, m)

	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitPerMinute, time.Minute)
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		limiter = ratelimit.NewRedisLimiter(redisClient.Client, cfg.RateLimitPerMinute, time.Minute)
	}

	handler := httptransport.NewHandler(
		registrations,
		logins,
		redirects,
		eventStore,
		ratelimit.NewMiddleware(limiter, log, m),
		tokenValidator{jwt: jwtService},
		log,
		m,
	)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(ctx)
	})
	g.Go(func() error {
		log.Info("starting givelink", "addr", cfg.Addr, "base_url", cfg.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
