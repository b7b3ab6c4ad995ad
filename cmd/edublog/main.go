// Command edublog is an interactive terminal client for the EduBlog API.
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

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edublog/edublog-client/internal/core/ports"
	"github.com/edublog/edublog-client/internal/core/service"
	"github.com/edublog/edublog-client/internal/infrastructure/db/redis"
	"github.com/edublog/edublog-client/internal/infrastructure/httpclient"
	"github.com/edublog/edublog-client/internal/infrastructure/memory"
	"github.com/edublog/edublog-client/internal/pkg/config"
	"github.com/edublog/edublog-client/pkg/logger"
)

func main() {
	metricsAddr := flag.String("metrics", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	flag.Parse()

	cfg := config.MustLoad()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, closeSession, err := newSessionStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Session.Backend).Msg("failed to open session store")
	}
	defer closeSession()

	policy, err := httpclient.ParseRolePolicy(cfg.RoleHeaderPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid role header policy")
	}

	client, err := httpclient.New(cfg.APIURL, session,
		httpclient.WithTimeout(cfg.HTTPTimeout),
		httpclient.WithRolePolicy(policy),
		httpclient.WithLogger(logger.Component("httpclient")),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create API client")
	}

	if *metricsAddr != "" {
		srv := serveMetrics(*metricsAddr, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	log.Info().
		Str("api_url", cfg.APIURL).
		Str("role_policy", policy.Name).
		Str("session_backend", cfg.Session.Backend).
		Msg("edublog client started")

	con := newConsole(os.Stdout)
	sh := newShell(shellDeps{
		auth:     service.NewAuthService(client, session, con, logger.Component("auth")),
		posts:    service.NewPostService(client, con, logger.Component("posts")),
		users:    service.NewUserService(client, con, logger.Component("users")),
		search:   client,
		debounce: cfg.SearchDebounce,
		log:      logger.Component("search"),
		con:      con,
	})
	defer sh.Close()

	if err := sh.Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	log.Info().Msg("edublog client stopped")
}

// newSessionStore builds the configured session backend. The returned func
// releases its resources.
func newSessionStore(ctx context.Context, cfg *config.Config) (ports.SessionStore, func(), error) {
	if cfg.Session.Backend != config.SessionRedis {
		return memory.NewSessionStore(), func() {}, nil
	}

	client, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Session.RedisAddr,
		DB:   cfg.Session.RedisDB,
	})
	if err != nil {
		return nil, nil, err
	}
	return redis.NewSessionStore(client, cfg.Session.KeyPrefix), func() { _ = client.Close() }, nil
}

func serveMetrics(addr string, log zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server failed")
		}
	}()
	log.Info().Str("addr", addr).Msg("serving metrics")
	return srv
}
