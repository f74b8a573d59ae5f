// @title         deploytrack API
// @version       1.0
// @description   Component inventory, batch import, DM link lookup, API client and audit trail queries
// @securityDefinitions.apikey bearer
// @in header
// @name Authorization

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"deploytrack/internal/platform/config"
	"deploytrack/internal/platform/logger"
	phttp "deploytrack/internal/platform/net/http"
	"deploytrack/internal/platform/store"

	"deploytrack/internal/services/api"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// .env is optional, real env wins
	_ = godotenv.Load()

	logger.Init(logger.FromEnv())
	defer func() { _ = logger.Close() }()
	l := logger.Get()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stCfg, err := store.ConfigFrom(root, "deploytrack-api")
	if err != nil {
		l.Fatal().Err(err).Msg("store config")
	}
	st, err := store.Open(ctx, stCfg, store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if err := st.Migrate(ctx); err != nil {
		l.Fatal().Err(err).Msg("migrate failed")
	}

	srv := phttp.NewServer(apiCfg)
	mounted := api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})

	if root.MayBool("DB_SEED", false) {
		n, err := mounted.Components.Seed(ctx)
		if err != nil {
			l.Fatal().Err(err).Msg("seed failed")
		}
		l.Info().Int("components", n).Msg("seed done")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error { return mounted.Worker.Run(gctx) })

	if err := g.Wait(); err != nil {
		l.Error().Err(err).Msg("api stopped")
		os.Exit(1)
	}
	l.Info().Msg("api stopped")
}
