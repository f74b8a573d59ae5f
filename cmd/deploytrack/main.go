// Command deploytrack is the operator CLI: schema, seed data, batch imports and DM link lookups
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"deploytrack/internal/modkit"
	"deploytrack/internal/platform/config"
	"deploytrack/internal/platform/logger"
	"deploytrack/internal/platform/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	defer func() { _ = logger.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRoot().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "deploytrack",
		Short:         "deploytrack operator tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newImportCmd(), newDMLinksCmd())
	return root
}

// openStore opens and migrates the store named by DB_URL
func openStore(ctx context.Context) (*store.Store, modkit.Deps, error) {
	cfg := config.New()
	l := logger.Get()
	stCfg, err := store.ConfigFrom(cfg, "deploytrack-cli")
	if err != nil {
		return nil, modkit.Deps{}, err
	}
	st, err := store.Open(ctx, stCfg, store.WithLogger(*l))
	if err != nil {
		return nil, modkit.Deps{}, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close(ctx)
		return nil, modkit.Deps{}, err
	}
	return st, modkit.FromStore(st, cfg, *l), nil
}
