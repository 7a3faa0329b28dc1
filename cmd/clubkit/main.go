package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/clubkitlabs/clubkit/internal/agegroup"
	"github.com/clubkitlabs/clubkit/internal/audit"
	"github.com/clubkitlabs/clubkit/internal/bundle"
	"github.com/clubkitlabs/clubkit/internal/catalog"
	"github.com/clubkitlabs/clubkit/internal/clock"
	"github.com/clubkitlabs/clubkit/internal/config"
	"github.com/clubkitlabs/clubkit/internal/location"
	"github.com/clubkitlabs/clubkit/internal/membership"
	"github.com/clubkitlabs/clubkit/internal/migration"
	"github.com/clubkitlabs/clubkit/internal/observability"
	"github.com/clubkitlabs/clubkit/internal/pricing"
	"github.com/clubkitlabs/clubkit/internal/redis"
	"github.com/clubkitlabs/clubkit/internal/scheduler"
	"github.com/clubkitlabs/clubkit/internal/seed"
	"github.com/clubkitlabs/clubkit/internal/server"
	"github.com/clubkitlabs/clubkit/internal/term"
	"github.com/clubkitlabs/clubkit/pkg/db"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "clubkit",
		Short:   "Clubkit membership admin backend",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newServeCmd(), newSeedCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the admin API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed()
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations, then start the admin API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			runServe()
			return nil
		},
	}
}

func runMigrate() error {
	app := fx.New(
		observability.Module,
		config.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runSeed() error {
	app := fx.New(
		observability.Module,
		config.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		fx.Invoke(seed.EnsureDemoData),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		observability.Module,
		config.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		location.Module,
		agegroup.Module,
		term.Module,
		catalog.Module,
		pricing.Module,
		membership.Module,
		bundle.Module,
		audit.Module,
		scheduler.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}
