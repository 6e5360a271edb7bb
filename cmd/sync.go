package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/shophub/shopctl/internal/cache"
	"github.com/shophub/shopctl/internal/cache/postgres"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror your orders and the product catalog into local Postgres",
	Long: `Sync replaces the local snapshot tables with fresh copies fetched from
the API. The snapshot is a read-only mirror for offline inspection and
reporting; the API stays the source of truth.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if cfg.PostgresDSN == "" {
			fatal(fmt.Errorf("sync requires postgres_dsn in the config"))
		}
		mgr, _ := newAuthManager(cfg)
		ctx := context.Background()
		uid, client := resolveUser(ctx, cmd, cfg, mgr)

		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			fatal(fmt.Errorf("connecting to postgres: %w", err))
		}
		defer pool.Close()

		orderRepo := postgres.NewOrderRepository(pool)
		productRepo := postgres.NewProductRepository(pool)
		if err := orderRepo.EnsureSchema(ctx); err != nil {
			fatal(err)
		}
		if err := productRepo.EnsureSchema(ctx); err != nil {
			fatal(err)
		}

		opts := []cache.SyncerOption{}
		if all, _ := cmd.Flags().GetBool("all"); all {
			opts = append(opts, cache.WithAllOrders())
		}
		syncer := cache.NewSyncer(client, orderRepo, productRepo, opts...)
		result, err := syncer.Sync(ctx, uid)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("Synced %d orders and %d products\n", result.Orders, result.Products)
	},
}

func init() {
	syncCmd.Flags().Bool("all", false, "Mirror every order instead of your own")

	rootCmd.AddCommand(syncCmd)
}
