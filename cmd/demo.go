package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shophub/shopctl/internal/demo"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a local mock ShopHub API with seeded data",
	Long: `Demo starts an in-process HTTP server that implements the ShopHub API
surface with generated users, products, orders and notifications. Point
api_base_url at it to try the CLI without a backend.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.DemoAddr = addr
		}

		server := demo.NewServer(slog.Default())
		uid := server.SeedDefault()
		fmt.Printf("Mock API on http://%s\n", cfg.DemoAddr)
		fmt.Printf("Seeded demo user uid: %s\n", uid)
		fmt.Printf("Try: shopctl --api-base-url http://%s --user %s orders list\n", cfg.DemoAddr, uid)

		if err := server.ListenAndServe(cfg.DemoAddr); err != nil {
			fatal(err)
		}
	},
}

func init() {
	demoCmd.Flags().String("addr", "", "Listen address (default from config)")

	rootCmd.AddCommand(demoCmd)
}
