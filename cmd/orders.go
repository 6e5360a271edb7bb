package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shophub/shopctl/internal/controller"
	"github.com/shophub/shopctl/internal/events"
	"github.com/shophub/shopctl/internal/export"
	"github.com/shophub/shopctl/internal/export/cloudwriter"
	"github.com/shophub/shopctl/internal/models"
	"github.com/shophub/shopctl/internal/orderview"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Browse, track and manage your orders",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your orders with client-side filter, search and paging",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		mgr, _ := newAuthManager(cfg)
		ctx := context.Background()
		uid, client := resolveUser(ctx, cmd, cfg, mgr)

		status, _ := cmd.Flags().GetString("status")
		search, _ := cmd.Flags().GetString("search")
		page, _ := cmd.Flags().GetInt("page")
		admin, _ := cmd.Flags().GetBool("admin")

		opts := []controller.OrdersOption{}
		if admin {
			opts = append(opts, controller.WithAdminScope())
		}
		orders := controller.NewOrders(client, uid, opts...)
		if err := orders.Load(ctx); err != nil {
			fatal(err)
		}
		orders.SetStatusFilter(status)
		orders.SetSearch(search)
		orders.SetPage(page)

		stats := orders.Stats()
		fmt.Printf("%d orders, %s spent\n\n", stats.TotalOrders, stats.TotalSpent.StringFixed(2))

		visible := orders.Visible()
		if len(visible) == 0 {
			fmt.Println("No orders match.")
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ORDER\tSTATUS\tITEMS\tTOTAL\tPLACED")
		for _, order := range visible {
			badge := orderview.BadgeFor(order.Status)
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
				order.OrderID, badge.Label, len(order.Items),
				order.Total.StringFixed(2), order.CreatedAt.Format("2006-01-02"))
		}
		w.Flush()

		if orders.TotalPages() > 1 {
			fmt.Printf("\nPage %d of %d  %s\n", orders.Page(), orders.TotalPages(),
				formatPageNumbers(orders.PageNumbers(), orders.Page()))
		}
	},
}

var ordersGetCmd = &cobra.Command{
	Use:   "get <order-id>",
	Short: "Show one order in full, including its delivery timeline",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		mgr, _ := newAuthManager(cfg)
		ctx := context.Background()
		uid, client := resolveUser(ctx, cmd, cfg, mgr)

		order, err := client.Order(ctx, args[0])
		if err != nil {
			fatal(err)
		}
		printOrderDetail(order)

		emitter := newEmitter(cfg)
		defer emitter.Close()
		emitter.Emit(events.EventOrderViewed, events.ClientEvent{
			UserID: uid, OrderID: order.OrderID, Status: string(order.Status),
		})
	},
}

var ordersTrackCmd = &cobra.Command{
	Use:   "track <tracking-id>",
	Short: "Track an order by its tracking id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		mgr, _ := newAuthManager(cfg)
		ctx := context.Background()
		_, client := resolveUser(ctx, cmd, cfg, mgr)

		order, err := client.OrderByTracking(ctx, args[0])
		if err != nil {
			fatal(err)
		}
		printOrderDetail(order)
	},
}

var ordersStatusCmd = &cobra.Command{
	Use:   "status <order-id> <status>",
	Short: "Update an order's status (seller/admin)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		mgr, _ := newAuthManager(cfg)
		ctx := context.Background()
		_, client := resolveUser(ctx, cmd, cfg, mgr)

		order, err := client.UpdateOrderStatus(ctx, args[0], models.OrderStatus(args[1]))
		if err != nil {
			fatal(err)
		}
		fmt.Printf("Order %s is now %s\n", order.OrderID, orderview.BadgeFor(order.Status).Label)

		emitter := newEmitter(cfg)
		defer emitter.Close()
		emitter.EmitOrder(events.EventStatusUpdated, order)
	},
}

var ordersDeleteCmd = &cobra.Command{
	Use:   "delete <order-id>",
	Short: "Delete an order (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		mgr, _ := newAuthManager(cfg)
		ctx := context.Background()
		uid, client := resolveUser(ctx, cmd, cfg, mgr)

		if err := client.DeleteOrder(ctx, args[0]); err != nil {
			fatal(err)
		}
		fmt.Printf("Order %s deleted\n", args[0])

		emitter := newEmitter(cfg)
		defer emitter.Close()
		emitter.Emit(events.EventOrderDeleted, events.ClientEvent{
			UserID: uid, OrderID: args[0],
		})
	},
}

var ordersExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your order history as CSV, JSON lines or parquet",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		mgr, _ := newAuthManager(cfg)
		ctx := context.Background()
		uid, client := resolveUser(ctx, cmd, cfg, mgr)

		if f, _ := cmd.Flags().GetString("format"); f != "" {
			cfg.ExportFormat = f
		}
		if p, _ := cmd.Flags().GetString("output"); p != "" {
			cfg.ExportPath = p
		}
		if d, _ := cmd.Flags().GetString("destination"); d != "" {
			cfg.ExportDestination = d
		}
		if cfg.ExportPath == "" {
			cfg.ExportPath = "orders." + cfg.ExportFormat
		}

		var (
			orders []models.Order
			err    error
		)
		if all, _ := cmd.Flags().GetBool("all"); all {
			orders, err = client.AllOrders(ctx)
		} else {
			orders, err = client.OrdersByUser(ctx, uid)
		}
		if err != nil {
			fatal(err)
		}

		opts := []export.Option{export.WithProgress()}
		if cfg.ExportDestination == "s3" {
			factory, err := cloudwriter.NewS3WriterFactory(cfg.CloudStorage.Region)
			if err != nil {
				fatal(err)
			}
			opts = append(opts, export.WithCloudDestination(factory, cfg.CloudStorage.BucketName))
		}
		exporter, err := export.New(cfg.ExportFormat, cfg.ExportPath, opts...)
		if err != nil {
			fatal(err)
		}
		n, err := exporter.Export(orders)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("Exported %d orders to %s\n", n, cfg.ExportPath)
	},
}

func init() {
	ordersListCmd.Flags().String("status", models.StatusFilterAll, "Filter by status (all, processing, delivered, ...)")
	ordersListCmd.Flags().String("search", "", "Search order id, tracking id or item names")
	ordersListCmd.Flags().Int("page", 1, "Page to display")
	ordersListCmd.Flags().Bool("admin", false, "Fetch every order instead of your own")

	ordersExportCmd.Flags().String("format", "", "Export format (csv, json, parquet)")
	ordersExportCmd.Flags().String("output", "", "Output path or object key")
	ordersExportCmd.Flags().String("destination", "", "Destination (local, s3)")
	ordersExportCmd.Flags().Bool("all", false, "Export every order instead of your own")

	ordersCmd.AddCommand(ordersListCmd, ordersGetCmd, ordersTrackCmd,
		ordersStatusCmd, ordersDeleteCmd, ordersExportCmd)
	rootCmd.AddCommand(ordersCmd)
}

func printOrderDetail(order models.Order) {
	badge := orderview.BadgeFor(order.Status)
	fmt.Printf("Order %s  [%s]\n", order.OrderID, badge.Label)
	if order.TrackingID != "" {
		fmt.Printf("Tracking: %s\n", order.TrackingID)
	}
	fmt.Printf("Placed:   %s\n", order.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("Payment:  %s (%s)\n", order.PaymentStatus, order.PaymentMethod)
	if order.Rider != nil {
		fmt.Printf("Rider:    %s, %s (%s)\n", order.Rider.Name, order.Rider.Phone, order.Rider.Vehicle)
	}

	fmt.Println("\nItems:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, item := range order.Items {
		fmt.Fprintf(w, "  %s\tx%d\t%s\n", item.Name, item.Quantity, item.Price.StringFixed(2))
	}
	w.Flush()
	fmt.Printf("Subtotal: %s  Shipping: %s  Tax: %s  Total: %s\n",
		order.Subtotal.StringFixed(2), order.ShippingCost.StringFixed(2),
		order.Tax.StringFixed(2), order.Total.StringFixed(2))

	fmt.Println("\nProgress:")
	printTimeline(order)
}

func printTimeline(order models.Order) {
	tl := orderview.DeriveTimeline(order.Status, orderview.DefaultMilestones)
	if tl.Cancelled {
		fmt.Println("  x Order cancelled")
		for _, entry := range order.Timeline {
			fmt.Printf("    %s  %s %s\n", entry.Timestamp.Format("2006-01-02 15:04"), entry.Status, entry.Note)
		}
		return
	}
	if !tl.Known {
		fmt.Printf("  ? Status %q is not recognised by this client\n", order.Status)
		return
	}
	for _, step := range tl.Steps {
		marker := "[ ]"
		if step.Completed {
			marker = "[x]"
		}
		label := orderview.BadgeFor(step.Status).Label
		if step.Current {
			label += "  <- current"
		}
		fmt.Printf("  %s %s\n", marker, label)
	}
}

func formatPageNumbers(pages []int, current int) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		switch {
		case p == orderview.Ellipsis:
			parts = append(parts, "...")
		case p == current:
			parts = append(parts, fmt.Sprintf("[%d]", p))
		default:
			parts = append(parts, fmt.Sprintf("%d", p))
		}
	}
	return strings.Join(parts, " ")
}
