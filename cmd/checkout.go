package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shophub/shopctl/internal/checkout"
	"github.com/shophub/shopctl/internal/events"
	"github.com/shophub/shopctl/internal/models"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Turn the cart into an order",
	Long: `Checkout creates the order, runs the payment (unless paying cash on
delivery) and clears the cart. If the payment fails the order is rolled
back and the cart is left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		mgr, _ := newAuthManager(cfg)
		ctx := context.Background()
		uid, client := resolveUser(ctx, cmd, cfg, mgr)
		cart := openCart(cfg)

		address := models.ShippingAddress{}
		address.Street, _ = cmd.Flags().GetString("street")
		address.City, _ = cmd.Flags().GetString("city")
		address.District, _ = cmd.Flags().GetString("district")
		address.Division, _ = cmd.Flags().GetString("division")
		address.Zip, _ = cmd.Flags().GetString("zip")
		address.Country, _ = cmd.Flags().GetString("country")
		payment, _ := cmd.Flags().GetString("payment")

		orchestrator := checkout.New(client, cart, nil)
		result, err := orchestrator.Run(ctx, uid, address, payment)
		for _, step := range result.Steps {
			marker := map[checkout.StepStatus]string{
				checkout.StepCompleted: "ok",
				checkout.StepFailed:    "FAILED",
				checkout.StepSkipped:   "skipped",
				checkout.StepPending:   "-",
			}[step.Status]
			fmt.Printf("  %-22s %s\n", step.Name, marker)
		}
		if err != nil {
			fatal(err)
		}

		fmt.Printf("\nOrder %s placed, total %s\n", result.Order.OrderID, result.Order.Total.StringFixed(2))
		if result.Order.TrackingID != "" {
			fmt.Printf("Track it with: shopctl orders track %s\n", result.Order.TrackingID)
		}

		emitter := newEmitter(cfg)
		defer emitter.Close()
		emitter.EmitOrder(events.EventOrderPlaced, result.Order)
		emitter.Emit(events.EventCheckoutCompleted, events.ClientEvent{
			UserID: uid, OrderID: result.Order.OrderID,
		})
	},
}

func init() {
	checkoutCmd.Flags().String("street", "", "Street address")
	checkoutCmd.Flags().String("city", "", "City")
	checkoutCmd.Flags().String("district", "", "District")
	checkoutCmd.Flags().String("division", "", "Division")
	checkoutCmd.Flags().String("zip", "", "Postal code")
	checkoutCmd.Flags().String("country", "Bangladesh", "Country")
	checkoutCmd.Flags().String("payment", "card", "Payment method (card, cod)")

	rootCmd.AddCommand(checkoutCmd)
}
