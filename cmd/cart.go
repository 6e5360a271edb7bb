package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/shophub/shopctl/internal/events"
	"github.com/shophub/shopctl/internal/models"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the local cart",
	Long: `The cart lives on this machine only; the server never sees it until
checkout snapshots it into an order.`,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		mgr, _ := newAuthManager(cfg)
		ctx := context.Background()
		uid, client := resolveUser(ctx, cmd, cfg, mgr)

		product, err := client.Product(ctx, args[0])
		if err != nil {
			fatal(err)
		}
		qty, _ := cmd.Flags().GetInt("qty")
		if qty < 1 {
			qty = 1
		}
		cart := openCart(cfg)
		if err := cart.Add(models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  qty,
			Image:     product.Image,
		}); err != nil {
			fatal(err)
		}
		fmt.Printf("Added %dx %s, %d items in cart\n", qty, product.Name, cart.Len())

		emitter := newEmitter(cfg)
		defer emitter.Close()
		emitter.Emit(events.EventCartItemAdded, events.ClientEvent{
			UserID: uid, ProductID: product.ID,
		})
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a product from the cart",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		cart := openCart(cfg)
		if err := cart.Remove(args[0]); err != nil {
			fatal(err)
		}
		fmt.Printf("Removed %s, %d items in cart\n", args[0], cart.Len())

		emitter := newEmitter(cfg)
		defer emitter.Close()
		emitter.Emit(events.EventCartItemRemoved, events.ClientEvent{ProductID: args[0]})
	},
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <product-id> <quantity>",
	Short: "Change an item's quantity (zero removes it)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			fatal(fmt.Errorf("quantity must be a number: %w", err))
		}
		cfg := loadConfig()
		cart := openCart(cfg)
		if err := cart.UpdateQuantity(args[0], qty); err != nil {
			fatal(err)
		}
		fmt.Printf("Updated %s, %d items in cart\n", args[0], cart.Len())
	},
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart contents and subtotal",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		cart := openCart(cfg)
		items := cart.Items()
		if len(items) == 0 {
			fmt.Println("Cart is empty.")
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PRODUCT\tNAME\tQTY\tPRICE\tLINE")
		for _, item := range items {
			line := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
				item.ProductID, item.Name, item.Quantity,
				item.Price.StringFixed(2), line.StringFixed(2))
		}
		w.Flush()
		fmt.Printf("\nSubtotal: %s\n", cart.Subtotal().StringFixed(2))
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		cart := openCart(cfg)
		if err := cart.Clear(); err != nil {
			fatal(err)
		}
		fmt.Println("Cart cleared.")

		emitter := newEmitter(cfg)
		defer emitter.Close()
		emitter.Emit(events.EventCartCleared, events.ClientEvent{})
	},
}

func init() {
	cartAddCmd.Flags().Int("qty", 1, "Quantity to add")

	cartCmd.AddCommand(cartAddCmd, cartRemoveCmd, cartUpdateCmd, cartShowCmd, cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}
