package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "List and acknowledge notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notifications",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		mgr, _ := newAuthManager(cfg)
		ctx := context.Background()
		uid, client := resolveUser(ctx, cmd, cfg, mgr)

		notifications, err := client.Notifications(ctx, uid)
		if err != nil {
			fatal(err)
		}
		unreadOnly, _ := cmd.Flags().GetBool("unread")

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\t\tPRIORITY\tTITLE\tWHEN")
		shown := 0
		for _, n := range notifications {
			if unreadOnly && n.Read {
				continue
			}
			marker := "*"
			if n.Read {
				marker = " "
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				n.ID, marker, n.Priority, n.Title, n.CreatedAt.Format("2006-01-02 15:04"))
			shown++
		}
		w.Flush()
		if shown == 0 {
			fmt.Println("No notifications.")
		}
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <notification-id>",
	Short: "Mark a notification read",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		mgr, _ := newAuthManager(cfg)
		ctx := context.Background()
		_, client := resolveUser(ctx, cmd, cfg, mgr)

		if err := client.MarkNotificationRead(ctx, args[0]); err != nil {
			fatal(err)
		}
		fmt.Println("Marked read.")
	},
}

func init() {
	notificationsListCmd.Flags().Bool("unread", false, "Only show unread notifications")

	notificationsCmd.AddCommand(notificationsListCmd, notificationsReadCmd)
	rootCmd.AddCommand(notificationsCmd)
}
