package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shophub/shopctl/internal/auth"
	"github.com/shophub/shopctl/internal/models"
)

var registerCmd = &cobra.Command{
	Use:   "register <email> <password>",
	Short: "Create a ShopHub account and sign in",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		mgr, sessions := newAuthManager(cfg)
		ctx := context.Background()

		firebase := auth.NewFirebase(cfg.FirebaseAPIKey)
		session, err := firebase.SignUpWithEmail(ctx, args[0], args[1])
		if err != nil {
			fatal(err)
		}
		name, _ := cmd.Flags().GetString("name")
		session.DisplayName = name
		if err := sessions.Save(session); err != nil {
			fatal(err)
		}

		client := newAPIClient(cfg, mgr)
		profile, err := client.RegisterProfile(ctx, models.Profile{
			UID:         session.UID,
			Email:       session.Email,
			DisplayName: name,
			Role:        models.RoleUser,
			Provider:    models.ProviderEmail,
		})
		if err != nil {
			fatal(err)
		}
		fmt.Printf("Welcome to ShopHub, %s (%s)\n", profile.Email, profile.Role)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Sign in to ShopHub",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		mgr, sessions := newAuthManager(cfg)
		ctx := context.Background()

		firebase := auth.NewFirebase(cfg.FirebaseAPIKey)
		session, err := firebase.SignInWithEmail(ctx, args[0], args[1])
		if err != nil {
			fatal(err)
		}
		if err := sessions.Save(session); err != nil {
			fatal(err)
		}

		// the profile fills in the display name the token response lacks
		client := newAPIClient(cfg, mgr)
		if profile, err := client.ProfileByUID(ctx, session.UID); err == nil {
			session.DisplayName = profile.DisplayName
			_ = sessions.Save(session)
			fmt.Printf("Signed in as %s (%s)\n", profile.Email, profile.Role)
			return
		}
		fmt.Printf("Signed in as %s\n", session.Email)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the local session",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		_, sessions := newAuthManager(cfg)
		if err := sessions.Clear(); err != nil {
			fatal(err)
		}
		fmt.Println("Signed out.")
	},
}

func init() {
	registerCmd.Flags().String("name", "", "Display name")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd)
}
