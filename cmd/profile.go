package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shophub/shopctl/internal/imgbb"
	"github.com/shophub/shopctl/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your ShopHub profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the signed-in profile",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		mgr, _ := newAuthManager(cfg)
		ctx := context.Background()
		uid, client := resolveUser(ctx, cmd, cfg, mgr)

		profile, err := client.ProfileByUID(ctx, uid)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("UID:      %s\n", profile.UID)
		fmt.Printf("Email:    %s\n", profile.Email)
		fmt.Printf("Name:     %s\n", profile.DisplayName)
		fmt.Printf("Role:     %s\n", profile.Role)
		fmt.Printf("Provider: %s\n", profile.Provider)
		if profile.PhotoURL != "" {
			fmt.Printf("Photo:    %s\n", profile.PhotoURL)
		}
		fmt.Printf("Member since %s\n", profile.CreatedAt.Format("2006-01-02"))

		prefs := store.NewPrefsStore(cfg.PrefsFile())
		fmt.Printf("Theme:    %s\n", prefs.Theme())
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Update display name, photo or theme",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		mgr, _ := newAuthManager(cfg)
		ctx := context.Background()
		uid, client := resolveUser(ctx, cmd, cfg, mgr)

		if theme, _ := cmd.Flags().GetString("theme"); theme != "" {
			prefs := store.NewPrefsStore(cfg.PrefsFile())
			if err := prefs.SetTheme(theme); err != nil {
				fatal(err)
			}
			fmt.Printf("Theme set to %s\n", theme)
		}

		name, _ := cmd.Flags().GetString("name")
		photoPath, _ := cmd.Flags().GetString("photo")
		if name == "" && photoPath == "" {
			return
		}

		profile, err := client.ProfileByUID(ctx, uid)
		if err != nil {
			fatal(err)
		}
		if name != "" {
			profile.DisplayName = name
		}
		if photoPath != "" {
			// a failed photo upload shouldn't block the rest of the edit
			image, err := os.ReadFile(photoPath)
			if err != nil {
				fatal(err)
			}
			uploader := imgbb.New(cfg.ImgBBAPIKey)
			url, err := uploader.Upload(ctx, filepath.Base(photoPath), image)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: photo upload failed: %v\n", err)
			} else {
				profile.PhotoURL = url
			}
		}

		updated, err := client.RegisterProfile(ctx, profile)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("Profile updated: %s\n", updated.DisplayName)
	},
}

func init() {
	profileEditCmd.Flags().String("name", "", "New display name")
	profileEditCmd.Flags().String("photo", "", "Path to a profile photo to upload")
	profileEditCmd.Flags().String("theme", "", "UI theme preference (light, dark)")

	profileCmd.AddCommand(profileShowCmd, profileEditCmd)
	rootCmd.AddCommand(profileCmd)
}
