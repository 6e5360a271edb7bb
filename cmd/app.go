package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shophub/shopctl/internal/api"
	"github.com/shophub/shopctl/internal/auth"
	"github.com/shophub/shopctl/internal/events"
	"github.com/shophub/shopctl/internal/events/producers"
	"github.com/shophub/shopctl/internal/models"
	"github.com/shophub/shopctl/internal/store"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func loadConfig() *models.Config {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func newAuthManager(cfg *models.Config) (*auth.Manager, *auth.SessionStore) {
	sessions := auth.NewSessionStore(cfg.SessionFile())
	firebase := auth.NewFirebase(cfg.FirebaseAPIKey)
	return auth.NewManager(firebase, sessions), sessions
}

// newAPIClient wires the REST client with the signed-in session as its token
// source. Pass nil tokens for calls that work unauthenticated (demo mode).
func newAPIClient(cfg *models.Config, tokens api.TokenSource) *api.Client {
	opts := []api.Option{
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		api.WithRetry(cfg.MaxRetries, cfg.RetryBackoff),
	}
	if tokens != nil {
		opts = append(opts, api.WithTokenSource(tokens))
	}
	return api.New(cfg.APIBaseURL, opts...)
}

// currentSession resolves the signed-in user or exits with a hint to log in.
func currentSession(ctx context.Context, mgr *auth.Manager) auth.Session {
	session, err := mgr.Current(ctx)
	if err != nil {
		fatal(err)
	}
	return session
}

// resolveUser returns the acting user id plus a matching API client. The
// --user flag bypasses the login session entirely, which is how the CLI
// talks to a demo server that has no Firebase behind it.
func resolveUser(ctx context.Context, cmd *cobra.Command, cfg *models.Config, mgr *auth.Manager) (string, *api.Client) {
	if uid, _ := cmd.Flags().GetString("user"); uid != "" {
		return uid, newAPIClient(cfg, nil)
	}
	session := currentSession(ctx, mgr)
	return session.UID, newAPIClient(cfg, mgr)
}

func openCart(cfg *models.Config) *store.CartStore {
	cart, err := store.NewCartStore(cfg.CartFile())
	if err != nil {
		fatal(err)
	}
	return cart
}

// newEmitter builds the activity-event emitter from config. Events are
// best-effort: a sink that cannot be constructed disables emission instead
// of failing the command.
func newEmitter(cfg *models.Config) *events.Emitter {
	if !cfg.EventsEnabled {
		return nil
	}
	var sink events.Sink
	switch cfg.EventsSink {
	case "kafka":
		producer, err := producers.NewSaramaProducer(cfg.KafkaBrokerList)
		if err != nil {
			log.Printf("Failed to create Kafka event sink, events disabled: %v", err)
			return nil
		}
		sink = producer
	case "file":
		path := cfg.EventsFile
		if path == "" {
			path = filepath.Join(cfg.StateDir, "events")
		}
		sink = events.NewFileSink(path)
	default:
		sink = &events.ConsoleSink{}
	}
	return events.NewEmitter(sink, cfg.KafkaTopic)
}
