package commands

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/layer-3/walletlink/core"
)

var (
	authURL   string
	mode      string
	scheme    string
	timeout   time.Duration
	verbose   bool
	redisURL  string
	printOnly bool
)

// Execute runs the walletlink CLI
func Execute() error {
	root := &cobra.Command{
		Use:           "walletlink",
		Short:         "Link a wallet to this machine through a browser signing flow",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaults := core.DefaultConfig()
	root.PersistentFlags().StringVar(&authURL, "auth-url", os.Getenv("WALLETLINK_AUTH_URL"), "URL of the signing web app (expected request origin)")
	root.PersistentFlags().StringVar(&mode, "mode", envOr("WALLETLINK_MODE", string(defaults.Mode)), "response variant: publickey or signed")
	root.PersistentFlags().StringVar(&scheme, "scheme", envOr("WALLETLINK_SCHEME", string(defaults.Scheme)), "signature scheme: ed25519 or ethereum")
	root.PersistentFlags().DurationVar(&timeout, "timeout", defaults.Timeout, "how long to wait for the browser callback")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", os.Getenv("WALLETLINK_LOGGING") == "true", "log session events")
	root.PersistentFlags().StringVar(&redisURL, "redis-url", os.Getenv("REDIS_URL"), "Redis URL for the replay guard and event stream")

	root.AddCommand(linkCmd())
	return root.ExecuteContext(context.Background())
}

func config() core.Config {
	cfg := core.DefaultConfig()
	cfg.AuthURL = authURL
	cfg.Mode = core.Mode(mode)
	cfg.Scheme = core.Scheme(scheme)
	cfg.Timeout = timeout
	cfg.UseLogging = verbose
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
