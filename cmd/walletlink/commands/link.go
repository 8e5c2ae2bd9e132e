package commands

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/layer-3/walletlink"
	"github.com/layer-3/walletlink/adapters/browser"
	"github.com/layer-3/walletlink/adapters/events"
	"github.com/layer-3/walletlink/adapters/store"
	"github.com/layer-3/walletlink/adapters/tokenizer"
)

func linkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Open the signing web app and wait for the wallet callback",
		RunE:  runLink,
	}
	cmd.Flags().BoolVar(&printOnly, "print-only", false, "print the URL instead of launching a browser")
	return cmd
}

func runLink(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg := config()
	logger := watermill.LoggerAdapter(watermill.NopLogger{})
	if cfg.UseLogging {
		logger = watermill.NewStdLogger(false, false)
	}

	// Link tokens are signed with a per-run key (you would normally load this from somewhere secure)
	signKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to generate signing key: %w", err)
	}

	opts := walletlink.Options{
		Logger:    logger,
		Tokenizer: tokenizer.NewJWTTokenizer(signKey),
		Store:     store.NewMemoryStore(),
	}
	if printOnly {
		opts.Opener = browser.PrintOpener{Out: cmd.OutOrStdout()}
	}

	if redisURL != "" {
		closeRedis, err := withRedis(ctx, &opts, logger)
		if err != nil {
			return err
		}
		defer closeRedis()
	}

	linker, err := walletlink.New(cfg, opts)
	if err != nil {
		return err
	}

	wallet, err := linker.Authenticate(ctx)
	if err != nil {
		return err
	}
	if wallet == nil {
		return errors.New("no verified wallet received")
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(wallet)
}

// withRedis switches the replay guard and event publisher to Redis
func withRedis(ctx context.Context, opts *walletlink.Options, logger watermill.LoggerAdapter) (func(), error) {
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: client,
		},
		logger,
	)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to create Redis publisher: %w", err)
	}

	opts.Store = store.NewRedisStore(client)
	opts.Events = events.NewWatermillPublisher(publisher)

	return func() {
		publisher.Close()
		client.Close()
	}, nil
}
