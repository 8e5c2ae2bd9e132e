package core

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Mode selects which wallet response variant the listener expects
type Mode string

const (
	// ModePublicKey expects a body of the form {"publicKey": "<text>"}
	ModePublicKey Mode = "publickey"

	// ModeSigned expects publicKey, message and signature byte fields
	ModeSigned Mode = "signed"
)

// Scheme names the signature algorithm used to verify signed responses
type Scheme string

const (
	SchemeEd25519  Scheme = "ed25519"
	SchemeEthereum Scheme = "ethereum"
)

const (
	// DefaultTimeout bounds how long a session waits for the browser callback
	DefaultTimeout = 5 * time.Minute

	// DefaultReplayTTL is how long consumed signatures are remembered
	DefaultReplayTTL = 24 * time.Hour
)

// Config holds the settings consumed by the wallet link core
type Config struct {
	AuthURL    string        // Expected request origin and browser redirect target
	UseLogging bool          // Emit diagnostic log lines
	Mode       Mode          // Response variant
	Scheme     Scheme        // Verification scheme for ModeSigned
	Timeout    time.Duration // Session deadline when the caller's context has none, zero means DefaultTimeout
	ReplayTTL  time.Duration // Replay guard retention
}

// DefaultConfig returns a configuration with every optional field set
func DefaultConfig() Config {
	return Config{
		Mode:      ModePublicKey,
		Scheme:    SchemeEd25519,
		Timeout:   DefaultTimeout,
		ReplayTTL: DefaultReplayTTL,
	}
}

// Validate checks the configuration for missing or unknown values
func (c Config) Validate() error {
	if strings.TrimSpace(c.AuthURL) == "" {
		return fmt.Errorf("%w: auth url is required", ErrInvalidConfig)
	}
	u, err := url.Parse(c.AuthURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: auth url %q must be absolute", ErrInvalidConfig, c.AuthURL)
	}

	switch c.Mode {
	case ModePublicKey, ModeSigned:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}

	switch c.Scheme {
	case SchemeEd25519, SchemeEthereum:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedScheme, c.Scheme)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}
