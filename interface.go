package walletlink

import (
	"context"

	"github.com/layer-3/walletlink/core"
)

// Client represents the public interface for linking a wallet
type Client interface {
	// Authenticate runs one browser session and returns the linked wallet,
	// or nil when the callback did not prove a wallet
	Authenticate(ctx context.Context) (*core.LinkedWallet, error)

	// Listen runs the bare callback session and returns the raw wallet response
	Listen(ctx context.Context, onPortReady func(port int)) (*core.WalletResponse, error)

	// ParseToken validates a link token minted by Authenticate
	ParseToken(token string) (*core.LinkedWallet, error)
}
