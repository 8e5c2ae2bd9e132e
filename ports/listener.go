package ports

import (
	"context"

	"github.com/layer-3/walletlink/core"
)

// PortAllocator finds a free loopback TCP port
type PortAllocator interface {
	AllocatePort() (int, error)
}

// CallbackListener runs one loopback callback session
type CallbackListener interface {
	Listen(ctx context.Context, onPortReady func(port int)) (*core.WalletResponse, error)
	ListenSession(ctx context.Context, onPortReady func(port int)) (core.Outcome, error)
}

// Verifier checks that a signed wallet response was produced by its key
type Verifier interface {
	Scheme() core.Scheme
	Verify(resp *core.WalletResponse) bool

	// Address renders the wallet identity in the scheme's conventional form
	Address(resp *core.WalletResponse) string
}

// BrowserOpener directs the user to the external signing flow
type BrowserOpener interface {
	Open(url string) error
}

// SessionTokenSource supplies an optional token appended to the browser URL
type SessionTokenSource interface {
	SessionToken(ctx context.Context) (string, error)
}
