package walletlink

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/layer-3/walletlink/adapters/browser"
	"github.com/layer-3/walletlink/adapters/netport"
	"github.com/layer-3/walletlink/adapters/verifier"
	"github.com/layer-3/walletlink/core"
	"github.com/layer-3/walletlink/ports"
	"github.com/layer-3/walletlink/service"
	callback "github.com/layer-3/walletlink/transport/http"
)

// Options holds the optional collaborators of a Linker
type Options struct {
	Logger    watermill.LoggerAdapter
	Allocator ports.PortAllocator
	Opener    ports.BrowserOpener
	Tokens    ports.SessionTokenSource
	Tokenizer ports.Tokenizer
	Store     ports.Store
	Events    ports.EventPublisher
}

// Linker wires the callback listener and the link service
type Linker struct {
	listener  *callback.Listener
	service   *service.LinkService
	tokenizer ports.Tokenizer
}

// New creates a new Linker from cfg
func New(cfg core.Config, opts Options) (*Linker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	if !cfg.UseLogging {
		logger = watermill.NopLogger{}
	}

	allocator := opts.Allocator
	if allocator == nil {
		allocator = netport.NewLoopbackAllocator()
	}
	opener := opts.Opener
	if opener == nil {
		opener = browser.NewSystemOpener(logger)
	}

	v, err := verifier.ForScheme(cfg.Scheme)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, cfg.Scheme)
	}

	listener := callback.NewListener(cfg, allocator, logger)

	serviceOpts := []service.Option{service.WithLogger(logger)}
	if opts.Tokens != nil {
		serviceOpts = append(serviceOpts, service.WithSessionTokens(opts.Tokens))
	}
	if opts.Tokenizer != nil {
		serviceOpts = append(serviceOpts, service.WithTokenizer(opts.Tokenizer))
	}
	if opts.Store != nil {
		serviceOpts = append(serviceOpts, service.WithReplayStore(opts.Store))
	}
	if opts.Events != nil {
		serviceOpts = append(serviceOpts, service.WithEventPublisher(opts.Events))
	}

	return &Linker{
		listener:  listener,
		service:   service.NewLinkService(cfg, listener, opener, v, serviceOpts...),
		tokenizer: opts.Tokenizer,
	}, nil
}

// Authenticate opens the signing web app and returns the linked wallet,
// or nil when the callback was rejected
func (l *Linker) Authenticate(ctx context.Context) (*core.LinkedWallet, error) {
	return l.service.Authenticate(ctx)
}

// Listen runs a single callback session without opening a browser
func (l *Linker) Listen(ctx context.Context, onPortReady func(port int)) (*core.WalletResponse, error) {
	return l.listener.Listen(ctx, onPortReady)
}

// ParseToken validates a link token issued by Authenticate
func (l *Linker) ParseToken(token string) (*core.LinkedWallet, error) {
	if l.tokenizer == nil {
		return nil, core.ErrInvalidToken
	}
	return l.tokenizer.TokenToWallet(token)
}

var _ Client = (*Linker)(nil)
