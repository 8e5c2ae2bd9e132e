package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/layer-3/walletlink/adapters/netport"
	"github.com/layer-3/walletlink/core"
	"github.com/layer-3/walletlink/ports"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownGrace     = 5 * time.Second
)

// Listener owns the lifecycle of a one-shot loopback callback server.
// At most one session is live per Listener.
type Listener struct {
	authURL   string
	mode      core.Mode
	timeout   time.Duration
	allocator ports.PortAllocator
	logger    watermill.LoggerAdapter

	listening atomic.Bool
}

// NewListener creates a new callback listener
func NewListener(cfg core.Config, allocator ports.PortAllocator, logger watermill.LoggerAdapter) *Listener {
	if allocator == nil {
		allocator = netport.NewLoopbackAllocator()
	}
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	mode := cfg.Mode
	if mode == "" {
		mode = core.ModePublicKey
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = core.DefaultTimeout
	}

	return &Listener{
		authURL:   cfg.AuthURL,
		mode:      mode,
		timeout:   timeout,
		allocator: allocator,
		logger:    logger,
	}
}

// Listening reports whether a session is currently live
func (l *Listener) Listening() bool {
	return l.listening.Load()
}

// Listen runs one session and returns the wallet response, or nil when the
// callback was rejected.
func (l *Listener) Listen(ctx context.Context, onPortReady func(port int)) (*core.WalletResponse, error) {
	outcome, err := l.ListenSession(ctx, onPortReady)
	if err != nil {
		return nil, err
	}
	return outcome.Response, nil
}

// ListenSession binds a loopback server, calls onPortReady with its port and
// blocks until the first POST is handled or ctx is done. The server is closed
// before it returns, including when onPortReady panics.
func (l *Listener) ListenSession(ctx context.Context, onPortReady func(port int)) (core.Outcome, error) {
	if !l.listening.CompareAndSwap(false, true) {
		l.logger.Info("Wallet link session already in progress", nil)
		return core.Outcome{}, core.ErrSessionInProgress
	}
	defer l.listening.Store(false)

	if _, ok := ctx.Deadline(); !ok && l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	port, err := l.allocator.AllocatePort()
	if err != nil {
		return core.Outcome{}, fmt.Errorf("%w: %w", core.ErrBindFailed, err)
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(netport.LoopbackHost, strconv.Itoa(port)))
	if err != nil {
		return core.Outcome{}, fmt.Errorf("%w: %w", core.ErrBindFailed, err)
	}
	// Serve may not have taken ownership of ln yet when the session ends
	defer ln.Close()

	sess := newSession(port)
	logger := l.logger.With(watermill.LogFields{"session_id": sess.id, "port": port})

	server := &http.Server{
		Handler:           SetupRouter(newCallbackHandlers(l.authURL, l.mode, sess, logger), logger),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ln)
	}()
	defer l.shutdown(server, logger)
	logger.Info("Listening for wallet response", nil)

	if onPortReady != nil {
		onPortReady(port)
	}

	var (
		outcome core.Outcome
		result  error
	)
	select {
	case outcome = <-sess.done:
	case err := <-serveErr:
		result = fmt.Errorf("callback server stopped: %w", err)
	case <-ctx.Done():
		result = fmt.Errorf("%w: %w", core.ErrSessionAbandoned, ctx.Err())
	}

	if result != nil {
		logger.Error("Wallet link session failed", result, nil)
		return core.Outcome{SessionID: sess.id, Port: port}, result
	}
	return outcome, nil
}

func (l *Listener) shutdown(server *http.Server, logger watermill.LoggerAdapter) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Graceful shutdown failed, closing", err, nil)
		_ = server.Close()
	}
	logger.Info("Listener closed", nil)
}

var _ ports.CallbackListener = (*Listener)(nil)
