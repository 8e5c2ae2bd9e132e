package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/layer-3/walletlink/adapters/events"
	"github.com/layer-3/walletlink/core"
	"github.com/layer-3/walletlink/ports"
)

// LinkService runs wallet link sessions end to end
type LinkService struct {
	authURL   string
	mode      core.Mode
	replayTTL time.Duration

	listener ports.CallbackListener
	opener   ports.BrowserOpener
	verifier ports.Verifier

	// Optional collaborators
	tokens    ports.SessionTokenSource
	tokenizer ports.Tokenizer
	store     ports.Store
	eventPub  ports.EventPublisher
	logger    watermill.LoggerAdapter
	now       func() time.Time
}

// Option configures optional LinkService collaborators
type Option func(*LinkService)

// WithSessionTokens appends a token from source to the browser URL
func WithSessionTokens(source ports.SessionTokenSource) Option {
	return func(s *LinkService) { s.tokens = source }
}

// WithTokenizer mints a link token for every linked wallet
func WithTokenizer(tokenizer ports.Tokenizer) Option {
	return func(s *LinkService) { s.tokenizer = tokenizer }
}

// WithReplayStore rejects signatures that were already consumed
func WithReplayStore(store ports.Store) Option {
	return func(s *LinkService) { s.store = store }
}

// WithEventPublisher publishes session outcomes
func WithEventPublisher(pub ports.EventPublisher) Option {
	return func(s *LinkService) { s.eventPub = pub }
}

// WithLogger sets the service logger
func WithLogger(logger watermill.LoggerAdapter) Option {
	return func(s *LinkService) { s.logger = logger }
}

// NewLinkService creates a new wallet link service
func NewLinkService(
	cfg core.Config,
	listener ports.CallbackListener,
	opener ports.BrowserOpener,
	verifier ports.Verifier,
	opts ...Option,
) *LinkService {
	s := &LinkService{
		authURL:   cfg.AuthURL,
		mode:      cfg.Mode,
		replayTTL: cfg.ReplayTTL,
		listener:  listener,
		opener:    opener,
		verifier:  verifier,
		eventPub:  events.NopPublisher{},
		logger:    watermill.NopLogger{},
		now:       time.Now,
	}
	if s.replayTTL <= 0 {
		s.replayTTL = core.DefaultReplayTTL
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildAuthURL returns the browser URL pointing the signing flow at port
func BuildAuthURL(authURL string, port int, sessionToken string) (string, error) {
	u, err := url.Parse(authURL)
	if err != nil {
		return "", fmt.Errorf("invalid auth url: %w", err)
	}

	query := u.Query()
	query.Set("port", strconv.Itoa(port))
	if sessionToken != "" {
		query.Set("token", sessionToken)
	}
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// Authenticate runs one wallet link session. It returns nil without an error
// when the callback did not produce a wallet identity.
func (s *LinkService) Authenticate(ctx context.Context) (*core.LinkedWallet, error) {
	var sessionToken string
	if s.tokens != nil {
		token, err := s.tokens.SessionToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to obtain session token: %w", err)
		}
		sessionToken = token
	}

	listenCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var openErr error
	outcome, err := s.listener.ListenSession(listenCtx, func(port int) {
		target, err := BuildAuthURL(s.authURL, port, sessionToken)
		if err == nil {
			err = s.opener.Open(target)
		}
		if err != nil {
			openErr = err
			s.logger.Error("Failed to open authenticator", err, watermill.LogFields{"port": port})
			cancel()
		}
	})
	if err != nil {
		if errors.Is(err, core.ErrSessionAbandoned) && openErr != nil {
			return nil, fmt.Errorf("failed to open authenticator: %w", openErr)
		}
		return nil, err
	}

	wallet, reason := s.accept(ctx, outcome)
	if reason != nil {
		s.reject(ctx, outcome.SessionID, reason)
		return nil, nil
	}

	if s.tokenizer != nil {
		token, err := s.tokenizer.WalletToToken(wallet)
		if err != nil {
			return nil, fmt.Errorf("failed to create link token: %w", err)
		}
		wallet.Token = token
	}

	if err := s.eventPub.PublishLinked(ctx, wallet); err != nil {
		// The wallet is already linked; the event is best effort
		s.logger.Error("Failed to publish linked event", err, watermill.LogFields{"session_id": wallet.SessionID})
	}
	s.logger.Info("Wallet linked", watermill.LogFields{
		"session_id": wallet.SessionID,
		"address":    wallet.Address,
		"verified":   wallet.Verified,
	})

	return wallet, nil
}

// accept turns a resolved session into a linked wallet or a rejection reason
func (s *LinkService) accept(ctx context.Context, outcome core.Outcome) (*core.LinkedWallet, error) {
	if outcome.Reason != nil {
		return nil, outcome.Reason
	}
	resp := outcome.Response
	if resp == nil {
		return nil, core.ErrMalformedPayload
	}

	wallet := &core.LinkedWallet{
		SessionID: outcome.SessionID,
		Address:   resp.Address(),
		PublicKey: append([]byte(nil), resp.PublicKey...),
		LinkedAt:  s.now(),
	}

	if s.mode != core.ModeSigned {
		return wallet, nil
	}

	if resp.Kind != core.KindSigned {
		return nil, core.ErrVerificationFailed
	}

	key := signatureKey(resp)
	if s.store != nil {
		consumed, err := s.store.IsConsumed(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to check signature replay: %w", err)
		}
		if consumed {
			return nil, core.ErrSignatureReplayed
		}
	}

	if !s.verifier.Verify(resp) {
		return nil, core.ErrVerificationFailed
	}
	wallet.Address = s.verifier.Address(resp)
	wallet.Scheme = s.verifier.Scheme()
	wallet.Verified = true

	if s.store != nil {
		fresh, err := s.store.MarkConsumed(ctx, key, s.replayTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to check signature replay: %w", err)
		}
		if !fresh {
			return nil, core.ErrSignatureReplayed
		}
	}

	return wallet, nil
}

func (s *LinkService) reject(ctx context.Context, sessionID string, reason error) {
	s.logger.Info("Wallet callback rejected", watermill.LogFields{
		"session_id": sessionID,
		"reason":     reason.Error(),
	})
	if err := s.eventPub.PublishRejected(ctx, sessionID, reason); err != nil {
		s.logger.Error("Failed to publish rejected event", err, watermill.LogFields{"session_id": sessionID})
	}
}

// signatureKey identifies a signed response for replay detection
func signatureKey(resp *core.WalletResponse) string {
	h := sha256.New()
	h.Write(resp.PublicKey)
	h.Write([]byte{0})
	h.Write(resp.Signature)
	return hex.EncodeToString(h.Sum(nil))
}
