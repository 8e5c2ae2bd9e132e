package ports

import (
	"context"

	"github.com/layer-3/walletlink/core"
)

// EventPublisher notifies application code about link session outcomes
type EventPublisher interface {
	PublishLinked(ctx context.Context, wallet *core.LinkedWallet) error
	PublishRejected(ctx context.Context, sessionID string, reason error) error
}
