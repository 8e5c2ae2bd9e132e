package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/layer-3/walletlink/core"
	"github.com/layer-3/walletlink/ports"
)

const (
	TopicLinked   = "walletlink.linked"
	TopicRejected = "walletlink.rejected"
)

// LinkedEvent is published when a wallet is linked
type LinkedEvent struct {
	SessionID string    `json:"session_id"`
	Address   string    `json:"address"`
	Scheme    string    `json:"scheme,omitempty"`
	Verified  bool      `json:"verified"`
	LinkedAt  time.Time `json:"linked_at"`
}

// RejectedEvent is published when a callback does not produce a wallet
type RejectedEvent struct {
	SessionID string `json:"session_id"`
	Reason    string `json:"reason"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{
		publisher: publisher,
	}
}

// PublishLinked publishes a linked event
func (p *WatermillPublisher) PublishLinked(ctx context.Context, wallet *core.LinkedWallet) error {
	return p.publish(ctx, TopicLinked, LinkedEvent{
		SessionID: wallet.SessionID,
		Address:   wallet.Address,
		Scheme:    string(wallet.Scheme),
		Verified:  wallet.Verified,
		LinkedAt:  wallet.LinkedAt,
	})
}

// PublishRejected publishes a rejected event
func (p *WatermillPublisher) PublishRejected(ctx context.Context, sessionID string, reason error) error {
	event := RejectedEvent{SessionID: sessionID}
	if reason != nil {
		event.Reason = reason.Error()
	}
	return p.publish(ctx, TopicRejected, event)
}

func (p *WatermillPublisher) publish(ctx context.Context, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// NopPublisher discards all events
type NopPublisher struct{}

func (NopPublisher) PublishLinked(context.Context, *core.LinkedWallet) error { return nil }

func (NopPublisher) PublishRejected(context.Context, string, error) error { return nil }
