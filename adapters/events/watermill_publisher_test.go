package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/layer-3/walletlink/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, messages <-chan *message.Message) *message.Message {
	t.Helper()
	select {
	case msg := <-messages:
		msg.Ack()
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestPublishLinked(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(context.Background(), TopicLinked)
	require.NoError(t, err)

	linkedAt := time.Now().UTC().Truncate(time.Second)
	err = NewWatermillPublisher(pubSub).PublishLinked(context.Background(), &core.LinkedWallet{
		SessionID: "s-1",
		Address:   "Test1234",
		Scheme:    core.SchemeEd25519,
		Verified:  true,
		LinkedAt:  linkedAt,
	})
	require.NoError(t, err)

	var event LinkedEvent
	require.NoError(t, json.Unmarshal(receive(t, messages).Payload, &event))
	assert.Equal(t, "s-1", event.SessionID)
	assert.Equal(t, "Test1234", event.Address)
	assert.Equal(t, "ed25519", event.Scheme)
	assert.True(t, event.Verified)
	assert.True(t, linkedAt.Equal(event.LinkedAt))
}

func TestPublishRejected(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(context.Background(), TopicRejected)
	require.NoError(t, err)

	err = NewWatermillPublisher(pubSub).PublishRejected(context.Background(), "s-2", errors.New("request origin mismatch"))
	require.NoError(t, err)

	var event RejectedEvent
	require.NoError(t, json.Unmarshal(receive(t, messages).Payload, &event))
	assert.Equal(t, "s-2", event.SessionID)
	assert.Equal(t, "request origin mismatch", event.Reason)
}
