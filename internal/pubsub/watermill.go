package pubsub

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Reserved metadata keys. They are stripped before handlers see Message.Metadata.
const (
	metaTopic       = "topic"
	metaPublishedAt = "published_at"
)

// WatermillBridge is the in-process event bus: a watermill GoChannel behind the
// Publisher and Subscriber interfaces.
type WatermillBridge struct {
	channel *gochannel.GoChannel

	closeOnce sync.Once
	closeErr  error
}

// NewWatermillBridge creates the bus. debug turns on watermill's own debug logging.
func NewWatermillBridge(debug bool) *WatermillBridge {
	logger := watermill.NewStdLogger(debug, false)
	return &WatermillBridge{
		channel: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, logger),
	}
}

func toWatermill(ctx context.Context, msg Message) *message.Message {
	wm := message.NewMessage(watermill.NewUUID(), msg.Payload)
	for k, v := range msg.Metadata {
		wm.Metadata.Set(k, v)
	}
	wm.Metadata.Set(metaTopic, msg.Topic)
	wm.Metadata.Set(metaPublishedAt, time.Now().UTC().Format(time.RFC3339Nano))
	wm.SetContext(ctx)
	return wm
}

func fromWatermill(wm *message.Message) Message {
	msg := Message{
		Topic:    wm.Metadata.Get(metaTopic),
		Payload:  wm.Payload,
		Metadata: make(map[string]string, len(wm.Metadata)),
	}
	for k, v := range wm.Metadata {
		if k == metaTopic || k == metaPublishedAt {
			continue
		}
		msg.Metadata[k] = v
	}
	return msg
}

// Publish implements Publisher.
func (wb *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	return wb.channel.Publish(msg.Topic, toWatermill(ctx, msg))
}

// Subscribe implements Subscriber. Messages are handled on a background
// goroutine until ctx is canceled or the bridge is closed.
func (wb *WatermillBridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := wb.channel.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for wm := range messages {
			if err := handler(ctx, fromWatermill(wm)); err != nil {
				// A nacked message is redelivered by GoChannel without end.
				slog.Error("Event handler failed", "topic", topic, "msg_id", wm.UUID, "published_at", wm.Metadata.Get(metaPublishedAt), "error", err)
			}
			wm.Ack()
		}
		slog.Debug("Subscription ended", "topic", topic)
	}()

	return nil
}

// Close shuts the bus down. It is safe to call more than once.
func (wb *WatermillBridge) Close() error {
	wb.closeOnce.Do(func() {
		wb.closeErr = wb.channel.Close()
	})
	return wb.closeErr
}
