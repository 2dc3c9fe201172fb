package messaging

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publish sends one typed event. Values are created with NewPublishFunc
// and bound to a single topic.
type Publish[T any] func(event *T) error

// NewPublishFunc binds a watermill publisher to a topic and an event
// type. The event is JSON-encoded and wrapped in a message with a
// fresh UUID.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		return publisher.Publish(topic, message.NewMessage(watermill.NewUUID(), payload))
	}
}

// NoopPublish returns a publish function that drops every event. It is
// the wiring for callers that run without a message broker.
func NoopPublish[T any]() Publish[T] {
	return func(*T) error { return nil }
}

// PublisherGroup owns the underlying publisher so its lifecycle is
// managed in one place while any number of typed publish functions
// share it.
type PublisherGroup struct {
	publisher message.Publisher
}

// NewPublisherGroup wraps a watermill publisher.
func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// Publisher exposes the shared publisher for NewPublishFunc.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the underlying publisher.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}
