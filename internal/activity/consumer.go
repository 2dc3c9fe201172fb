package activity

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"

	"newsline/internal/messaging"
)

// NewConsumers builds one consumer per activity topic, each persisting
// its events to store. The returned consumers are meant to be added to
// a messaging.ConsumerGroup.
func NewConsumers(subscriber message.Subscriber, store Store, logger *zap.Logger) []messaging.Runnable {
	return []messaging.Runnable{
		messaging.NewConsumer(subscriber, TopicStoryPosted, store.SaveStoryPosted, logger),
		messaging.NewConsumer(subscriber, TopicStoryRemoved, store.SaveStoryRemoved, logger),
		messaging.NewConsumer(subscriber, TopicFavoriteChanged, store.SaveFavoriteChanged, logger),
	}
}
