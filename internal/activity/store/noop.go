package store

import (
	"context"

	"go.uber.org/zap"

	"newsline/internal/activity"
)

// Noop is an activity.Store that only logs the events it receives.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a logging no-op activity store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveStoryPosted(_ context.Context, event *activity.StoryPostedEvent) error {
	n.logger.Info("story posted",
		zap.String("storyId", event.StoryID),
		zap.String("title", event.Title),
		zap.String("username", event.Username),
		zap.Time("postedAt", event.PostedAt),
	)

	return nil
}

func (n *Noop) SaveStoryRemoved(_ context.Context, event *activity.StoryRemovedEvent) error {
	n.logger.Info("story removed",
		zap.String("storyId", event.StoryID),
		zap.String("username", event.Username),
		zap.Time("removedAt", event.RemovedAt),
	)

	return nil
}

func (n *Noop) SaveFavoriteChanged(_ context.Context, event *activity.FavoriteChangedEvent) error {
	n.logger.Info("favorite changed",
		zap.String("storyId", event.StoryID),
		zap.String("username", event.Username),
		zap.Bool("favorited", event.Favorited),
	)

	return nil
}
