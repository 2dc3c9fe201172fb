package activity

import "context"

// Store persists story activity events.
type Store interface {
	SaveStoryPosted(ctx context.Context, event *StoryPostedEvent) error
	SaveStoryRemoved(ctx context.Context, event *StoryRemovedEvent) error
	SaveFavoriteChanged(ctx context.Context, event *FavoriteChangedEvent) error
}
