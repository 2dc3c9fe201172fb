package activity

import "time"

// Topics for story activity events.
const (
	TopicStoryPosted     = "story.posted"
	TopicStoryRemoved    = "story.removed"
	TopicFavoriteChanged = "favorite.changed"
)

// StoryPostedEvent is emitted after a story is successfully submitted.
type StoryPostedEvent struct {
	StoryID  string    `json:"storyId"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Username string    `json:"username"`
	PostedAt time.Time `json:"postedAt"`
}

// StoryRemovedEvent is emitted after a story is successfully deleted.
type StoryRemovedEvent struct {
	StoryID   string    `json:"storyId"`
	Username  string    `json:"username"`
	RemovedAt time.Time `json:"removedAt"`
}

// FavoriteChangedEvent is emitted after a favorite toggle is confirmed
// by the remote service.
type FavoriteChangedEvent struct {
	StoryID   string    `json:"storyId"`
	Username  string    `json:"username"`
	Favorited bool      `json:"favorited"`
	ChangedAt time.Time `json:"changedAt"`
}
