package store

import (
	"context"

	"github.com/redis/go-redis/v9"

	"newsline/internal/activity"
)

// RedisActivity is an activity.Store keeping per-user counters in
// Redis hashes, enough for a simple activity dashboard.
type RedisActivity struct {
	client *redis.Client
}

// NewRedisActivity creates a Redis-backed activity store.
func NewRedisActivity(client *redis.Client) *RedisActivity {
	return &RedisActivity{client: client}
}

func (r *RedisActivity) SaveStoryPosted(ctx context.Context, event *activity.StoryPostedEvent) error {
	pipe := r.client.Pipeline()
	pipe.Incr(ctx, "activity:posted")
	pipe.HIncrBy(ctx, "activity:posted_by_user", event.Username, 1)
	_, err := pipe.Exec(ctx)

	return err
}

func (r *RedisActivity) SaveStoryRemoved(ctx context.Context, event *activity.StoryRemovedEvent) error {
	pipe := r.client.Pipeline()
	pipe.Incr(ctx, "activity:removed")
	pipe.HIncrBy(ctx, "activity:removed_by_user", event.Username, 1)
	_, err := pipe.Exec(ctx)

	return err
}

func (r *RedisActivity) SaveFavoriteChanged(ctx context.Context, event *activity.FavoriteChangedEvent) error {
	delta := int64(1)
	if !event.Favorited {
		delta = -1
	}

	return r.client.HIncrBy(ctx, "activity:favorites_by_story", event.StoryID, delta).Err()
}
