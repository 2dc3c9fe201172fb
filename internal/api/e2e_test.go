package api_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"newsline/internal/activity"
	"newsline/internal/api"
	"newsline/internal/messaging"
	"newsline/internal/server"
	"newsline/internal/session"
	"newsline/internal/stories"
	"newsline/internal/store"
)

// newStack runs the real router over an in-memory repository and
// returns a client pointed at it.
func newStack(t *testing.T) *api.Client {
	t.Helper()

	ids := 0
	newStoryID := func() string {
		ids++

		return fmt.Sprintf("story-%d", ids)
	}

	handler := server.NewHandler(store.NewMemory(), newStoryID, zap.NewNop())
	ts := httptest.NewServer(server.NewRouter(handler, nil, zap.NewNop()))
	t.Cleanup(ts.Close)

	return api.NewClient(ts.URL, ts.Client(), zap.NewNop())
}

func TestEndToEnd(t *testing.T) {
	ctx := context.Background()
	client := newStack(t)

	user, err := stories.Signup(ctx, client, "ada", "secret", "Ada")
	require.NoError(t, err)
	require.NotEmpty(t, user.Token())

	list, err := stories.LoadList(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Len())

	story, err := list.Add(ctx, user, stories.Draft{
		Title:  "First",
		Author: "Ada Lovelace",
		URL:    "https://example.com/first",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada", story.Username)
	assert.Equal(t, 1, list.Len())
	require.Len(t, user.OwnStories(), 1)

	require.NoError(t, user.AddFavorite(ctx, story))
	assert.True(t, user.IsFavorite(story))

	restored, ok := stories.Restore(ctx, client, user.Token(), "ada")
	require.True(t, ok)
	require.Len(t, restored.Favorites(), 1)
	assert.Equal(t, story.ID, restored.Favorites()[0].ID)

	require.NoError(t, user.RemoveFavorite(ctx, story))
	assert.False(t, user.IsFavorite(story))

	require.NoError(t, list.Remove(ctx, user, story.ID))
	assert.Equal(t, 0, list.Len())
	assert.Empty(t, user.OwnStories())

	again, err := stories.Login(ctx, client, "ada", "secret")
	require.NoError(t, err)
	assert.NotEqual(t, user.Token(), again.Token(), "login rotates the session token")

	_, err = stories.Login(ctx, client, "ada", "wrong")
	assert.ErrorIs(t, err, stories.ErrAuthRejected)

	_, ok = stories.Restore(ctx, client, user.Token(), "ada")
	assert.False(t, ok, "the rotated token no longer restores")
}

func TestSessionEndToEnd(t *testing.T) {
	ctx := context.Background()
	client := newStack(t)
	creds := store.NewMemoryCredentials()

	newSession := func() *session.Session {
		return session.New(
			client,
			creds,
			messaging.NoopPublish[activity.StoryPostedEvent](),
			messaging.NoopPublish[activity.StoryRemovedEvent](),
			messaging.NoopPublish[activity.FavoriteChangedEvent](),
			zap.NewNop(),
		)
	}

	first := newSession()
	require.NoError(t, first.Start(ctx))
	require.NoError(t, first.Signup(ctx, "grace", "secret", "Grace"))

	story, err := first.PostStory(ctx, stories.Draft{
		Title:  "Second",
		Author: "Grace Hopper",
		URL:    "https://example.com/second",
	})
	require.NoError(t, err)
	require.NoError(t, first.Favorite(ctx, story))

	// a fresh session restores from the persisted credentials
	second := newSession()
	require.NoError(t, second.Start(ctx))

	require.True(t, second.Authenticated())
	assert.Equal(t, "grace", second.User().Username())
	assert.Equal(t, 1, second.List().Len())
	require.Len(t, second.User().Favorites(), 1)
	assert.True(t, second.User().IsFavorite(story))

	second.Logout(ctx)

	third := newSession()
	require.NoError(t, third.Start(ctx))
	assert.False(t, third.Authenticated())
}
