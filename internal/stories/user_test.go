package stories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsline/internal/stories"
)

func TestSignup(t *testing.T) {
	t.Run("returns an authenticated user from the profile", func(t *testing.T) {
		svc := &mockService{
			signupProfile: stories.Profile{Username: "ada", Name: "Ada Lovelace"},
			signupToken:   "token-abc",
		}

		user, err := stories.Signup(context.Background(), svc, "ada", "secret", "Ada Lovelace")

		require.NoError(t, err)
		assert.Equal(t, "ada", user.Username())
		assert.Equal(t, "Ada Lovelace", user.Name())
		assert.Equal(t, "token-abc", user.Token())
		assert.Empty(t, user.OwnStories())
		assert.Empty(t, user.Favorites())
	})

	t.Run("propagates rejected credentials", func(t *testing.T) {
		svc := &mockService{signupErr: stories.ErrAuthRejected}

		user, err := stories.Signup(context.Background(), svc, "ada", "secret", "Ada Lovelace")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, stories.ErrAuthRejected)
	})
}

func TestLogin(t *testing.T) {
	t.Run("returns an authenticated user with sub-collections", func(t *testing.T) {
		own := testStory("s1", "First")
		fav := testStory("s2", "Second")
		svc := &mockService{
			loginProfile: stories.Profile{
				Username:   "ada",
				Name:       "Ada Lovelace",
				OwnStories: []stories.Story{own},
				Favorites:  []stories.Story{fav},
			},
			loginToken: "token-abc",
		}

		user, err := stories.Login(context.Background(), svc, "ada", "secret")

		require.NoError(t, err)
		require.Len(t, user.OwnStories(), 1)
		require.Len(t, user.Favorites(), 1)
		assert.Equal(t, own.ID, user.OwnStories()[0].ID)
		assert.Equal(t, fav.ID, user.Favorites()[0].ID)
	})

	t.Run("distinguishes rejection from unavailability", func(t *testing.T) {
		rejected := &mockService{loginErr: stories.ErrAuthRejected}
		unavailable := &mockService{loginErr: stories.ErrRemoteUnavailable}

		_, errRejected := stories.Login(context.Background(), rejected, "ada", "wrong")
		_, errUnavailable := stories.Login(context.Background(), unavailable, "ada", "secret")

		assert.ErrorIs(t, errRejected, stories.ErrAuthRejected)
		assert.NotErrorIs(t, errRejected, stories.ErrRemoteUnavailable)
		assert.ErrorIs(t, errUnavailable, stories.ErrRemoteUnavailable)
	})

	t.Run("signup and login yield identical collections for one account", func(t *testing.T) {
		own := testStory("s1", "First")
		fav := testStory("s2", "Second")
		profile := stories.Profile{
			Username:   "ada",
			Name:       "Ada Lovelace",
			OwnStories: []stories.Story{own},
			Favorites:  []stories.Story{fav},
		}
		svc := &mockService{
			signupProfile: profile, signupToken: "t1",
			loginProfile: profile, loginToken: "t2",
		}

		signedUp, err := stories.Signup(context.Background(), svc, "ada", "secret", "Ada Lovelace")
		require.NoError(t, err)

		loggedIn, err := stories.Login(context.Background(), svc, "ada", "secret")
		require.NoError(t, err)

		assert.Equal(t, signedUp.Username(), loggedIn.Username())
		assert.Equal(t, signedUp.OwnStories(), loggedIn.OwnStories())
		assert.Equal(t, signedUp.Favorites(), loggedIn.Favorites())
	})
}

func TestRestore(t *testing.T) {
	t.Run("resumes a session from a valid token", func(t *testing.T) {
		svc := &mockService{userProfile: stories.Profile{Username: "ada", Name: "Ada Lovelace"}}

		user, ok := stories.Restore(context.Background(), svc, "token-abc", "ada")

		require.True(t, ok)
		assert.Equal(t, "ada", user.Username())
		assert.Equal(t, "token-abc", user.Token())
	})

	t.Run("reports absence instead of an error on any failure", func(t *testing.T) {
		svc := &mockService{userErr: stories.ErrAuthRejected}

		user, ok := stories.Restore(context.Background(), svc, "bad-token", "alice")

		assert.False(t, ok)
		assert.Nil(t, user)
	})
}

func TestUser_AddFavorite(t *testing.T) {
	t.Run("marks the story immediately", func(t *testing.T) {
		svc := &mockService{}
		user := loggedInUser(t, svc)
		story := testStory("s1", "First")

		err := user.AddFavorite(context.Background(), story)

		require.NoError(t, err)
		assert.True(t, user.IsFavorite(story))
		assert.Equal(t, 1, svc.addFavCalls)
	})

	t.Run("rolls back and surfaces the error on remote failure", func(t *testing.T) {
		svc := &mockService{addFavErr: errRemote}
		user := loggedInUser(t, svc)
		story := testStory("s1", "First")

		err := user.AddFavorite(context.Background(), story)

		assert.ErrorIs(t, err, errRemote)
		assert.False(t, user.IsFavorite(story))
	})

	t.Run("is a no-op when already a favorite", func(t *testing.T) {
		svc := &mockService{}
		user := loggedInUser(t, svc)
		story := testStory("s1", "First")

		require.NoError(t, user.AddFavorite(context.Background(), story))
		require.NoError(t, user.AddFavorite(context.Background(), story))

		assert.Len(t, user.Favorites(), 1)
		assert.Equal(t, 1, svc.addFavCalls)
	})

	t.Run("fails with ErrUnauthenticated without a token", func(t *testing.T) {
		svc := &mockService{}
		user := anonymousUser(t, svc)

		err := user.AddFavorite(context.Background(), testStory("s1", "First"))

		assert.ErrorIs(t, err, stories.ErrUnauthenticated)
		assert.Zero(t, svc.addFavCalls)
	})
}

func TestUser_RemoveFavorite(t *testing.T) {
	t.Run("unmarks the story immediately", func(t *testing.T) {
		svc := &mockService{}
		user := loggedInUser(t, svc)
		story := testStory("s1", "First")
		require.NoError(t, user.AddFavorite(context.Background(), story))

		err := user.RemoveFavorite(context.Background(), story)

		require.NoError(t, err)
		assert.False(t, user.IsFavorite(story))
		assert.Equal(t, 1, svc.removeFavCalls)
	})

	t.Run("restores the collection in order on remote failure", func(t *testing.T) {
		first := testStory("s1", "First")
		second := testStory("s2", "Second")
		third := testStory("s3", "Third")
		svc := &mockService{}
		svc.loginProfile = stories.Profile{
			Username:  "ada",
			Favorites: []stories.Story{first, second, third},
		}
		svc.loginToken = "token-123"

		user, err := stories.Login(context.Background(), svc, "ada", "secret")
		require.NoError(t, err)

		svc.removeFavErr = errRemote

		err = user.RemoveFavorite(context.Background(), second)

		assert.ErrorIs(t, err, errRemote)
		favs := user.Favorites()
		require.Len(t, favs, 3)
		assert.Equal(t, second.ID, favs[1].ID)
	})

	t.Run("is a no-op when not a favorite", func(t *testing.T) {
		svc := &mockService{}
		user := loggedInUser(t, svc)

		err := user.RemoveFavorite(context.Background(), testStory("s1", "First"))

		require.NoError(t, err)
		assert.Zero(t, svc.removeFavCalls)
	})
}

func TestUser_IsFavorite(t *testing.T) {
	t.Run("matches by id even when other fields differ", func(t *testing.T) {
		svc := &mockService{}
		user := loggedInUser(t, svc)
		require.NoError(t, user.AddFavorite(context.Background(), testStory("s1", "First")))

		stale := testStory("s1", "First (edited)")

		assert.True(t, user.IsFavorite(stale))
	})
}
