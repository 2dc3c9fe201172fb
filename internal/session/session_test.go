package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"newsline/internal/activity"
	"newsline/internal/messaging"
	"newsline/internal/session"
	"newsline/internal/stories"
	"newsline/internal/store"
)

var errRemote = errors.New("remote error")

type mockService struct {
	fetchStories  []stories.Story
	fetchErr      error
	createResult  stories.Story
	createErr     error
	deleteErr     error
	loginProfile  stories.Profile
	loginToken    string
	loginErr      error
	signupProfile stories.Profile
	signupToken   string
	signupErr     error
	userProfile   stories.Profile
	userErr       error
	addFavErr     error
	removeFavErr  error
}

func (m *mockService) FetchStories(_ context.Context) ([]stories.Story, error) {
	return m.fetchStories, m.fetchErr
}

func (m *mockService) CreateStory(_ context.Context, _ string, _ stories.Draft) (stories.Story, error) {
	return m.createResult, m.createErr
}

func (m *mockService) DeleteStory(_ context.Context, _ string, _ stories.StoryID) error {
	return m.deleteErr
}

func (m *mockService) Signup(_ context.Context, _, _, _ string) (stories.Profile, string, error) {
	return m.signupProfile, m.signupToken, m.signupErr
}

func (m *mockService) Login(_ context.Context, _, _ string) (stories.Profile, string, error) {
	return m.loginProfile, m.loginToken, m.loginErr
}

func (m *mockService) FetchUser(_ context.Context, _, _ string) (stories.Profile, error) {
	return m.userProfile, m.userErr
}

func (m *mockService) AddFavorite(_ context.Context, _, _ string, _ stories.StoryID) error {
	return m.addFavErr
}

func (m *mockService) RemoveFavorite(_ context.Context, _, _ string, _ stories.StoryID) error {
	return m.removeFavErr
}

func testStory(id, title string) stories.Story {
	return stories.Story{
		ID:        stories.StoryID(id),
		Title:     title,
		Author:    "Ada Lovelace",
		URL:       "https://example.com/" + id,
		Username:  "ada",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// capture collects the events a session publishes during a test.
func capture[T any](events *[]T) messaging.Publish[T] {
	return func(event *T) error {
		*events = append(*events, *event)

		return nil
	}
}

type fixture struct {
	sess      *session.Session
	creds     *store.MemoryCredentials
	posted    []activity.StoryPostedEvent
	removed   []activity.StoryRemovedEvent
	favorites []activity.FavoriteChangedEvent
}

func newFixture(svc stories.Service) *fixture {
	f := &fixture{creds: store.NewMemoryCredentials()}
	f.sess = session.New(
		svc,
		f.creds,
		capture(&f.posted),
		capture(&f.removed),
		capture(&f.favorites),
		zap.NewNop(),
	)

	return f
}

func TestSessionStart(t *testing.T) {
	t.Run("anonymous without stored credentials", func(t *testing.T) {
		svc := &mockService{fetchStories: []stories.Story{testStory("s1", "First")}}
		f := newFixture(svc)

		require.NoError(t, f.sess.Start(context.Background()))

		assert.Equal(t, 1, f.sess.List().Len())
		assert.False(t, f.sess.Authenticated())
		assert.Nil(t, f.sess.User())
	})

	t.Run("restores a stored session", func(t *testing.T) {
		svc := &mockService{
			userProfile: stories.Profile{Username: "ada", Name: "Ada"},
		}
		f := newFixture(svc)
		require.NoError(t, f.creds.Save(context.Background(), session.Credentials{
			Token:    "token-123",
			Username: "ada",
		}))

		require.NoError(t, f.sess.Start(context.Background()))

		require.True(t, f.sess.Authenticated())
		assert.Equal(t, "ada", f.sess.User().Username())
		assert.Equal(t, "token-123", f.sess.User().Token())
	})

	t.Run("stale token degrades to anonymous", func(t *testing.T) {
		svc := &mockService{userErr: stories.ErrAuthRejected}
		f := newFixture(svc)
		require.NoError(t, f.creds.Save(context.Background(), session.Credentials{
			Token:    "stale",
			Username: "ada",
		}))

		require.NoError(t, f.sess.Start(context.Background()))

		assert.False(t, f.sess.Authenticated())
	})

	t.Run("feed failure is fatal", func(t *testing.T) {
		f := newFixture(&mockService{fetchErr: errRemote})

		err := f.sess.Start(context.Background())

		require.ErrorIs(t, err, errRemote)
		assert.Nil(t, f.sess.List())
	})
}

func TestSessionLogin(t *testing.T) {
	t.Run("persists credentials", func(t *testing.T) {
		svc := &mockService{
			loginProfile: stories.Profile{Username: "ada", Name: "Ada"},
			loginToken:   "token-123",
		}
		f := newFixture(svc)
		require.NoError(t, f.sess.Start(context.Background()))

		require.NoError(t, f.sess.Login(context.Background(), "ada", "secret"))

		creds, err := f.creds.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, session.Credentials{Token: "token-123", Username: "ada"}, creds)
	})

	t.Run("rejected login leaves the session anonymous", func(t *testing.T) {
		f := newFixture(&mockService{loginErr: stories.ErrAuthRejected})
		require.NoError(t, f.sess.Start(context.Background()))

		err := f.sess.Login(context.Background(), "ada", "wrong")

		require.ErrorIs(t, err, stories.ErrAuthRejected)
		assert.False(t, f.sess.Authenticated())
		_, err = f.creds.Load(context.Background())
		assert.ErrorIs(t, err, session.ErrNoCredentials)
	})
}

func TestSessionSignup(t *testing.T) {
	svc := &mockService{
		signupProfile: stories.Profile{Username: "grace", Name: "Grace"},
		signupToken:   "token-456",
	}
	f := newFixture(svc)
	require.NoError(t, f.sess.Start(context.Background()))

	require.NoError(t, f.sess.Signup(context.Background(), "grace", "secret", "Grace"))

	require.True(t, f.sess.Authenticated())
	assert.Equal(t, "grace", f.sess.User().Username())

	creds, err := f.creds.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-456", creds.Token)
}

func TestSessionLogout(t *testing.T) {
	svc := &mockService{
		fetchStories: []stories.Story{testStory("s1", "First")},
		loginProfile: stories.Profile{Username: "ada"},
		loginToken:   "token-123",
	}
	f := newFixture(svc)
	require.NoError(t, f.sess.Start(context.Background()))
	require.NoError(t, f.sess.Login(context.Background(), "ada", "secret"))

	f.sess.Logout(context.Background())

	assert.False(t, f.sess.Authenticated())
	assert.Equal(t, 1, f.sess.List().Len(), "the feed survives logout")
	_, err := f.creds.Load(context.Background())
	assert.ErrorIs(t, err, session.ErrNoCredentials)
}

func TestSessionPostStory(t *testing.T) {
	t.Run("publishes an event on success", func(t *testing.T) {
		stored := testStory("s9", "Posted")
		svc := &mockService{
			loginProfile: stories.Profile{Username: "ada"},
			loginToken:   "token-123",
			createResult: stored,
		}
		f := newFixture(svc)
		require.NoError(t, f.sess.Start(context.Background()))
		require.NoError(t, f.sess.Login(context.Background(), "ada", "secret"))

		story, err := f.sess.PostStory(context.Background(), stories.Draft{
			Title: "Posted",
			URL:   "https://example.com/s9",
		})

		require.NoError(t, err)
		assert.Equal(t, stored, story)
		require.Len(t, f.posted, 1)
		assert.Equal(t, "s9", f.posted[0].StoryID)
		assert.Equal(t, "ada", f.posted[0].Username)
	})

	t.Run("requires authentication", func(t *testing.T) {
		f := newFixture(&mockService{})
		require.NoError(t, f.sess.Start(context.Background()))

		_, err := f.sess.PostStory(context.Background(), stories.Draft{Title: "x"})

		require.ErrorIs(t, err, stories.ErrUnauthenticated)
		assert.Empty(t, f.posted)
	})

	t.Run("no event when the remote call fails", func(t *testing.T) {
		svc := &mockService{
			loginProfile: stories.Profile{Username: "ada"},
			loginToken:   "token-123",
			createErr:    errRemote,
		}
		f := newFixture(svc)
		require.NoError(t, f.sess.Start(context.Background()))
		require.NoError(t, f.sess.Login(context.Background(), "ada", "secret"))

		_, err := f.sess.PostStory(context.Background(), stories.Draft{Title: "x"})

		require.ErrorIs(t, err, errRemote)
		assert.Empty(t, f.posted)
	})
}

func TestSessionRemoveStory(t *testing.T) {
	svc := &mockService{
		fetchStories: []stories.Story{testStory("s1", "First")},
		loginProfile: stories.Profile{
			Username:   "ada",
			OwnStories: []stories.Story{testStory("s1", "First")},
		},
		loginToken: "token-123",
	}
	f := newFixture(svc)
	require.NoError(t, f.sess.Start(context.Background()))
	require.NoError(t, f.sess.Login(context.Background(), "ada", "secret"))

	require.NoError(t, f.sess.RemoveStory(context.Background(), "s1"))

	assert.Equal(t, 0, f.sess.List().Len())
	require.Len(t, f.removed, 1)
	assert.Equal(t, "s1", f.removed[0].StoryID)
	assert.Equal(t, "ada", f.removed[0].Username)
}

func TestSessionFavorite(t *testing.T) {
	story := testStory("s1", "First")

	t.Run("favorite and unfavorite publish events", func(t *testing.T) {
		svc := &mockService{
			fetchStories: []stories.Story{story},
			loginProfile: stories.Profile{Username: "ada"},
			loginToken:   "token-123",
		}
		f := newFixture(svc)
		require.NoError(t, f.sess.Start(context.Background()))
		require.NoError(t, f.sess.Login(context.Background(), "ada", "secret"))

		require.NoError(t, f.sess.Favorite(context.Background(), story))
		assert.True(t, f.sess.User().IsFavorite(story))

		require.NoError(t, f.sess.Unfavorite(context.Background(), story))
		assert.False(t, f.sess.User().IsFavorite(story))

		require.Len(t, f.favorites, 2)
		assert.True(t, f.favorites[0].Favorited)
		assert.False(t, f.favorites[1].Favorited)
	})

	t.Run("rolled back favorite publishes nothing", func(t *testing.T) {
		svc := &mockService{
			fetchStories: []stories.Story{story},
			loginProfile: stories.Profile{Username: "ada"},
			loginToken:   "token-123",
			addFavErr:    errRemote,
		}
		f := newFixture(svc)
		require.NoError(t, f.sess.Start(context.Background()))
		require.NoError(t, f.sess.Login(context.Background(), "ada", "secret"))

		err := f.sess.Favorite(context.Background(), story)

		require.ErrorIs(t, err, errRemote)
		assert.False(t, f.sess.User().IsFavorite(story))
		assert.Empty(t, f.favorites)
	})

	t.Run("requires authentication", func(t *testing.T) {
		f := newFixture(&mockService{fetchStories: []stories.Story{story}})
		require.NoError(t, f.sess.Start(context.Background()))

		err := f.sess.Favorite(context.Background(), story)

		require.ErrorIs(t, err, stories.ErrUnauthenticated)
	})
}
