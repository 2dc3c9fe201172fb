package stories

import (
	"context"
	"time"
)

// Profile is the remote service's record of an account, as returned by
// the signup, login, and user endpoints.
type Profile struct {
	Username   string
	Name       string
	CreatedAt  time.Time
	OwnStories []Story
	Favorites  []Story
}

// Service is the remote content API this package synchronizes with.
// internal/api implements it over JSON/HTTP.
type Service interface {
	// FetchStories returns the full story feed in server order.
	// No credential is required.
	FetchStories(ctx context.Context) ([]Story, error)

	// CreateStory submits a draft and returns the stored record.
	CreateStory(ctx context.Context, token string, draft Draft) (Story, error)

	// DeleteStory removes the story with the given id.
	DeleteStory(ctx context.Context, token string, id StoryID) error

	// Signup registers a new account and returns its profile together
	// with a freshly issued session token.
	Signup(ctx context.Context, username, password, name string) (Profile, string, error)

	// Login authenticates an existing account and returns its profile
	// together with a freshly issued session token.
	Login(ctx context.Context, username, password string) (Profile, string, error)

	// FetchUser returns the profile for username, authenticated by a
	// previously issued token.
	FetchUser(ctx context.Context, token, username string) (Profile, error)

	// AddFavorite and RemoveFavorite update the remote favorite
	// relationship between the token's user and the story.
	AddFavorite(ctx context.Context, token, username string, id StoryID) error
	RemoveFavorite(ctx context.Context, token, username string, id StoryID) error
}
