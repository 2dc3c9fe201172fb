package server

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound reports a missing story or user.
	ErrNotFound = errors.New("not found")
	// ErrExists reports a conflicting insert, e.g. a taken username.
	ErrExists = errors.New("already exists")
)

// StoryRecord is a stored story.
type StoryRecord struct {
	ID        string
	Title     string
	Author    string
	URL       string
	Username  string
	CreatedAt time.Time
}

// UserRecord is a stored account. Token is the currently valid session
// token; it is replaced on every login.
type UserRecord struct {
	Username     string
	Name         string
	PasswordHash []byte
	Token        string
	CreatedAt    time.Time
}

// Repository is the persistence surface of the service.
// Implementations live in internal/store.
type Repository interface {
	Ping(ctx context.Context) error

	// ListStories returns the feed oldest-first, so appending a fresh
	// story keeps the newest entries at the end.
	ListStories(ctx context.Context) ([]StoryRecord, error)
	GetStory(ctx context.Context, id string) (StoryRecord, error)
	SaveStory(ctx context.Context, rec StoryRecord) error
	// DeleteStory removes the story and every favorite referencing it.
	DeleteStory(ctx context.Context, id string) error
	StoriesByUser(ctx context.Context, username string) ([]StoryRecord, error)

	CreateUser(ctx context.Context, rec UserRecord) error
	GetUser(ctx context.Context, username string) (UserRecord, error)
	GetUserByToken(ctx context.Context, token string) (UserRecord, error)
	SetToken(ctx context.Context, username, token string) error

	Favorites(ctx context.Context, username string) ([]StoryRecord, error)
	AddFavorite(ctx context.Context, username, storyID string) error
	RemoveFavorite(ctx context.Context, username, storyID string) error
}
