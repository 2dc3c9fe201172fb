package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"newsline/internal/activity"
	"newsline/internal/messaging"
	"newsline/internal/stories"
)

// Session owns the live story feed and the authenticated user for one
// run of the application. It replaces ambient globals: there is exactly
// one writer of both collections, and the presentation layer reads them
// back through List and User after each operation.
type Session struct {
	svc    stories.Service
	creds  CredentialStore
	logger *zap.Logger

	publishPosted   messaging.Publish[activity.StoryPostedEvent]
	publishRemoved  messaging.Publish[activity.StoryRemovedEvent]
	publishFavorite messaging.Publish[activity.FavoriteChangedEvent]

	list *stories.List
	user *stories.User
}

// New creates a session over the given service and credential store.
func New(
	svc stories.Service,
	creds CredentialStore,
	publishPosted messaging.Publish[activity.StoryPostedEvent],
	publishRemoved messaging.Publish[activity.StoryRemovedEvent],
	publishFavorite messaging.Publish[activity.FavoriteChangedEvent],
	logger *zap.Logger,
) *Session {
	return &Session{
		svc:             svc,
		creds:           creds,
		logger:          logger,
		publishPosted:   publishPosted,
		publishRemoved:  publishRemoved,
		publishFavorite: publishFavorite,
	}
}

// Start loads the story feed, then tries to resume the previous
// session from stored credentials. Restoration is best-effort: a stale
// token or unreachable profile leaves the session anonymous.
func (s *Session) Start(ctx context.Context) error {
	list, err := stories.LoadList(ctx, s.svc)
	if err != nil {
		return err
	}

	s.list = list

	creds, err := s.creds.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoCredentials) {
			s.logger.Warn("loading stored credentials failed", zap.Error(err))
		}

		return nil
	}

	user, ok := stories.Restore(ctx, s.svc, creds.Token, creds.Username)
	if !ok {
		s.logger.Info("session restore failed, starting anonymous",
			zap.String("username", creds.Username),
		)

		return nil
	}

	s.user = user
	s.logger.Info("session restored", zap.String("username", user.Username()))

	return nil
}

// List returns the story feed, or nil before Start.
func (s *Session) List() *stories.List {
	return s.list
}

// User returns the authenticated user, or nil while anonymous.
func (s *Session) User() *stories.User {
	return s.user
}

// Authenticated reports whether a user is logged in.
func (s *Session) Authenticated() bool {
	return s.user != nil
}

// Login authenticates an account and persists its credentials for
// later restores.
func (s *Session) Login(ctx context.Context, username, password string) error {
	user, err := stories.Login(ctx, s.svc, username, password)
	if err != nil {
		return err
	}

	s.user = user
	s.saveCredentials(ctx)

	return nil
}

// Signup registers a new account, logs it in, and persists its
// credentials.
func (s *Session) Signup(ctx context.Context, username, password, name string) error {
	user, err := stories.Signup(ctx, s.svc, username, password, name)
	if err != nil {
		return err
	}

	s.user = user
	s.saveCredentials(ctx)

	return nil
}

// Logout discards the user and clears stored credentials. The feed
// stays loaded.
func (s *Session) Logout(ctx context.Context) {
	if s.user == nil {
		return
	}

	username := s.user.Username()
	s.user = nil

	if err := s.creds.Clear(ctx); err != nil {
		s.logger.Warn("clearing credentials failed", zap.Error(err))
	}

	s.logger.Info("logged out", zap.String("username", username))
}

// PostStory submits a draft as the current user.
func (s *Session) PostStory(ctx context.Context, draft stories.Draft) (stories.Story, error) {
	if s.user == nil {
		return stories.Story{}, stories.ErrUnauthenticated
	}

	story, err := s.list.Add(ctx, s.user, draft)
	if err != nil {
		return stories.Story{}, err
	}

	event := &activity.StoryPostedEvent{
		StoryID:  string(story.ID),
		Title:    story.Title,
		URL:      story.URL,
		Username: story.Username,
		PostedAt: time.Now(),
	}
	if err := s.publishPosted(event); err != nil {
		s.logger.Error("failed to publish story posted event",
			zap.String("storyId", event.StoryID),
			zap.Error(err),
		)
	}

	return story, nil
}

// RemoveStory deletes a story owned by the current user.
func (s *Session) RemoveStory(ctx context.Context, id stories.StoryID) error {
	if s.user == nil {
		return stories.ErrUnauthenticated
	}

	if err := s.list.Remove(ctx, s.user, id); err != nil {
		return err
	}

	event := &activity.StoryRemovedEvent{
		StoryID:   string(id),
		Username:  s.user.Username(),
		RemovedAt: time.Now(),
	}
	if err := s.publishRemoved(event); err != nil {
		s.logger.Error("failed to publish story removed event",
			zap.String("storyId", event.StoryID),
			zap.Error(err),
		)
	}

	return nil
}

// Favorite marks a story as a favorite of the current user.
func (s *Session) Favorite(ctx context.Context, story stories.Story) error {
	return s.changeFavorite(ctx, story, true)
}

// Unfavorite removes a story from the current user's favorites.
func (s *Session) Unfavorite(ctx context.Context, story stories.Story) error {
	return s.changeFavorite(ctx, story, false)
}

func (s *Session) changeFavorite(ctx context.Context, story stories.Story, favorited bool) error {
	if s.user == nil {
		return stories.ErrUnauthenticated
	}

	var err error
	if favorited {
		err = s.user.AddFavorite(ctx, story)
	} else {
		err = s.user.RemoveFavorite(ctx, story)
	}

	if err != nil {
		return err
	}

	event := &activity.FavoriteChangedEvent{
		StoryID:   string(story.ID),
		Username:  s.user.Username(),
		Favorited: favorited,
		ChangedAt: time.Now(),
	}
	if err := s.publishFavorite(event); err != nil {
		s.logger.Error("failed to publish favorite changed event",
			zap.String("storyId", event.StoryID),
			zap.Error(err),
		)
	}

	return nil
}

func (s *Session) saveCredentials(ctx context.Context) {
	creds := Credentials{Token: s.user.Token(), Username: s.user.Username()}
	if err := s.creds.Save(ctx, creds); err != nil {
		// the session still works, the next run just starts anonymous
		s.logger.Warn("persisting credentials failed", zap.Error(err))
	}
}
