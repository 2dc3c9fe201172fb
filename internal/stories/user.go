package stories

import (
	"context"
	"sync"
	"time"
)

// User is the authenticated actor for one session. It holds the two
// per-user story collections and the session token required by every
// mutating remote call. The collections are mutated only by the
// operations below and by List.Add/Remove; the mutex serializes
// favorite toggles so two overlapping toggles on the same story cannot
// interleave their local updates and remote confirmations.
type User struct {
	svc Service

	username  string
	name      string
	createdAt time.Time
	token     string

	mu        sync.Mutex
	own       []Story
	favorites []Story
}

func newUser(svc Service, p Profile, token string) *User {
	return &User{
		svc:       svc,
		username:  p.Username,
		name:      p.Name,
		createdAt: p.CreatedAt,
		token:     token,
		own:       append([]Story(nil), p.OwnStories...),
		favorites: append([]Story(nil), p.Favorites...),
	}
}

// Signup registers a new account and returns the authenticated user.
func Signup(ctx context.Context, svc Service, username, password, name string) (*User, error) {
	p, token, err := svc.Signup(ctx, username, password, name)
	if err != nil {
		return nil, err
	}

	return newUser(svc, p, token), nil
}

// Login authenticates an existing account and returns the user.
func Login(ctx context.Context, svc Service, username, password string) (*User, error) {
	p, token, err := svc.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	return newUser(svc, p, token), nil
}

// Restore attempts to resume a session from a previously issued token.
// It is invoked speculatively at startup, so any failure (stale token,
// unknown user, transport error) reports absence instead of an error.
// The API client logs the underlying cause.
func Restore(ctx context.Context, svc Service, token, username string) (*User, bool) {
	p, err := svc.FetchUser(ctx, token, username)
	if err != nil {
		return nil, false
	}

	return newUser(svc, p, token), true
}

// Username returns the account's unique identity key.
func (u *User) Username() string { return u.username }

// Name returns the account's display name.
func (u *User) Name() string { return u.name }

// CreatedAt returns when the account was created.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// Token returns the opaque session credential.
func (u *User) Token() string { return u.token }

// OwnStories returns a copy of the stories this user submitted, in
// display order.
func (u *User) OwnStories() []Story {
	u.mu.Lock()
	defer u.mu.Unlock()

	return append([]Story(nil), u.own...)
}

// Favorites returns a copy of the stories this user favorited, in
// display order.
func (u *User) Favorites() []Story {
	u.mu.Lock()
	defer u.mu.Unlock()

	return append([]Story(nil), u.favorites...)
}

// IsFavorite reports whether the user currently favorites the story.
func (u *User) IsFavorite(s Story) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	return contains(u.favorites, s.ID)
}

// AddFavorite marks the story as a favorite. The local collection is
// updated before the remote call so the presentation layer sees the
// toggle immediately; if the remote call then fails the update is
// rolled back and the error returned. Favoriting a story that is
// already a favorite is a no-op.
func (u *User) AddFavorite(ctx context.Context, s Story) error {
	if u.token == "" {
		return ErrUnauthenticated
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if contains(u.favorites, s.ID) {
		return nil
	}

	u.favorites = append(u.favorites, s)

	if err := u.svc.AddFavorite(ctx, u.token, u.username, s.ID); err != nil {
		u.favorites = purge(u.favorites, s.ID)

		return err
	}

	return nil
}

// RemoveFavorite unmarks the story as a favorite, with the same
// optimistic-then-rollback contract as AddFavorite. Removing a story
// that is not a favorite is a no-op.
func (u *User) RemoveFavorite(ctx context.Context, s Story) error {
	if u.token == "" {
		return ErrUnauthenticated
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if !contains(u.favorites, s.ID) {
		return nil
	}

	prev := append([]Story(nil), u.favorites...)
	u.favorites = purge(u.favorites, s.ID)

	if err := u.svc.RemoveFavorite(ctx, u.token, u.username, s.ID); err != nil {
		// restore the collection including its original order
		u.favorites = prev

		return err
	}

	return nil
}

func (u *User) addOwn(s Story) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if contains(u.own, s.ID) {
		return
	}

	u.own = append(u.own, s)
}

func (u *User) purgeStory(id StoryID) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.own = purge(u.own, id)
	u.favorites = purge(u.favorites, id)
}
