package server

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler implements the content API operations over a Repository.
type Handler struct {
	repo       Repository
	newStoryID func() string
	logger     *zap.Logger
}

// NewHandler creates a handler. newStoryID supplies ids for submitted
// stories.
func NewHandler(repo Repository, newStoryID func() string, logger *zap.Logger) *Handler {
	return &Handler{
		repo:       repo,
		newStoryID: newStoryID,
		logger:     logger,
	}
}

// ListStories returns the full story feed. No credential required.
func (h *Handler) ListStories(ctx context.Context, _ *struct{}) (*ListStoriesOutput, error) {
	records, err := h.repo.ListStories(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list stories")
	}

	out := &ListStoriesOutput{}
	out.Body.Stories = storyPayloads(records)

	return out, nil
}

// CreateStory stores a submitted story under the token's user.
func (h *Handler) CreateStory(ctx context.Context, input *CreateStoryInput) (*CreateStoryOutput, error) {
	user, err := h.authenticate(ctx, input.Body.Token)
	if err != nil {
		return nil, err
	}

	rec := StoryRecord{
		ID:        h.newStoryID(),
		Title:     input.Body.Story.Title,
		Author:    input.Body.Story.Author,
		URL:       input.Body.Story.URL,
		Username:  user.Username,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.repo.SaveStory(ctx, rec); err != nil {
		return nil, huma.Error500InternalServerError("failed to save story")
	}

	out := &CreateStoryOutput{}
	out.Body.Story = storyPayload(rec)

	return out, nil
}

// DeleteStory removes a story. Only the submitting user may delete it.
func (h *Handler) DeleteStory(ctx context.Context, input *DeleteStoryInput) (*MessageOutput, error) {
	user, err := h.authenticate(ctx, input.Body.Token)
	if err != nil {
		return nil, err
	}

	story, err := h.repo.GetStory(ctx, input.StoryID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, huma.Error404NotFound("story not found")
		}

		return nil, huma.Error500InternalServerError("failed to load story")
	}

	if story.Username != user.Username {
		return nil, huma.Error403Forbidden("not the story owner")
	}

	if err := h.repo.DeleteStory(ctx, input.StoryID); err != nil {
		return nil, huma.Error500InternalServerError("failed to delete story")
	}

	out := &MessageOutput{}
	out.Body.Message = "story deleted"

	return out, nil
}

// Signup registers an account and issues its first session token.
func (h *Handler) Signup(ctx context.Context, input *SignupInput) (*AuthOutput, error) {
	creds := input.Body.User
	if creds.Username == "" || creds.Password == "" {
		return nil, huma.Error400BadRequest("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to hash password")
	}

	rec := UserRecord{
		Username:     creds.Username,
		Name:         creds.Name,
		PasswordHash: hash,
		Token:        uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.repo.CreateUser(ctx, rec); err != nil {
		if errors.Is(err, ErrExists) {
			return nil, huma.Error409Conflict("username already taken")
		}

		return nil, huma.Error500InternalServerError("failed to create user")
	}

	h.logger.Info("user signed up", zap.String("username", rec.Username))

	out := &AuthOutput{}
	out.Body.Token = rec.Token
	out.Body.User = UserPayload{
		Username:  rec.Username,
		Name:      rec.Name,
		CreatedAt: rec.CreatedAt,
		Stories:   []StoryPayload{},
		Favorites: []StoryPayload{},
	}

	return out, nil
}

// Login verifies credentials and issues a fresh session token,
// invalidating the previous one.
func (h *Handler) Login(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	creds := input.Body.User

	user, err := h.repo.GetUser(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, huma.Error401Unauthorized("invalid username or password")
		}

		return nil, huma.Error500InternalServerError("failed to load user")
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)) != nil {
		return nil, huma.Error401Unauthorized("invalid username or password")
	}

	token := uuid.NewString()
	if err := h.repo.SetToken(ctx, user.Username, token); err != nil {
		return nil, huma.Error500InternalServerError("failed to issue token")
	}

	payload, err := h.userPayload(ctx, user)
	if err != nil {
		return nil, err
	}

	out := &AuthOutput{}
	out.Body.User = payload
	out.Body.Token = token

	return out, nil
}

// GetUser returns a profile. The query token must belong to the
// requested account.
func (h *Handler) GetUser(ctx context.Context, input *GetUserInput) (*GetUserOutput, error) {
	user, err := h.authenticate(ctx, input.Token)
	if err != nil {
		return nil, err
	}

	if user.Username != input.Username {
		return nil, huma.Error401Unauthorized("token does not match user")
	}

	payload, err := h.userPayload(ctx, user)
	if err != nil {
		return nil, err
	}

	out := &GetUserOutput{}
	out.Body.User = payload

	return out, nil
}

// AddFavorite records a favorite relationship. Adding an existing
// favorite is a no-op.
func (h *Handler) AddFavorite(ctx context.Context, input *FavoriteInput) (*MessageOutput, error) {
	if err := h.checkFavoriteInput(ctx, input); err != nil {
		return nil, err
	}

	if err := h.repo.AddFavorite(ctx, input.Username, input.StoryID); err != nil {
		return nil, huma.Error500InternalServerError("failed to add favorite")
	}

	out := &MessageOutput{}
	out.Body.Message = "favorite added"

	return out, nil
}

// RemoveFavorite deletes a favorite relationship. Removing an absent
// favorite is a no-op.
func (h *Handler) RemoveFavorite(ctx context.Context, input *FavoriteInput) (*MessageOutput, error) {
	if err := h.checkFavoriteInput(ctx, input); err != nil {
		return nil, err
	}

	if err := h.repo.RemoveFavorite(ctx, input.Username, input.StoryID); err != nil {
		return nil, huma.Error500InternalServerError("failed to remove favorite")
	}

	out := &MessageOutput{}
	out.Body.Message = "favorite removed"

	return out, nil
}

func (h *Handler) checkFavoriteInput(ctx context.Context, input *FavoriteInput) error {
	user, err := h.authenticate(ctx, input.Body.Token)
	if err != nil {
		return err
	}

	if user.Username != input.Username {
		return huma.Error403Forbidden("token does not match user")
	}

	if _, err := h.repo.GetStory(ctx, input.StoryID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return huma.Error404NotFound("story not found")
		}

		return huma.Error500InternalServerError("failed to load story")
	}

	return nil
}

func (h *Handler) authenticate(ctx context.Context, token string) (UserRecord, error) {
	if token == "" {
		return UserRecord{}, huma.Error401Unauthorized("token required")
	}

	user, err := h.repo.GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return UserRecord{}, huma.Error401Unauthorized("invalid token")
		}

		return UserRecord{}, huma.Error500InternalServerError("failed to look up token")
	}

	return user, nil
}

func (h *Handler) userPayload(ctx context.Context, user UserRecord) (UserPayload, error) {
	own, err := h.repo.StoriesByUser(ctx, user.Username)
	if err != nil {
		return UserPayload{}, huma.Error500InternalServerError("failed to load user stories")
	}

	favorites, err := h.repo.Favorites(ctx, user.Username)
	if err != nil {
		return UserPayload{}, huma.Error500InternalServerError("failed to load favorites")
	}

	return UserPayload{
		Username:  user.Username,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		Stories:   storyPayloads(own),
		Favorites: storyPayloads(favorites),
	}, nil
}

func storyPayload(rec StoryRecord) StoryPayload {
	return StoryPayload{
		StoryID:   rec.ID,
		Title:     rec.Title,
		Author:    rec.Author,
		URL:       rec.URL,
		Username:  rec.Username,
		CreatedAt: rec.CreatedAt,
	}
}

func storyPayloads(records []StoryRecord) []StoryPayload {
	out := make([]StoryPayload, 0, len(records))
	for _, rec := range records {
		out = append(out, storyPayload(rec))
	}

	return out
}
