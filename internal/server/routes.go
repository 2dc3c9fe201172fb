package server

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"newsline/internal/middleware"
	"newsline/internal/ratelimit"
)

// NewRouter builds the HTTP surface of the service. A nil limiter
// disables rate limiting.
func NewRouter(h *Handler, limiter ratelimit.Limiter, logger *zap.Logger) *chi.Mux {
	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Newsline API", "1.0.0"))

	if limiter != nil {
		api.UseMiddleware(middleware.RateLimiter(api, limiter, logger))
	}

	RegisterRoutes(api, h)

	return router
}

// RegisterRoutes registers every content API operation.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/stories",
		Summary:     "List stories",
		Description: "Returns the full story feed in submission order.",
		Tags:        []string{"Stories"},
	}, h.ListStories)

	huma.Register(api, huma.Operation{
		Method:        http.MethodPost,
		Path:          "/stories",
		Summary:       "Submit story",
		Tags:          []string{"Stories"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateStory)

	huma.Register(api, huma.Operation{
		Method:  http.MethodDelete,
		Path:    "/stories/{storyId}",
		Summary: "Delete story",
		Tags:    []string{"Stories"},
	}, h.DeleteStory)

	huma.Register(api, huma.Operation{
		Method:        http.MethodPost,
		Path:          "/signup",
		Summary:       "Register account",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, h.Signup)

	huma.Register(api, huma.Operation{
		Method:  http.MethodPost,
		Path:    "/login",
		Summary: "Log in",
		Tags:    []string{"Auth"},
	}, h.Login)

	huma.Register(api, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/users/{username}",
		Summary: "Read profile",
		Tags:    []string{"Users"},
	}, h.GetUser)

	huma.Register(api, huma.Operation{
		Method:  http.MethodPost,
		Path:    "/users/{username}/favorites/{storyId}",
		Summary: "Add favorite",
		Tags:    []string{"Users"},
	}, h.AddFavorite)

	huma.Register(api, huma.Operation{
		Method:  http.MethodDelete,
		Path:    "/users/{username}/favorites/{storyId}",
		Summary: "Remove favorite",
		Tags:    []string{"Users"},
	}, h.RemoveFavorite)

	huma.Register(api, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/health",
		Summary: "Health check",
		Tags:    []string{"Health"},
	}, h.Health)
}
