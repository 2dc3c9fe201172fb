package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"newsline/internal/stories"
)

// Client talks to the remote content API over JSON/HTTP and implements
// stories.Service. Timeouts are the caller's concern: pass an
// *http.Client configured with whatever deadline fits the application.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a client for the content API at baseURL. A nil
// httpClient falls back to http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

func (c *Client) FetchStories(ctx context.Context) ([]stories.Story, error) {
	var resp storiesResponse
	if err := c.do(ctx, http.MethodGet, "/stories", nil, &resp, false); err != nil {
		return nil, err
	}

	out := make([]stories.Story, 0, len(resp.Stories))
	for _, r := range resp.Stories {
		out = append(out, r.toStory())
	}

	return out, nil
}

func (c *Client) CreateStory(ctx context.Context, token string, draft stories.Draft) (stories.Story, error) {
	req := createStoryRequest{
		Token: token,
		Story: draftRecord{Title: draft.Title, Author: draft.Author, URL: draft.URL},
	}

	var resp storyResponse
	if err := c.do(ctx, http.MethodPost, "/stories", req, &resp, false); err != nil {
		return stories.Story{}, err
	}

	return resp.Story.toStory(), nil
}

func (c *Client) DeleteStory(ctx context.Context, token string, id stories.StoryID) error {
	path := "/stories/" + url.PathEscape(string(id))

	return c.do(ctx, http.MethodDelete, path, tokenRequest{Token: token}, nil, false)
}

func (c *Client) Signup(ctx context.Context, username, password, name string) (stories.Profile, string, error) {
	var req signupRequest
	req.User.Username = username
	req.User.Password = password
	req.User.Name = name

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/signup", req, &resp, true); err != nil {
		return stories.Profile{}, "", err
	}

	return resp.User.toProfile(), resp.Token, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (stories.Profile, string, error) {
	var req loginRequest
	req.User.Username = username
	req.User.Password = password

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/login", req, &resp, true); err != nil {
		return stories.Profile{}, "", err
	}

	return resp.User.toProfile(), resp.Token, nil
}

func (c *Client) FetchUser(ctx context.Context, token, username string) (stories.Profile, error) {
	path := "/users/" + url.PathEscape(username) + "?token=" + url.QueryEscape(token)

	var resp userResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, true); err != nil {
		return stories.Profile{}, err
	}

	return resp.User.toProfile(), nil
}

func (c *Client) AddFavorite(ctx context.Context, token, username string, id stories.StoryID) error {
	return c.do(ctx, http.MethodPost, favoritePath(username, id), tokenRequest{Token: token}, nil, false)
}

func (c *Client) RemoveFavorite(ctx context.Context, token, username string, id stories.StoryID) error {
	return c.do(ctx, http.MethodDelete, favoritePath(username, id), tokenRequest{Token: token}, nil, false)
}

func favoritePath(username string, id stories.StoryID) string {
	return "/users/" + url.PathEscape(username) + "/favorites/" + url.PathEscape(string(id))
}

// do sends one request and decodes the response body into out when out
// is non-nil. credentialed marks endpoints whose 4xx responses mean
// the credentials themselves were refused; everywhere else a bad
// status is a plain remote failure.
func (c *Client) do(ctx context.Context, method, path string, in, out any, credentialed bool) error {
	var body io.Reader

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}

		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", stories.ErrRemoteUnavailable, err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)

		return fmt.Errorf("%w: %v", stories.ErrRemoteUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Debug("remote returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)

		if credentialed && resp.StatusCode < http.StatusInternalServerError {
			return fmt.Errorf("%w: status %d", stories.ErrAuthRejected, resp.StatusCode)
		}

		return fmt.Errorf("%w: status %d", stories.ErrRemoteUnavailable, resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", stories.ErrRemoteUnavailable, err)
	}

	return nil
}
