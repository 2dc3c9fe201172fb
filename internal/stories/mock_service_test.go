package stories_test

import (
	"context"
	"errors"
	"time"

	"newsline/internal/stories"
)

var errRemote = errors.New("remote error")

// mockService is a configurable test double for stories.Service that
// records which calls were made.
type mockService struct {
	fetchStories   []stories.Story
	fetchErr       error
	createResult   stories.Story
	createErr      error
	deleteErr      error
	signupProfile  stories.Profile
	signupToken    string
	signupErr      error
	loginProfile   stories.Profile
	loginToken     string
	loginErr       error
	userProfile    stories.Profile
	userErr        error
	addFavErr      error
	removeFavErr   error
	createCalls    int
	deleteCalls    int
	addFavCalls    int
	removeFavCalls int
}

func (m *mockService) FetchStories(_ context.Context) ([]stories.Story, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}

	return m.fetchStories, nil
}

func (m *mockService) CreateStory(_ context.Context, _ string, _ stories.Draft) (stories.Story, error) {
	m.createCalls++

	if m.createErr != nil {
		return stories.Story{}, m.createErr
	}

	return m.createResult, nil
}

func (m *mockService) DeleteStory(_ context.Context, _ string, _ stories.StoryID) error {
	m.deleteCalls++

	return m.deleteErr
}

func (m *mockService) Signup(_ context.Context, _, _, _ string) (stories.Profile, string, error) {
	if m.signupErr != nil {
		return stories.Profile{}, "", m.signupErr
	}

	return m.signupProfile, m.signupToken, nil
}

func (m *mockService) Login(_ context.Context, _, _ string) (stories.Profile, string, error) {
	if m.loginErr != nil {
		return stories.Profile{}, "", m.loginErr
	}

	return m.loginProfile, m.loginToken, nil
}

func (m *mockService) FetchUser(_ context.Context, _, _ string) (stories.Profile, error) {
	if m.userErr != nil {
		return stories.Profile{}, m.userErr
	}

	return m.userProfile, nil
}

func (m *mockService) AddFavorite(_ context.Context, _, _ string, _ stories.StoryID) error {
	m.addFavCalls++

	return m.addFavErr
}

func (m *mockService) RemoveFavorite(_ context.Context, _, _ string, _ stories.StoryID) error {
	m.removeFavCalls++

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
