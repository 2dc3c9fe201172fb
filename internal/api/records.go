package api

import (
	"time"

	"newsline/internal/stories"
)

// Wire shapes of the remote content API. Extra fields in remote
// records are ignored; missing sub-collections decode as empty.

type storyRecord struct {
	StoryID   string    `json:"storyId"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r storyRecord) toStory() stories.Story {
	return stories.Story{
		ID:        stories.StoryID(r.StoryID),
		Title:     r.Title,
		Author:    r.Author,
		URL:       r.URL,
		Username:  r.Username,
		CreatedAt: r.CreatedAt,
	}
}

type userRecord struct {
	Username  string        `json:"username"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"createdAt"`
	Stories   []storyRecord `json:"stories"`
	Favorites []storyRecord `json:"favorites"`
}

func (r userRecord) toProfile() stories.Profile {
	p := stories.Profile{
		Username:   r.Username,
		Name:       r.Name,
		CreatedAt:  r.CreatedAt,
		OwnStories: make([]stories.Story, 0, len(r.Stories)),
		Favorites:  make([]stories.Story, 0, len(r.Favorites)),
	}

	for _, s := range r.Stories {
		p.OwnStories = append(p.OwnStories, s.toStory())
	}

	for _, s := range r.Favorites {
		p.Favorites = append(p.Favorites, s.toStory())
	}

	return p
}

type storiesResponse struct {
	Stories []storyRecord `json:"stories"`
}

type storyResponse struct {
	Story storyRecord `json:"story"`
}

type userResponse struct {
	User userRecord `json:"user"`
}

type authResponse struct {
	User  userRecord `json:"user"`
	Token string     `json:"token"`
}

type draftRecord struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

type createStoryRequest struct {
	Token string      `json:"token"`
	Story draftRecord `json:"story"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type signupRequest struct {
	User struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Name     string `json:"name"`
	} `json:"user"`
}

type loginRequest struct {
	User struct {
		Username string `json:"username"`
		Password string `json:"password"`
	} `json:"user"`
}
