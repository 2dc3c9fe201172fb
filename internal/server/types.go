package server

import "time"

// StoryPayload is the wire shape of a story.
type StoryPayload struct {
	StoryID   string    `doc:"Server-assigned story id" json:"storyId"`
	Title     string    `doc:"Story title"              json:"title"`
	Author    string    `doc:"Story author"             json:"author"`
	URL       string    `doc:"Link the story points at" json:"url"`
	Username  string    `doc:"Submitting user"          json:"username"`
	CreatedAt time.Time `doc:"Submission time"          json:"createdAt"`
}

// UserPayload is the wire shape of an account profile, including its
// two story sub-collections.
type UserPayload struct {
	Username  string         `json:"username"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"createdAt"`
	Stories   []StoryPayload `json:"stories"`
	Favorites []StoryPayload `json:"favorites"`
}

// ListStoriesOutput is the response for the story feed.
type ListStoriesOutput struct {
	Body struct {
		Stories []StoryPayload `json:"stories"`
	}
}

// CreateStoryInput is the request for submitting a story.
type CreateStoryInput struct {
	Body struct {
		Token string `doc:"Session token" json:"token"`
		Story struct {
			Title  string `json:"title"`
			Author string `json:"author"`
			URL    string `json:"url"`
		} `json:"story"`
	}
}

// CreateStoryOutput is the response for a stored story.
type CreateStoryOutput struct {
	Body struct {
		Story StoryPayload `json:"story"`
	}
}

// DeleteStoryInput is the request for deleting a story.
type DeleteStoryInput struct {
	StoryID string `doc:"Story to delete" path:"storyId"`
	Body    struct {
		Token string `json:"token"`
	}
}

// SignupUser is the credential payload for registering an account.
type SignupUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// SignupInput is the request for registering an account.
type SignupInput struct {
	Body struct {
		User SignupUser `json:"user"`
	}
}

// LoginInput is the request for authenticating an account.
type LoginInput struct {
	Body struct {
		User struct {
			Username string `json:"username"`
			Password string `json:"password"`
		} `json:"user"`
	}
}

// AuthOutput is the response for signup and login: the profile plus a
// freshly issued session token.
type AuthOutput struct {
	Body struct {
		User  UserPayload `json:"user"`
		Token string      `json:"token"`
	}
}

// GetUserInput is the request for reading a profile.
type GetUserInput struct {
	Username string `doc:"Account to read" path:"username"`
	Token    string `doc:"Session token"   query:"token"`
}

// GetUserOutput is the response for a profile read.
type GetUserOutput struct {
	Body struct {
		User UserPayload `json:"user"`
	}
}

// FavoriteInput is the request for adding or removing a favorite.
type FavoriteInput struct {
	Username string `doc:"Account owning the favorite" path:"username"`
	StoryID  string `doc:"Story being (un)favorited"   path:"storyId"`
	Body     struct {
		Token string `json:"token"`
	}
}

// MessageOutput is a plain confirmation message.
type MessageOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}
