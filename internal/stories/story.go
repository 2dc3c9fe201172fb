package stories

import (
	"fmt"
	"net/url"
	"time"
)

// StoryID is the server-assigned identity of a story. Two stories with
// equal IDs are the same logical story, even when other fields differ
// because one copy is stale.
type StoryID string

// Story is a single user-submitted shared link. Values are immutable
// after construction; an update replaces the value in whichever
// collection holds it.
type Story struct {
	ID        StoryID
	Title     string
	Author    string
	URL       string
	Username  string
	CreatedAt time.Time
}

// Draft holds the fields a user supplies when submitting a new story.
// The remote service fills in everything else.
type Draft struct {
	Title  string
	Author string
	URL    string
}

// Hostname returns the host component of the story URL, for display
// next to the title.
func (s Story) Hostname() (string, error) {
	u, err := url.Parse(s.URL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, s.URL)
	}

	return u.Host, nil
}
