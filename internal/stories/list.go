package stories

import "context"

// List is the global story feed. Insertion order is display order and
// no two entries share an ID. The List is the only writer of its
// collection; callers read it through Stories.
type List struct {
	svc     Service
	stories []Story
}

// LoadList fetches the full feed and wraps it in a List. A failed
// fetch is not retried here; the caller decides whether to retry or
// surface it.
func LoadList(ctx context.Context, svc Service) (*List, error) {
	fetched, err := svc.FetchStories(ctx)
	if err != nil {
		return nil, err
	}

	l := &List{svc: svc}
	for _, s := range fetched {
		l.append(s)
	}

	return l, nil
}

// Stories returns a copy of the feed in display order.
func (l *List) Stories() []Story {
	out := make([]Story, len(l.stories))
	copy(out, l.stories)

	return out
}

// Len returns the number of stories in the feed.
func (l *List) Len() int {
	return len(l.stories)
}

// Add submits a draft as user. On success the stored story is appended
// to the feed and to the user's own stories, and returned. Nothing
// changes locally when the remote call fails.
func (l *List) Add(ctx context.Context, user *User, draft Draft) (Story, error) {
	if user.Token() == "" {
		return Story{}, ErrUnauthenticated
	}

	s, err := l.svc.CreateStory(ctx, user.Token(), draft)
	if err != nil {
		return Story{}, err
	}

	l.append(s)
	user.addOwn(s)

	return s, nil
}

// Remove deletes the story with id as user. On success the story is
// purged from the feed, the user's own stories, and the user's
// favorites; a collection that does not hold id is left as is. Nothing
// changes locally when the remote call fails.
func (l *List) Remove(ctx context.Context, user *User, id StoryID) error {
	if user.Token() == "" {
		return ErrUnauthenticated
	}

	if err := l.svc.DeleteStory(ctx, user.Token(), id); err != nil {
		return err
	}

	l.stories = purge(l.stories, id)
	user.purgeStory(id)

	return nil
}

func (l *List) append(s Story) {
	if contains(l.stories, s.ID) {
		return
	}

	l.stories = append(l.stories, s)
}

// purge returns ss without entries matching id, preserving order.
func purge(ss []Story, id StoryID) []Story {
	out := ss[:0]

	for _, s := range ss {
		if s.ID != id {
			out = append(out, s)
		}
	}

	return out
}

func contains(ss []Story, id StoryID) bool {
	for _, s := range ss {
		if s.ID == id {
			return true
		}
	}

	return false
}
