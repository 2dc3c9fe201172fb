package store

import (
	"context"
	"sync"

	"newsline/internal/server"
)

// Memory is an in-memory implementation of server.Repository, used by
// tests and by the dev server when no database is configured.
type Memory struct {
	mu        sync.RWMutex
	stories   map[string]server.StoryRecord
	order     []string            // story ids, oldest first
	users     map[string]server.UserRecord
	tokens    map[string]string   // token -> username
	favorites map[string][]string // username -> story ids, oldest first
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		stories:   make(map[string]server.StoryRecord),
		users:     make(map[string]server.UserRecord),
		tokens:    make(map[string]string),
		favorites: make(map[string][]string),
	}
}

func (m *Memory) Ping(_ context.Context) error {
	return nil
}

func (m *Memory) ListStories(_ context.Context) ([]server.StoryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]server.StoryRecord, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.stories[id])
	}

	return out, nil
}

func (m *Memory) GetStory(_ context.Context, id string) (server.StoryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.stories[id]
	if !ok {
		return server.StoryRecord{}, server.ErrNotFound
	}

	return rec, nil
}

func (m *Memory) SaveStory(_ context.Context, rec server.StoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.stories[rec.ID]; !ok {
		m.order = append(m.order, rec.ID)
	}

	m.stories[rec.ID] = rec

	return nil
}

func (m *Memory) DeleteStory(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.stories[id]; !ok {
		return server.ErrNotFound
	}

	delete(m.stories, id)
	m.order = removeString(m.order, id)

	for username, ids := range m.favorites {
		m.favorites[username] = removeString(ids, id)
	}

	return nil
}

func (m *Memory) StoriesByUser(_ context.Context, username string) ([]server.StoryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []server.StoryRecord

	for _, id := range m.order {
		if rec := m.stories[id]; rec.Username == username {
			out = append(out, rec)
		}
	}

	return out, nil
}

func (m *Memory) CreateUser(_ context.Context, rec server.UserRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[rec.Username]; ok {
		return server.ErrExists
	}

	m.users[rec.Username] = rec
	m.tokens[rec.Token] = rec.Username

	return nil
}

func (m *Memory) GetUser(_ context.Context, username string) (server.UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.users[username]
	if !ok {
		return server.UserRecord{}, server.ErrNotFound
	}

	return rec, nil
}

func (m *Memory) GetUserByToken(_ context.Context, token string) (server.UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	username, ok := m.tokens[token]
	if !ok {
		return server.UserRecord{}, server.ErrNotFound
	}

	return m.users[username], nil
}

func (m *Memory) SetToken(_ context.Context, username, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.users[username]
	if !ok {
		return server.ErrNotFound
	}

	delete(m.tokens, rec.Token)
	rec.Token = token
	m.users[username] = rec
	m.tokens[token] = username

	return nil
}

func (m *Memory) Favorites(_ context.Context, username string) ([]server.StoryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.favorites[username]
	out := make([]server.StoryRecord, 0, len(ids))

	for _, id := range ids {
		if rec, ok := m.stories[id]; ok {
			out = append(out, rec)
		}
	}

	return out, nil
}

func (m *Memory) AddFavorite(_ context.Context, username, storyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.favorites[username] {
		if id == storyID {
			return nil
		}
	}

	m.favorites[username] = append(m.favorites[username], storyID)

	return nil
}

func (m *Memory) RemoveFavorite(_ context.Context, username, storyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.favorites[username] = removeString(m.favorites[username], storyID)

	return nil
}

func removeString(ss []string, target string) []string {
	out := ss[:0]

	for _, s := range ss {
		if s != target {
			out = append(out, s)
		}
	}

	return out
}
