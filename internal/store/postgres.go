package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"newsline/internal/server"
)

// Schema creates the tables the Postgres repository expects.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	username      TEXT PRIMARY KEY,
	name          TEXT NOT NULL DEFAULT '',
	password_hash BYTEA NOT NULL,
	token         TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS stories (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	author     TEXT NOT NULL DEFAULT '',
	url        TEXT NOT NULL,
	username   TEXT NOT NULL REFERENCES users (username),
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS favorites (
	username   TEXT NOT NULL REFERENCES users (username),
	story_id   TEXT NOT NULL REFERENCES stories (id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (username, story_id)
);

CREATE UNIQUE INDEX IF NOT EXISTS users_token_idx ON users (token);
`

// Postgres is a PostgreSQL implementation of server.Repository.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres-backed repository.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate applies the schema.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, Schema)

	return err
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) ListStories(ctx context.Context) ([]server.StoryRecord, error) {
	query := `
		SELECT id, title, author, url, username, created_at
		FROM stories
		ORDER BY created_at, id
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStories(rows)
}

func (p *Postgres) GetStory(ctx context.Context, id string) (server.StoryRecord, error) {
	query := `
		SELECT id, title, author, url, username, created_at
		FROM stories
		WHERE id = $1
	`

	var rec server.StoryRecord

	err := p.pool.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.Title, &rec.Author, &rec.URL, &rec.Username, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return server.StoryRecord{}, server.ErrNotFound
		}

		return server.StoryRecord{}, err
	}

	return rec, nil
}

func (p *Postgres) SaveStory(ctx context.Context, rec server.StoryRecord) error {
	query := `
		INSERT INTO stories (id, title, author, url, username, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		rec.ID, rec.Title, rec.Author, rec.URL, rec.Username, rec.CreatedAt,
	)

	return err
}

func (p *Postgres) DeleteStory(ctx context.Context, id string) error {
	// favorites rows go with the story via ON DELETE CASCADE
	tag, err := p.pool.Exec(ctx, `DELETE FROM stories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return server.ErrNotFound
	}

	return nil
}

func (p *Postgres) StoriesByUser(ctx context.Context, username string) ([]server.StoryRecord, error) {
	query := `
		SELECT id, title, author, url, username, created_at
		FROM stories
		WHERE username = $1
		ORDER BY created_at, id
	`

	rows, err := p.pool.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStories(rows)
}

func (p *Postgres) CreateUser(ctx context.Context, rec server.UserRecord) error {
	query := `
		INSERT INTO users (username, name, password_hash, token, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (username) DO NOTHING
	`

	tag, err := p.pool.Exec(ctx, query,
		rec.Username, rec.Name, rec.PasswordHash, rec.Token, rec.CreatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return server.ErrExists
	}

	return nil
}

func (p *Postgres) GetUser(ctx context.Context, username string) (server.UserRecord, error) {
	query := `
		SELECT username, name, password_hash, token, created_at
		FROM users
		WHERE username = $1
	`

	return p.scanUser(p.pool.QueryRow(ctx, query, username))
}

func (p *Postgres) GetUserByToken(ctx context.Context, token string) (server.UserRecord, error) {
	query := `
		SELECT username, name, password_hash, token, created_at
		FROM users
		WHERE token = $1
	`

	return p.scanUser(p.pool.QueryRow(ctx, query, token))
}

func (p *Postgres) SetToken(ctx context.Context, username, token string) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE users SET token = $2 WHERE username = $1`, username, token,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return server.ErrNotFound
	}

	return nil
}

func (p *Postgres) Favorites(ctx context.Context, username string) ([]server.StoryRecord, error) {
	query := `
		SELECT s.id, s.title, s.author, s.url, s.username, s.created_at
		FROM stories s
		JOIN favorites f ON f.story_id = s.id
		WHERE f.username = $1
		ORDER BY f.created_at, s.id
	`

	rows, err := p.pool.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStories(rows)
}

func (p *Postgres) AddFavorite(ctx context.Context, username, storyID string) error {
	query := `
		INSERT INTO favorites (username, story_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query, username, storyID)

	return err
}

func (p *Postgres) RemoveFavorite(ctx context.Context, username, storyID string) error {
	_, err := p.pool.Exec(ctx,
		`DELETE FROM favorites WHERE username = $1 AND story_id = $2`, username, storyID,
	)

	return err
}

func (p *Postgres) scanUser(row pgx.Row) (server.UserRecord, error) {
	var rec server.UserRecord

	err := row.Scan(&rec.Username, &rec.Name, &rec.PasswordHash, &rec.Token, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return server.UserRecord{}, server.ErrNotFound
		}

		return server.UserRecord{}, err
	}

	return rec, nil
}

func scanStories(rows pgx.Rows) ([]server.StoryRecord, error) {
	var out []server.StoryRecord

	for rows.Next() {
		var rec server.StoryRecord

		err := rows.Scan(&rec.ID, &rec.Title, &rec.Author, &rec.URL, &rec.Username, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}

		out = append(out, rec)
	}

	return out, rows.Err()
}
