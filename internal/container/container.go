package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"

	"newsline/internal/activity"
	"newsline/internal/api"
	"newsline/internal/messaging"
	"newsline/internal/ratelimit"
	"newsline/internal/server"
	"newsline/internal/session"
	"newsline/internal/stories"
	"newsline/internal/store"
)

// Options configures every binary; unused fields are simply not
// invoked by a given main.
type Options struct {
	Port        int    `default:"8480"                  help:"Port for the dev API server"                     short:"p"`
	APIURL      string `default:"http://localhost:8480" help:"Base URL of the content API"                     short:"u"`
	RedisAddr   string `default:"localhost:6379"        help:"Redis server address"                            short:"r"`
	PostgresDSN string `default:""                      help:"Postgres DSN; empty keeps the in-memory store"`
	LogFormat   string `default:"console"               help:"Log format: console or json"`
	RateLimit   int64  `default:"300"                   help:"Requests per minute per client; 0 disables"`
}

const storyIDLength = 12

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the shared Redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{Addr: options.RedisAddr}), nil
	})
}

// PostgresPackage provides the pgx pool. It is only invoked when a DSN
// is configured.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		return pgxpool.New(context.Background(), options.PostgresDSN)
	})
}

// RepositoryPackage provides the dev server's storage: Postgres when a
// DSN is configured, in-memory otherwise.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (server.Repository, error) {
		options := do.MustInvoke[*Options](i)

		if options.PostgresDSN == "" {
			return store.NewMemory(), nil
		}

		pool := do.MustInvoke[*pgxpool.Pool](i)
		repo := store.NewPostgres(pool)

		if err := repo.Migrate(context.Background()); err != nil {
			return nil, fmt.Errorf("migrate schema: %w", err)
		}

		return repo, nil
	})
}

// ServerPackage provides the dev API server router.
func ServerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*chi.Mux, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		repo := do.MustInvoke[server.Repository](i)

		newStoryID, err := nanoid.Standard(storyIDLength)
		if err != nil {
			return nil, fmt.Errorf("build id generator: %w", err)
		}

		var limiter ratelimit.Limiter
		if options.RateLimit > 0 {
			limiter = ratelimit.NewSlidingWindowLimiter(
				store.NewRateLimitMemory(), options.RateLimit, time.Minute,
			)
		}

		handler := server.NewHandler(repo, newStoryID, logger)

		return server.NewRouter(handler, limiter, logger), nil
	})
}

// ClientPackage provides the content API client as stories.Service.
func ClientPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (stories.Service, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		httpClient := &http.Client{Timeout: 15 * time.Second}

		return api.NewClient(options.APIURL, httpClient, logger), nil
	})
}

// CredentialsPackage provides the Redis-backed credential store.
func CredentialsPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (session.CredentialStore, error) {
		client := do.MustInvoke[*redis.Client](i)

		return store.NewRedisCredentials(client, "newsline:credentials"), nil
	})
}

// PublisherGroupPackage provides the activity event publisher over
// Redis streams.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: client},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			return nil, fmt.Errorf("build publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})
}

// SessionPackage provides the session wired to the client, credential
// store, and activity publishers.
func SessionPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*session.Session, error) {
		svc := do.MustInvoke[stories.Service](i)
		creds := do.MustInvoke[session.CredentialStore](i)
		logger := do.MustInvoke[*zap.Logger](i)
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return session.New(
			svc,
			creds,
			messaging.NewPublishFunc[activity.StoryPostedEvent](group.Publisher(), activity.TopicStoryPosted),
			messaging.NewPublishFunc[activity.StoryRemovedEvent](group.Publisher(), activity.TopicStoryRemoved),
			messaging.NewPublishFunc[activity.FavoriteChangedEvent](group.Publisher(), activity.TopicFavoriteChanged),
			logger,
		), nil
	})
}

// ConsumerGroupPackage provides the activity consumers over Redis
// streams, persisting counters back to Redis.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := redisstream.NewSubscriber(
			redisstream.SubscriberConfig{
				Client:        client,
				ConsumerGroup: "newsline-activity",
			},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			return nil, fmt.Errorf("build subscriber: %w", err)
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		for _, consumer := range activity.NewConsumers(subscriber, store.NewRedisActivity(client), logger) {
			group.Add(consumer)
		}

		return group, nil
	})
}
