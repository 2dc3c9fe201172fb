// Command cli is a terminal front end for the newsline domain layer.
// It renders entities and collects input; all state changes go through
// the session.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"newsline/internal/activity"
	"newsline/internal/api"
	"newsline/internal/messaging"
	"newsline/internal/session"
	"newsline/internal/stories"
	"newsline/internal/store"
)

type cliFlags struct {
	apiURL    string
	credsPath string
	redisAddr string
}

func main() {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:           "newsline",
		Short:         "Share and favorite stories from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.apiURL, "api-url", "http://localhost:8480", "base URL of the content API")
	root.PersistentFlags().StringVar(&flags.credsPath, "creds", defaultCredsPath(), "path of the stored credentials file")
	root.PersistentFlags().StringVar(&flags.redisAddr, "redis-addr", "", "Redis address for activity events; empty disables them")

	root.AddCommand(
		signupCmd(flags),
		loginCmd(flags),
		logoutCmd(flags),
		storiesCmd(flags),
		postCmd(flags),
		removeCmd(flags),
		favCmd(flags),
		unfavCmd(flags),
		favoritesCmd(flags),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func defaultCredsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".newsline-credentials.json"
	}

	return filepath.Join(home, ".config", "newsline", "credentials.json")
}

// newSession wires a session for one CLI invocation. Activity events
// publish to Redis streams when an address is configured and are
// dropped otherwise.
func newSession(flags *cliFlags) (*session.Session, func(), error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)

	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}

	svc := api.NewClient(flags.apiURL, &http.Client{Timeout: 15 * time.Second}, logger)
	creds := store.NewFileCredentials(flags.credsPath)

	publishPosted := messaging.NoopPublish[activity.StoryPostedEvent]()
	publishRemoved := messaging.NoopPublish[activity.StoryRemovedEvent]()
	publishFavorite := messaging.NoopPublish[activity.FavoriteChangedEvent]()

	cleanup := func() { _ = logger.Sync() }

	if flags.redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: flags.redisAddr})

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: client},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("build event publisher: %w", err)
		}

		group := messaging.NewPublisherGroup(publisher)
		publishPosted = messaging.NewPublishFunc[activity.StoryPostedEvent](group.Publisher(), activity.TopicStoryPosted)
		publishRemoved = messaging.NewPublishFunc[activity.StoryRemovedEvent](group.Publisher(), activity.TopicStoryRemoved)
		publishFavorite = messaging.NewPublishFunc[activity.FavoriteChangedEvent](group.Publisher(), activity.TopicFavoriteChanged)

		cleanup = func() {
			_ = group.Shutdown()
			_ = client.Close()
			_ = logger.Sync()
		}
	}

	sess := session.New(svc, creds, publishPosted, publishRemoved, publishFavorite, logger)

	return sess, cleanup, nil
}

// withSession runs fn against a started session.
func withSession(flags *cliFlags, fn func(ctx context.Context, sess *session.Session) error) error {
	sess, cleanup, err := newSession(flags)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	if err := sess.Start(ctx); err != nil {
		return err
	}

	return fn(ctx, sess)
}

func signupCmd(flags *cliFlags) *cobra.Command {
	var password, name string

	cmd := &cobra.Command{
		Use:   "signup <username>",
		Short: "Register a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withSession(flags, func(ctx context.Context, sess *session.Session) error {
				if err := sess.Signup(ctx, args[0], password, name); err != nil {
					return err
				}

				fmt.Printf("welcome, %s\n", sess.User().Name())

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func loginCmd(flags *cliFlags) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in to an existing account",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withSession(flags, func(ctx context.Context, sess *session.Session) error {
				if err := sess.Login(ctx, args[0], password); err != nil {
					return err
				}

				fmt.Printf("logged in as %s\n", sess.User().Username())

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func logoutCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withSession(flags, func(ctx context.Context, sess *session.Session) error {
				sess.Logout(ctx)
				fmt.Println("logged out")

				return nil
			})
		},
	}
}

func storiesCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stories",
		Short: "Show the story feed",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withSession(flags, func(_ context.Context, sess *session.Session) error {
				for _, s := range sess.List().Stories() {
					printStory(sess, s)
				}

				return nil
			})
		},
	}
}

func postCmd(flags *cliFlags) *cobra.Command {
	var draft stories.Draft

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Submit a new story",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withSession(flags, func(ctx context.Context, sess *session.Session) error {
				story, err := sess.PostStory(ctx, draft)
				if err != nil {
					return err
				}

				fmt.Printf("posted %s\n", story.ID)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&draft.Title, "title", "", "story title")
	cmd.Flags().StringVar(&draft.Author, "author", "", "story author")
	cmd.Flags().StringVar(&draft.URL, "url", "", "story link")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func removeCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <storyId>",
		Short: "Delete one of your stories",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withSession(flags, func(ctx context.Context, sess *session.Session) error {
				if err := sess.RemoveStory(ctx, stories.StoryID(args[0])); err != nil {
					return err
				}

				fmt.Println("removed")

				return nil
			})
		},
	}
}

func favCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "fav <storyId>",
		Short: "Favorite a story",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withSession(flags, func(ctx context.Context, sess *session.Session) error {
				story, ok := findStory(sess.List(), args[0])
				if !ok {
					return fmt.Errorf("story %s is not in the feed", args[0])
				}

				return sess.Favorite(ctx, story)
			})
		},
	}
}

func unfavCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "unfav <storyId>",
		Short: "Remove a story from your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withSession(flags, func(ctx context.Context, sess *session.Session) error {
				story, ok := findStory(sess.List(), args[0])
				if !ok {
					return fmt.Errorf("story %s is not in the feed", args[0])
				}

				return sess.Unfavorite(ctx, story)
			})
		},
	}
}

func favoritesCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "Show your favorite stories",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withSession(flags, func(_ context.Context, sess *session.Session) error {
				if !sess.Authenticated() {
					return stories.ErrUnauthenticated
				}

				for _, s := range sess.User().Favorites() {
					printStory(sess, s)
				}

				return nil
			})
		},
	}
}

func findStory(list *stories.List, id string) (stories.Story, bool) {
	for _, s := range list.Stories() {
		if s.ID == stories.StoryID(id) {
			return s, true
		}
	}

	return stories.Story{}, false
}

func printStory(sess *session.Session, s stories.Story) {
	star := " "
	if sess.Authenticated() && sess.User().IsFavorite(s) {
		star = "*"
	}

	host, err := s.Hostname()
	if err != nil {
		host = "?"
	}

	fmt.Printf("%s %s  %s (%s) by %s, posted by %s\n", star, s.ID, s.Title, host, s.Author, s.Username)
}
