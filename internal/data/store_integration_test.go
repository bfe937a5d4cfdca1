//go:build integration

package data_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/config"
	"github.com/siahsang/conduit/internal/core"
	"github.com/siahsang/conduit/internal/data"
	"github.com/siahsang/conduit/internal/database"
	"github.com/siahsang/conduit/internal/filter"
	"github.com/siahsang/conduit/internal/utils/databaseutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newCore(t *testing.T) *core.Core {
	t.Helper()
	dsn := os.Getenv("CONDUIT_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("CONDUIT_TEST_DATABASE_URL not set")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := database.Open(config.DatabaseConfig{DSN: dsn, MaxOpenConns: 20, MaxIdleConns: 5, MaxIdleTime: time.Minute}, logger)
	require.NoError(t, err)
	require.NoError(t, db.MigrateDown())
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	tpl := databaseutils.NewSQLTemplate(db.DB, 3*time.Second)
	models := data.NewModels(tpl, logger)
	return core.NewCore(logger, models.Stores(), databaseutils.NewSession(db.DB, logger))
}

func createUser(t *testing.T, c *core.Core, username string) *auth.User {
	t.Helper()
	auth.BcryptCost = 4
	u := &auth.User{Username: username, Email: username + "@conduit.test"}
	require.NoError(t, u.SetPassword("password123"))
	require.NoError(t, c.CreateNewUser(context.Background(), u))
	return u
}

func TestPostgresConcurrentFavorites(t *testing.T) {
	c := newCore(t)
	ctx := context.Background()
	author := createUser(t, c, "author")
	fan := createUser(t, c, "fan")

	article, err := c.CreateArticle(ctx, author.ID, core.ArticleInput{Title: "Hot Take", Description: "d", Body: "b", TagList: []string{"go"}})
	require.NoError(t, err)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			_, err := c.Favorite(gctx, fan.ID, article.Slug)
			return err
		})
	}
	require.NoError(t, g.Wait())

	got, err := c.GetArticle(ctx, fan.ID, article.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.FavoritesCount)
	assert.True(t, got.Favorited)

	_, err = c.Unfavorite(ctx, fan.ID, article.Slug)
	require.NoError(t, err)
	got, err = c.Unfavorite(ctx, fan.ID, article.Slug)
	require.NoError(t, err)
	assert.Zero(t, got.FavoritesCount)
}

func TestPostgresListingAndFeed(t *testing.T) {
	c := newCore(t)
	ctx := context.Background()
	alice := createUser(t, c, "alice")
	bob := createUser(t, c, "bob")
	reader := createUser(t, c, "reader")

	for _, in := range []struct {
		author *auth.User
		title  string
		tags   []string
	}{
		{alice, "Learning Go", []string{"go"}},
		{alice, "Golang 100%", []string{"golang"}},
		{bob, "Go Concurrency", []string{"go", "concurrency"}},
	} {
		_, err := c.CreateArticle(ctx, in.author.ID, core.ArticleInput{Title: in.title, Description: "d", Body: "b", TagList: in.tags})
		require.NoError(t, err)
	}

	page := filter.NewFilter(20, 0, "")
	byTag, err := c.FindAll(ctx, 0, core.ArticleQuery{Tag: "go", Filter: page})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byTag.ArticlesCount)

	bySearch, err := c.FindAll(ctx, 0, core.ArticleQuery{Search: "100%", Filter: page})
	require.NoError(t, err)
	require.Len(t, bySearch.Articles, 1)
	assert.Equal(t, "Golang 100%", bySearch.Articles[0].Title)

	emptyFeed, err := c.GetFeed(ctx, reader.ID, page)
	require.NoError(t, err)
	assert.Zero(t, emptyFeed.ArticlesCount)

	_, err = c.FollowUser(ctx, "bob", reader.ID)
	require.NoError(t, err)
	feed, err := c.GetFeed(ctx, reader.ID, filter.NewFilter(1, 0, ""))
	require.NoError(t, err)
	assert.Equal(t, int64(1), feed.ArticlesCount)
	require.Len(t, feed.Articles, 1)
	assert.True(t, feed.Articles[0].Author.Following)

	tags, err := c.GetTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"concurrency", "go", "golang"}, tags)

	_, err = c.FollowUser(ctx, "alice", alice.ID)
	assert.ErrorIs(t, err, core.ErrFollowSelf)
}
