package core_test

import (
	"context"
	"testing"

	"github.com/siahsang/conduit/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestFavoriteIsIdempotentAndMatchesEdges(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	author := h.user(t, "author")
	reader := h.user(t, "reader")
	slug := h.article(t, author, "Counting Stars")

	for i := 0; i < 3; i++ {
		article, err := h.core.Favorite(ctx, reader.ID, slug)
		require.NoError(t, err)
		assert.True(t, article.Favorited)
		assert.Equal(t, int64(1), article.FavoritesCount)
		assert.Equal(t, h.stores.Articles.FavoriteEdgeCount(article.ID), article.FavoritesCount)
	}

	article, err := h.core.Favorite(ctx, author.ID, slug)
	require.NoError(t, err)
	assert.Equal(t, int64(2), article.FavoritesCount)
	assert.Equal(t, h.stores.Articles.FavoriteEdgeCount(article.ID), article.FavoritesCount)
}

func TestUnfavoriteIsANoOpWithoutAnEdge(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	author := h.user(t, "author")
	reader := h.user(t, "reader")
	slug := h.article(t, author, "Nobody Likes Me")

	article, err := h.core.Unfavorite(ctx, reader.ID, slug)
	require.NoError(t, err)
	assert.False(t, article.Favorited)
	assert.Zero(t, article.FavoritesCount)

	_, err = h.core.Favorite(ctx, reader.ID, slug)
	require.NoError(t, err)
	article, err = h.core.Unfavorite(ctx, reader.ID, slug)
	require.NoError(t, err)
	assert.False(t, article.Favorited)
	assert.Zero(t, article.FavoritesCount)

	article, err = h.core.Unfavorite(ctx, reader.ID, slug)
	require.NoError(t, err)
	assert.Zero(t, article.FavoritesCount)
	assert.Zero(t, h.stores.Articles.FavoriteEdgeCount(article.ID))
}

func TestFavoriteUnknownArticle(t *testing.T) {
	h := newHarness(t)
	reader := h.user(t, "reader")

	_, err := h.core.Favorite(context.Background(), reader.ID, "missing-abc123")
	assert.ErrorIs(t, err, core.NoRecordFound)
	_, err = h.core.Unfavorite(context.Background(), reader.ID, "missing-abc123")
	assert.ErrorIs(t, err, core.NoRecordFound)
}

func TestConcurrentFavoritesBySameUserCountOnce(t *testing.T) {
	h := newHarness(t)
	author := h.user(t, "author")
	reader := h.user(t, "reader")
	slug := h.article(t, author, "Race Condition")

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			_, err := h.core.Favorite(context.Background(), reader.ID, slug)
			return err
		})
	}
	require.NoError(t, g.Wait())

	article, err := h.core.GetArticle(context.Background(), reader.ID, slug)
	require.NoError(t, err)
	assert.Equal(t, int64(1), article.FavoritesCount)
	assert.Equal(t, int64(1), h.stores.Articles.FavoriteEdgeCount(article.ID))
}

func TestConcurrentFavoritesByDistinctUsers(t *testing.T) {
	h := newHarness(t)
	author := h.user(t, "author")
	slug := h.article(t, author, "Popular")

	readers := []string{"r1", "r2", "r3", "r4", "r5", "r6"}
	var g errgroup.Group
	for _, name := range readers {
		reader := h.user(t, name)
		g.Go(func() error {
			if _, err := h.core.Favorite(context.Background(), reader.ID, slug); err != nil {
				return err
			}
			_, err := h.core.Favorite(context.Background(), reader.ID, slug)
			return err
		})
	}
	require.NoError(t, g.Wait())

	article, err := h.core.GetArticle(context.Background(), 0, slug)
	require.NoError(t, err)
	assert.Equal(t, int64(len(readers)), article.FavoritesCount)
	assert.Equal(t, h.stores.Articles.FavoriteEdgeCount(article.ID), article.FavoritesCount)
}

func TestFavoriteRunsInATransaction(t *testing.T) {
	h := newHarness(t)
	author := h.user(t, "author")
	slug := h.article(t, author, "Atomic")

	before := h.stores.Session.Transactions
	_, err := h.core.Favorite(context.Background(), author.ID, slug)
	require.NoError(t, err)
	assert.Equal(t, before+1, h.stores.Session.Transactions)
}
