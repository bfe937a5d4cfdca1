package core

import (
	"context"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/metrics"
	"github.com/siahsang/conduit/internal/utils/databaseutils"
	"github.com/siahsang/conduit/models"
)

// Favorite marks the article as favorited by userID. The edge insert and the
// favoritesCount increment commit together, and the counter only moves when
// the edge was actually created, so repeated or concurrent calls count once.
func (c *Core) Favorite(ctx context.Context, userID int64, slug string) (*models.Article, error) {
	return c.toggleFavorite(ctx, userID, slug, true)
}

func (c *Core) Unfavorite(ctx context.Context, userID int64, slug string) (*models.Article, error) {
	return c.toggleFavorite(ctx, userID, slug, false)
}

func (c *Core) toggleFavorite(ctx context.Context, userID int64, slug string, favorite bool) (*models.Article, error) {
	action, delta := "unfavorite", int64(-1)
	if favorite {
		action, delta = "favorite", 1
	}

	var changed bool
	article, err := databaseutils.DoTransactionally(ctx, c.session, func(txCtx context.Context) (*models.Article, error) {
		article, err := c.articles.GetArticleBySlug(txCtx, slug)
		if err != nil {
			return nil, err
		}

		if favorite {
			changed, err = c.articles.AddFavorite(txCtx, userID, article.ID)
		} else {
			changed, err = c.articles.RemoveFavorite(txCtx, userID, article.ID)
		}
		if err != nil || !changed {
			return article, err
		}

		if err := c.articles.AdjustFavoritesCount(txCtx, article.ID, delta); err != nil {
			return nil, err
		}
		return c.articles.GetArticleBySlug(txCtx, slug)
	})
	if err != nil {
		return nil, xerrors.New(err)
	}

	if changed {
		metrics.FavoriteMutations.WithLabelValues(action).Inc()
		c.log.Debug("Favorite toggled", "action", action, "user_id", userID, "article_id", article.ID)
	}
	return c.decorateArticle(ctx, userID, article)
}
