package core

import (
	"context"
	"errors"
	"strings"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/utils/functional"
	"github.com/siahsang/conduit/models"
)

type ArticleInput struct {
	Title       string
	Description string
	Body        string
	TagList     []string
}

// ArticleUpdate carries the fields to change; nil means unchanged.
type ArticleUpdate struct {
	Title       *string
	Description *string
	Body        *string
	TagList     *[]string
}

func (c *Core) CreateArticle(ctx context.Context, authorID int64, input ArticleInput) (*models.Article, error) {
	article := &models.Article{
		Title:       input.Title,
		Description: input.Description,
		Body:        input.Body,
		TagList:     normalizeTags(input.TagList),
		AuthorID:    authorID,
	}

	var created *models.Article
	err := c.withFreshSlug(article.Title, func(slug string) error {
		article.Slug = slug
		var err error
		created, err = c.articles.CreateArticle(ctx, article)
		return err
	})
	if err != nil {
		return nil, xerrors.New(err)
	}

	c.log.Info("Article created", "article_id", created.ID, "slug", created.Slug, "author_id", authorID)
	return c.decorateArticle(ctx, authorID, created)
}

func (c *Core) GetArticle(ctx context.Context, viewerID int64, slug string) (*models.Article, error) {
	article, err := c.articles.GetArticleBySlug(ctx, slug)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return c.decorateArticle(ctx, viewerID, article)
}

// UpdateArticle runs outside a transaction: a slug collision aborts a
// PostgreSQL transaction, which would make the regeneration retry impossible.
func (c *Core) UpdateArticle(ctx context.Context, userID int64, slug string, update ArticleUpdate) (*models.Article, error) {
	article, err := c.ownedArticle(ctx, userID, slug)
	if err != nil {
		return nil, xerrors.New(err)
	}

	titleChanged := update.Title != nil && *update.Title != article.Title
	if update.Title != nil {
		article.Title = *update.Title
	}
	if update.Description != nil {
		article.Description = *update.Description
	}
	if update.Body != nil {
		article.Body = *update.Body
	}
	if update.TagList != nil {
		article.TagList = normalizeTags(*update.TagList)
	}

	var updated *models.Article
	if titleChanged {
		err = c.withFreshSlug(article.Title, func(newSlug string) error {
			article.Slug = newSlug
			var err error
			updated, err = c.articles.UpdateArticle(ctx, article)
			return err
		})
	} else {
		updated, err = c.articles.UpdateArticle(ctx, article)
	}
	if err != nil {
		return nil, xerrors.New(err)
	}

	return c.decorateArticle(ctx, userID, updated)
}

func (c *Core) DeleteArticle(ctx context.Context, userID int64, slug string) error {
	err := c.session.DoTransactionally(ctx, func(txCtx context.Context) error {
		article, err := c.ownedArticle(txCtx, userID, slug)
		if err != nil {
			return err
		}
		return c.articles.DeleteArticle(txCtx, article.ID)
	})
	if err != nil {
		return xerrors.New(err)
	}

	c.log.Info("Article deleted", "slug", slug, "user_id", userID)
	return nil
}

func (c *Core) ownedArticle(ctx context.Context, userID int64, slug string) (*models.Article, error) {
	article, err := c.articles.GetArticleBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != userID {
		return nil, xerrors.New(ErrForbidden)
	}
	return article, nil
}

// withFreshSlug calls save with a newly generated slug, retrying while the slug is taken.
func (c *Core) withFreshSlug(title string, save func(slug string) error) error {
	var err error
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		var slug string
		slug, err = c.buildSlug(title)
		if err != nil {
			return err
		}
		err = save(slug)
		if !errors.Is(err, ErrDuplicatedSlug) {
			return err
		}
		c.log.Warn("Slug collision, regenerating", "slug", slug)
	}
	return err
}

func normalizeTags(tags []string) []string {
	trimmed := functional.Map(tags, strings.TrimSpace)
	nonBlank := functional.Filter(trimmed, func(tag string) bool { return tag != "" })
	return functional.Distinct(nonBlank)
}
