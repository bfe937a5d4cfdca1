package core

import (
	"context"
	"errors"
	"strings"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/filter"
	"github.com/siahsang/conduit/internal/utils/collectionutils"
	"github.com/siahsang/conduit/internal/utils/functional"
	"github.com/siahsang/conduit/models"
)

type ArticleList struct {
	Articles      []*models.Article
	ArticlesCount int64
}

// ArticleQuery mirrors the query string of GET /api/articles.
type ArticleQuery struct {
	Author    string
	Tag       string // comma separated, every tag must be present
	Favorited string
	Search    string
	Filter    filter.Filter
}

func emptyArticleList() *ArticleList {
	return &ArticleList{Articles: []*models.Article{}}
}

// GetFeed lists articles written by the users viewerID follows, newest first.
func (c *Core) GetFeed(ctx context.Context, viewerID int64, page filter.Filter) (*ArticleList, error) {
	followingIDs, err := c.follows.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, xerrors.New(err)
	}
	if len(followingIDs) == 0 {
		return emptyArticleList(), nil
	}

	page.SortOrder = filter.SortDesc
	return c.listArticles(ctx, viewerID, ArticleFilter{AuthorIDs: followingIDs, Page: page})
}

func (c *Core) FindAll(ctx context.Context, viewerID int64, query ArticleQuery) (*ArticleList, error) {
	f := ArticleFilter{
		AuthorUsername: strings.TrimSpace(query.Author),
		Tags:           splitTags(query.Tag),
		Search:         strings.TrimSpace(query.Search),
		Page:           query.Filter,
	}

	if favorited := strings.TrimSpace(query.Favorited); favorited != "" {
		ids, err := c.favoriteIDsOf(ctx, favorited)
		if err != nil {
			return nil, xerrors.New(err)
		}
		if len(ids) == 0 {
			return emptyArticleList(), nil
		}
		f.IDs = ids
	}

	return c.listArticles(ctx, viewerID, f)
}

// favoriteIDsOf returns nothing, rather than NoRecordFound, for an unknown username.
func (c *Core) favoriteIDsOf(ctx context.Context, username string) ([]int64, error) {
	user, err := c.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, NoRecordFound) {
			return nil, nil
		}
		return nil, err
	}
	return c.articles.FavoriteArticleIDs(ctx, user.ID)
}

func (c *Core) listArticles(ctx context.Context, viewerID int64, f ArticleFilter) (*ArticleList, error) {
	articles, count, err := c.articles.ListArticles(ctx, f)
	if err != nil {
		return nil, xerrors.New(err)
	}
	if articles == nil {
		articles = []*models.Article{}
	}

	if err := c.decorateArticles(ctx, viewerID, articles); err != nil {
		return nil, err
	}
	return &ArticleList{Articles: articles, ArticlesCount: count}, nil
}

func (c *Core) decorateArticle(ctx context.Context, viewerID int64, article *models.Article) (*models.Article, error) {
	if err := c.decorateArticles(ctx, viewerID, []*models.Article{article}); err != nil {
		return nil, err
	}
	return article, nil
}

// decorateArticles sets Favorited for viewerID and attaches author profiles.
func (c *Core) decorateArticles(ctx context.Context, viewerID int64, articles []*models.Article) error {
	if len(articles) == 0 {
		return nil
	}

	var favoriteSet map[int64]struct{}
	if viewerID != 0 {
		favoriteIDs, err := c.articles.FavoriteArticleIDs(ctx, viewerID)
		if err != nil {
			return xerrors.New(err)
		}
		favoriteSet = collectionutils.ToSet(favoriteIDs, func(id int64) int64 { return id })
	}

	authorIDs := functional.Map(articles, func(a *models.Article) int64 { return a.AuthorID })
	profiles, err := c.profilesByUserID(ctx, viewerID, authorIDs)
	if err != nil {
		return err
	}

	for _, article := range articles {
		_, article.Favorited = favoriteSet[article.ID]
		article.Author = profiles[article.AuthorID]
		if article.TagList == nil {
			article.TagList = []string{}
		}
	}
	return nil
}

func splitTags(tag string) []string {
	if tag == "" {
		return nil
	}
	return normalizeTags(strings.Split(tag, ","))
}
