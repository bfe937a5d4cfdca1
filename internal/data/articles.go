package data

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/core"
	"github.com/siahsang/conduit/internal/filter"
	"github.com/siahsang/conduit/internal/utils/databaseutils"
	"github.com/siahsang/conduit/models"
)

const articleColumns = `id, slug, title, description, body, tag_list, favorites_count, author_id, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type ArticleModel struct {
	sqlTemplate *databaseutils.SQLTemplate
	log         *slog.Logger
}

func scanArticle(rows *sql.Rows) (*models.Article, error) {
	article := &models.Article{}
	if err := rows.Scan(
		&article.ID,
		&article.Slug,
		&article.Title,
		&article.Description,
		&article.Body,
		pq.Array(&article.TagList),
		&article.FavoritesCount,
		&article.AuthorID,
		&article.CreatedAt,
		&article.UpdatedAt,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return article, nil
}

func articleWriteError(err error) error {
	if violatedConstraint(err) == "articles_slug_key" {
		return xerrors.New(core.ErrDuplicatedSlug)
	}
	return notFoundOr(err)
}

func (articleModel ArticleModel) CreateArticle(ctx context.Context, article *models.Article) (*models.Article, error) {
	query := fmt.Sprintf(`
		INSERT INTO articles (slug, title, description, body, tag_list, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`, articleColumns)

	args := []any{article.Slug, article.Title, article.Description, article.Body, pq.Array(article.TagList), article.AuthorID}
	created, err := databaseutils.ExecuteSingleQuery(articleModel.sqlTemplate, ctx, query, scanArticle, args...)
	if err != nil {
		return nil, articleWriteError(err)
	}
	return created, nil
}

func (articleModel ArticleModel) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE slug = $1`, articleColumns)

	article, err := databaseutils.ExecuteSingleQuery(articleModel.sqlTemplate, ctx, query, scanArticle, slug)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return article, nil
}

// UpdateArticle leaves favorites_count alone; only Favorite/Unfavorite move it.
func (articleModel ArticleModel) UpdateArticle(ctx context.Context, article *models.Article) (*models.Article, error) {
	query := fmt.Sprintf(`
		UPDATE articles
		SET slug = $1, title = $2, description = $3, body = $4, tag_list = $5, updated_at = now()
		WHERE id = $6
		RETURNING %s
	`, articleColumns)

	args := []any{article.Slug, article.Title, article.Description, article.Body, pq.Array(article.TagList), article.ID}
	updated, err := databaseutils.ExecuteSingleQuery(articleModel.sqlTemplate, ctx, query, scanArticle, args...)
	if err != nil {
		return nil, articleWriteError(err)
	}
	return updated, nil
}

func (articleModel ArticleModel) DeleteArticle(ctx context.Context, id int64) error {
	affected, err := databaseutils.ExecuteUpdate(articleModel.sqlTemplate, ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return xerrors.New(err)
	}
	if affected == 0 {
		return xerrors.New(core.NoRecordFound)
	}
	return nil
}

// whereClause renders f as a conjunction of predicates with positional args starting at $1.
func whereClause(f core.ArticleFilter) (string, []any) {
	var conditions []string
	var args []any
	add := func(condition string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if f.AuthorIDs != nil {
		add("author_id = ANY($%d)", pq.Array(f.AuthorIDs))
	}
	if f.AuthorUsername != "" {
		add("author_id = (SELECT id FROM users WHERE username = $%d)", f.AuthorUsername)
	}
	if f.IDs != nil {
		add("id = ANY($%d)", pq.Array(f.IDs))
	}
	if len(f.Tags) > 0 {
		add("tag_list @> $%d", pq.Array(f.Tags))
	}
	if f.Search != "" {
		add("title ILIKE '%%' || $%d || '%%'", likeEscaper.Replace(f.Search))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (articleModel ArticleModel) ListArticles(ctx context.Context, f core.ArticleFilter) ([]*models.Article, int64, error) {
	where, args := whereClause(f)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM articles %s`, where)
	count, err := databaseutils.ExecuteSingleQuery(articleModel.sqlTemplate, ctx, countQuery, scanID, args...)
	if err != nil {
		return nil, 0, xerrors.New(err)
	}
	if count == 0 {
		return []*models.Article{}, 0, nil
	}

	limit := f.Page.Limit
	if limit <= 0 {
		limit = filter.DefaultLimit
	}
	direction := f.Page.OrderDirection()
	pageQuery := fmt.Sprintf(`
		SELECT %s
		FROM articles
		%s
		ORDER BY created_at %s, id %s
		LIMIT $%d OFFSET $%d
	`, articleColumns, where, direction, direction, len(args)+1, len(args)+2)

	articles, err := databaseutils.ExecuteQuery(articleModel.sqlTemplate, ctx, pageQuery, scanArticle, append(args, limit, f.Page.Offset)...)
	if err != nil {
		return nil, 0, xerrors.New(err)
	}
	return articles, count, nil
}

func (articleModel ArticleModel) AddFavorite(ctx context.Context, userID, articleID int64) (bool, error) {
	query := `
		INSERT INTO favourite_articles (user_id, article_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	affected, err := databaseutils.ExecuteUpdate(articleModel.sqlTemplate, ctx, query, userID, articleID)
	if err != nil {
		return false, xerrors.New(err)
	}
	return affected > 0, nil
}

func (articleModel ArticleModel) RemoveFavorite(ctx context.Context, userID, articleID int64) (bool, error) {
	query := `DELETE FROM favourite_articles WHERE user_id = $1 AND article_id = $2`
	affected, err := databaseutils.ExecuteUpdate(articleModel.sqlTemplate, ctx, query, userID, articleID)
	if err != nil {
		return false, xerrors.New(err)
	}
	return affected > 0, nil
}

func (articleModel ArticleModel) AdjustFavoritesCount(ctx context.Context, articleID, delta int64) error {
	query := `UPDATE articles SET favorites_count = favorites_count + $1 WHERE id = $2`
	affected, err := databaseutils.ExecuteUpdate(articleModel.sqlTemplate, ctx, query, delta, articleID)
	if err != nil {
		return xerrors.New(err)
	}
	if affected == 0 {
		return xerrors.New(core.NoRecordFound)
	}

	articleModel.log.Debug("Favorites count adjusted", "article_id", articleID, "delta", delta)
	return nil
}

func (articleModel ArticleModel) FavoriteArticleIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := `SELECT article_id FROM favourite_articles WHERE user_id = $1 ORDER BY article_id`
	ids, err := databaseutils.ExecuteQuery(articleModel.sqlTemplate, ctx, query, scanID, userID)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return ids, nil
}

func (articleModel ArticleModel) GetTags(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT tag FROM articles, unnest(tag_list) AS tag ORDER BY tag`
	tags, err := databaseutils.ExecuteQuery(articleModel.sqlTemplate, ctx, query, func(rows *sql.Rows) (string, error) {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return "", xerrors.New(err)
		}
		return tag, nil
	})
	if err != nil {
		return nil, xerrors.New(err)
	}
	return tags, nil
}
