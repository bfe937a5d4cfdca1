package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/core"
	"github.com/siahsang/conduit/internal/utils/databaseutils"
	"github.com/siahsang/conduit/models"
)

const commentColumns = `id, body, author_id, article_id, created_at, updated_at`

type CommentModel struct {
	sqlTemplate *databaseutils.SQLTemplate
}

func scanComment(rows *sql.Rows) (*models.Comment, error) {
	comment := &models.Comment{}
	if err := rows.Scan(
		&comment.ID,
		&comment.Body,
		&comment.AuthorID,
		&comment.ArticleID,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return comment, nil
}

func (commentModel CommentModel) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query := fmt.Sprintf(`
		INSERT INTO comments (body, author_id, article_id)
		VALUES ($1, $2, $3)
		RETURNING %s
	`, commentColumns)

	created, err := databaseutils.ExecuteSingleQuery(commentModel.sqlTemplate, ctx, query, scanComment, comment.Body, comment.AuthorID, comment.ArticleID)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return created, nil
}

func (commentModel CommentModel) GetCommentsByArticleID(ctx context.Context, articleID int64) ([]*models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM comments
		WHERE article_id = $1
		ORDER BY created_at, id
	`, commentColumns)

	comments, err := databaseutils.ExecuteQuery(commentModel.sqlTemplate, ctx, query, scanComment, articleID)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return comments, nil
}

func (commentModel CommentModel) GetComment(ctx context.Context, articleID, commentID int64) (*models.Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM comments WHERE id = $1 AND article_id = $2`, commentColumns)

	comment, err := databaseutils.ExecuteSingleQuery(commentModel.sqlTemplate, ctx, query, scanComment, commentID, articleID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return comment, nil
}

func (commentModel CommentModel) DeleteComment(ctx context.Context, commentID int64) error {
	affected, err := databaseutils.ExecuteUpdate(commentModel.sqlTemplate, ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return xerrors.New(err)
	}
	if affected == 0 {
		return xerrors.New(core.NoRecordFound)
	}
	return nil
}
