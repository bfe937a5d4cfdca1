package core

import (
	"context"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/utils/functional"
	"github.com/siahsang/conduit/models"
)

func (c *Core) CreateComment(ctx context.Context, userID int64, slug, body string) (*models.Comment, error) {
	article, err := c.articles.GetArticleBySlug(ctx, slug)
	if err != nil {
		return nil, xerrors.New(err)
	}

	comment, err := c.comments.CreateComment(ctx, &models.Comment{
		Body:      body,
		AuthorID:  userID,
		ArticleID: article.ID,
	})
	if err != nil {
		return nil, xerrors.New(err)
	}

	if err := c.attachCommentAuthors(ctx, userID, []*models.Comment{comment}); err != nil {
		return nil, err
	}
	return comment, nil
}

func (c *Core) GetComments(ctx context.Context, viewerID int64, slug string) ([]*models.Comment, error) {
	article, err := c.articles.GetArticleBySlug(ctx, slug)
	if err != nil {
		return nil, xerrors.New(err)
	}

	comments, err := c.comments.GetCommentsByArticleID(ctx, article.ID)
	if err != nil {
		return nil, xerrors.New(err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	if err := c.attachCommentAuthors(ctx, viewerID, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment removes a comment of the article; only its author may do so.
func (c *Core) DeleteComment(ctx context.Context, userID int64, slug string, commentID int64) error {
	err := c.session.DoTransactionally(ctx, func(txCtx context.Context) error {
		article, err := c.articles.GetArticleBySlug(txCtx, slug)
		if err != nil {
			return err
		}

		comment, err := c.comments.GetComment(txCtx, article.ID, commentID)
		if err != nil {
			return err
		}
		if comment.AuthorID != userID {
			return xerrors.New(ErrForbidden)
		}

		return c.comments.DeleteComment(txCtx, comment.ID)
	})
	if err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (c *Core) attachCommentAuthors(ctx context.Context, viewerID int64, comments []*models.Comment) error {
	authorIDs := functional.Map(comments, func(comment *models.Comment) int64 { return comment.AuthorID })
	profiles, err := c.profilesByUserID(ctx, viewerID, authorIDs)
	if err != nil {
		return err
	}

	for _, comment := range comments {
		comment.Author = profiles[comment.AuthorID]
	}
	return nil
}
