package core

import (
	"context"
	"log/slog"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/filter"
	"github.com/siahsang/conduit/internal/utils/databaseutils"
	"github.com/siahsang/conduit/models"
)

// UserStore reads and writes user rows. Lookups return NoRecordFound when nothing matches.
type UserStore interface {
	CreateUser(ctx context.Context, user *auth.User) error
	GetUserByID(ctx context.Context, id int64) (*auth.User, error)
	GetUserByEmail(ctx context.Context, email string) (*auth.User, error)
	GetUserByUsername(ctx context.Context, username string) (*auth.User, error)
	GetUsersByIDList(ctx context.Context, ids []int64) ([]*auth.User, error)
	UpdateUser(ctx context.Context, user *auth.User) (*auth.User, error)
}

// FollowStore maintains follower -> following edges.
type FollowStore interface {
	// Follow is a no-op when the edge already exists.
	Follow(ctx context.Context, followerID, followingID int64) error
	// Unfollow is a no-op when there is no edge.
	Unfollow(ctx context.Context, followerID, followingID int64) error
	IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error)
	FollowingIDs(ctx context.Context, followerID int64) ([]int64, error)
	FollowersCount(ctx context.Context, userIDs []int64) (map[int64]int64, error)
}

// ArticleFilter narrows ListArticles. Nil id slices mean "no restriction";
// callers short-circuit empty ones before reaching the store.
type ArticleFilter struct {
	AuthorIDs      []int64
	AuthorUsername string
	Tags           []string
	IDs            []int64
	Search         string
	Page           filter.Filter
}

type ArticleStore interface {
	CreateArticle(ctx context.Context, article *models.Article) (*models.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error)
	UpdateArticle(ctx context.Context, article *models.Article) (*models.Article, error)
	DeleteArticle(ctx context.Context, id int64) error
	// ListArticles returns one page and the size of the whole filtered set.
	ListArticles(ctx context.Context, f ArticleFilter) ([]*models.Article, int64, error)

	// AddFavorite and RemoveFavorite report whether the edge set changed.
	AddFavorite(ctx context.Context, userID, articleID int64) (bool, error)
	RemoveFavorite(ctx context.Context, userID, articleID int64) (bool, error)
	AdjustFavoritesCount(ctx context.Context, articleID, delta int64) error
	FavoriteArticleIDs(ctx context.Context, userID int64) ([]int64, error)

	GetTags(ctx context.Context) ([]string, error)
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	GetCommentsByArticleID(ctx context.Context, articleID int64) ([]*models.Comment, error)
	GetComment(ctx context.Context, articleID, commentID int64) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID int64) error
}

type Stores struct {
	Users    UserStore
	Follows  FollowStore
	Articles ArticleStore
	Comments CommentStore
}

type Core struct {
	log      *slog.Logger
	users    UserStore
	follows  FollowStore
	articles ArticleStore
	comments CommentStore
	session  databaseutils.Transactor

	slugSuffix func() (string, error)
}

func NewCore(log *slog.Logger, stores Stores, session databaseutils.Transactor) *Core {
	return &Core{
		log:        log,
		users:      stores.Users,
		follows:    stores.Follows,
		articles:   stores.Articles,
		comments:   stores.Comments,
		session:    session,
		slugSuffix: randomSlugSuffix,
	}
}
