// Package data implements the core store interfaces on PostgreSQL.
package data

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/core"
	"github.com/siahsang/conduit/internal/utils/databaseutils"
)

const uniqueViolation = "23505"

type Models struct {
	Users    UserModel
	Follows  FollowModel
	Articles ArticleModel
	Comments CommentModel
}

func NewModels(sqlTemplate *databaseutils.SQLTemplate, log *slog.Logger) Models {
	return Models{
		Users:    UserModel{sqlTemplate: sqlTemplate, log: log},
		Follows:  FollowModel{sqlTemplate: sqlTemplate},
		Articles: ArticleModel{sqlTemplate: sqlTemplate, log: log},
		Comments: CommentModel{sqlTemplate: sqlTemplate},
	}
}

func (m Models) Stores() core.Stores {
	return core.Stores{
		Users:    m.Users,
		Follows:  m.Follows,
		Articles: m.Articles,
		Comments: m.Comments,
	}
}

// violatedConstraint returns the unique constraint err broke, or "".
func violatedConstraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint
	}
	return ""
}

func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return xerrors.New(core.NoRecordFound)
	}
	return xerrors.New(err)
}
