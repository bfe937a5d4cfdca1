package data

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/core"
	"github.com/siahsang/conduit/internal/utils/databaseutils"
	"github.com/siahsang/conduit/internal/utils/stringutils"
)

const userColumns = `id, email, username, password, bio, image`

type UserModel struct {
	sqlTemplate *databaseutils.SQLTemplate
	log         *slog.Logger
}

func scanUser(rows *sql.Rows) (*auth.User, error) {
	var user = &auth.User{}
	if err := rows.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.Password,
		&user.Bio,
		&user.Image,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return user, nil
}

func userWriteError(err error) error {
	switch violatedConstraint(err) {
	case "users_email_key":
		return xerrors.New(core.ErrDuplicateEmail)
	case "users_username_key":
		return xerrors.New(core.ErrDuplicateUsername)
	default:
		return notFoundOr(err)
	}
}

func (userModel UserModel) CreateUser(ctx context.Context, user *auth.User) error {
	query := `
		INSERT INTO users (username, email, password)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	_, err := databaseutils.ExecuteSingleQuery(userModel.sqlTemplate, ctx, query, func(rows *sql.Rows) (*auth.User, error) {
		if err := rows.Scan(&user.ID); err != nil {
			return nil, xerrors.New(err)
		}
		return user, nil
	}, user.Username, user.Email, user.Password)

	if err != nil {
		return userWriteError(err)
	}
	return nil
}

func (userModel UserModel) getUserBy(ctx context.Context, column string, value any) (*auth.User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s = $1
	`, userColumns, column)

	user, err := databaseutils.ExecuteSingleQuery(userModel.sqlTemplate, ctx, query, scanUser, value)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return user, nil
}

func (userModel UserModel) GetUserByID(ctx context.Context, id int64) (*auth.User, error) {
	return userModel.getUserBy(ctx, "id", id)
}

func (userModel UserModel) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return userModel.getUserBy(ctx, "email", email)
}

func (userModel UserModel) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	return userModel.getUserBy(ctx, "username", username)
}

func (userModel UserModel) GetUsersByIDList(ctx context.Context, ids []int64) ([]*auth.User, error) {
	if len(ids) == 0 {
		return []*auth.User{}, nil
	}

	placeholders, args := stringutils.InClause(ids, 1)
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE id IN (%s)
	`, userColumns, strings.Join(placeholders, ", "))

	users, err := databaseutils.ExecuteQuery(userModel.sqlTemplate, ctx, query, scanUser, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return users, nil
}

func (userModel UserModel) UpdateUser(ctx context.Context, user *auth.User) (*auth.User, error) {
	query := fmt.Sprintf(`
		UPDATE users
		SET email = $1, username = $2, password = $3, bio = $4, image = $5, updated_at = now()
		WHERE id = $6
		RETURNING %s
	`, userColumns)

	args := []any{user.Email, user.Username, user.Password, user.Bio, user.Image, user.ID}
	updated, err := databaseutils.ExecuteSingleQuery(userModel.sqlTemplate, ctx, query, scanUser, args...)
	if err != nil {
		return nil, userWriteError(err)
	}

	userModel.log.Debug("User row updated", "user_id", updated.ID)
	return updated, nil
}
