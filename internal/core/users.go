package core

import (
	"context"
	"errors"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/auth"
)

// UserUpdate holds the fields a user may change on themselves; nil means unchanged.
type UserUpdate struct {
	Email    *string
	Username *string
	Password *string
	Bio      *string
	Image    *string
}

// CreateNewUser expects user.Password to already hold the hash.
func (c *Core) CreateNewUser(ctx context.Context, user *auth.User) error {
	if err := c.users.CreateUser(ctx, user); err != nil {
		return xerrors.New(err)
	}

	c.log.Info("User registered", "user_id", user.ID, "username", user.Username)
	return nil
}

func (c *Core) Login(ctx context.Context, email, password string) (*auth.User, error) {
	user, err := c.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, NoRecordFound) {
			return nil, xerrors.New(ErrInvalidCredentials)
		}
		return nil, xerrors.New(err)
	}

	match, err := user.IsPasswordMatch(password)
	if err != nil {
		return nil, xerrors.New(err)
	}
	if !match {
		return nil, xerrors.New(ErrInvalidCredentials)
	}
	return user, nil
}

func (c *Core) GetUserByID(ctx context.Context, id int64) (*auth.User, error) {
	user, err := c.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return user, nil
}

func (c *Core) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	user, err := c.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return user, nil
}

func (c *Core) UpdateUser(ctx context.Context, userID int64, update UserUpdate) (*auth.User, error) {
	user, err := c.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Password != nil {
		if err := user.SetPassword(*update.Password); err != nil {
			return nil, err
		}
	}
	if update.Bio != nil {
		user.Bio = update.Bio
	}
	if update.Image != nil {
		user.Image = update.Image
	}

	updated, err := c.users.UpdateUser(ctx, user)
	if err != nil {
		return nil, xerrors.New(err)
	}

	c.log.Info("User updated Successfully", "user_id", updated.ID)
	return updated, nil
}
