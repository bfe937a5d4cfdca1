package core

import (
	"context"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/utils/collectionutils"
	"github.com/siahsang/conduit/internal/utils/functional"
	"github.com/siahsang/conduit/models"
	"golang.org/x/sync/errgroup"
)

// GetProfile resolves username and reports whether viewerID (0 for anonymous) follows it.
func (c *Core) GetProfile(ctx context.Context, username string, viewerID int64) (*models.Profile, error) {
	user, err := c.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, xerrors.New(err)
	}

	profile := toProfile(user)

	g, gctx := errgroup.WithContext(ctx)
	if viewerID != 0 && viewerID != user.ID {
		g.Go(func() error {
			following, err := c.follows.IsFollowing(gctx, viewerID, user.ID)
			profile.Following = following
			return err
		})
	}
	g.Go(func() error {
		counts, err := c.follows.FollowersCount(gctx, []int64{user.ID})
		profile.FollowersCount = counts[user.ID]
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, xerrors.New(err)
	}

	return profile, nil
}

func (c *Core) FollowUser(ctx context.Context, username string, viewerID int64) (*models.Profile, error) {
	followee, err := c.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, xerrors.New(err)
	}
	if followee.ID == viewerID {
		return nil, xerrors.New(ErrFollowSelf)
	}

	if err := c.follows.Follow(ctx, viewerID, followee.ID); err != nil {
		return nil, xerrors.New(err)
	}

	return c.profileAfterFollowChange(ctx, followee, true)
}

func (c *Core) UnfollowUser(ctx context.Context, username string, viewerID int64) (*models.Profile, error) {
	followee, err := c.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, xerrors.New(err)
	}
	if followee.ID == viewerID {
		return nil, xerrors.New(ErrFollowSelf)
	}

	if err := c.follows.Unfollow(ctx, viewerID, followee.ID); err != nil {
		return nil, xerrors.New(err)
	}

	return c.profileAfterFollowChange(ctx, followee, false)
}

func (c *Core) profileAfterFollowChange(ctx context.Context, followee *auth.User, following bool) (*models.Profile, error) {
	counts, err := c.follows.FollowersCount(ctx, []int64{followee.ID})
	if err != nil {
		return nil, xerrors.New(err)
	}

	profile := toProfile(followee)
	profile.Following = following
	profile.FollowersCount = counts[followee.ID]
	return profile, nil
}

// profilesByUserID builds the profiles of userIDs as seen by viewerID with
// three queries regardless of how many ids are asked for.
func (c *Core) profilesByUserID(ctx context.Context, viewerID int64, userIDs []int64) (map[int64]*models.Profile, error) {
	userIDs = functional.Distinct(userIDs)
	if len(userIDs) == 0 {
		return map[int64]*models.Profile{}, nil
	}

	users, err := c.users.GetUsersByIDList(ctx, userIDs)
	if err != nil {
		return nil, xerrors.New(err)
	}

	var followingSet map[int64]struct{}
	if viewerID != 0 {
		followingIDs, err := c.follows.FollowingIDs(ctx, viewerID)
		if err != nil {
			return nil, xerrors.New(err)
		}
		followingSet = collectionutils.ToSet(followingIDs, func(id int64) int64 { return id })
	}

	followersCount, err := c.follows.FollowersCount(ctx, userIDs)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return collectionutils.Associate(users, func(user *auth.User) (int64, *models.Profile) {
		profile := toProfile(user)
		_, profile.Following = followingSet[user.ID]
		profile.FollowersCount = collectionutils.GetOrDefault(followersCount, user.ID, 0)
		return user.ID, profile
	}), nil
}

func toProfile(user *auth.User) *models.Profile {
	return &models.Profile{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Bio:      user.Bio,
		Image:    user.Image,
	}
}
