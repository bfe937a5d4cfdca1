package data

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/utils/databaseutils"
)

// FollowModel stores edges in followers, where user_id is the followed user.
type FollowModel struct {
	sqlTemplate *databaseutils.SQLTemplate
}

func scanID(rows *sql.Rows) (int64, error) {
	var id int64
	if err := rows.Scan(&id); err != nil {
		return 0, xerrors.New(err)
	}
	return id, nil
}

func (followModel FollowModel) Follow(ctx context.Context, followerID, followingID int64) error {
	query := `
		INSERT INTO followers (user_id, follower_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := databaseutils.ExecuteUpdate(followModel.sqlTemplate, ctx, query, followingID, followerID); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (followModel FollowModel) Unfollow(ctx context.Context, followerID, followingID int64) error {
	query := `DELETE FROM followers WHERE user_id = $1 AND follower_id = $2`
	if _, err := databaseutils.ExecuteUpdate(followModel.sqlTemplate, ctx, query, followingID, followerID); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (followModel FollowModel) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM followers WHERE user_id = $1 AND follower_id = $2
		)
	`
	exists, err := databaseutils.ExecuteSingleQuery(followModel.sqlTemplate, ctx, query, func(rows *sql.Rows) (bool, error) {
		var exists bool
		if err := rows.Scan(&exists); err != nil {
			return false, xerrors.New(err)
		}
		return exists, nil
	}, followingID, followerID)
	if err != nil {
		return false, xerrors.New(err)
	}
	return exists, nil
}

func (followModel FollowModel) FollowingIDs(ctx context.Context, followerID int64) ([]int64, error) {
	query := `SELECT user_id FROM followers WHERE follower_id = $1 ORDER BY user_id`
	ids, err := databaseutils.ExecuteQuery(followModel.sqlTemplate, ctx, query, scanID, followerID)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return ids, nil
}

func (followModel FollowModel) FollowersCount(ctx context.Context, userIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(userIDs))
	if len(userIDs) == 0 {
		return counts, nil
	}

	type row struct {
		userID int64
		count  int64
	}
	query := `
		SELECT user_id, count(*)
		FROM followers
		WHERE user_id = ANY($1)
		GROUP BY user_id
	`
	rows, err := databaseutils.ExecuteQuery(followModel.sqlTemplate, ctx, query, func(rows *sql.Rows) (row, error) {
		var r row
		if err := rows.Scan(&r.userID, &r.count); err != nil {
			return row{}, xerrors.New(err)
		}
		return r, nil
	}, pq.Array(userIDs))
	if err != nil {
		return nil, xerrors.New(err)
	}

	for _, r := range rows {
		counts[r.userID] = r.count
	}
	return counts, nil
}
