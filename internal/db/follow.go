package db

import (
	"context"
)

const createFollow = `
INSERT INTO user_follows (follower_id, followed_id) VALUES ($1, $2)`

type CreateFollowParams struct {
	FollowerID string `json:"follower_id"`
	FollowedID string `json:"followed_id"`
}

func (q *Queries) CreateFollow(ctx context.Context, arg CreateFollowParams) error {
	_, err := q.db.Exec(ctx, createFollow, arg.FollowerID, arg.FollowedID)
	return err
}

const deleteFollow = `
DELETE FROM user_follows WHERE follower_id = $1 AND followed_id = $2`

type DeleteFollowParams struct {
	FollowerID string `json:"follower_id"`
	FollowedID string `json:"followed_id"`
}

func (q *Queries) DeleteFollow(ctx context.Context, arg DeleteFollowParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteFollow, arg.FollowerID, arg.FollowedID)
	return tag.RowsAffected(), err
}

const getFollowerIDs = `
SELECT DISTINCT follower_id FROM user_follows WHERE followed_id = $1`

func (q *Queries) GetFollowerIDs(ctx context.Context, followedID string) ([]string, error) {
	rows, err := q.db.Query(ctx, getFollowerIDs, followedID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	return items, rows.Err()
}
