package db

import (
	"context"
)

const createPostLike = `
INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`

type CreatePostLikeParams struct {
	PostID string `json:"post_id"`
	UserID string `json:"user_id"`
}

func (q *Queries) CreatePostLike(ctx context.Context, arg CreatePostLikeParams) error {
	_, err := q.db.Exec(ctx, createPostLike, arg.PostID, arg.UserID)
	return err
}

const deletePostLike = `
DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`

type DeletePostLikeParams struct {
	PostID string `json:"post_id"`
	UserID string `json:"user_id"`
}

func (q *Queries) DeletePostLike(ctx context.Context, arg DeletePostLikeParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deletePostLike, arg.PostID, arg.UserID)
	return tag.RowsAffected(), err
}

const hasUserLikedPost = `
SELECT EXISTS (SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)`

type HasUserLikedPostParams struct {
	PostID string `json:"post_id"`
	UserID string `json:"user_id"`
}

func (q *Queries) HasUserLikedPost(ctx context.Context, arg HasUserLikedPostParams) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, hasUserLikedPost, arg.PostID, arg.UserID).Scan(&exists)
	return exists, err
}
