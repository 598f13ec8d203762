package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const postColumns = `id, user_id, description, image_url, likes_count, comments_count, created_at`

func scanPost(row interface{ Scan(dest ...interface{}) error }) (Post, error) {
	var i Post
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Description,
		&i.ImageURL,
		&i.LikesCount,
		&i.CommentsCount,
		&i.CreatedAt,
	)
	return i, err
}

const createPost = `
INSERT INTO posts (user_id, description, image_url) VALUES ($1, $2, $3)
RETURNING ` + postColumns

type CreatePostParams struct {
	UserID      string      `json:"user_id"`
	Description pgtype.Text `json:"description"`
	ImageURL    string      `json:"image_url"`
}

func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (Post, error) {
	row := q.db.QueryRow(ctx, createPost, arg.UserID, arg.Description, arg.ImageURL)
	return scanPost(row)
}

const getPostByID = `
SELECT ` + postColumns + ` FROM posts WHERE id = $1`

func (q *Queries) GetPostByID(ctx context.Context, id string) (Post, error) {
	row := q.db.QueryRow(ctx, getPostByID, id)
	return scanPost(row)
}

const listPostsByUser = `
SELECT ` + postColumns + ` FROM posts WHERE user_id = $1 ORDER BY created_at DESC`

func (q *Queries) ListPostsByUser(ctx context.Context, userID string) ([]Post, error) {
	rows, err := q.db.Query(ctx, listPostsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Post{}
	for rows.Next() {
		i, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const deletePost = `
DELETE FROM posts WHERE id = $1`

func (q *Queries) DeletePost(ctx context.Context, id string) (int64, error) {
	tag, err := q.db.Exec(ctx, deletePost, id)
	return tag.RowsAffected(), err
}

const incrementPostLikes = `
UPDATE posts SET likes_count = likes_count + 1 WHERE id = $1`

func (q *Queries) IncrementPostLikes(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, incrementPostLikes, id)
	return err
}

const decrementPostLikes = `
UPDATE posts SET likes_count = greatest(likes_count - 1, 0) WHERE id = $1`

func (q *Queries) DecrementPostLikes(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, decrementPostLikes, id)
	return err
}

const incrementPostComments = `
UPDATE posts SET comments_count = comments_count + 1 WHERE id = $1`

func (q *Queries) IncrementPostComments(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, incrementPostComments, id)
	return err
}

const decrementPostComments = `
UPDATE posts SET comments_count = greatest(comments_count - 1, 0) WHERE id = $1`

func (q *Queries) DecrementPostComments(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, decrementPostComments, id)
	return err
}
