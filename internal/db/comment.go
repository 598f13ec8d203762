package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const createComment = `
INSERT INTO post_comments (post_id, user_id, content) VALUES ($1, $2, $3)
RETURNING id, post_id, user_id, content, created_at`

type CreateCommentParams struct {
	PostID  string `json:"post_id"`
	UserID  string `json:"user_id"`
	Content string `json:"content"`
}

func (q *Queries) CreateComment(ctx context.Context, arg CreateCommentParams) (PostComment, error) {
	row := q.db.QueryRow(ctx, createComment, arg.PostID, arg.UserID, arg.Content)
	var i PostComment
	err := row.Scan(&i.ID, &i.PostID, &i.UserID, &i.Content, &i.CreatedAt)
	return i, err
}

const getCommentByID = `
SELECT id, post_id, user_id, content, created_at FROM post_comments WHERE id = $1`

func (q *Queries) GetCommentByID(ctx context.Context, id string) (PostComment, error) {
	row := q.db.QueryRow(ctx, getCommentByID, id)
	var i PostComment
	err := row.Scan(&i.ID, &i.PostID, &i.UserID, &i.Content, &i.CreatedAt)
	return i, err
}

// CommentWithAuthor carries a comment together with its author's display data.
type CommentWithAuthor struct {
	ID        string      `json:"id"`
	PostID    string      `json:"post_id"`
	UserID    string      `json:"user_id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	Username  string      `json:"username"`
	AvatarURL pgtype.Text `json:"avatar_url"`
}

const getCommentWithAuthor = `
SELECT c.id, c.post_id, c.user_id, c.content, c.created_at, p.username, p.avatar_url
FROM post_comments c
JOIN profiles p ON p.id = c.user_id
WHERE c.id = $1`

func (q *Queries) GetCommentWithAuthor(ctx context.Context, id string) (CommentWithAuthor, error) {
	row := q.db.QueryRow(ctx, getCommentWithAuthor, id)
	var i CommentWithAuthor
	err := row.Scan(&i.ID, &i.PostID, &i.UserID, &i.Content, &i.CreatedAt, &i.Username, &i.AvatarURL)
	return i, err
}

const listCommentsByPost = `
SELECT c.id, c.post_id, c.user_id, c.content, c.created_at, p.username, p.avatar_url
FROM post_comments c
JOIN profiles p ON p.id = c.user_id
WHERE c.post_id = $1
ORDER BY c.created_at DESC`

func (q *Queries) ListCommentsByPost(ctx context.Context, postID string) ([]CommentWithAuthor, error) {
	rows, err := q.db.Query(ctx, listCommentsByPost, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []CommentWithAuthor{}
	for rows.Next() {
		var i CommentWithAuthor
		if err := rows.Scan(&i.ID, &i.PostID, &i.UserID, &i.Content, &i.CreatedAt, &i.Username, &i.AvatarURL); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const deleteComment = `
DELETE FROM post_comments WHERE id = $1`

func (q *Queries) DeleteComment(ctx context.Context, id string) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteComment, id)
	return tag.RowsAffected(), err
}
