package db

import (
	"context"
)

const createPostReport = `
INSERT INTO post_reports (post_id, reporter_id, reason) VALUES ($1, $2, $3)`

type CreatePostReportParams struct {
	PostID     string `json:"post_id"`
	ReporterID string `json:"reporter_id"`
	Reason     string `json:"reason"`
}

func (q *Queries) CreatePostReport(ctx context.Context, arg CreatePostReportParams) error {
	_, err := q.db.Exec(ctx, createPostReport, arg.PostID, arg.ReporterID, arg.Reason)
	return err
}

const createCommentReport = `
INSERT INTO comment_reports (comment_id, reporter_id, reason) VALUES ($1, $2, $3)`

type CreateCommentReportParams struct {
	CommentID  string `json:"comment_id"`
	ReporterID string `json:"reporter_id"`
	Reason     string `json:"reason"`
}

func (q *Queries) CreateCommentReport(ctx context.Context, arg CreateCommentReportParams) error {
	_, err := q.db.Exec(ctx, createCommentReport, arg.CommentID, arg.ReporterID, arg.Reason)
	return err
}
