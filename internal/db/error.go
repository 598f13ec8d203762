package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	UniqueViolationCode = "23505"
)

const (
	UniqueEmailConstraint         = "profiles_email_key"
	UniqueUsernameConstraint      = "profiles_username_key"
	UniqueFollowConstraint        = "user_follows_pkey"
	UniquePostLikeConstraint      = "post_likes_pkey"
	UniquePostReportConstraint    = "post_reports_post_id_reporter_id_key"
	UniqueCommentReportConstraint = "comment_reports_comment_id_reporter_id_key"
)

var ErrRecordNotFound = pgx.ErrNoRows

// ErrorDescription returns the error code and constraint name from a Postgres error.
func ErrorDescription(err error) (errCode string, constraintName string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}

	return
}
