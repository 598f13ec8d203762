package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const notificationColumns = `id, receiver_id, author_id, event_type, post_id, conversation_id, message_id, created_at, read_at`

func scanNotification(row interface{ Scan(dest ...interface{}) error }) (Notification, error) {
	var i Notification
	err := row.Scan(
		&i.ID,
		&i.ReceiverID,
		&i.AuthorID,
		&i.EventType,
		&i.PostID,
		&i.ConversationID,
		&i.MessageID,
		&i.CreatedAt,
		&i.ReadAt,
	)
	return i, err
}

const createNotification = `
INSERT INTO notifications (receiver_id, author_id, event_type, post_id, conversation_id, message_id)
VALUES ($1, $2, $3, $4, $5, $6)`

type CreateNotificationParams struct {
	ReceiverID     string            `json:"receiver_id"`
	AuthorID       string            `json:"author_id"`
	EventType      NotificationEvent `json:"event_type"`
	PostID         pgtype.Text       `json:"post_id"`
	ConversationID pgtype.Text       `json:"conversation_id"`
	MessageID      pgtype.Text       `json:"message_id"`
}

// InsertNotifications appends all rows in one round trip. Callers are expected
// to skip the call entirely for an empty batch.
func (q *Queries) InsertNotifications(ctx context.Context, args []CreateNotificationParams) error {
	batch := &pgx.Batch{}
	for _, arg := range args {
		batch.Queue(createNotification,
			arg.ReceiverID,
			arg.AuthorID,
			arg.EventType,
			arg.PostID,
			arg.ConversationID,
			arg.MessageID,
		)
	}

	results := q.db.SendBatch(ctx, batch)
	defer results.Close()

	for range args {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

const listNotificationsAfter = `
SELECT ` + notificationColumns + ` FROM notifications
WHERE receiver_id = $1 AND ($2::timestamptz IS NULL OR created_at > $2)
ORDER BY created_at ASC
LIMIT $3`

type ListNotificationsAfterParams struct {
	ReceiverID string             `json:"receiver_id"`
	After      pgtype.Timestamptz `json:"after"`
	Limit      int32              `json:"limit"`
}

func (q *Queries) ListNotificationsAfter(ctx context.Context, arg ListNotificationsAfterParams) ([]Notification, error) {
	rows, err := q.db.Query(ctx, listNotificationsAfter, arg.ReceiverID, arg.After, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Notification{}
	for rows.Next() {
		i, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listRecentNotifications = `
SELECT ` + notificationColumns + ` FROM notifications
WHERE receiver_id = $1
ORDER BY created_at DESC
LIMIT $2`

type ListRecentNotificationsParams struct {
	ReceiverID string `json:"receiver_id"`
	Limit      int32  `json:"limit"`
}

func (q *Queries) ListRecentNotifications(ctx context.Context, arg ListRecentNotificationsParams) ([]Notification, error) {
	rows, err := q.db.Query(ctx, listRecentNotifications, arg.ReceiverID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Notification{}
	for rows.Next() {
		i, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const deleteNotification = `
DELETE FROM notifications WHERE id = $1 AND receiver_id = $2`

type DeleteNotificationParams struct {
	ID         string `json:"id"`
	ReceiverID string `json:"receiver_id"`
}

func (q *Queries) DeleteNotification(ctx context.Context, arg DeleteNotificationParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteNotification, arg.ID, arg.ReceiverID)
	return tag.RowsAffected(), err
}

const deleteNotificationsBefore = `
DELETE FROM notifications WHERE created_at < $1`

func (q *Queries) DeleteNotificationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteNotificationsBefore, cutoff)
	return tag.RowsAffected(), err
}
