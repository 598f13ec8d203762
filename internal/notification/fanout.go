package notification

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	db "github.com/petconnect/petconnect-BE/internal/db"
	"github.com/rs/zerolog/log"
)

// Store is the slice of the database the engine needs: the follow graph
// (read-only) and the notification table (append-only).
type Store interface {
	GetFollowerIDs(ctx context.Context, followedID string) ([]string, error)
	InsertNotifications(ctx context.Context, args []db.CreateNotificationParams) error
}

// Engine generates one notification row per audience member when a user acts.
// Delivery is best-effort: every failure is logged and swallowed so the
// triggering write (post or message creation) never observes it.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// FanoutPost notifies every follower of the author about a new post.
func (e *Engine) FanoutPost(ctx context.Context, authorID string, postID string) {
	followerIDs, err := e.store.GetFollowerIDs(ctx, authorID)
	if err != nil {
		log.Err(err).Str("author_id", authorID).Str("post_id", postID).Msg("fanout: failed to load followers")
		return
	}

	if len(followerIDs) == 0 {
		return
	}

	args := make([]db.CreateNotificationParams, 0, len(followerIDs))
	for _, followerID := range followerIDs {
		args = append(args, db.CreateNotificationParams{
			ReceiverID: followerID,
			AuthorID:   authorID,
			EventType:  db.NotificationEventPost,
			PostID:     pgtype.Text{String: postID, Valid: true},
		})
	}

	if err := e.store.InsertNotifications(ctx, args); err != nil {
		log.Err(err).Str("author_id", authorID).Str("post_id", postID).
			Int("receivers", len(args)).Msg("fanout: failed to insert post notifications")
	}
}

// FanoutMessage notifies the receiver of a new private message.
func (e *Engine) FanoutMessage(ctx context.Context, receiverID, authorID, conversationID, messageID string) {
	args := []db.CreateNotificationParams{
		{
			ReceiverID:     receiverID,
			AuthorID:       authorID,
			EventType:      db.NotificationEventMessage,
			ConversationID: pgtype.Text{String: conversationID, Valid: true},
			MessageID:      pgtype.Text{String: messageID, Valid: true},
		},
	}

	if err := e.store.InsertNotifications(ctx, args); err != nil {
		log.Err(err).Str("receiver_id", receiverID).Str("message_id", messageID).
			Msg("fanout: failed to insert message notification")
	}
}
