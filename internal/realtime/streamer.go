package realtime

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	db "github.com/petconnect/petconnect-BE/internal/db"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultBatchSize    = 20
)

// Conn is the client side of a stream. *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
}

// Store is the slice of the database the streamer reads from.
type Store interface {
	ListNotificationsAfter(ctx context.Context, arg db.ListNotificationsAfterParams) ([]db.Notification, error)
	ListProfilesByIDs(ctx context.Context, ids []string) ([]db.Profile, error)
}

// Author is the display data attached to each delivered notification.
type Author struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
	PetName   string `json:"pet_name,omitempty"`
}

// Item is a notification enriched with its author, as pushed to clients.
type Item struct {
	ID             string               `json:"id"`
	EventType      db.NotificationEvent `json:"event_type"`
	PostID         string               `json:"post_id,omitempty"`
	ConversationID string               `json:"conversation_id,omitempty"`
	MessageID      string               `json:"message_id,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	Author         Author               `json:"author"`
}

// Streamer delivers a user's notifications over a long-lived connection by
// polling the store and pushing every fresh batch as a single JSON array.
type Streamer struct {
	store        Store
	pollInterval time.Duration
	batchSize    int32
}

func NewStreamer(store Store) *Streamer {
	return &Streamer{
		store:        store,
		pollInterval: defaultPollInterval,
		batchSize:    defaultBatchSize,
	}
}

// AttachAuthors resolves the display data of every distinct author in one
// query and pairs it with each notification.
func AttachAuthors(ctx context.Context, store Store, notifications []db.Notification) ([]Item, error) {
	if len(notifications) == 0 {
		return []Item{}, nil
	}

	distinct := make(map[string]struct{})
	authorIDs := make([]string, 0, len(notifications))
	for _, n := range notifications {
		if _, ok := distinct[n.AuthorID]; ok {
			continue
		}
		distinct[n.AuthorID] = struct{}{}
		authorIDs = append(authorIDs, n.AuthorID)
	}

	profiles, err := store.ListProfilesByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	authors := make(map[string]Author, len(profiles))
	for _, p := range profiles {
		authors[p.ID] = Author{
			ID:        p.ID,
			Username:  p.Username,
			AvatarURL: p.AvatarURL.String,
			PetName:   p.PetName.String,
		}
	}

	items := make([]Item, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, Item{
			ID:             n.ID,
			EventType:      n.EventType,
			PostID:         n.PostID.String,
			ConversationID: n.ConversationID.String,
			MessageID:      n.MessageID.String,
			CreatedAt:      n.CreatedAt,
			Author:         authors[n.AuthorID],
		})
	}
	return items, nil
}

// Stream polls for notifications newer than the last delivered one and pushes
// them to conn until ctx is cancelled or the connection rejects a write.
// Both of those end the stream cleanly; a store failure ends it with an error.
func (s *Streamer) Stream(ctx context.Context, conn Conn, receiverID string) error {
	var watermark pgtype.Timestamptz
	delivered := make(map[string]struct{})

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		notifications, err := s.store.ListNotificationsAfter(ctx, db.ListNotificationsAfterParams{
			ReceiverID: receiverID,
			After:      watermark,
			Limit:      s.batchSize,
		})
		if err != nil {
			return err
		}

		fresh := notifications[:0:0]
		for _, n := range notifications {
			if _, ok := delivered[n.ID]; ok {
				continue
			}
			fresh = append(fresh, n)
		}

		if len(fresh) > 0 {
			items, err := AttachAuthors(ctx, s.store, fresh)
			if err != nil {
				return err
			}
			if err := conn.WriteJSON(items); err != nil {
				// The peer went away.
				return nil
			}
			for _, n := range fresh {
				delivered[n.ID] = struct{}{}
			}
		}

		if len(notifications) > 0 {
			last := notifications[len(notifications)-1].CreatedAt
			watermark = pgtype.Timestamptz{Time: last, Valid: true}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
