package notification

import (
	"context"
	"errors"
	"testing"

	db "github.com/petconnect/petconnect-BE/internal/db"
)

type fakeStore struct {
	followers    []string
	followersErr error
	insertErr    error

	insertCalls int
	inserted    []db.CreateNotificationParams
}

func (s *fakeStore) GetFollowerIDs(ctx context.Context, followedID string) ([]string, error) {
	return s.followers, s.followersErr
}

func (s *fakeStore) InsertNotifications(ctx context.Context, args []db.CreateNotificationParams) error {
	s.insertCalls++
	s.inserted = append(s.inserted, args...)
	return s.insertErr
}

func TestFanoutPostOneNotificationPerFollower(t *testing.T) {
	store := &fakeStore{followers: []string{"f1", "f2", "f3"}}
	engine := NewEngine(store)

	engine.FanoutPost(context.Background(), "author", "post-1")

	if store.insertCalls != 1 {
		t.Fatalf("expected a single batch insert, got %d", store.insertCalls)
	}
	if len(store.inserted) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(store.inserted))
	}

	seen := map[string]bool{}
	for _, arg := range store.inserted {
		if arg.EventType != db.NotificationEventPost {
			t.Fatalf("expected event type post, got %s", arg.EventType)
		}
		if arg.AuthorID != "author" {
			t.Fatalf("expected author id author, got %s", arg.AuthorID)
		}
		if !arg.PostID.Valid || arg.PostID.String != "post-1" {
			t.Fatalf("expected post id post-1, got %+v", arg.PostID)
		}
		if arg.ConversationID.Valid || arg.MessageID.Valid {
			t.Fatalf("unexpected conversation/message reference on post event: %+v", arg)
		}
		seen[arg.ReceiverID] = true
	}
	for _, f := range store.followers {
		if !seen[f] {
			t.Fatalf("expected a notification for follower %s", f)
		}
	}
}

func TestFanoutPostNoFollowersPerformsNoWrite(t *testing.T) {
	store := &fakeStore{followers: nil}
	engine := NewEngine(store)

	engine.FanoutPost(context.Background(), "author", "post-1")

	if store.insertCalls != 0 {
		t.Fatalf("expected no insert for empty audience, got %d", store.insertCalls)
	}
}

func TestFanoutPostSwallowsStoreErrors(t *testing.T) {
	store := &fakeStore{
		followers: []string{"f1"},
		insertErr: errors.New("connection refused"),
	}
	engine := NewEngine(store)

	// Must not panic or surface the error.
	engine.FanoutPost(context.Background(), "author", "post-1")

	if store.insertCalls != 1 {
		t.Fatalf("expected insert attempt, got %d", store.insertCalls)
	}
}

func TestFanoutPostSwallowsFollowerLookupErrors(t *testing.T) {
	store := &fakeStore{followersErr: errors.New("connection refused")}
	engine := NewEngine(store)

	engine.FanoutPost(context.Background(), "author", "post-1")

	if store.insertCalls != 0 {
		t.Fatalf("expected no insert after follower lookup failure, got %d", store.insertCalls)
	}
}

func TestFanoutMessageSingleNotification(t *testing.T) {
	store := &fakeStore{}
	engine := NewEngine(store)

	engine.FanoutMessage(context.Background(), "receiver", "sender", "conv-1", "msg-1")

	if len(store.inserted) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(store.inserted))
	}

	arg := store.inserted[0]
	if arg.ReceiverID != "receiver" || arg.AuthorID != "sender" {
		t.Fatalf("unexpected receiver/author: %+v", arg)
	}
	if arg.EventType != db.NotificationEventMessage {
		t.Fatalf("expected event type message, got %s", arg.EventType)
	}
	if !arg.ConversationID.Valid || arg.ConversationID.String != "conv-1" {
		t.Fatalf("expected conversation conv-1, got %+v", arg.ConversationID)
	}
	if !arg.MessageID.Valid || arg.MessageID.String != "msg-1" {
		t.Fatalf("expected message msg-1, got %+v", arg.MessageID)
	}
	if arg.PostID.Valid {
		t.Fatalf("unexpected post reference on message event: %+v", arg.PostID)
	}
}
