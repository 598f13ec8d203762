package realtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	db "github.com/petconnect/petconnect-BE/internal/db"
)

type scriptedStore struct {
	batches  [][]db.Notification
	calls    []db.ListNotificationsAfterParams
	listErr  error
	profiles []db.Profile

	// Invoked once the script runs out, so the test can stop the stream.
	onDrained func()
}

func (s *scriptedStore) ListNotificationsAfter(ctx context.Context, arg db.ListNotificationsAfterParams) ([]db.Notification, error) {
	s.calls = append(s.calls, arg)
	if s.listErr != nil {
		return nil, s.listErr
	}
	if len(s.batches) == 0 {
		if s.onDrained != nil {
			s.onDrained()
		}
		return []db.Notification{}, nil
	}
	batch := s.batches[0]
	s.batches = s.batches[1:]
	return batch, nil
}

func (s *scriptedStore) ListProfilesByIDs(ctx context.Context, ids []string) ([]db.Profile, error) {
	out := []db.Profile{}
	for _, p := range s.profiles {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

type recordingConn struct {
	writes   [][]Item
	writeErr error
}

func (c *recordingConn) WriteJSON(v interface{}) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.writes = append(c.writes, v.([]Item))
	return nil
}

func notif(id, authorID string, at time.Time) db.Notification {
	return db.Notification{
		ID:         id,
		ReceiverID: "receiver",
		AuthorID:   authorID,
		EventType:  db.NotificationEventPost,
		PostID:     pgtype.Text{String: "post-" + id, Valid: true},
		CreatedAt:  at,
	}
}

func testStreamer(store Store) *Streamer {
	s := NewStreamer(store)
	s.pollInterval = time.Millisecond
	return s
}

func TestStreamDeliversBatchesAndAdvancesWatermark(t *testing.T) {
	t0 := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Second)
	t2 := t0.Add(2 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	store := &scriptedStore{
		batches: [][]db.Notification{
			{notif("n1", "alice", t0), notif("n2", "bob", t1)},
			{notif("n2", "bob", t1), notif("n3", "alice", t2)},
		},
		profiles: []db.Profile{
			{ID: "alice", Username: "alice", PetName: pgtype.Text{String: "Rex", Valid: true}},
			{ID: "bob", Username: "bob", AvatarURL: pgtype.Text{String: "http://img/bob", Valid: true}},
		},
		onDrained: cancel,
	}
	conn := &recordingConn{}

	if err := testStreamer(store).Stream(ctx, conn, "receiver"); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}

	if len(conn.writes) != 2 {
		t.Fatalf("expected 2 pushed batches, got %d", len(conn.writes))
	}

	first := conn.writes[0]
	if len(first) != 2 {
		t.Fatalf("expected 2 items in first batch, got %d", len(first))
	}
	if first[0].ID != "n1" || first[1].ID != "n2" {
		t.Fatalf("unexpected first batch order: %s, %s", first[0].ID, first[1].ID)
	}
	if first[0].Author.Username != "alice" || first[0].Author.PetName != "Rex" {
		t.Fatalf("unexpected author on n1: %+v", first[0].Author)
	}
	if first[1].Author.AvatarURL != "http://img/bob" {
		t.Fatalf("unexpected author on n2: %+v", first[1].Author)
	}

	// The overlapping n2 must be filtered from the second push.
	second := conn.writes[1]
	if len(second) != 1 || second[0].ID != "n3" {
		t.Fatalf("expected second batch to hold only n3, got %+v", second)
	}

	if len(store.calls) < 3 {
		t.Fatalf("expected at least 3 polls, got %d", len(store.calls))
	}
	if store.calls[0].After.Valid {
		t.Fatalf("first poll must start from the beginning, got %v", store.calls[0].After)
	}
	if !store.calls[1].After.Valid || !store.calls[1].After.Time.Equal(t1) {
		t.Fatalf("expected watermark %v after first batch, got %v", t1, store.calls[1].After)
	}
	if !store.calls[2].After.Valid || !store.calls[2].After.Time.Equal(t2) {
		t.Fatalf("expected watermark %v after second batch, got %v", t2, store.calls[2].After)
	}
	for _, call := range store.calls {
		if call.ReceiverID != "receiver" {
			t.Fatalf("unexpected receiver in poll: %s", call.ReceiverID)
		}
		if call.Limit != defaultBatchSize {
			t.Fatalf("expected limit %d, got %d", defaultBatchSize, call.Limit)
		}
	}
}

func TestStreamEmptyPollsPushNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := &scriptedStore{onDrained: cancel}
	conn := &recordingConn{}

	if err := testStreamer(store).Stream(ctx, conn, "receiver"); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
	if len(conn.writes) != 0 {
		t.Fatalf("expected no pushes, got %d", len(conn.writes))
	}
}

func TestStreamStoreFailureTerminatesWithError(t *testing.T) {
	wantErr := errors.New("connection refused")
	store := &scriptedStore{listErr: wantErr}

	err := testStreamer(store).Stream(context.Background(), &recordingConn{}, "receiver")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}

func TestStreamDisconnectEndsCleanly(t *testing.T) {
	t0 := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	store := &scriptedStore{
		batches:  [][]db.Notification{{notif("n1", "alice", t0)}},
		profiles: []db.Profile{{ID: "alice", Username: "alice"}},
	}
	conn := &recordingConn{writeErr: errors.New("broken pipe")}

	if err := testStreamer(store).Stream(context.Background(), conn, "receiver"); err != nil {
		t.Fatalf("expected clean exit on disconnect, got %v", err)
	}
}

func TestAttachAuthorsEmptyInput(t *testing.T) {
	items, err := AttachAuthors(context.Background(), &scriptedStore{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty result, got %d", len(items))
	}
}
