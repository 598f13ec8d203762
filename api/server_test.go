package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgtype"
	db "github.com/petconnect/petconnect-BE/internal/db"
	"github.com/petconnect/petconnect-BE/internal/realtime"
	"github.com/petconnect/petconnect-BE/internal/token"
	"github.com/petconnect/petconnect-BE/internal/util"
	"github.com/petconnect/petconnect-BE/internal/worker"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubStore satisfies db.Store for handler tests. Only the overridden methods
// are callable; everything else panics through the embedded nil interface.
type stubStore struct {
	db.Store

	getProfileByIDFn func(ctx context.Context, id string) (db.Profile, error)
	updateProfileFn  func(ctx context.Context, arg db.UpdateProfileParams) (db.Profile, error)

	listCoordinatesCalls   int32
	listNotificationsCalls int32
}

func (s *stubStore) GetProfileByID(ctx context.Context, id string) (db.Profile, error) {
	return s.getProfileByIDFn(ctx, id)
}

func (s *stubStore) UpdateProfile(ctx context.Context, arg db.UpdateProfileParams) (db.Profile, error) {
	return s.updateProfileFn(ctx, arg)
}

func (s *stubStore) ListProfileCoordinates(ctx context.Context) ([]db.ListProfileCoordinatesRow, error) {
	atomic.AddInt32(&s.listCoordinatesCalls, 1)
	return []db.ListProfileCoordinatesRow{}, nil
}

func (s *stubStore) ListNotificationsAfter(ctx context.Context, arg db.ListNotificationsAfterParams) ([]db.Notification, error) {
	atomic.AddInt32(&s.listNotificationsCalls, 1)
	return []db.Notification{}, nil
}

type stubTaskDistributor struct {
	geocodeCalls int32
}

func (d *stubTaskDistributor) DistributeTaskGeocodeProfile(ctx context.Context, payload *worker.PayloadGeocodeProfile, opts ...asynq.Option) error {
	atomic.AddInt32(&d.geocodeCalls, 1)
	return nil
}

func newTestServer(t *testing.T, store db.Store, distributor worker.TaskDistributor) *Server {
	t.Helper()

	tokenMaker, err := token.NewJWTMaker(testSecretKey)
	if err != nil {
		t.Fatalf("failed to create token maker: %v", err)
	}

	server := &Server{
		dbStore:    store,
		tokenMaker: tokenMaker,
		config: &util.Config{
			AllowedOrigins:      []string{"http://localhost:3000"},
			AccessTokenDuration: time.Minute,
		},
		taskDistributor: distributor,
		streamer:        realtime.NewStreamer(store),
		wsUpgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	server.setupRouter()
	return server
}

func bearerToken(t *testing.T, server *Server, userID string) string {
	t.Helper()

	accessToken, _, err := server.tokenMaker.CreateToken(userID, string(db.RoleUser), time.Minute)
	if err != nil {
		t.Fatalf("failed to create access token: %v", err)
	}
	return authorizationTypeBearer + " " + accessToken
}

func TestStreamNotificationsRejectsBadToken(t *testing.T) {
	store := &stubStore{}
	server := newTestServer(t, store, &stubTaskDistributor{})

	ts := httptest.NewServer(server.router)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/notifications/ws"

	for _, rawQuery := range []string{"", "token=not-a-valid-token"} {
		target := wsURL
		if rawQuery != "" {
			target += "?" + rawQuery
		}

		conn, _, err := websocket.DefaultDialer.Dial(target, nil)
		if err != nil {
			t.Fatalf("failed to dial %s: %v", target, err)
		}

		_, _, err = conn.ReadMessage()
		var closeErr *websocket.CloseError
		if !errors.As(err, &closeErr) {
			t.Fatalf("expected a close error, got %v", err)
		}
		if closeErr.Code != closeCodeUnauthorized {
			t.Fatalf("close code = %d, want %d", closeErr.Code, closeCodeUnauthorized)
		}
		conn.Close()
	}

	if calls := atomic.LoadInt32(&store.listNotificationsCalls); calls != 0 {
		t.Fatalf("store was queried %d times for an unauthenticated stream", calls)
	}
}

func TestListNearbyProfilesRequiresCoordinates(t *testing.T) {
	store := &stubStore{
		getProfileByIDFn: func(ctx context.Context, id string) (db.Profile, error) {
			return db.Profile{ID: id, Username: "buddy"}, nil
		},
	}
	server := newTestServer(t, store, &stubTaskDistributor{})

	req := httptest.NewRequest(http.MethodGet, "/v1/profiles/nearby", nil)
	req.Header.Set(authorizationHeaderKey, bearerToken(t, server, "profile-1"))

	recorder := httptest.NewRecorder()
	server.router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d: %s", recorder.Code, http.StatusBadRequest, recorder.Body.String())
	}
	if calls := atomic.LoadInt32(&store.listCoordinatesCalls); calls != 0 {
		t.Fatalf("coordinates were scanned %d times for a profile without coordinates", calls)
	}
}

func TestUpdateProfileClearsCoordinatesOnLocationChange(t *testing.T) {
	var recorded db.UpdateProfileParams
	store := &stubStore{
		updateProfileFn: func(ctx context.Context, arg db.UpdateProfileParams) (db.Profile, error) {
			recorded = arg
			return db.Profile{
				ID:         arg.ID,
				Username:   "buddy",
				City:       pgtype.Text{String: "Berlin", Valid: true},
				PostalCode: pgtype.Text{String: "10115", Valid: true},
			}, nil
		},
	}
	distributor := &stubTaskDistributor{}
	server := newTestServer(t, store, distributor)

	req := httptest.NewRequest(http.MethodPut, "/v1/profiles/me", strings.NewReader(`{"city": "Berlin"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authorizationHeaderKey, bearerToken(t, server, "profile-1"))

	recorder := httptest.NewRecorder()
	server.router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", recorder.Code, http.StatusOK, recorder.Body.String())
	}
	if !recorded.ClearCoordinates {
		t.Fatal("stored coordinates survived a city change")
	}
	if calls := atomic.LoadInt32(&distributor.geocodeCalls); calls != 1 {
		t.Fatalf("geocode task dispatched %d times, want 1", calls)
	}
}

func TestUpdateProfileKeepsCoordinatesWithoutLocationChange(t *testing.T) {
	var recorded db.UpdateProfileParams
	store := &stubStore{
		updateProfileFn: func(ctx context.Context, arg db.UpdateProfileParams) (db.Profile, error) {
			recorded = arg
			return db.Profile{ID: arg.ID, Username: "buddy"}, nil
		},
	}
	distributor := &stubTaskDistributor{}
	server := newTestServer(t, store, distributor)

	req := httptest.NewRequest(http.MethodPut, "/v1/profiles/me", strings.NewReader(`{"bio": "loves long walks"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authorizationHeaderKey, bearerToken(t, server, "profile-1"))

	recorder := httptest.NewRecorder()
	server.router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", recorder.Code, http.StatusOK, recorder.Body.String())
	}
	if recorded.ClearCoordinates {
		t.Fatal("stored coordinates were cleared without a location change")
	}
	if calls := atomic.LoadInt32(&distributor.geocodeCalls); calls != 0 {
		t.Fatalf("geocode task dispatched %d times, want 0", calls)
	}
}
