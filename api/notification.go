package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	db "github.com/petconnect/petconnect-BE/internal/db"
	"github.com/petconnect/petconnect-BE/internal/realtime"
	"github.com/petconnect/petconnect-BE/internal/token"
	"github.com/rs/zerolog/log"
)

const (
	recentNotificationsLimit = 50

	// Application close code for a failed websocket authentication.
	closeCodeUnauthorized = 4403
)

func (server *Server) listNotifications(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)

	notifications, err := server.dbStore.ListRecentNotifications(ctx, db.ListRecentNotificationsParams{
		ReceiverID: authPayload.Subject,
		Limit:      recentNotificationsLimit,
	})
	if err != nil {
		log.Err(err).Msg("failed to list notifications")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	items, err := realtime.AttachAuthors(ctx, server.dbStore, notifications)
	if err != nil {
		log.Err(err).Msg("failed to load notification authors")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, items)
}

func (server *Server) deleteNotification(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)
	notificationID := ctx.Param("notificationID")

	deleted, err := server.dbStore.DeleteNotification(ctx, db.DeleteNotificationParams{
		ID:         notificationID,
		ReceiverID: authPayload.Subject,
	})
	if err != nil {
		log.Err(err).Msg("failed to delete notification")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	if deleted == 0 {
		ctx.JSON(http.StatusNotFound, errorResponse(errors.New("notification not found")))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "notification deleted"})
}

// streamNotifications upgrades the connection and pushes the caller's
// notifications until the client goes away. The handshake cannot carry an
// Authorization header, so the access token arrives as a query parameter and
// is checked before any database access.
func (server *Server) streamNotifications(ctx *gin.Context) {
	conn, err := server.wsUpgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Err(err).Msg("failed to upgrade websocket connection")
		return
	}
	defer conn.Close()

	payload, err := server.tokenMaker.VerifyToken(ctx.Query("token"))
	if err != nil {
		closeMessage := websocket.FormatCloseMessage(closeCodeUnauthorized, "invalid access token")
		if writeErr := conn.WriteMessage(websocket.CloseMessage, closeMessage); writeErr != nil {
			log.Err(writeErr).Msg("failed to write close message")
		}
		return
	}

	streamCtx, cancel := context.WithCancel(ctx.Request.Context())
	defer cancel()

	// The read pump only detects disconnects; clients never send data.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	if err := server.streamer.Stream(streamCtx, conn, payload.Subject); err != nil {
		log.Err(err).Str("receiver_id", payload.Subject).Msg("notification stream terminated")
	}
}
