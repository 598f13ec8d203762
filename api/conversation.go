package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	db "github.com/petconnect/petconnect-BE/internal/db"
	"github.com/petconnect/petconnect-BE/internal/token"
	"github.com/petconnect/petconnect-BE/internal/validator"
	"github.com/rs/zerolog/log"
)

func (server *Server) listConversations(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)

	conversations, err := server.dbStore.ListConversationsByUser(ctx, authPayload.Subject)
	if err != nil {
		log.Err(err).Msg("failed to list conversations")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, conversations)
}

type createConversationRequest struct {
	PeerID string `json:"peer_id" binding:"required"`
}

func (server *Server) createConversation(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)

	req := new(createConversationRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if req.PeerID == authPayload.Subject {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("you cannot start a conversation with yourself")))
		return
	}

	if _, err := server.dbStore.GetProfileByID(ctx, req.PeerID); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = fmt.Errorf("profile ID %s not found", req.PeerID)
			ctx.JSON(http.StatusNotFound, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to find profile")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	// An existing conversation between the pair is reused, regardless of who
	// created it.
	conversation, err := server.dbStore.GetConversationByUserPair(ctx, db.GetConversationByUserPairParams{
		UserA: authPayload.Subject,
		UserB: req.PeerID,
	})
	if err == nil {
		ctx.JSON(http.StatusOK, conversation)
		return
	}
	if !errors.Is(err, db.ErrRecordNotFound) {
		log.Err(err).Msg("failed to find conversation")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	conversation, err = server.dbStore.CreateConversation(ctx, db.CreateConversationParams{
		UserA: authPayload.Subject,
		UserB: req.PeerID,
	})
	if err != nil {
		log.Err(err).Msg("failed to create conversation")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, conversation)
}

// conversationForParticipant loads the conversation and verifies membership.
func (server *Server) conversationForParticipant(ctx *gin.Context, conversationID, userID string) (db.Conversation, bool) {
	conversation, err := server.dbStore.GetConversationByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = fmt.Errorf("conversation ID %s not found", conversationID)
			ctx.JSON(http.StatusNotFound, errorResponse(err))
			return db.Conversation{}, false
		}

		log.Err(err).Msg("failed to find conversation")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return db.Conversation{}, false
	}

	if conversation.UserA != userID && conversation.UserB != userID {
		ctx.JSON(http.StatusForbidden, errorResponse(ErrNotParticipant))
		return db.Conversation{}, false
	}

	return conversation, true
}

func (server *Server) listMessages(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)
	conversationID := ctx.Param("conversationID")

	if _, ok := server.conversationForParticipant(ctx, conversationID, authPayload.Subject); !ok {
		return
	}

	messages, err := server.dbStore.ListMessagesByConversation(ctx, conversationID)
	if err != nil {
		log.Err(err).Msg("failed to list messages")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, messages)
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

func (server *Server) sendMessage(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)
	conversationID := ctx.Param("conversationID")

	req := new(sendMessageRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if err := validator.ValidateString(req.Content, 1, 5000); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError([]*FieldViolation{fieldViolation("content", err)}))
		return
	}

	conversation, ok := server.conversationForParticipant(ctx, conversationID, authPayload.Subject)
	if !ok {
		return
	}

	message, err := server.dbStore.CreateMessage(ctx, db.CreateMessageParams{
		ConversationID: conversation.ID,
		SenderID:       authPayload.Subject,
		Content:        req.Content,
	})
	if err != nil {
		log.Err(err).Msg("failed to create message")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	if err = server.dbStore.TouchConversation(ctx, conversation.ID); err != nil {
		log.Err(err).Str("conversation_id", conversation.ID).Msg("failed to bump conversation")
	}

	receiverID := conversation.UserA
	if receiverID == authPayload.Subject {
		receiverID = conversation.UserB
	}

	// Best-effort, the message is already committed.
	server.notifier.FanoutMessage(ctx, receiverID, authPayload.Subject, conversation.ID, message.ID)

	ctx.JSON(http.StatusOK, message)
}
