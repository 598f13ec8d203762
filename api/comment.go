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

type createCommentRequest struct {
	Content string `json:"content"`
}

func (server *Server) createComment(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)
	postID := ctx.Param("postID")

	req := new(createCommentRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if err := validator.ValidateString(req.Content, 1, 2000); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError([]*FieldViolation{fieldViolation("content", err)}))
		return
	}

	if _, err := server.dbStore.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = fmt.Errorf("post ID %s not found", postID)
			ctx.JSON(http.StatusNotFound, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to find post")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	comment, err := server.dbStore.CreateComment(ctx, db.CreateCommentParams{
		PostID:  postID,
		UserID:  authPayload.Subject,
		Content: req.Content,
	})
	if err != nil {
		log.Err(err).Msg("failed to create comment")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	if err = server.dbStore.IncrementPostComments(ctx, postID); err != nil {
		log.Err(err).Str("post_id", postID).Msg("failed to increment comments count")
	}

	withAuthor, err := server.dbStore.GetCommentWithAuthor(ctx, comment.ID)
	if err != nil {
		log.Err(err).Msg("failed to load comment author")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, withAuthor)
}

func (server *Server) listComments(ctx *gin.Context) {
	postID := ctx.Param("postID")

	comments, err := server.dbStore.ListCommentsByPost(ctx, postID)
	if err != nil {
		log.Err(err).Msg("failed to list comments")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, comments)
}

func (server *Server) deleteComment(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)
	commentID := ctx.Param("commentID")

	comment, err := server.dbStore.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = fmt.Errorf("comment ID %s not found", commentID)
			ctx.JSON(http.StatusNotFound, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to find comment")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	if comment.UserID != authPayload.Subject {
		ctx.JSON(http.StatusForbidden, errorResponse(ErrNotCommentOwner))
		return
	}

	server.removeComment(ctx, comment)
}

func (server *Server) deleteCommentByModerator(ctx *gin.Context) {
	commentID := ctx.Param("commentID")

	comment, err := server.dbStore.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = fmt.Errorf("comment ID %s not found", commentID)
			ctx.JSON(http.StatusNotFound, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to find comment")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	server.removeComment(ctx, comment)
}

func (server *Server) removeComment(ctx *gin.Context, comment db.PostComment) {
	if _, err := server.dbStore.DeleteComment(ctx, comment.ID); err != nil {
		log.Err(err).Msg("failed to delete comment")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	if err := server.dbStore.DecrementPostComments(ctx, comment.PostID); err != nil {
		log.Err(err).Str("post_id", comment.PostID).Msg("failed to decrement comments count")
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
