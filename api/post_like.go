package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	db "github.com/petconnect/petconnect-BE/internal/db"
	"github.com/petconnect/petconnect-BE/internal/token"
	"github.com/rs/zerolog/log"
)

func (server *Server) likePost(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)
	postID := ctx.Param("postID")

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

	err := server.dbStore.CreatePostLike(ctx, db.CreatePostLikeParams{
		PostID: postID,
		UserID: authPayload.Subject,
	})
	if err != nil {
		errCode, constraintName := db.ErrorDescription(err)
		if errCode == db.UniqueViolationCode && constraintName == db.UniquePostLikeConstraint {
			ctx.JSON(http.StatusConflict, errorResponse(errors.New("post already liked")))
			return
		}

		log.Err(err).Msg("failed to create post like")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	if err = server.dbStore.IncrementPostLikes(ctx, postID); err != nil {
		log.Err(err).Str("post_id", postID).Msg("failed to increment likes count")
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "post liked"})
}

func (server *Server) unlikePost(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)
	postID := ctx.Param("postID")

	deleted, err := server.dbStore.DeletePostLike(ctx, db.DeletePostLikeParams{
		PostID: postID,
		UserID: authPayload.Subject,
	})
	if err != nil {
		log.Err(err).Msg("failed to delete post like")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	if deleted == 0 {
		ctx.JSON(http.StatusNotFound, errorResponse(errors.New("post is not liked")))
		return
	}

	if err = server.dbStore.DecrementPostLikes(ctx, postID); err != nil {
		log.Err(err).Str("post_id", postID).Msg("failed to decrement likes count")
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "post unliked"})
}
