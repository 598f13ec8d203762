package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	db "github.com/petconnect/petconnect-BE/internal/db"
	"github.com/petconnect/petconnect-BE/internal/storage"
	"github.com/petconnect/petconnect-BE/internal/token"
	"github.com/rs/zerolog/log"
)

type createPostRequest struct {
	Description string `form:"description"`
}

func (server *Server) createPost(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)

	req := new(createPostRequest)
	if err := ctx.ShouldBind(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("image file is required: %w", err)))
		return
	}

	uploadedFileURLs, err := server.uploadFileToCloudinary("post", storage.FolderPosts, fileHeader)
	if err != nil {
		log.Err(err).Msg("failed to upload post image")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	post, err := server.dbStore.CreatePost(ctx, db.CreatePostParams{
		UserID:      authPayload.Subject,
		Description: textOrNull(req.Description),
		ImageURL:    uploadedFileURLs[0],
	})
	if err != nil {
		log.Err(err).Msg("failed to create post")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	// Best-effort, the post is already committed.
	server.notifier.FanoutPost(ctx, post.UserID, post.ID)

	ctx.JSON(http.StatusOK, post)
}

type postResponse struct {
	Post      db.Post `json:"post"`
	LikedByMe bool    `json:"liked_by_me"`
}

func (server *Server) getPost(ctx *gin.Context) {
	postID := ctx.Param("postID")

	post, err := server.dbStore.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = fmt.Errorf("post ID %s not found", postID)
			ctx.JSON(http.StatusNotFound, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to find post")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	resp := postResponse{Post: post}

	// liked_by_me is only meaningful for authenticated callers.
	if value, ok := ctx.Get(authorizationPayloadKey); ok {
		authPayload := value.(*token.Payload)
		liked, err := server.dbStore.HasUserLikedPost(ctx, db.HasUserLikedPostParams{
			PostID: post.ID,
			UserID: authPayload.Subject,
		})
		if err != nil {
			log.Err(err).Msg("failed to check post like")
			ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
			return
		}
		resp.LikedByMe = liked
	}

	ctx.JSON(http.StatusOK, resp)
}

func (server *Server) listPostsByUser(ctx *gin.Context) {
	userID := ctx.Param("userID")

	posts, err := server.dbStore.ListPostsByUser(ctx, userID)
	if err != nil {
		log.Err(err).Msg("failed to list posts")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, posts)
}

func (server *Server) deletePost(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)
	postID := ctx.Param("postID")

	post, err := server.dbStore.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = fmt.Errorf("post ID %s not found", postID)
			ctx.JSON(http.StatusNotFound, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to find post")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	if post.UserID != authPayload.Subject {
		ctx.JSON(http.StatusForbidden, errorResponse(ErrNotPostOwner))
		return
	}

	server.removePost(ctx, post)
}

func (server *Server) deletePostByModerator(ctx *gin.Context) {
	postID := ctx.Param("postID")

	post, err := server.dbStore.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = fmt.Errorf("post ID %s not found", postID)
			ctx.JSON(http.StatusNotFound, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to find post")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	server.removePost(ctx, post)
}

func (server *Server) removePost(ctx *gin.Context, post db.Post) {
	if _, err := server.dbStore.DeletePost(ctx, post.ID); err != nil {
		log.Err(err).Msg("failed to delete post")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	// The row is gone, losing the image is acceptable.
	if err := server.fileStore.DeleteFile(publicIDFromURL(post.ImageURL), storage.FolderPosts); err != nil {
		log.Err(err).Str("post_id", post.ID).Msg("failed to delete post image")
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}
