package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petconnect/petconnect-BE/internal/alert"
	db "github.com/petconnect/petconnect-BE/internal/db"
	"github.com/petconnect/petconnect-BE/internal/token"
	"github.com/petconnect/petconnect-BE/internal/validator"
	"github.com/rs/zerolog/log"
)

type reportRequest struct {
	Reason string `json:"reason"`
}

func (server *Server) reportPost(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)
	postID := ctx.Param("postID")

	req := new(reportRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if err := validator.ValidateString(req.Reason, 1, 500); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError([]*FieldViolation{fieldViolation("reason", err)}))
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

	err := server.dbStore.CreatePostReport(ctx, db.CreatePostReportParams{
		PostID:     postID,
		ReporterID: authPayload.Subject,
		Reason:     req.Reason,
	})
	if err != nil {
		errCode, constraintName := db.ErrorDescription(err)
		if errCode == db.UniqueViolationCode && constraintName == db.UniquePostReportConstraint {
			ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("you already reported this post")))
			return
		}

		log.Err(err).Msg("failed to create post report")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	go server.alertService.NotifyReport(alert.Report{
		ContentKind: "post",
		ContentID:   postID,
		ReporterID:  authPayload.Subject,
		Reason:      req.Reason,
		ReportedAt:  time.Now(),
	})

	ctx.JSON(http.StatusOK, gin.H{"message": "report received"})
}

func (server *Server) reportComment(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)
	commentID := ctx.Param("commentID")

	req := new(reportRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if err := validator.ValidateString(req.Reason, 1, 500); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError([]*FieldViolation{fieldViolation("reason", err)}))
		return
	}

	if _, err := server.dbStore.GetCommentByID(ctx, commentID); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = fmt.Errorf("comment ID %s not found", commentID)
			ctx.JSON(http.StatusNotFound, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to find comment")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	err := server.dbStore.CreateCommentReport(ctx, db.CreateCommentReportParams{
		CommentID:  commentID,
		ReporterID: authPayload.Subject,
		Reason:     req.Reason,
	})
	if err != nil {
		errCode, constraintName := db.ErrorDescription(err)
		if errCode == db.UniqueViolationCode && constraintName == db.UniqueCommentReportConstraint {
			ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("you already reported this comment")))
			return
		}

		log.Err(err).Msg("failed to create comment report")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	go server.alertService.NotifyReport(alert.Report{
		ContentKind: "comment",
		ContentID:   commentID,
		ReporterID:  authPayload.Subject,
		Reason:      req.Reason,
		ReportedAt:  time.Now(),
	})

	ctx.JSON(http.StatusOK, gin.H{"message": "report received"})
}
