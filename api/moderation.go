package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petconnect/petconnect-BE/internal/validator"
	"github.com/rs/zerolog/log"
)

type moderateTextRequest struct {
	Text string `json:"text"`
}

func (server *Server) moderateText(ctx *gin.Context) {
	req := new(moderateTextRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if err := validator.ValidateString(req.Text, 1, 10000); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError([]*FieldViolation{fieldViolation("text", err)}))
		return
	}

	verdict, err := server.moderationService.ClassifyText(ctx, req.Text)
	if err != nil {
		log.Err(err).Msg("failed to classify text")
		ctx.JSON(http.StatusBadGateway, errorResponse(err))
		return
	}

	ctx.JSON(http.StatusOK, verdict)
}
