package api

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var (
	ErrInternalServer         = errors.New("internal server error")
	ErrInsufficientPermission = errors.New("requires moderator role")
	ErrNotPostOwner           = errors.New("user does not own this post")
	ErrNotCommentOwner        = errors.New("user does not own this comment")
	ErrNotParticipant         = errors.New("user is not a participant of this conversation")
)

type FailedValidationResponse struct {
	Message         string            `json:"message"`
	FieldViolations []*FieldViolation `json:"field_violations"`
}

type FieldViolation struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func fieldViolation(field string, err error) *FieldViolation {
	return &FieldViolation{
		Field:       field,
		Description: err.Error(),
	}
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}

func failedValidationError(violations []*FieldViolation) *FailedValidationResponse {
	return &FailedValidationResponse{
		Message:         "Invalid request parameters",
		FieldViolations: violations,
	}
}
