package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgtype"
	db "github.com/petconnect/petconnect-BE/internal/db"
	"github.com/petconnect/petconnect-BE/internal/token"
	"github.com/petconnect/petconnect-BE/internal/util"
	"github.com/petconnect/petconnect-BE/internal/validator"
	"github.com/petconnect/petconnect-BE/internal/worker"
	"github.com/rs/zerolog/log"
)

type signupUserRequest struct {
	Email      string `json:"email"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	PetName    string `json:"pet_name"`
	PetType    string `json:"pet_type"`
	PetGender  string `json:"pet_gender"`
}

type signupUserResponse struct {
	Profile db.Profile `json:"profile"`
}

func validateSignupUserRequest(req *signupUserRequest) (violations []*FieldViolation) {
	if err := validator.ValidateEmail(req.Email); err != nil {
		violations = append(violations, fieldViolation("email", err))
	}

	if err := validator.ValidateUsername(req.Username); err != nil {
		violations = append(violations, fieldViolation("username", err))
	}

	if err := validator.ValidatePassword(req.Password); err != nil {
		violations = append(violations, fieldViolation("password", err))
	}

	return violations
}

func (server *Server) signupUser(ctx *gin.Context) {
	req := new(signupUserRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	violations := validateSignupUserRequest(req)
	if violations != nil {
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError(violations))
		return
	}

	hashedPassword, err := util.HashPassword(req.Password)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, errorResponse(fmt.Errorf("failed to hash password: %w", err)))
		return
	}

	arg := db.CreateProfileParams{
		ID:             uuid.NewString(),
		Email:          req.Email,
		Username:       req.Username,
		HashedPassword: hashedPassword,
		PostalCode:     textOrNull(req.PostalCode),
		City:           textOrNull(req.City),
		PetName:        textOrNull(req.PetName),
		PetType:        textOrNull(req.PetType),
		PetGender:      textOrNull(req.PetGender),
		Role:           string(db.RoleUser),
	}

	profile, err := server.dbStore.CreateProfile(context.Background(), arg)
	if err != nil {
		errCode, constraintName := db.ErrorDescription(err)
		switch {
		case errCode == db.UniqueViolationCode && constraintName == db.UniqueEmailConstraint:
			err = fmt.Errorf("email %s already exists", req.Email)
			ctx.JSON(http.StatusConflict, errorResponse(err))
			return
		case errCode == db.UniqueViolationCode && constraintName == db.UniqueUsernameConstraint:
			err = fmt.Errorf("username %s already exists", req.Username)
			ctx.JSON(http.StatusConflict, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to create profile")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	server.dispatchGeocodeTask(ctx, profile.ID, req.City, req.PostalCode)

	ctx.JSON(http.StatusOK, signupUserResponse{Profile: profile})
}

// dispatchGeocodeTask queues the coordinate lookup so signup and profile
// updates never wait on the geocoding provider.
func (server *Server) dispatchGeocodeTask(ctx *gin.Context, profileID, city, postalCode string) {
	if city == "" && postalCode == "" {
		return
	}

	err := server.taskDistributor.DistributeTaskGeocodeProfile(ctx, &worker.PayloadGeocodeProfile{
		ProfileID:  profileID,
		City:       city,
		PostalCode: postalCode,
	}, asynq.MaxRetry(3), asynq.Queue(worker.QueueDefault))
	if err != nil {
		log.Err(err).Str("profile_id", profileID).Msg("failed to enqueue geocode task")
	}
}

type loginUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUserResponse struct {
	Profile              db.Profile `json:"profile"`
	AccessToken          string     `json:"access_token"`
	AccessTokenExpiresAt time.Time  `json:"access_token_expires_at"`
}

func (server *Server) loginUser(ctx *gin.Context) {
	req := new(loginUserRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	profile, err := server.dbStore.GetProfileByEmail(context.Background(), req.Email)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = errors.New("email not found")
			ctx.JSON(http.StatusNotFound, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to find profile")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	err = util.CheckPassword(req.Password, profile.HashedPassword)
	if err != nil {
		err = errors.New("incorrect password")
		ctx.JSON(http.StatusUnauthorized, errorResponse(err))
		return
	}

	accessToken, accessPayload, err := server.tokenMaker.CreateToken(profile.ID, profile.Role, server.config.AccessTokenDuration)
	if err != nil {
		log.Err(err).Msg("failed to create access token")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	resp := loginUserResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: accessPayload.ExpiresAt.Time,
		Profile:              profile,
	}
	ctx.JSON(http.StatusOK, resp)
}

func (server *Server) getCurrentUser(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)

	profile, err := server.dbStore.GetProfileByID(ctx, authPayload.Subject)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(errors.New("profile not found")))
			return
		}

		log.Err(err).Msg("failed to find profile")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

func textOrNull(value string) pgtype.Text {
	return pgtype.Text{String: value, Valid: value != ""}
}

func textPtr(value *string) pgtype.Text {
	if value == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *value, Valid: true}
}
