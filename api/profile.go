package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	db "github.com/petconnect/petconnect-BE/internal/db"
	"github.com/petconnect/petconnect-BE/internal/geo"
	"github.com/petconnect/petconnect-BE/internal/storage"
	"github.com/petconnect/petconnect-BE/internal/token"
	"github.com/petconnect/petconnect-BE/internal/validator"
	"github.com/rs/zerolog/log"
)

const (
	defaultNearbyRadiusKm = 50.0
	defaultNearbyLimit    = 20
	maxNearbyLimit        = 100
)

func (server *Server) getProfile(ctx *gin.Context) {
	profileID := ctx.Param("id")

	profile, err := server.dbStore.GetProfileByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = fmt.Errorf("profile ID %s not found", profileID)
			ctx.JSON(http.StatusNotFound, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to find profile")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

type updateProfileRequest struct {
	Username   *string `json:"username"`
	City       *string `json:"city"`
	PostalCode *string `json:"postal_code"`
	PetName    *string `json:"pet_name"`
	PetType    *string `json:"pet_type"`
	PetGender  *string `json:"pet_gender"`
	Bio        *string `json:"bio"`
}

func (server *Server) updateProfile(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)

	req := new(updateProfileRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if req.Username != nil {
		if err := validator.ValidateUsername(*req.Username); err != nil {
			ctx.JSON(http.StatusUnprocessableEntity, failedValidationError([]*FieldViolation{fieldViolation("username", err)}))
			return
		}
	}

	// A changed location invalidates the stored coordinates; they stay
	// empty until the geocode task repopulates them.
	locationChanged := req.City != nil || req.PostalCode != nil

	arg := db.UpdateProfileParams{
		ID:               authPayload.Subject,
		Username:         textPtr(req.Username),
		City:             textPtr(req.City),
		PostalCode:       textPtr(req.PostalCode),
		PetName:          textPtr(req.PetName),
		PetType:          textPtr(req.PetType),
		PetGender:        textPtr(req.PetGender),
		Bio:              textPtr(req.Bio),
		ClearCoordinates: locationChanged,
	}

	profile, err := server.dbStore.UpdateProfile(ctx, arg)
	if err != nil {
		errCode, constraintName := db.ErrorDescription(err)
		if errCode == db.UniqueViolationCode && constraintName == db.UniqueUsernameConstraint {
			err = fmt.Errorf("username %s already exists", *req.Username)
			ctx.JSON(http.StatusBadRequest, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to update profile")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	if locationChanged {
		server.dispatchGeocodeTask(ctx, profile.ID, profile.City.String, profile.PostalCode.String)
	}

	ctx.JSON(http.StatusOK, profile)
}

func (server *Server) updateAvatar(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)

	fileHeader, err := ctx.FormFile("avatar")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("avatar file is required: %w", err)))
		return
	}

	uploadedFileURLs, err := server.uploadFileToCloudinary("avatar", storage.FolderAvatars, fileHeader)
	if err != nil {
		log.Err(err).Msg("failed to upload avatar")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	profile, err := server.dbStore.UpdateProfileAvatar(ctx, db.UpdateProfileAvatarParams{
		ID:        authPayload.Subject,
		AvatarURL: uploadedFileURLs[0],
	})
	if err != nil {
		log.Err(err).Msg("failed to update avatar")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

type nearbyProfileResponse struct {
	Profile    db.Profile `json:"profile"`
	DistanceKm float64    `json:"distance_km"`
}

func (server *Server) listNearbyProfiles(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)

	radiusKm := defaultNearbyRadiusKm
	if raw := ctx.Query("radius_km"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("radius_km must be a positive number")))
			return
		}
		radiusKm = parsed
	}

	limit := defaultNearbyLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxNearbyLimit {
			ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("limit must be between 1 and %d", maxNearbyLimit)))
			return
		}
		limit = parsed
	}

	me, err := server.dbStore.GetProfileByID(ctx, authPayload.Subject)
	if err != nil {
		log.Err(err).Msg("failed to find profile")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	if !me.Latitude.Valid || !me.Longitude.Valid {
		err = errors.New("your profile has no coordinates yet, set a city and postal code first")
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	rows, err := server.dbStore.ListProfileCoordinates(ctx)
	if err != nil {
		log.Err(err).Msg("failed to list profile coordinates")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	candidates := make([]geo.Candidate, 0, len(rows))
	for _, row := range rows {
		candidate := geo.Candidate{ID: row.ID}
		if row.Latitude.Valid {
			lat := row.Latitude.Float64
			candidate.Latitude = &lat
		}
		if row.Longitude.Valid {
			lng := row.Longitude.Float64
			candidate.Longitude = &lng
		}
		candidates = append(candidates, candidate)
	}

	matches := geo.Nearby(candidates, me.Latitude.Float64, me.Longitude.Float64, radiusKm, limit, me.ID)
	if len(matches) == 0 {
		ctx.JSON(http.StatusOK, []nearbyProfileResponse{})
		return
	}

	matchedIDs := make([]string, 0, len(matches))
	for _, match := range matches {
		matchedIDs = append(matchedIDs, match.ID)
	}

	profiles, err := server.dbStore.ListProfilesByIDs(ctx, matchedIDs)
	if err != nil {
		log.Err(err).Msg("failed to load nearby profiles")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	profilesByID := make(map[string]db.Profile, len(profiles))
	for _, p := range profiles {
		profilesByID[p.ID] = p
	}

	resp := make([]nearbyProfileResponse, 0, len(matches))
	for _, match := range matches {
		resp = append(resp, nearbyProfileResponse{
			Profile:    profilesByID[match.ID],
			DistanceKm: match.DistanceKm,
		})
	}

	ctx.JSON(http.StatusOK, resp)
}

func (server *Server) followProfile(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)
	followedID := ctx.Param("id")

	if followedID == authPayload.Subject {
		ctx.JSON(http.StatusBadRequest, errorResponse(errors.New("you cannot follow yourself")))
		return
	}

	if _, err := server.dbStore.GetProfileByID(ctx, followedID); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			err = fmt.Errorf("profile ID %s not found", followedID)
			ctx.JSON(http.StatusNotFound, errorResponse(err))
			return
		}

		log.Err(err).Msg("failed to find profile")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	err := server.dbStore.CreateFollow(ctx, db.CreateFollowParams{
		FollowerID: authPayload.Subject,
		FollowedID: followedID,
	})
	if err != nil {
		errCode, constraintName := db.ErrorDescription(err)
		if errCode == db.UniqueViolationCode && constraintName == db.UniqueFollowConstraint {
			ctx.JSON(http.StatusConflict, errorResponse(errors.New("already following this profile")))
			return
		}

		log.Err(err).Msg("failed to create follow")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "followed"})
}

func (server *Server) unfollowProfile(ctx *gin.Context) {
	authPayload := ctx.MustGet(authorizationPayloadKey).(*token.Payload)
	followedID := ctx.Param("id")

	deleted, err := server.dbStore.DeleteFollow(ctx, db.DeleteFollowParams{
		FollowerID: authPayload.Subject,
		FollowedID: followedID,
	})
	if err != nil {
		log.Err(err).Msg("failed to delete follow")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}
	if deleted == 0 {
		ctx.JSON(http.StatusNotFound, errorResponse(errors.New("you are not following this profile")))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "unfollowed"})
}
