package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgtype"
	db "github.com/petconnect/petconnect-BE/internal/db"
	"github.com/rs/zerolog/log"
)

// PayloadGeocodeProfile contains all data of the task that we want to store in Redis.
type PayloadGeocodeProfile struct {
	ProfileID  string `json:"profile_id"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

func (distributor *RedisTaskDistributor) DistributeTaskGeocodeProfile(
	ctx context.Context,
	payload *PayloadGeocodeProfile,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	task := asynq.NewTask(TaskGeocodeProfile, jsonPayload, opts...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().Str("type", task.Type()).Bytes("payload", task.Payload()).Str("queue", info.Queue).Int("max_retry", info.MaxRetry).Msg("task enqueued")

	return nil
}

func (processor *RedisTaskProcessor) ProcessTaskGeocodeProfile(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadGeocodeProfile
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	lat, lng, ok, err := processor.geocoder.Lookup(ctx, payload.City, payload.PostalCode)
	if err != nil {
		log.Error().Err(err).Str("profile_id", payload.ProfileID).Msg("failed to geocode profile")
		return err
	}
	if !ok {
		// Unknown location, the profile simply stays without coordinates.
		log.Info().Str("profile_id", payload.ProfileID).Str("city", payload.City).
			Str("postal_code", payload.PostalCode).Msg("location not found, skipping")
		return nil
	}

	err = processor.store.UpdateProfileCoordinates(ctx, db.UpdateProfileCoordinatesParams{
		ID:        payload.ProfileID,
		Latitude:  pgtype.Float8{Float64: lat, Valid: true},
		Longitude: pgtype.Float8{Float64: lng, Valid: true},
	})
	if err != nil {
		log.Error().Err(err).Str("profile_id", payload.ProfileID).Msg("failed to store profile coordinates")
		return err
	}

	log.Info().Str("type", task.Type()).Str("profile_id", payload.ProfileID).Msg("task processed")

	return nil
}
