package worker

import (
	"context"

	"github.com/hibiken/asynq"
)

const (
	TaskGeocodeProfile = "profile:geocode"
)

/*
This file contains the code to create tasks and distribute them to the Redis queue.
*/

type TaskDistributor interface {
	DistributeTaskGeocodeProfile(ctx context.Context, payload *PayloadGeocodeProfile, opts ...asynq.Option) error
}

type RedisTaskDistributor struct {
	client *asynq.Client // client sends tasks to redis queue.
}

func NewTaskDistributor(redisOpt asynq.RedisClientOpt) TaskDistributor {
	client := asynq.NewClient(redisOpt)

	return &RedisTaskDistributor{
		client: client,
	}
}
