package main

import (
	"context"
	"os"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/petconnect/petconnect-BE/api"
	"github.com/petconnect/petconnect-BE/internal/alert"
	db "github.com/petconnect/petconnect-BE/internal/db"
	"github.com/petconnect/petconnect-BE/internal/geocode"
	"github.com/petconnect/petconnect-BE/internal/retention"
	"github.com/petconnect/petconnect-BE/internal/util"
	"github.com/petconnect/petconnect-BE/internal/worker"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"resty.dev/v3"

	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configurations
	config, err := util.LoadConfig("./app.env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config file 😣")
	}

	log.Info().Msg("configurations loaded successfully ✅")

	// Create connection pool
	connPool, err := pgxpool.New(context.Background(), config.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to validate db connection string 😣")
	}

	pingErr := connPool.Ping(context.Background())
	if pingErr != nil {
		log.Fatal().Err(pingErr).Msg("failed to connect to db 😣")
	}
	log.Info().Msg("connected to db ✅")

	store := db.NewStore(connPool)

	redisDb := redis.NewClient(&redis.Options{
		Addr:     config.RedisServerAddress,
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	redisOpt := asynq.RedisClientOpt{
		Addr: config.RedisServerAddress,
	}

	taskDistributor := worker.NewTaskDistributor(redisOpt)

	geocoder := geocode.NewService(resty.New(), redisDb, config.GeocodingBaseURL, config.GeocodingUserAgent)

	taskProcessor := worker.NewRedisTaskProcessor(redisOpt, store, geocoder)
	go func() {
		if err := taskProcessor.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start task processor 😣")
		}
	}()
	log.Info().Msg("task processor started ✅")

	sweeper, err := retention.NewSweeper(store, config.NotificationRetentionDays)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create retention sweeper 😣")
	}
	if err = sweeper.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start retention sweeper 😣")
	}
	log.Info().Msg("retention sweeper started ✅")

	alertService, err := alert.NewService(
		config.DiscordBotToken,
		config.DiscordModerationChannel,
		config.GmailSMTPUsername,
		config.GmailSMTPPassword,
		config.ModeratorAlertEmail,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create alert service 😣")
	}

	runHTTPServer(&config, store, taskDistributor, alertService)
}

func runHTTPServer(config *util.Config, store db.Store, taskDistributor worker.TaskDistributor, alertService *alert.Service) {
	server, err := api.NewServer(store, taskDistributor, config, alertService)

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create HTTP server 😣")
	}

	err = server.Start(config.HTTPServerAddress)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start HTTP server 😣")
	}
}
