package container

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/bookhive/ops-backend/internal/archive"
	"github.com/bookhive/ops-backend/internal/aws"
	"github.com/bookhive/ops-backend/internal/booking"
	"github.com/bookhive/ops-backend/internal/config"
	"github.com/bookhive/ops-backend/internal/customer"
	"github.com/bookhive/ops-backend/internal/database"
	"github.com/bookhive/ops-backend/internal/logging"
	"github.com/bookhive/ops-backend/internal/notifications"
	"github.com/bookhive/ops-backend/internal/queue"
	"github.com/bookhive/ops-backend/internal/revenue"
)

type Container struct {
	Config       *config.Config
	Database     *database.Database
	Queue        *queue.TaskQueue
	RedisClient  *redis.Client
	EmailService *aws.EmailService
	Bookings     *booking.Service
	Revenue      *revenue.Service
	Intelligence *customer.Service
	Archive      *archive.Service
	Dispatcher   *notifications.Dispatcher
	Worker       *queue.Worker
}

func New(cfg config.Config) (*Container, error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, err
	}

	taskQueue, err := queue.NewQueue(&cfg.Redis)
	if err != nil {
		return nil, err
	}

	// Two separate Redis connection pools: asynq manages its own, this
	// client is for ad-hoc operational state.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	emailService, err := aws.NewEmailService(cfg.AWS)
	if err != nil {
		return nil, err
	}

	// localstack-specific config (email identity not managed by app in prod)
	if cfg.AWS.EndpointURL != "" {
		if _, err := emailService.VerifyEmailIdentity(context.Background()); err != nil {
			logging.Error("Failed to verify email identity", "error", err)
		}
	}

	st := db.Store()
	bookings := booking.NewService(st)
	revenueSvc := revenue.NewService(st)
	intelligence := customer.NewService(st)
	archiveSvc := archive.NewService(st)
	dispatcher := notifications.NewDispatcher(taskQueue, st, cfg.AWS.OpsEmail)

	worker := queue.NewWorker(&cfg.Redis, &cfg.Worker, intelligence, dispatcher, emailService)

	logging.Info("Connected to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port)

	return &Container{
		Config:       &cfg,
		Database:     db,
		Queue:        taskQueue,
		RedisClient:  redisClient,
		EmailService: emailService,
		Bookings:     bookings,
		Revenue:      revenueSvc,
		Intelligence: intelligence,
		Archive:      archiveSvc,
		Dispatcher:   dispatcher,
		Worker:       worker,
	}, nil
}

func (c *Container) Cleanup() {
	if c.Queue != nil {
		c.Queue.Close()
		logging.Info("Queue client closed")
	}
	if c.Worker != nil {
		c.Worker.Close()
		logging.Info("Worker closed")
	}
	if c.RedisClient != nil {
		c.RedisClient.Close()
		logging.Info("Redis client closed")
	}
	if c.Database != nil {
		c.Database.Close()
		logging.Info("Database connection closed")
	}
}
