package queue

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/bookhive/ops-backend/internal/config"
	"github.com/bookhive/ops-backend/internal/logging"
)

// Task types handled by the worker.
const (
	// TypeCustomerIntelligence re-runs the relationship classifier for one
	// customer, enqueued after a booking completes or is paid.
	TypeCustomerIntelligence = "customer:intelligence"
	// TypeEmailDelivery sends one email.
	TypeEmailDelivery = "email:delivery"
)

type CustomerIntelligencePayload struct {
	CustomerID uuid.UUID
}

type EmailDeliveryPayload struct {
	To      string
	Subject string
	Body    string
}

type TaskQueue struct {
	client *asynq.Client
}

func NewQueue(cfg *config.RedisConfig) (*TaskQueue, error) {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Activate and test the connection
	if err := client.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis queue: %w", err)
	}

	logging.Info("Connected to Redis task queue")

	return &TaskQueue{client: client}, nil
}

func (q *TaskQueue) Enqueue(taskType string, data interface{}) (*asynq.TaskInfo, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	task := asynq.NewTask(taskType, payload)

	return q.client.Enqueue(task)
}

func (q *TaskQueue) Close() error {
	return q.client.Close()
}
