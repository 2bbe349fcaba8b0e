package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/bookhive/ops-backend/internal/config"
	"github.com/bookhive/ops-backend/internal/customer"
	"github.com/bookhive/ops-backend/internal/logging"
)

// intelligenceService is the classifier slice the worker invokes.
type intelligenceService interface {
	CheckAndUpdateCustomerIntelligence(ctx context.Context, customerID uuid.UUID) (customer.Result, error)
}

// tierNotifier turns a tier-change result into outbound notifications.
type tierNotifier interface {
	NotifyTierChange(ctx context.Context, customerID uuid.UUID, result customer.Result) error
}

// emailSender delivers one email.
type emailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type Worker struct {
	server       *asynq.Server
	intelligence intelligenceService
	notifier     tierNotifier
	emailer      emailSender
}

func NewWorker(cfg *config.RedisConfig, workerCfg *config.WorkerConfig, intelligence intelligenceService, notifier tierNotifier, emailer emailSender) *Worker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		asynq.Config{
			Concurrency: workerCfg.Concurrency,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logging.Error("process task failed", "type", task.Type(), "payload", string(task.Payload()), "error", err)
			}),
		},
	)

	return &Worker{
		server:       server,
		intelligence: intelligence,
		notifier:     notifier,
		emailer:      emailer,
	}
}

func (w *Worker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCustomerIntelligence, w.HandleCustomerIntelligence)
	mux.HandleFunc(TypeEmailDelivery, w.HandleEmailDelivery)

	return w.server.Start(mux)
}

func (w *Worker) Close() {
	w.server.Shutdown()
}

// HandleCustomerIntelligence runs the relationship classifier for the
// customer in the payload and notifies on a tier change. Notification
// failures are logged, not returned: the classification itself succeeded and
// must not be retried for a delivery problem.
func (w *Worker) HandleCustomerIntelligence(ctx context.Context, task *asynq.Task) error {
	var payload CustomerIntelligencePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal customer intelligence payload: %w", err)
	}

	result, err := w.intelligence.CheckAndUpdateCustomerIntelligence(ctx, payload.CustomerID)
	if err != nil {
		return fmt.Errorf("customer intelligence for %s: %w", payload.CustomerID, err)
	}

	if result.TierChanged && w.notifier != nil {
		if err := w.notifier.NotifyTierChange(ctx, payload.CustomerID, result); err != nil {
			logging.Error("tier change notification failed",
				"customer_id", payload.CustomerID, "error", err)
		}
	}

	return nil
}

// HandleEmailDelivery sends one queued email.
func (w *Worker) HandleEmailDelivery(ctx context.Context, task *asynq.Task) error {
	var payload EmailDeliveryPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal email delivery payload: %w", err)
	}

	if err := w.emailer.SendEmail(ctx, payload.To, payload.Subject, payload.Body); err != nil {
		return fmt.Errorf("send email to %s: %w", payload.To, err)
	}

	logging.Info("email delivered", "to", payload.To, "subject", payload.Subject)
	return nil
}
