// Package notifications turns rule-engine outcomes into outbound messages.
// It owns templating and enqueueing only; delivery happens in the queue
// worker.
package notifications

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/bookhive/ops-backend/internal/customer"
	"github.com/bookhive/ops-backend/internal/logging"
	"github.com/bookhive/ops-backend/internal/queue"
)

// queueService is the subset of TaskQueue the dispatcher needs.
type queueService interface {
	Enqueue(taskType string, data interface{}) (*asynq.TaskInfo, error)
}

// customerLookup resolves a customer id to its record for template data.
type customerLookup interface {
	GetCustomer(ctx context.Context, id uuid.UUID) (customer.Customer, error)
}

// Dispatcher notifies the ops mailbox about customer tier changes.
type Dispatcher struct {
	queue     queueService
	customers customerLookup
	templates *template.Template
	opsEmail  string
}

func NewDispatcher(q queueService, customers customerLookup, opsEmail string) *Dispatcher {
	return &Dispatcher{
		queue:     q,
		customers: customers,
		templates: tierChangeTemplates,
		opsEmail:  opsEmail,
	}
}

// NotifyTierChange enqueues a tier-change email for ops. A skipped or
// unchanged result is a no-op.
func (d *Dispatcher) NotifyTierChange(ctx context.Context, customerID uuid.UUID, result customer.Result) error {
	if !result.TierChanged {
		return nil
	}

	c, err := d.customers.GetCustomer(ctx, customerID)
	if err != nil {
		return fmt.Errorf("get customer %s for notification: %w", customerID, err)
	}

	data := map[string]interface{}{
		"Name":      c.Name,
		"Email":     c.Email,
		"OldLevel":  result.OldLevel,
		"NewLevel":  result.NewLevel,
		"TagsAdded": result.TagsAdded,
	}

	subject, err := renderTemplate(d.templates, "tier_change:subject", data)
	if err != nil {
		return err
	}
	body, err := renderTemplate(d.templates, "tier_change:body", data)
	if err != nil {
		return err
	}

	if _, err := d.queue.Enqueue(queue.TypeEmailDelivery, queue.EmailDeliveryPayload{
		To:      d.opsEmail,
		Subject: subject,
		Body:    body,
	}); err != nil {
		return fmt.Errorf("enqueue tier change email: %w", err)
	}

	logging.Info("tier change notification enqueued",
		"customer_id", customerID,
		"from", result.OldLevel,
		"to", result.NewLevel)

	return nil
}

func renderTemplate(tmpl *template.Template, name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.String(), nil
}
