package queue_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/ops-backend/internal/config"
	"github.com/bookhive/ops-backend/internal/customer"
	"github.com/bookhive/ops-backend/internal/queue"
)

type mockIntelligence struct {
	mock.Mock
}

func (m *mockIntelligence) CheckAndUpdateCustomerIntelligence(ctx context.Context, customerID uuid.UUID) (customer.Result, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(customer.Result), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyTierChange(ctx context.Context, customerID uuid.UUID, result customer.Result) error {
	args := m.Called(ctx, customerID, result)
	return args.Error(0)
}

type mockEmailer struct {
	mock.Mock
}

func (m *mockEmailer) SendEmail(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func newTestWorker(t *testing.T) (*queue.Worker, *mockIntelligence, *mockNotifier, *mockEmailer) {
	t.Helper()

	intelligence := &mockIntelligence{}
	intelligence.Test(t)
	notifier := &mockNotifier{}
	notifier.Test(t)
	emailer := &mockEmailer{}
	emailer.Test(t)

	w := queue.NewWorker(
		&config.RedisConfig{Addr: "localhost:6379"},
		&config.WorkerConfig{Concurrency: 1},
		intelligence, notifier, emailer,
	)
	return w, intelligence, notifier, emailer
}

func intelligenceTask(t *testing.T, customerID uuid.UUID) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(queue.CustomerIntelligencePayload{CustomerID: customerID})
	require.NoError(t, err)
	return asynq.NewTask(queue.TypeCustomerIntelligence, payload)
}

func TestHandleCustomerIntelligence(t *testing.T) {
	ctx := context.Background()

	t.Run("tier change triggers notification", func(t *testing.T) {
		w, intelligence, notifier, _ := newTestWorker(t)
		customerID := uuid.New()

		result := customer.Result{
			TierChanged: true,
			OldLevel:    customer.LevelRegular,
			NewLevel:    customer.LevelVIP,
		}
		intelligence.On("CheckAndUpdateCustomerIntelligence", ctx, customerID).Return(result, nil)
		notifier.On("NotifyTierChange", ctx, customerID, result).Return(nil)

		err := w.HandleCustomerIntelligence(ctx, intelligenceTask(t, customerID))

		require.NoError(t, err)
		intelligence.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("no tier change skips notification", func(t *testing.T) {
		w, intelligence, notifier, _ := newTestWorker(t)
		customerID := uuid.New()

		intelligence.On("CheckAndUpdateCustomerIntelligence", ctx, customerID).
			Return(customer.Result{TierChanged: false}, nil)

		err := w.HandleCustomerIntelligence(ctx, intelligenceTask(t, customerID))

		require.NoError(t, err)
		notifier.AssertNotCalled(t, "NotifyTierChange", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("notification failure does not fail the task", func(t *testing.T) {
		w, intelligence, notifier, _ := newTestWorker(t)
		customerID := uuid.New()

		result := customer.Result{TierChanged: true, NewLevel: customer.LevelVIP}
		intelligence.On("CheckAndUpdateCustomerIntelligence", ctx, customerID).Return(result, nil)
		notifier.On("NotifyTierChange", ctx, customerID, result).
			Return(errors.New("smtp unavailable"))

		err := w.HandleCustomerIntelligence(ctx, intelligenceTask(t, customerID))

		assert.NoError(t, err)
	})

	t.Run("classifier failure is returned for retry", func(t *testing.T) {
		w, intelligence, _, _ := newTestWorker(t)
		customerID := uuid.New()

		intelligence.On("CheckAndUpdateCustomerIntelligence", ctx, customerID).
			Return(customer.Result{}, assert.AnError)

		err := w.HandleCustomerIntelligence(ctx, intelligenceTask(t, customerID))

		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("malformed payload fails without invoking classifier", func(t *testing.T) {
		w, intelligence, _, _ := newTestWorker(t)

		task := asynq.NewTask(queue.TypeCustomerIntelligence, []byte("{not json"))
		err := w.HandleCustomerIntelligence(ctx, task)

		assert.Error(t, err)
		intelligence.AssertNotCalled(t, "CheckAndUpdateCustomerIntelligence", mock.Anything, mock.Anything)
	})
}

func TestHandleEmailDelivery(t *testing.T) {
	ctx := context.Background()

	t.Run("sends the queued email", func(t *testing.T) {
		w, _, _, emailer := newTestWorker(t)

		payload, err := json.Marshal(queue.EmailDeliveryPayload{
			To:      "ops@bookhive.test",
			Subject: "Customer tier change",
			Body:    "Harbor Lights Hotel is now VIP",
		})
		require.NoError(t, err)

		emailer.On("SendEmail", ctx, "ops@bookhive.test", "Customer tier change",
			"Harbor Lights Hotel is now VIP").Return(nil)

		err = w.HandleEmailDelivery(ctx, asynq.NewTask(queue.TypeEmailDelivery, payload))

		require.NoError(t, err)
		emailer.AssertExpectations(t)
	})

	t.Run("delivery failure is returned for retry", func(t *testing.T) {
		w, _, _, emailer := newTestWorker(t)

		payload, err := json.Marshal(queue.EmailDeliveryPayload{To: "ops@bookhive.test"})
		require.NoError(t, err)

		emailer.On("SendEmail", ctx, "ops@bookhive.test", "", "").
			Return(errors.New("ses throttled"))

		err = w.HandleEmailDelivery(ctx, asynq.NewTask(queue.TypeEmailDelivery, payload))

		assert.Error(t, err)
	})
}
