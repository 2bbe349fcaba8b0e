package notifications_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/ops-backend/internal/customer"
	"github.com/bookhive/ops-backend/internal/notifications"
	"github.com/bookhive/ops-backend/internal/queue"
	"github.com/bookhive/ops-backend/internal/testutil"
)

func TestNotifyTierChange(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	t.Run("enqueues a templated ops email", func(t *testing.T) {
		store := testutil.NewMockStore(t)
		store.On("GetCustomer", mock.Anything, customerID).Return(customer.Customer{
			ID:    customerID,
			Name:  "Dana Reyes",
			Email: "dana@example.com",
		}, nil)

		var sent queue.EmailDeliveryPayload
		taskQueue := testutil.NewMockTaskQueue(t)
		taskQueue.On("Enqueue", queue.TypeEmailDelivery, mock.MatchedBy(func(p queue.EmailDeliveryPayload) bool {
			sent = p
			return true
		})).Return(nil, nil)

		d := notifications.NewDispatcher(taskQueue, store, "ops@bookhive.example")
		err := d.NotifyTierChange(ctx, customerID, customer.Result{
			TierChanged: true,
			OldLevel:    customer.LevelRegular,
			NewLevel:    customer.LevelVIP,
			TagsAdded:   []string{customer.TagHighValue},
		})
		require.NoError(t, err)

		assert.Equal(t, "ops@bookhive.example", sent.To)
		assert.Contains(t, sent.Subject, "Dana Reyes")
		assert.Contains(t, sent.Subject, "vip")
		assert.Contains(t, sent.Body, "moved from regular to vip")
		assert.Contains(t, sent.Body, customer.TagHighValue)
		taskQueue.AssertExpectations(t)
	})

	t.Run("unchanged result is a no-op", func(t *testing.T) {
		store := testutil.NewMockStore(t)
		taskQueue := testutil.NewMockTaskQueue(t)

		d := notifications.NewDispatcher(taskQueue, store, "ops@bookhive.example")
		err := d.NotifyTierChange(ctx, customerID, customer.Result{TierChanged: false})
		require.NoError(t, err)
		taskQueue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		store := testutil.NewMockStore(t)
		store.On("GetCustomer", mock.Anything, customerID).Return(customer.Customer{}, assert.AnError)
		taskQueue := testutil.NewMockTaskQueue(t)

		d := notifications.NewDispatcher(taskQueue, store, "ops@bookhive.example")
		err := d.NotifyTierChange(ctx, customerID, customer.Result{TierChanged: true})
		assert.ErrorIs(t, err, assert.AnError)
	})
}
