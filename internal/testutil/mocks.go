package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/mock"

	"github.com/bookhive/ops-backend/internal/booking"
	"github.com/bookhive/ops-backend/internal/customer"
)

// MockStore is a mock implementation of the store interfaces the rule-engine
// services consume (booking.Store, revenue.Store, customer.Store,
// archive.Store).
type MockStore struct {
	mock.Mock
}

// NewMockStore creates a new mock store bound to t.
func NewMockStore(t *testing.T) *MockStore {
	m := &MockStore{}
	m.Test(t)
	return m
}

func (m *MockStore) GetBooking(ctx context.Context, id uuid.UUID) (booking.Booking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(booking.Booking), args.Error(1)
}

func (m *MockStore) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status booking.Status) (booking.Booking, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(booking.Booking), args.Error(1)
}

func (m *MockStore) ListCompletedBookings(ctx context.Context, from, to time.Time) ([]booking.Booking, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]booking.Booking), args.Error(1)
}

func (m *MockStore) CountActiveTeamMembers(ctx context.Context, teamIDs []uuid.UUID) (map[uuid.UUID]int32, error) {
	args := m.Called(ctx, teamIDs)
	return args.Get(0).(map[uuid.UUID]int32), args.Error(1)
}

func (m *MockStore) GetCustomer(ctx context.Context, id uuid.UUID) (customer.Customer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(customer.Customer), args.Error(1)
}

func (m *MockStore) GetCustomerBookingStats(ctx context.Context, id uuid.UUID) (customer.BookingStats, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(customer.BookingStats), args.Error(1)
}

func (m *MockStore) UpdateCustomerIntelligence(ctx context.Context, params customer.UpdateIntelligenceParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockStore) UpdateCustomerTags(ctx context.Context, id uuid.UUID, tags []string) error {
	args := m.Called(ctx, id, tags)
	return args.Error(0)
}

func (m *MockStore) ArchiveBooking(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) RestoreBooking(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) ArchiveCustomer(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) RestoreCustomer(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTaskQueue is a mock implementation of the queue interface consumed by
// the notification dispatcher.
type MockTaskQueue struct {
	mock.Mock
}

// NewMockTaskQueue creates a new mock task queue bound to t.
func NewMockTaskQueue(t *testing.T) *MockTaskQueue {
	m := &MockTaskQueue{}
	m.Test(t)
	return m
}

func (m *MockTaskQueue) Enqueue(taskType string, data interface{}) (*asynq.TaskInfo, error) {
	args := m.Called(taskType, data)
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}
