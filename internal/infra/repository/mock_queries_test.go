//go:build unit

package repository

import (
	"context"

	sqlc "nest/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockQueries implements every *Queries interface of this package plus
// sqlc.DBTX, so it can stand in for both the generated queries and the tx.
type MockQueries struct {
	mock.Mock
}

func (m *MockQueries) Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockQueries) Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Rows), mockArgs.Error(1)
}

func (m *MockQueries) QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

func (m *MockQueries) InsertOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOrderParams) (uuid.UUID, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockQueries) InsertOrderLineItem(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOrderLineItemParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func (m *MockQueries) FindOrderByReference(ctx context.Context, db sqlc.DBTX, reference string) (sqlc.Orders, error) {
	args := m.Called(ctx, db, reference)
	return args.Get(0).(sqlc.Orders), args.Error(1)
}

func (m *MockQueries) FindOrderByReferenceForUpdate(ctx context.Context, db sqlc.DBTX, reference string) (sqlc.Orders, error) {
	args := m.Called(ctx, db, reference)
	return args.Get(0).(sqlc.Orders), args.Error(1)
}

func (m *MockQueries) FindOrderByEventID(ctx context.Context, db sqlc.DBTX, eventID string) (sqlc.Orders, error) {
	args := m.Called(ctx, db, eventID)
	return args.Get(0).(sqlc.Orders), args.Error(1)
}

func (m *MockQueries) ListOrderLineItems(ctx context.Context, db sqlc.DBTX, orderIds []uuid.UUID) ([]sqlc.OrderLineItems, error) {
	args := m.Called(ctx, db, orderIds)
	return args.Get(0).([]sqlc.OrderLineItems), args.Error(1)
}

func (m *MockQueries) ListOrdersByUser(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) ([]sqlc.Orders, error) {
	args := m.Called(ctx, db, userID)
	return args.Get(0).([]sqlc.Orders), args.Error(1)
}

func (m *MockQueries) UpsertSubscriptionState(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertSubscriptionStateParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQueries) FindSubscriptionState(ctx context.Context, db sqlc.DBTX, arg sqlc.FindSubscriptionStateParams) (sqlc.SubscriptionStates, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(sqlc.SubscriptionStates), args.Error(1)
}

func (m *MockQueries) ListSubscriptionStatesByUser(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) ([]sqlc.SubscriptionStates, error) {
	args := m.Called(ctx, db, userID)
	return args.Get(0).([]sqlc.SubscriptionStates), args.Error(1)
}

func (m *MockQueries) RecordDelivery(ctx context.Context, db sqlc.DBTX, arg sqlc.RecordDeliveryParams) (sqlc.WebhookDeliveries, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(sqlc.WebhookDeliveries), args.Error(1)
}

func (m *MockQueries) InsertAnonymousDelivery(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertAnonymousDeliveryParams) (sqlc.WebhookDeliveries, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(sqlc.WebhookDeliveries), args.Error(1)
}

func (m *MockQueries) IncrementDeliveryAttempts(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int32, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockQueries) UpdateDeliveryStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateDeliveryStatusParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQueries) ResetDeliveryForReplay(ctx context.Context, db sqlc.DBTX, arg sqlc.ResetDeliveryForReplayParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQueries) GetDelivery(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.WebhookDeliveries, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.WebhookDeliveries), args.Error(1)
}
