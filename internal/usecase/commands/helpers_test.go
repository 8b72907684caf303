//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"nest/internal/domain/event"
	"nest/internal/domain/order"
	"nest/internal/domain/user"
	"nest/internal/usecase/shared"
	sharedmock "nest/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// txMocks wires a UnitOfWork whose Within runs the callback against mocked
// repositories.
type txMocks struct {
	uow           *sharedmock.MockUnitOfWork
	tx            *sharedmock.MockTx
	users         *sharedmock.MockUserRepository
	orders        *sharedmock.MockOrderRepository
	returns       *sharedmock.MockReturnRepository
	subscriptions *sharedmock.MockSubscriptionRepository
	deliveries    *sharedmock.MockDeliveryRepository
	products      *sharedmock.MockProductRepository
}

func newTxMocks(ctrl *gomock.Controller) *txMocks {
	m := &txMocks{
		uow:           sharedmock.NewMockUnitOfWork(ctrl),
		tx:            sharedmock.NewMockTx(ctrl),
		users:         sharedmock.NewMockUserRepository(ctrl),
		orders:        sharedmock.NewMockOrderRepository(ctrl),
		returns:       sharedmock.NewMockReturnRepository(ctrl),
		subscriptions: sharedmock.NewMockSubscriptionRepository(ctrl),
		deliveries:    sharedmock.NewMockDeliveryRepository(ctrl),
		products:      sharedmock.NewMockProductRepository(ctrl),
	}
	m.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, m.tx)
		}).AnyTimes()
	m.tx.EXPECT().Users().Return(m.users).AnyTimes()
	m.tx.EXPECT().Orders().Return(m.orders).AnyTimes()
	m.tx.EXPECT().Returns().Return(m.returns).AnyTimes()
	m.tx.EXPECT().Subscriptions().Return(m.subscriptions).AnyTimes()
	m.tx.EXPECT().Deliveries().Return(m.deliveries).AnyTimes()
	m.tx.EXPECT().Products().Return(m.products).AnyTimes()
	return m
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func mustEmail(t *testing.T, s string) user.Email {
	t.Helper()
	e, err := user.NewEmail(s)
	require.NoError(t, err)
	return e
}

func contact(t *testing.T, email string) event.Contact {
	return event.Contact{Email: mustEmail(t, email), Profile: user.Profile{First: "Ada", Last: "Lovelace"}}
}

func storedUser(t *testing.T, email string) *user.User {
	return user.Reconstruct(uuid.New(), mustEmail(t, email), user.Profile{First: "Ada", Last: "Lovelace"}, fixedNow)
}

func orderEvent(t *testing.T, ref string, productID uuid.UUID) event.OrderCreated {
	buyer := contact(t, "buyer@example.com")
	return event.OrderCreated{
		Envelope: event.Envelope{
			ID:      "evt-" + ref,
			Type:    string(event.KindOrderCreated),
			Live:    true,
			Created: fixedNow.Add(-time.Hour),
		},
		Reference: ref,
		Customer:  buyer,
		Owner:     buyer,
		Items:     []order.LineItem{order.NewLineItem(productID, 2, dec("20.00"))},
		Discount:  dec("5.00"),
		Total:     dec("35.00"),
	}
}

func storedOrder(t *testing.T, ref string, userID, productID uuid.UUID, quantity int) *order.Order {
	t.Helper()
	items := []order.LineItem{order.NewLineItem(productID, quantity, dec("20.00"))}
	total := items[0].Subtotal
	return order.Reconstruct(uuid.New(), order.NewOrderParams{
		Reference: ref,
		EventID:   "evt-" + ref,
		UserID:    userID,
		Items:     items,
		Discount:  decimal.Zero,
		Total:     total,
		OrderedAt: fixedNow.Add(-2 * time.Hour),
	})
}
