//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"nest/internal/domain/order"
	"nest/internal/infra"
	sqlc "nest/internal/infra/sqlc/generated"
	"nest/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(order.NewOrderParams{
		Reference: "ORD-1",
		EventID:   "evt-1",
		UserID:    uuid.New(),
		Items: []order.LineItem{
			order.NewLineItem(uuid.New(), 1, decimal.RequireFromString("40.00")),
			order.NewLineItem(uuid.New(), 2, decimal.RequireFromString("5.00")),
		},
		Total:     decimal.RequireFromString("50.00"),
		OrderedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return o
}

func TestOrderRepository_Insert(t *testing.T) {
	tests := []struct {
		name         string
		insertErr    error
		itemErr      error
		wantInserted bool
		wantItems    int
		wantKind     infra.RepositoryErrorKind
	}{
		{name: "success", wantInserted: true, wantItems: 2},
		{name: "replay is not inserted", insertErr: pgx.ErrNoRows},
		{name: "database error", insertErr: assert.AnError, wantKind: infra.KindDBFailure},
		{name: "line item failure", itemErr: assert.AnError, wantItems: 1, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := sampleOrder(t)
			mockQueries := new(MockQueries)
			mockQueries.On("InsertOrder", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.InsertOrderParams) bool {
				return p.Reference == "ORD-1" && p.EventID == "evt-1" && p.ID == o.ID()
			})).Return(o.ID(), tt.insertErr)
			if tt.insertErr == nil {
				mockQueries.On("InsertOrderLineItem", mock.Anything, mock.Anything, mock.Anything).Return(tt.itemErr)
			}

			repo := NewOrderRepository(mockQueries, mockQueries)
			inserted, err := repo.Insert(context.Background(), o)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantInserted, inserted)
			mockQueries.AssertNumberOfCalls(t, "InsertOrderLineItem", tt.wantItems)
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestOrderRepository_FindByReference(t *testing.T) {
	orderID := uuid.New()
	productID := uuid.New()
	row := sqlc.Orders{
		ID:        orderID,
		Reference: "ORD-1",
		EventID:   "evt-1",
		UserID:    uuid.New(),
		Discount:  pgconv.DecimalToNumeric(decimal.Zero),
		Total:     pgconv.DecimalToNumeric(decimal.RequireFromString("40.00")),
		OrderedAt: pgconv.TimeToPgtype(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)),
	}
	items := []sqlc.OrderLineItems{{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  1,
		UnitPrice: pgconv.DecimalToNumeric(decimal.RequireFromString("40.00")),
		Subtotal:  pgconv.DecimalToNumeric(decimal.RequireFromString("40.00")),
	}}

	t.Run("for update uses the locking query", func(t *testing.T) {
		mockQueries := new(MockQueries)
		mockQueries.On("FindOrderByReferenceForUpdate", mock.Anything, mock.Anything, "ORD-1").Return(row, nil)
		mockQueries.On("ListOrderLineItems", mock.Anything, mock.Anything, []uuid.UUID{orderID}).Return(items, nil)

		repo := NewOrderRepository(mockQueries, mockQueries)
		o, err := repo.FindByReference(context.Background(), "ORD-1", true)

		require.NoError(t, err)
		assert.Equal(t, orderID, o.ID())
		assert.Equal(t, map[uuid.UUID]int{productID: 1}, o.Quantities())
		assert.True(t, decimal.RequireFromString("40").Equal(o.Total()))
		mockQueries.AssertNotCalled(t, "FindOrderByReference", mock.Anything, mock.Anything, mock.Anything)
		mockQueries.AssertExpectations(t)
	})

	t.Run("missing order is not found", func(t *testing.T) {
		mockQueries := new(MockQueries)
		mockQueries.On("FindOrderByReference", mock.Anything, mock.Anything, "ORD-404").Return(sqlc.Orders{}, pgx.ErrNoRows)

		repo := NewOrderRepository(mockQueries, mockQueries)
		o, err := repo.FindByReference(context.Background(), "ORD-404", false)

		assert.Nil(t, o)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		mockQueries.AssertExpectations(t)
	})
}

func TestOrderRepository_ListByUser(t *testing.T) {
	t.Run("no orders skips line items", func(t *testing.T) {
		userID := uuid.New()
		mockQueries := new(MockQueries)
		mockQueries.On("ListOrdersByUser", mock.Anything, mock.Anything, userID).Return([]sqlc.Orders{}, nil)

		repo := NewOrderRepository(mockQueries, mockQueries)
		orders, err := repo.ListByUser(context.Background(), userID)

		require.NoError(t, err)
		assert.Empty(t, orders)
		mockQueries.AssertNotCalled(t, "ListOrderLineItems", mock.Anything, mock.Anything, mock.Anything)
	})
}
