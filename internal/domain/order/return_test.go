//go:build unit

package order_test

import (
	"testing"
	"time"

	"nest/internal/domain/order"
	"nest/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReturn(t *testing.T, o *order.Order, prior []*order.Return, ref string, items ...order.ReturnItem) (*order.Return, error) {
	t.Helper()
	return order.NewReturn(order.NewReturnParams{
		Reference:  ref,
		EventID:    "evt-" + ref,
		Order:      o,
		Prior:      prior,
		Items:      items,
		Amount:     d("5.00"),
		ReturnedAt: orderedAt.Add(24 * time.Hour),
	})
}

func TestNewReturn(t *testing.T) {
	t.Run("accessory only return is partial", func(t *testing.T) {
		o := bundleOrder(t)

		r, err := newReturn(t, o, nil, "RET-1", order.ReturnItem{ProductID: productAccessory, Quantity: 2})

		require.NoError(t, err)
		assert.True(t, r.IsPartial())
		assert.Equal(t, o.ID(), r.OrderID())
		assert.Equal(t, "ORD-1", r.OrderReference())
	})

	t.Run("returning everything is not partial", func(t *testing.T) {
		o := bundleOrder(t)

		r, err := newReturn(t, o, nil, "RET-1",
			order.ReturnItem{ProductID: productP, Quantity: 1},
			order.ReturnItem{ProductID: productAccessory, Quantity: 2},
		)

		require.NoError(t, err)
		assert.False(t, r.IsPartial())
	})

	t.Run("second return completes reversal", func(t *testing.T) {
		o := bundleOrder(t)
		first, err := newReturn(t, o, nil, "RET-1", order.ReturnItem{ProductID: productAccessory, Quantity: 2})
		require.NoError(t, err)

		second, err := newReturn(t, o, []*order.Return{first}, "RET-2", order.ReturnItem{ProductID: productP, Quantity: 1})

		require.NoError(t, err)
		assert.False(t, second.IsPartial())
		assert.True(t, order.FullyReversed(o, []*order.Return{first, second}))
	})

	t.Run("replaying the same return validates against the same remainder", func(t *testing.T) {
		o := bundleOrder(t)
		first, err := newReturn(t, o, nil, "RET-1", order.ReturnItem{ProductID: productP, Quantity: 1})
		require.NoError(t, err)

		again, err := newReturn(t, o, []*order.Return{first}, "RET-1", order.ReturnItem{ProductID: productP, Quantity: 1})

		require.NoError(t, err)
		assert.Equal(t, first.IsPartial(), again.IsPartial())
	})

	tests := []struct {
		name  string
		prior func(t *testing.T, o *order.Order) []*order.Return
		items []order.ReturnItem
		errIs error
	}{
		{
			name:  "quantity above order",
			items: []order.ReturnItem{{ProductID: productAccessory, Quantity: 3}},
			errIs: order.ErrReturnExceedsOrder,
		},
		{
			name:  "duplicate items are summed before checking",
			items: []order.ReturnItem{{ProductID: productP, Quantity: 1}, {ProductID: productP, Quantity: 1}},
			errIs: order.ErrReturnExceedsOrder,
		},
		{
			name:  "product not on order",
			items: []order.ReturnItem{{ProductID: uuid.New(), Quantity: 1}},
			errIs: order.ErrReturnMismatch,
		},
		{
			name:  "no items",
			items: nil,
			errIs: order.ErrEmptyReturn,
		},
		{
			name:  "zero quantity",
			items: []order.ReturnItem{{ProductID: productP, Quantity: 0}},
			errIs: order.ErrInvalidQuantity,
		},
		{
			name: "fully reversed order rejects another return",
			prior: func(t *testing.T, o *order.Order) []*order.Return {
				full, err := newReturn(t, o, nil, "RET-FULL",
					order.ReturnItem{ProductID: productP, Quantity: 1},
					order.ReturnItem{ProductID: productAccessory, Quantity: 2},
				)
				require.NoError(t, err)
				return []*order.Return{full}
			},
			items: []order.ReturnItem{{ProductID: productP, Quantity: 1}},
			errIs: order.ErrOrderFullyReversed,
		},
		{
			name: "already reversed quantity cannot be returned twice",
			prior: func(t *testing.T, o *order.Order) []*order.Return {
				r, err := newReturn(t, o, nil, "RET-A", order.ReturnItem{ProductID: productP, Quantity: 1})
				require.NoError(t, err)
				return []*order.Return{r}
			},
			items: []order.ReturnItem{{ProductID: productP, Quantity: 1}},
			errIs: order.ErrReturnExceedsOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := bundleOrder(t)
			var prior []*order.Return
			if tt.prior != nil {
				prior = tt.prior(t, o)
			}

			r, err := newReturn(t, o, prior, "RET-X", tt.items...)

			assert.Nil(t, r)
			assert.True(t, errs.Is(err, tt.errIs), "got %v", err)
			assert.True(t, errs.Is(err, errs.ErrValidation))
		})
	}

	t.Run("missing order", func(t *testing.T) {
		r, err := newReturn(t, nil, nil, "RET-1", order.ReturnItem{ProductID: productP, Quantity: 1})

		assert.Nil(t, r)
		assert.True(t, errs.Is(err, order.ErrOrderMissing))
	})
}

func TestRemainingIgnoresOtherOrders(t *testing.T) {
	o := bundleOrder(t)
	other := bundleOrder(t)
	foreign, err := newReturn(t, other, nil, "RET-OTHER", order.ReturnItem{ProductID: productP, Quantity: 1})
	require.NoError(t, err)

	rem := order.Remaining(o, []*order.Return{foreign})

	assert.Equal(t, 1, rem[productP])
	assert.False(t, order.FullyReversed(o, []*order.Return{foreign}))
}
