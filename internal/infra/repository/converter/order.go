package converter

import (
	"nest/internal/domain/order"
	sqlc "nest/internal/infra/sqlc/generated"
	"nest/internal/pkg/errs"
	"nest/internal/pkg/pgconv"

	"github.com/google/uuid"
)

func OrderToInsertParams(o *order.Order) sqlc.InsertOrderParams {
	return sqlc.InsertOrderParams{
		ID:        o.ID(),
		Reference: o.Reference(),
		EventID:   o.EventID(),
		UserID:    o.UserID(),
		Discount:  pgconv.DecimalToNumeric(o.Discount()),
		Total:     pgconv.DecimalToNumeric(o.Total()),
		Gift:      o.IsGift(),
		Live:      o.IsLive(),
		Coupons:   nonNil(o.Coupons()),
		OrderedAt: pgconv.TimeToPgtype(o.OrderedAt()),
	}
}

func OrderLineItemParams(orderID uuid.UUID, items []order.LineItem) []sqlc.InsertOrderLineItemParams {
	params := make([]sqlc.InsertOrderLineItemParams, 0, len(items))
	for i, it := range items {
		params = append(params, sqlc.InsertOrderLineItemParams{
			OrderID:   orderID,
			Position:  int32(i), // #nosec G115 -- bounded by payload size
			ProductID: it.ProductID,
			Quantity:  int32(it.Quantity), // #nosec G115 -- validated positive
			UnitPrice: pgconv.DecimalToNumeric(it.UnitPrice),
			Subtotal:  pgconv.DecimalToNumeric(it.Subtotal),
		})
	}
	return params
}

// OrderFromRows rebuilds an order from its row and its line item rows, which
// must already be ordered by position.
func OrderFromRows(row sqlc.Orders, items []sqlc.OrderLineItems) (*order.Order, error) {
	lines := make([]order.LineItem, 0, len(items))
	for _, it := range items {
		if it.OrderID != row.ID {
			continue
		}
		unit, err := pgconv.DecimalFromNumeric(it.UnitPrice)
		if err != nil {
			return nil, errs.Wrapf(err, "order %s line %d unit price", row.Reference, it.Position)
		}
		subtotal, err := pgconv.DecimalFromNumeric(it.Subtotal)
		if err != nil {
			return nil, errs.Wrapf(err, "order %s line %d subtotal", row.Reference, it.Position)
		}
		lines = append(lines, order.LineItem{
			ProductID: it.ProductID,
			Quantity:  int(it.Quantity),
			UnitPrice: unit,
			Subtotal:  subtotal,
		})
	}

	discount, err := pgconv.DecimalFromNumeric(row.Discount)
	if err != nil {
		return nil, errs.Wrapf(err, "order %s discount", row.Reference)
	}
	total, err := pgconv.DecimalFromNumeric(row.Total)
	if err != nil {
		return nil, errs.Wrapf(err, "order %s total", row.Reference)
	}

	return order.Reconstruct(row.ID, order.NewOrderParams{
		Reference: row.Reference,
		EventID:   row.EventID,
		UserID:    row.UserID,
		Items:     lines,
		Discount:  discount,
		Total:     total,
		Gift:      row.Gift,
		Live:      row.Live,
		Coupons:   row.Coupons,
		OrderedAt: pgconv.TimeFromPgtype(row.OrderedAt),
	}), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
