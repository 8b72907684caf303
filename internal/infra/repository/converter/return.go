package converter

import (
	"nest/internal/domain/order"
	sqlc "nest/internal/infra/sqlc/generated"
	"nest/internal/pkg/errs"
	"nest/internal/pkg/pgconv"

	"github.com/google/uuid"
)

func ReturnToInsertParams(r *order.Return) sqlc.InsertReturnParams {
	return sqlc.InsertReturnParams{
		ID:         r.ID(),
		Reference:  r.Reference(),
		EventID:    r.EventID(),
		OrderID:    r.OrderID(),
		Partial:    r.IsPartial(),
		Amount:     pgconv.DecimalToNumeric(r.Amount()),
		ReturnedAt: pgconv.TimeToPgtype(r.ReturnedAt()),
	}
}

func ReturnLineItemParams(returnID uuid.UUID, items []order.ReturnItem) []sqlc.InsertReturnLineItemParams {
	params := make([]sqlc.InsertReturnLineItemParams, 0, len(items))
	for i, it := range items {
		params = append(params, sqlc.InsertReturnLineItemParams{
			ReturnID:  returnID,
			Position:  int32(i), // #nosec G115 -- bounded by payload size
			ProductID: it.ProductID,
			Quantity:  int32(it.Quantity), // #nosec G115 -- validated positive
		})
	}
	return params
}

func ReturnFromRows(row sqlc.ListReturnsByOrdersRow, items []sqlc.ReturnLineItems) (*order.Return, error) {
	lines := make([]order.ReturnItem, 0, len(items))
	for _, it := range items {
		if it.ReturnID != row.ID {
			continue
		}
		lines = append(lines, order.ReturnItem{ProductID: it.ProductID, Quantity: int(it.Quantity)})
	}
	amount, err := pgconv.DecimalFromNumeric(row.Amount)
	if err != nil {
		return nil, errs.Wrapf(err, "return %s amount", row.Reference)
	}
	return order.ReconstructReturn(order.ReconstructReturnParams{
		ID:             row.ID,
		Reference:      row.Reference,
		EventID:        row.EventID,
		OrderID:        row.OrderID,
		OrderReference: row.OrderReference,
		Partial:        row.Partial,
		Items:          lines,
		Amount:         amount,
		ReturnedAt:     pgconv.TimeFromPgtype(row.ReturnedAt),
	}), nil
}
