package repository

import (
	"context"

	"nest/internal/domain/order"
	"nest/internal/infra"
	"nest/internal/infra/repository/converter"
	sqlc "nest/internal/infra/sqlc/generated"
	"nest/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type OrderQueries interface {
	InsertOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOrderParams) (uuid.UUID, error)
	InsertOrderLineItem(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOrderLineItemParams) error
	FindOrderByReference(ctx context.Context, db sqlc.DBTX, reference string) (sqlc.Orders, error)
	FindOrderByReferenceForUpdate(ctx context.Context, db sqlc.DBTX, reference string) (sqlc.Orders, error)
	FindOrderByEventID(ctx context.Context, db sqlc.DBTX, eventID string) (sqlc.Orders, error)
	ListOrderLineItems(ctx context.Context, db sqlc.DBTX, orderIds []uuid.UUID) ([]sqlc.OrderLineItems, error)
	ListOrdersByUser(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) ([]sqlc.Orders, error)
}

type OrderRepository struct {
	queries OrderQueries
	db      sqlc.DBTX
}

func NewOrderRepository(queries OrderQueries, db sqlc.DBTX) *OrderRepository {
	return &OrderRepository{
		queries: queries,
		db:      db,
	}
}

// Insert stores o and its line items. inserted is false when an order with the
// same reference or event id already exists; nothing is written in that case.
func (r *OrderRepository) Insert(ctx context.Context, o *order.Order) (inserted bool, err error) {
	id, err := r.queries.InsertOrder(ctx, r.db, converter.OrderToInsertParams(o))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to insert order "+o.Reference(), err)
	}
	for _, params := range converter.OrderLineItemParams(id, o.Items()) {
		if err := r.queries.InsertOrderLineItem(ctx, r.db, params); err != nil {
			return false, infra.WrapRepoErr("failed to insert order line item", err)
		}
	}
	return true, nil
}

// FindByReference locks the order row when forUpdate is set.
func (r *OrderRepository) FindByReference(ctx context.Context, reference string, forUpdate bool) (*order.Order, error) {
	find := r.queries.FindOrderByReference
	if forUpdate {
		find = r.queries.FindOrderByReferenceForUpdate
	}
	row, err := find(ctx, r.db, reference)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order "+reference, err)
	}
	return r.withItems(ctx, row)
}

func (r *OrderRepository) FindByEventID(ctx context.Context, eventID string) (*order.Order, error) {
	row, err := r.queries.FindOrderByEventID(ctx, r.db, eventID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order by event "+eventID, err)
	}
	return r.withItems(ctx, row)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*order.Order, error) {
	rows, err := r.queries.ListOrdersByUser(ctx, r.db, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	items, err := r.queries.ListOrderLineItems(ctx, r.db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order line items", err)
	}

	out := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		o, err := converter.OrderFromRows(row, items)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *OrderRepository) withItems(ctx context.Context, row sqlc.Orders) (*order.Order, error) {
	items, err := r.queries.ListOrderLineItems(ctx, r.db, []uuid.UUID{row.ID})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order line items", err)
	}
	return converter.OrderFromRows(row, items)
}
