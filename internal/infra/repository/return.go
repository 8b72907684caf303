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

type ReturnQueries interface {
	InsertReturn(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertReturnParams) (uuid.UUID, error)
	InsertReturnLineItem(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertReturnLineItemParams) error
	FindReturnByReference(ctx context.Context, db sqlc.DBTX, arg sqlc.FindReturnByReferenceParams) (sqlc.Returns, error)
	ListReturnsByOrders(ctx context.Context, db sqlc.DBTX, orderIds []uuid.UUID) ([]sqlc.ListReturnsByOrdersRow, error)
	ListReturnLineItems(ctx context.Context, db sqlc.DBTX, returnIds []uuid.UUID) ([]sqlc.ReturnLineItems, error)
}

type ReturnRepository struct {
	queries ReturnQueries
	db      sqlc.DBTX
}

func NewReturnRepository(queries ReturnQueries, db sqlc.DBTX) *ReturnRepository {
	return &ReturnRepository{
		queries: queries,
		db:      db,
	}
}

// Insert stores ret and its items. inserted is false when a return with the
// same reference or event id already exists.
func (r *ReturnRepository) Insert(ctx context.Context, ret *order.Return) (inserted bool, err error) {
	id, err := r.queries.InsertReturn(ctx, r.db, converter.ReturnToInsertParams(ret))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to insert return "+ret.Reference(), err)
	}
	for _, params := range converter.ReturnLineItemParams(id, ret.Items()) {
		if err := r.queries.InsertReturnLineItem(ctx, r.db, params); err != nil {
			return false, infra.WrapRepoErr("failed to insert return line item", err)
		}
	}
	return true, nil
}

// Exists reports whether a return with the reference or event id is stored.
func (r *ReturnRepository) Exists(ctx context.Context, reference, eventID string) (bool, error) {
	_, err := r.queries.FindReturnByReference(ctx, r.db, sqlc.FindReturnByReferenceParams{
		Reference: reference,
		EventID:   eventID,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to find return "+reference, err)
	}
	return true, nil
}

func (r *ReturnRepository) ListByOrders(ctx context.Context, orderIDs []uuid.UUID) ([]*order.Return, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	rows, err := r.queries.ListReturnsByOrders(ctx, r.db, orderIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list returns", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	items, err := r.queries.ListReturnLineItems(ctx, r.db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list return line items", err)
	}

	out := make([]*order.Return, 0, len(rows))
	for _, row := range rows {
		ret, err := converter.ReturnFromRows(row, items)
		if err != nil {
			return nil, err
		}
		out = append(out, ret)
	}
	return out, nil
}
