package queries

import (
	"context"
	"time"

	"nest/internal/domain/delivery"
	"nest/internal/infra"
	"nest/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrDeliveryNotFound = errs.New("delivery not found")

type DeliveryReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*delivery.Delivery, error)
	ListByStatusFirstPage(ctx context.Context, status delivery.Status, limit int32) ([]*delivery.Delivery, error)
	ListByStatusKeyset(ctx context.Context, status delivery.Status, receivedAt time.Time, id uuid.UUID, limit int32) ([]*delivery.Delivery, error)
}

// DeliveryQueries back the operator triage endpoints and startup recovery.
type DeliveryQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*delivery.Delivery, error)
	ListByStatus(ctx context.Context, status delivery.Status, cursor *Cursor, limit int) ([]*delivery.Delivery, *Cursor, error)
}

type deliveryQueriesImpl struct {
	store DeliveryReadStore
}

func NewDeliveryQueries(store DeliveryReadStore) DeliveryQueries {
	return &deliveryQueriesImpl{store: store}
}

func (q *deliveryQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*delivery.Delivery, error) {
	d, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrDeliveryNotFound
		}
		return nil, err
	}
	return d, nil
}

func (q *deliveryQueriesImpl) ListByStatus(ctx context.Context, status delivery.Status, cursor *Cursor, limit int) ([]*delivery.Delivery, *Cursor, error) {
	limit = ValidateLimit(limit)
	var (
		rows []*delivery.Delivery
		err  error
	)
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.ListByStatusFirstPage(ctx, status, int32(limit+1))
	} else {
		receivedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, derr
		}
		rows, err = q.store.ListByStatusKeyset(ctx, status, receivedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.ReceivedAt(), last.ID())}
		rows = rows[:limit]
	}
	return rows, next, nil
}
