package readstore

import (
	"context"
	"time"

	"nest/internal/domain/delivery"
	"nest/internal/infra"
	"nest/internal/infra/repository/converter"
	sqlc "nest/internal/infra/sqlc/generated"
	"nest/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type DeliveryReadQueries interface {
	GetDelivery(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.WebhookDeliveries, error)
	ListDeliveriesByStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.ListDeliveriesByStatusParams) ([]sqlc.WebhookDeliveries, error)
	ListDeliveriesByStatusAfter(ctx context.Context, db sqlc.DBTX, arg sqlc.ListDeliveriesByStatusAfterParams) ([]sqlc.WebhookDeliveries, error)
}

type DeliveryReadStore struct {
	queries DeliveryReadQueries
	db      sqlc.DBTX
}

func NewDeliveryReadStore(queries DeliveryReadQueries, db sqlc.DBTX) *DeliveryReadStore {
	return &DeliveryReadStore{
		queries: queries,
		db:      db,
	}
}

func (s *DeliveryReadStore) FindByID(ctx context.Context, id uuid.UUID) (*delivery.Delivery, error) {
	row, err := s.queries.GetDelivery(ctx, s.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get delivery", err)
	}
	return converter.DeliveryFromRow(row)
}

// ListByStatusFirstPage returns the newest deliveries with status.
func (s *DeliveryReadStore) ListByStatusFirstPage(ctx context.Context, status delivery.Status, limit int32) ([]*delivery.Delivery, error) {
	rows, err := s.queries.ListDeliveriesByStatus(ctx, s.db, sqlc.ListDeliveriesByStatusParams{
		Status: status.String(),
		Limit:  limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list deliveries", err)
	}
	return deliveriesFromRows(rows)
}

// ListByStatusKeyset continues a listing strictly after (receivedAt, id) in
// newest-first order.
func (s *DeliveryReadStore) ListByStatusKeyset(ctx context.Context, status delivery.Status, receivedAt time.Time, id uuid.UUID, limit int32) ([]*delivery.Delivery, error) {
	rows, err := s.queries.ListDeliveriesByStatusAfter(ctx, s.db, sqlc.ListDeliveriesByStatusAfterParams{
		Status:     status.String(),
		ReceivedAt: pgconv.TimeToPgtype(receivedAt),
		ID:         id,
		Limit:      limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list deliveries", err)
	}
	return deliveriesFromRows(rows)
}

func deliveriesFromRows(rows []sqlc.WebhookDeliveries) ([]*delivery.Delivery, error) {
	out := make([]*delivery.Delivery, 0, len(rows))
	for _, row := range rows {
		d, err := converter.DeliveryFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
