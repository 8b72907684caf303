//go:build unit || e2e

package builder

import (
	"time"

	"nest/internal/domain/delivery"
	sqlc "nest/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type DeliveryBuilder struct {
	ID          uuid.UUID
	EventID     string
	EventType   string
	Status      delivery.Status
	Payload     []byte
	Reason      string
	Attempts    int
	ReceivedAt  time.Time
	ProcessedAt *time.Time
}

func NewDeliveryBuilder() *DeliveryBuilder {
	return &DeliveryBuilder{
		ID:         uuid.New(),
		EventID:    "evt-" + uuid.NewString()[:8],
		EventType:  "order.completed",
		Status:     delivery.StatusPending,
		Payload:    []byte(`{"id":"evt","type":"order.completed"}`),
		ReceivedAt: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *DeliveryBuilder) With(mutate func(*DeliveryBuilder)) *DeliveryBuilder {
	mutate(b)
	return b
}

func (b *DeliveryBuilder) WithStatus(s delivery.Status, reason string) *DeliveryBuilder {
	b.Status = s
	b.Reason = reason
	return b
}

func (b *DeliveryBuilder) BuildDomain() *delivery.Delivery {
	return delivery.Reconstruct(delivery.ReconstructParams{
		ID:          b.ID,
		EventID:     b.EventID,
		EventType:   b.EventType,
		Status:      b.Status,
		Payload:     b.Payload,
		Reason:      b.Reason,
		Attempts:    b.Attempts,
		ReceivedAt:  b.ReceivedAt,
		ProcessedAt: b.ProcessedAt,
	})
}

func (b *DeliveryBuilder) BuildInfra() sqlc.WebhookDeliveries {
	row := sqlc.WebhookDeliveries{
		ID:         b.ID,
		EventID:    pgtype.Text{String: b.EventID, Valid: b.EventID != ""},
		EventType:  b.EventType,
		Status:     b.Status.String(),
		Payload:    b.Payload,
		Reason:     pgtype.Text{String: b.Reason, Valid: b.Reason != ""},
		Attempts:   int32(b.Attempts),
		ReceivedAt: pgtype.Timestamptz{Time: b.ReceivedAt, Valid: true},
		UpdatedAt:  pgtype.Timestamptz{Time: b.ReceivedAt, Valid: true},
	}
	if b.ProcessedAt != nil {
		row.ProcessedAt = pgtype.Timestamptz{Time: *b.ProcessedAt, Valid: true}
	}
	return row
}
