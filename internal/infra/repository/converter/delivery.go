package converter

import (
	"nest/internal/domain/delivery"
	sqlc "nest/internal/infra/sqlc/generated"
	"nest/internal/pkg/errs"
	"nest/internal/pkg/pgconv"
)

func DeliveryFromRow(row sqlc.WebhookDeliveries) (*delivery.Delivery, error) {
	status, err := delivery.ParseStatus(row.Status)
	if err != nil {
		return nil, errs.Wrapf(err, "delivery %s status %q", row.ID, row.Status)
	}
	var eventID, reason string
	if p := pgconv.StringPtrFromPgtype(row.EventID); p != nil {
		eventID = *p
	}
	if p := pgconv.StringPtrFromPgtype(row.Reason); p != nil {
		reason = *p
	}
	return delivery.Reconstruct(delivery.ReconstructParams{
		ID:          row.ID,
		EventID:     eventID,
		EventType:   row.EventType,
		Status:      status,
		Payload:     row.Payload,
		Reason:      reason,
		Attempts:    int(row.Attempts),
		ReceivedAt:  pgconv.TimeFromPgtype(row.ReceivedAt),
		ProcessedAt: pgconv.TimePtrFromPgtype(row.ProcessedAt),
	}), nil
}
