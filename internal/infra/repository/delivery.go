package repository

import (
	"context"
	"time"

	"nest/internal/domain/delivery"
	"nest/internal/infra"
	"nest/internal/infra/repository/converter"
	sqlc "nest/internal/infra/sqlc/generated"
	"nest/internal/pkg/errs"
	"nest/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type DeliveryQueries interface {
	RecordDelivery(ctx context.Context, db sqlc.DBTX, arg sqlc.RecordDeliveryParams) (sqlc.WebhookDeliveries, error)
	InsertAnonymousDelivery(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertAnonymousDeliveryParams) (sqlc.WebhookDeliveries, error)
	IncrementDeliveryAttempts(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int32, error)
	UpdateDeliveryStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateDeliveryStatusParams) (int64, error)
	ResetDeliveryForReplay(ctx context.Context, db sqlc.DBTX, arg sqlc.ResetDeliveryForReplayParams) (int64, error)
	GetDelivery(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.WebhookDeliveries, error)
}

type DeliveryRepository struct {
	queries DeliveryQueries
	db      sqlc.DBTX
}

func NewDeliveryRepository(queries DeliveryQueries, db sqlc.DBTX) *DeliveryRepository {
	return &DeliveryRepository{
		queries: queries,
		db:      db,
	}
}

// Record stores a received event, or returns the existing delivery when the
// provider redelivers the same event id.
func (r *DeliveryRepository) Record(ctx context.Context, eventID, eventType string, payload []byte) (*delivery.Delivery, error) {
	var (
		row sqlc.WebhookDeliveries
		err error
	)
	if eventID == "" {
		row, err = r.queries.InsertAnonymousDelivery(ctx, r.db, sqlc.InsertAnonymousDeliveryParams{
			Payload: payload,
			Reason:  pgconv.StringToPgtype("missing event id"),
		})
	} else {
		row, err = r.queries.RecordDelivery(ctx, r.db, sqlc.RecordDeliveryParams{
			EventID:   pgconv.StringToPgtype(eventID),
			EventType: eventType,
			Payload:   payload,
		})
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to record delivery", err)
	}
	return converter.DeliveryFromRow(row)
}

func (r *DeliveryRepository) IncrementAttempts(ctx context.Context, id uuid.UUID) (int, error) {
	n, err := r.queries.IncrementDeliveryAttempts(ctx, r.db, id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to increment delivery attempts", err)
	}
	return int(n), nil
}

// UpdateStatus sets processed_at for statuses that end processing. A
// processed or replayed delivery is never overwritten; the write then fails
// with delivery.ErrSettled.
func (r *DeliveryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status delivery.Status, reason string, at time.Time) error {
	processedAt := pgtype.Timestamptz{}
	if status != delivery.StatusPending {
		processedAt = pgconv.TimeToPgtype(at)
	}
	n, err := r.queries.UpdateDeliveryStatus(ctx, r.db, sqlc.UpdateDeliveryStatusParams{
		ID:          id,
		Status:      status.String(),
		Reason:      pgconv.StringOrNullToPgtype(reason),
		ProcessedAt: processedAt,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update delivery status", err)
	}
	if n == 1 {
		return nil
	}
	current, err := r.queries.GetDelivery(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("delivery not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to read delivery", err)
	}
	return errs.Wrapf(delivery.ErrSettled, "delivery %s is %s", id, current.Status)
}

// ResetForReplay returns a finished-but-unsuccessful delivery to pending with
// a fresh attempt budget. It reports false when the delivery is not replayable.
func (r *DeliveryRepository) ResetForReplay(ctx context.Context, id uuid.UUID, reason string) (bool, error) {
	n, err := r.queries.ResetDeliveryForReplay(ctx, r.db, sqlc.ResetDeliveryForReplayParams{
		ID:     id,
		Reason: pgconv.StringOrNullToPgtype(reason),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to reset delivery", err)
	}
	return n == 1, nil
}

func (r *DeliveryRepository) Get(ctx context.Context, id uuid.UUID) (*delivery.Delivery, error) {
	row, err := r.queries.GetDelivery(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get delivery", err)
	}
	return converter.DeliveryFromRow(row)
}
