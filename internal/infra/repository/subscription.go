package repository

import (
	"context"

	"nest/internal/domain/subscription"
	"nest/internal/infra"
	"nest/internal/infra/repository/converter"
	sqlc "nest/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type SubscriptionQueries interface {
	UpsertSubscriptionState(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertSubscriptionStateParams) (int64, error)
	FindSubscriptionState(ctx context.Context, db sqlc.DBTX, arg sqlc.FindSubscriptionStateParams) (sqlc.SubscriptionStates, error)
	ListSubscriptionStatesByUser(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) ([]sqlc.SubscriptionStates, error)
}

type SubscriptionRepository struct {
	queries SubscriptionQueries
	db      sqlc.DBTX
}

func NewSubscriptionRepository(queries SubscriptionQueries, db sqlc.DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{
		queries: queries,
		db:      db,
	}
}

// Upsert writes s only when it supersedes the stored state. The comparison
// runs inside the statement, so applied is false for stale or replayed events
// even under concurrent writers.
func (r *SubscriptionRepository) Upsert(ctx context.Context, s *subscription.State) (applied bool, err error) {
	n, err := r.queries.UpsertSubscriptionState(ctx, r.db, converter.SubscriptionToUpsertParams(s))
	if err != nil {
		return false, infra.WrapRepoErr("failed to upsert subscription state", err)
	}
	return n > 0, nil
}

func (r *SubscriptionRepository) Find(ctx context.Context, userID uuid.UUID, family string) (*subscription.State, error) {
	row, err := r.queries.FindSubscriptionState(ctx, r.db, sqlc.FindSubscriptionStateParams{
		UserID: userID,
		Family: family,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find subscription state", err)
	}
	return converter.SubscriptionFromRow(row)
}

func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*subscription.State, error) {
	rows, err := r.queries.ListSubscriptionStatesByUser(ctx, r.db, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list subscription states", err)
	}
	out := make([]*subscription.State, 0, len(rows))
	for _, row := range rows {
		s, err := converter.SubscriptionFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
