package converter

import (
	"nest/internal/domain/subscription"
	sqlc "nest/internal/infra/sqlc/generated"
	"nest/internal/pkg/errs"
	"nest/internal/pkg/pgconv"
)

func SubscriptionToUpsertParams(s *subscription.State) sqlc.UpsertSubscriptionStateParams {
	return sqlc.UpsertSubscriptionStateParams{
		UserID:    s.UserID(),
		Family:    s.Family(),
		Active:    s.IsActive(),
		ChangedAt: pgconv.TimeToPgtype(s.ChangedAt()),
		EventID:   s.EventID(),
	}
}

func SubscriptionFromRow(row sqlc.SubscriptionStates) (*subscription.State, error) {
	s, err := subscription.NewState(row.UserID, row.Family, row.Active, pgconv.TimeFromPgtype(row.ChangedAt), row.EventID)
	if err != nil {
		return nil, errs.Wrapf(err, "subscription state %s/%s", row.UserID, row.Family)
	}
	return s, nil
}
