package commands

import (
	"context"
	"log/slog"

	"nest/internal/domain/event"
	"nest/internal/domain/order"
	"nest/internal/domain/subscription"
	"nest/internal/infra"
	"nest/internal/pkg/clock"
	"nest/internal/pkg/errs"
	"nest/internal/usecase/shared"

	"github.com/google/uuid"
)

// LedgerCommands apply classified events to the entity store. Every method
// runs in one transaction and is idempotent on the event id: a replay
// returns Replayed=true and changes nothing.
type LedgerCommands interface {
	UpsertOrder(ctx context.Context, ev event.OrderCreated) (*shared.WriteOutcome, error)
	UpsertReturn(ctx context.Context, ev event.ReturnIssued) (*shared.WriteOutcome, error)
	SetSubscriptionState(ctx context.Context, ev event.SubscriptionChange, active bool) (*shared.WriteOutcome, error)
}

type ledgerUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewLedgerUseCase(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) LedgerCommands {
	return &ledgerUseCaseImpl{uow: uow, clock: clk, logger: logger}
}

func (uc *ledgerUseCaseImpl) UpsertOrder(ctx context.Context, ev event.OrderCreated) (*shared.WriteOutcome, error) {
	var out shared.WriteOutcome
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		out = shared.WriteOutcome{}
		now := uc.clock.Now()

		if ev.Gift {
			if _, err := tx.Users().UpsertByEmail(ctx, ev.Customer.Email, ev.Customer.Profile, now); err != nil {
				return err
			}
		}
		owner, err := tx.Users().UpsertByEmail(ctx, ev.Owner.Email, ev.Owner.Profile, now)
		if err != nil {
			return err
		}
		out.UserID = owner.ID()

		o, err := order.NewOrder(order.NewOrderParams{
			Reference: ev.Reference,
			EventID:   ev.ID,
			UserID:    owner.ID(),
			Items:     ev.Items,
			Discount:  ev.Discount,
			Total:     ev.Total,
			Gift:      ev.Gift,
			Live:      ev.Live,
			Coupons:   ev.Coupons,
			OrderedAt: ev.Created,
		})
		if err != nil {
			return err
		}

		inserted, err := tx.Orders().Insert(ctx, o)
		if err != nil {
			return err
		}
		if inserted {
			out.EntityID = o.ID()
			return nil
		}

		existing, err := uc.existingOrder(ctx, tx, ev)
		if err != nil {
			return err
		}
		out.EntityID = existing.ID()
		out.UserID = existing.UserID()
		out.Replayed = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out.Replayed {
		uc.logger.Info("order already stored", "reference", ev.Reference, "event_id", ev.ID)
	}
	return &out, nil
}

// existingOrder finds the row that made the insert a no-op, by event id
// first and then by reference.
func (uc *ledgerUseCaseImpl) existingOrder(ctx context.Context, tx shared.Tx, ev event.OrderCreated) (*order.Order, error) {
	o, err := tx.Orders().FindByEventID(ctx, ev.ID)
	if err == nil {
		return o, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}
	o, err = tx.Orders().FindByReference(ctx, ev.Reference, false)
	if err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "order %s conflicted but was not found", ev.Reference), errs.ErrStoreConflict)
	}
	return o, nil
}

func (uc *ledgerUseCaseImpl) UpsertReturn(ctx context.Context, ev event.ReturnIssued) (*shared.WriteOutcome, error) {
	var out shared.WriteOutcome
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		out = shared.WriteOutcome{}

		o, err := tx.Orders().FindByReference(ctx, ev.OrderReference, true)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Wrapf(order.ErrOrderMissing, "return %s: order %s", ev.Reference, ev.OrderReference)
			}
			return err
		}
		out.UserID = o.UserID()

		exists, err := tx.Returns().Exists(ctx, ev.Reference, ev.ID)
		if err != nil {
			return err
		}
		if exists {
			out.Replayed = true
			return nil
		}

		prior, err := tx.Returns().ListByOrders(ctx, []uuid.UUID{o.ID()})
		if err != nil {
			return err
		}
		ret, err := order.NewReturn(order.NewReturnParams{
			Reference:  ev.Reference,
			EventID:    ev.ID,
			Order:      o,
			Prior:      prior,
			Items:      ev.Items,
			Amount:     ev.Amount,
			ReturnedAt: ev.Created,
		})
		if err != nil {
			return err
		}

		inserted, err := tx.Returns().Insert(ctx, ret)
		if err != nil {
			return err
		}
		out.EntityID = ret.ID()
		out.Replayed = !inserted
		if inserted && ev.PartialKnown && ev.Partial != ret.IsPartial() {
			uc.logger.Info("return partial flag changed since classification",
				"reference", ev.Reference, "classified", ev.Partial, "applied", ret.IsPartial())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *ledgerUseCaseImpl) SetSubscriptionState(ctx context.Context, ev event.SubscriptionChange, active bool) (*shared.WriteOutcome, error) {
	var out shared.WriteOutcome
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		out = shared.WriteOutcome{}

		u, err := tx.Users().UpsertByEmail(ctx, ev.Contact.Email, ev.Contact.Profile, uc.clock.Now())
		if err != nil {
			return err
		}
		out.UserID = u.ID()

		state, err := subscription.NewState(u.ID(), ev.Family, active, ev.Created, ev.ID)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		applied, err := tx.Subscriptions().Upsert(ctx, state)
		if err != nil {
			return err
		}
		out.Replayed = !applied
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out.Replayed {
		uc.logger.Debug("subscription change superseded", "family", ev.Family, "event_id", ev.ID)
	}
	return &out, nil
}
