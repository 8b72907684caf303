package commands

import (
	"context"
	"encoding/json"
	"log/slog"

	"nest/internal/domain/delivery"
	"nest/internal/domain/event"
	"nest/internal/domain/order"
	"nest/internal/pkg/clock"
	"nest/internal/pkg/config"
	"nest/internal/pkg/errs"
	"nest/internal/usecase/shared"

	"github.com/google/uuid"
)

const replayReason = "replay requested"

// AcceptResult describes a stored delivery. Enqueue is false when the
// delivery needs no processing: it already finished or has no event id.
type AcceptResult struct {
	DeliveryID uuid.UUID
	EventID    string
	Status     delivery.Status
	Enqueue    bool
}

// ProcessResult is the disposition of one processing attempt.
type ProcessResult struct {
	DeliveryID uuid.UUID
	Kind       event.Kind
	Status     delivery.Status
	Reason     string
	Attempts   int
	// Requeue asks the caller to process the delivery again later.
	Requeue bool
}

type IngestCommands interface {
	// Accept stores a raw event before anything else looks at it.
	Accept(ctx context.Context, raw json.RawMessage) (*AcceptResult, error)
	// Process classifies and applies a stored delivery.
	Process(ctx context.Context, deliveryID uuid.UUID) (*ProcessResult, error)
	// Replay returns an unrecognized, rejected or failed delivery to pending.
	Replay(ctx context.Context, deliveryID uuid.UUID) (*delivery.Delivery, error)
}

type ingestUseCaseImpl struct {
	uow         shared.UnitOfWork
	classifier  EventClassifier
	ledger      LedgerCommands
	locks       LockFactory
	clock       clock.Clock
	webhook     config.WebhookConfig
	maxAttempts int
	logger      *slog.Logger
}

func NewIngestUseCase(
	uow shared.UnitOfWork,
	classifier EventClassifier,
	ledger LedgerCommands,
	locks LockFactory,
	clk clock.Clock,
	webhook config.WebhookConfig,
	worker config.WorkerConfig,
	logger *slog.Logger,
) IngestCommands {
	return &ingestUseCaseImpl{
		uow:         uow,
		classifier:  classifier,
		ledger:      ledger,
		locks:       locks,
		clock:       clk,
		webhook:     webhook,
		maxAttempts: max(worker.MaxAttempts, 1),
		logger:      logger,
	}
}

type envelopeHeader struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

func (uc *ingestUseCaseImpl) Accept(ctx context.Context, raw json.RawMessage) (*AcceptResult, error) {
	// A malformed body is still stored; the classifier reports why later.
	var hdr envelopeHeader
	_ = json.Unmarshal(raw, &hdr)

	var d *delivery.Delivery
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		d, err = tx.Deliveries().Record(ctx, hdr.ID, hdr.Type, raw)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &AcceptResult{
		DeliveryID: d.ID(),
		EventID:    d.EventID(),
		Status:     d.Status(),
		Enqueue:    d.EventID() != "" && (d.Status() == delivery.StatusPending || d.Status() == delivery.StatusUnrecognized),
	}, nil
}

func (uc *ingestUseCaseImpl) Process(ctx context.Context, deliveryID uuid.UUID) (*ProcessResult, error) {
	var (
		d        *delivery.Delivery
		attempts int
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		d, err = tx.Deliveries().Get(ctx, deliveryID)
		if err != nil {
			return err
		}
		if d.Status().Done() {
			return nil
		}
		attempts, err = tx.Deliveries().IncrementAttempts(ctx, deliveryID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if d.Status().Done() {
		return &ProcessResult{DeliveryID: deliveryID, Status: d.Status(), Attempts: d.Attempts()}, nil
	}

	res := &ProcessResult{DeliveryID: deliveryID, Attempts: attempts, Kind: event.KindUnrecognized}

	ev, err := uc.classifier.Classify(ctx, d.Payload())
	switch {
	case err == nil:
		res.Kind = ev.Kind()
	case errs.Is(err, errs.ErrClassification):
		requeue := uc.webhook.RequeueUnrecognized() && attempts < uc.maxAttempts
		return uc.finish(ctx, res, delivery.StatusUnrecognized, err, requeue)
	case errs.Is(err, errs.ErrValidation):
		return uc.finish(ctx, res, delivery.StatusRejected, err, false)
	default:
		return uc.retryOrFail(ctx, res, err)
	}

	var outcome *shared.WriteOutcome
	err = uc.locks.WithLock(ctx, ev.SubjectKey(), func(ctx context.Context) error {
		var aerr error
		outcome, aerr = uc.apply(ctx, ev)
		return aerr
	})
	switch {
	case err == nil:
		status := delivery.StatusProcessed
		if outcome.Replayed {
			status = delivery.StatusReplayed
		}
		return uc.finish(ctx, res, status, nil, false)
	case errs.Is(err, order.ErrOrderMissing):
		// The order may simply not have arrived yet.
		return uc.retryOrFail(ctx, res, err)
	case errs.Is(err, errs.ErrValidation):
		return uc.finish(ctx, res, delivery.StatusRejected, err, false)
	default:
		return uc.retryOrFail(ctx, res, err)
	}
}

func (uc *ingestUseCaseImpl) apply(ctx context.Context, ev event.Event) (*shared.WriteOutcome, error) {
	switch e := ev.(type) {
	case event.OrderCreated:
		return uc.ledger.UpsertOrder(ctx, e)
	case event.ReturnIssued:
		return uc.ledger.UpsertReturn(ctx, e)
	case event.SubscriptionActivated:
		return uc.ledger.SetSubscriptionState(ctx, e.SubscriptionChange, true)
	case event.SubscriptionDeactivated:
		return uc.ledger.SetSubscriptionState(ctx, e.SubscriptionChange, false)
	default:
		return nil, errs.Newf("no handler for event kind %s", ev.Kind())
	}
}

func (uc *ingestUseCaseImpl) retryOrFail(ctx context.Context, res *ProcessResult, cause error) (*ProcessResult, error) {
	if res.Attempts >= uc.maxAttempts {
		uc.logger.Error("delivery failed after max attempts",
			"delivery_id", res.DeliveryID,
			"attempts", res.Attempts,
			"error", cause.Error())
		return uc.finish(ctx, res, delivery.StatusFailed, cause, false)
	}
	uc.logger.Warn("delivery will be retried",
		"delivery_id", res.DeliveryID,
		"attempt", res.Attempts,
		"error", cause.Error())
	return uc.finish(ctx, res, delivery.StatusPending, cause, true)
}

func (uc *ingestUseCaseImpl) finish(ctx context.Context, res *ProcessResult, status delivery.Status, cause error, requeue bool) (*ProcessResult, error) {
	res.Status = status
	res.Requeue = requeue
	if cause != nil {
		res.Reason = cause.Error()
	}

	// The outcome must be recorded even when the worker is shutting down.
	ctx = context.WithoutCancel(ctx)
	var settled *delivery.Delivery
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Deliveries().UpdateStatus(ctx, res.DeliveryID, status, res.Reason, uc.clock.Now())
		if !errs.Is(err, delivery.ErrSettled) {
			return err
		}
		settled, err = tx.Deliveries().Get(ctx, res.DeliveryID)
		return err
	})
	if err != nil {
		return nil, errs.Wrapf(err, "record %s for delivery %s", status, res.DeliveryID)
	}
	if settled != nil {
		uc.logger.Info("delivery settled by another worker",
			"delivery_id", res.DeliveryID,
			"status", settled.Status(),
			"discarded", status)
		res.Status = settled.Status()
		res.Requeue = false
		res.Reason = settled.Reason()
	}
	return res, nil
}

func (uc *ingestUseCaseImpl) Replay(ctx context.Context, deliveryID uuid.UUID) (*delivery.Delivery, error) {
	var d *delivery.Delivery
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := tx.Deliveries().ResetForReplay(ctx, deliveryID, replayReason)
		if err != nil {
			return err
		}
		if !ok {
			current, err := tx.Deliveries().Get(ctx, deliveryID)
			if err != nil {
				return err
			}
			return errs.Wrapf(delivery.ErrNotReplayable, "delivery %s is %s", deliveryID, current.Status())
		}
		d, err = tx.Deliveries().Get(ctx, deliveryID)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("delivery reset for replay", "delivery_id", deliveryID, "event_id", d.EventID())
	return d, nil
}
