//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"nest/internal/domain/delivery"
	"nest/internal/domain/event"
	"nest/internal/domain/order"
	"nest/internal/pkg/clock"
	"nest/internal/pkg/config"
	"nest/internal/pkg/errs"
	"nest/internal/usecase/commands"
	"nest/internal/usecase/shared"
	commandsmock "nest/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type ingestFixture struct {
	*txMocks
	classifier *commandsmock.MockEventClassifier
	ledger     *commandsmock.MockLedgerCommands
	locks      *commandsmock.MockLockFactory
	webhook    config.WebhookConfig
	worker     config.WorkerConfig
}

func newIngestFixture(t *testing.T) *ingestFixture {
	ctrl := gomock.NewController(t)
	cfg := config.NewTestConfig()
	return &ingestFixture{
		txMocks:    newTxMocks(ctrl),
		classifier: commandsmock.NewMockEventClassifier(ctrl),
		ledger:     commandsmock.NewMockLedgerCommands(ctrl),
		locks:      commandsmock.NewMockLockFactory(ctrl),
		webhook:    cfg.Webhook,
		worker:     cfg.Worker,
	}
}

func (f *ingestFixture) useCase() commands.IngestCommands {
	return commands.NewIngestUseCase(f.uow, f.classifier, f.ledger, f.locks,
		clock.NewMockClock(fixedNow), f.webhook, f.worker, discardLogger())
}

// runLocked makes WithLock run the critical section and return its error.
func (f *ingestFixture) runLocked(key string) {
	f.locks.EXPECT().WithLock(gomock.Any(), key, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func pendingDelivery(payload string, attempts int) *delivery.Delivery {
	return delivery.Reconstruct(delivery.ReconstructParams{
		ID:         uuid.New(),
		EventID:    "evt-1",
		EventType:  string(event.KindOrderCreated),
		Status:     delivery.StatusPending,
		Payload:    []byte(payload),
		Attempts:   attempts,
		ReceivedAt: fixedNow,
	})
}

func TestIngest_Accept(t *testing.T) {
	ctx := context.Background()
	raw := json.RawMessage(`{"id":"evt-1","type":"order.completed","data":{}}`)

	cases := []struct {
		name        string
		eventID     string
		status      delivery.Status
		wantEnqueue bool
	}{
		{name: "new delivery is queued", eventID: "evt-1", status: delivery.StatusPending, wantEnqueue: true},
		{name: "redelivered unrecognized event is queued again", eventID: "evt-1", status: delivery.StatusUnrecognized, wantEnqueue: true},
		{name: "already processed event is acknowledged only", eventID: "evt-1", status: delivery.StatusProcessed, wantEnqueue: false},
		{name: "rejected event waits for an operator", eventID: "evt-1", status: delivery.StatusRejected, wantEnqueue: false},
		{name: "anonymous payload is stored only", eventID: "", status: delivery.StatusUnrecognized, wantEnqueue: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newIngestFixture(t)
			stored := delivery.Reconstruct(delivery.ReconstructParams{
				ID:      uuid.New(),
				EventID: tc.eventID,
				Status:  tc.status,
				Payload: raw,
			})
			f.deliveries.EXPECT().Record(gomock.Any(), "evt-1", "order.completed", []byte(raw)).Return(stored, nil)

			res, err := f.useCase().Accept(ctx, raw)

			require.NoError(t, err)
			assert.Equal(t, stored.ID(), res.DeliveryID)
			assert.Equal(t, tc.status, res.Status)
			assert.Equal(t, tc.wantEnqueue, res.Enqueue)
		})
	}

	t.Run("malformed body is still recorded", func(t *testing.T) {
		f := newIngestFixture(t)
		body := json.RawMessage(`not json`)
		stored := delivery.Reconstruct(delivery.ReconstructParams{ID: uuid.New(), Status: delivery.StatusUnrecognized, Payload: body})
		f.deliveries.EXPECT().Record(gomock.Any(), "", "", []byte(body)).Return(stored, nil)

		res, err := f.useCase().Accept(ctx, body)

		require.NoError(t, err)
		assert.False(t, res.Enqueue)
	})
}

func TestIngest_Process(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	expectStatus := func(f *ingestFixture, d *delivery.Delivery, status delivery.Status) {
		f.deliveries.EXPECT().UpdateStatus(gomock.Any(), d.ID(), status, gomock.Any(), fixedNow).Return(nil)
	}
	begin := func(f *ingestFixture, d *delivery.Delivery) {
		f.deliveries.EXPECT().Get(gomock.Any(), d.ID()).Return(d, nil)
		f.deliveries.EXPECT().IncrementAttempts(gomock.Any(), d.ID()).Return(d.Attempts()+1, nil)
	}

	t.Run("finished delivery is left alone", func(t *testing.T) {
		f := newIngestFixture(t)
		d := delivery.Reconstruct(delivery.ReconstructParams{ID: uuid.New(), EventID: "evt-1", Status: delivery.StatusProcessed, Attempts: 1})
		f.deliveries.EXPECT().Get(gomock.Any(), d.ID()).Return(d, nil)

		res, err := f.useCase().Process(ctx, d.ID())

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusProcessed, res.Status)
		assert.False(t, res.Requeue)
	})

	t.Run("order is applied under its subject lock", func(t *testing.T) {
		f := newIngestFixture(t)
		d := pendingDelivery(`{"id":"evt-1"}`, 0)
		ev := orderEvent(t, "NEST-1", productID)
		begin(f, d)
		f.classifier.EXPECT().Classify(gomock.Any(), json.RawMessage(d.Payload())).Return(ev, nil)
		f.runLocked("order:NEST-1")
		f.ledger.EXPECT().UpsertOrder(gomock.Any(), ev).Return(&shared.WriteOutcome{EntityID: uuid.New()}, nil)
		expectStatus(f, d, delivery.StatusProcessed)

		res, err := f.useCase().Process(ctx, d.ID())

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusProcessed, res.Status)
		assert.Equal(t, event.KindOrderCreated, res.Kind)
		assert.Equal(t, 1, res.Attempts)
		assert.Empty(t, res.Reason)
	})

	t.Run("already applied event is marked replayed", func(t *testing.T) {
		f := newIngestFixture(t)
		d := pendingDelivery(`{}`, 0)
		change := event.SubscriptionChange{Contact: contact(t, "buyer@example.com"), Family: "cloud"}
		ev := event.SubscriptionDeactivated{SubscriptionChange: change}
		begin(f, d)
		f.classifier.EXPECT().Classify(gomock.Any(), gomock.Any()).Return(ev, nil)
		f.runLocked("subscription:buyer@example.com:cloud")
		f.ledger.EXPECT().SetSubscriptionState(gomock.Any(), change, false).Return(&shared.WriteOutcome{Replayed: true}, nil)
		expectStatus(f, d, delivery.StatusReplayed)

		res, err := f.useCase().Process(ctx, d.ID())

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusReplayed, res.Status)
	})

	t.Run("unrecognized payload is acknowledged under the ack policy", func(t *testing.T) {
		f := newIngestFixture(t)
		d := pendingDelivery(`{"id":"evt-1","type":"mystery"}`, 0)
		begin(f, d)
		f.classifier.EXPECT().Classify(gomock.Any(), gomock.Any()).
			Return(event.Unrecognized{}, errs.Classification("unknown event type %q", "mystery"))
		expectStatus(f, d, delivery.StatusUnrecognized)

		res, err := f.useCase().Process(ctx, d.ID())

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusUnrecognized, res.Status)
		assert.False(t, res.Requeue)
		assert.Contains(t, res.Reason, "mystery")
	})

	t.Run("unrecognized payload is retried under the requeue policy", func(t *testing.T) {
		f := newIngestFixture(t)
		f.webhook.UnrecognizedPolicy = config.UnrecognizedPolicyRequeue
		d := pendingDelivery(`{}`, 0)
		begin(f, d)
		f.classifier.EXPECT().Classify(gomock.Any(), gomock.Any()).
			Return(event.Unrecognized{}, errs.Classification("unknown product %q", "np9"))
		expectStatus(f, d, delivery.StatusUnrecognized)

		res, err := f.useCase().Process(ctx, d.ID())

		require.NoError(t, err)
		assert.True(t, res.Requeue)
	})

	t.Run("inconsistent payload is rejected without retry", func(t *testing.T) {
		f := newIngestFixture(t)
		d := pendingDelivery(`{}`, 0)
		begin(f, d)
		f.classifier.EXPECT().Classify(gomock.Any(), gomock.Any()).Return(nil, errs.Validation("item subtotal mismatch"))
		expectStatus(f, d, delivery.StatusRejected)

		res, err := f.useCase().Process(ctx, d.ID())

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusRejected, res.Status)
		assert.False(t, res.Requeue)
	})

	t.Run("busy lock is retried later", func(t *testing.T) {
		f := newIngestFixture(t)
		d := pendingDelivery(`{}`, 0)
		begin(f, d)
		f.classifier.EXPECT().Classify(gomock.Any(), gomock.Any()).Return(orderEvent(t, "NEST-1", productID), nil)
		f.locks.EXPECT().WithLock(gomock.Any(), "order:NEST-1", gomock.Any()).
			Return(errs.Mark(errs.New("acquire order:NEST-1"), errs.ErrLockBusy))
		expectStatus(f, d, delivery.StatusPending)

		res, err := f.useCase().Process(ctx, d.ID())

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusPending, res.Status)
		assert.True(t, res.Requeue)
	})

	t.Run("busy lock on the last attempt fails the delivery", func(t *testing.T) {
		f := newIngestFixture(t)
		d := pendingDelivery(`{}`, f.worker.MaxAttempts-1)
		begin(f, d)
		f.classifier.EXPECT().Classify(gomock.Any(), gomock.Any()).Return(orderEvent(t, "NEST-1", productID), nil)
		f.locks.EXPECT().WithLock(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errs.Mark(errs.New("acquire"), errs.ErrLockBusy))
		expectStatus(f, d, delivery.StatusFailed)

		res, err := f.useCase().Process(ctx, d.ID())

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusFailed, res.Status)
		assert.False(t, res.Requeue)
	})

	t.Run("late failure leaves a delivery processed elsewhere untouched", func(t *testing.T) {
		f := newIngestFixture(t)
		d := pendingDelivery(`{}`, f.worker.MaxAttempts-1)
		settled := delivery.Reconstruct(delivery.ReconstructParams{
			ID: d.ID(), EventID: d.EventID(), Status: delivery.StatusProcessed, Attempts: f.worker.MaxAttempts,
		})
		begin(f, d)
		f.classifier.EXPECT().Classify(gomock.Any(), gomock.Any()).Return(orderEvent(t, "NEST-1", productID), nil)
		f.locks.EXPECT().WithLock(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errs.Mark(errs.New("acquire"), errs.ErrLockBusy))
		f.deliveries.EXPECT().UpdateStatus(gomock.Any(), d.ID(), delivery.StatusFailed, gomock.Any(), fixedNow).
			Return(errs.Wrapf(delivery.ErrSettled, "delivery %s is processed", d.ID()))
		f.deliveries.EXPECT().Get(gomock.Any(), d.ID()).Return(settled, nil)

		res, err := f.useCase().Process(ctx, d.ID())

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusProcessed, res.Status)
		assert.False(t, res.Requeue)
	})

	t.Run("return before its order is retried", func(t *testing.T) {
		f := newIngestFixture(t)
		d := pendingDelivery(`{}`, 0)
		ev := event.ReturnIssued{Reference: "RET-1", OrderReference: "NEST-9"}
		begin(f, d)
		f.classifier.EXPECT().Classify(gomock.Any(), gomock.Any()).Return(ev, nil)
		f.runLocked("order:NEST-9")
		f.ledger.EXPECT().UpsertReturn(gomock.Any(), ev).
			Return(nil, errs.Wrapf(order.ErrOrderMissing, "return RET-1"))
		expectStatus(f, d, delivery.StatusPending)

		res, err := f.useCase().Process(ctx, d.ID())

		require.NoError(t, err)
		assert.True(t, res.Requeue)
		assert.Equal(t, event.KindReturnIssued, res.Kind)
	})

	t.Run("validation failure while applying is rejected", func(t *testing.T) {
		f := newIngestFixture(t)
		d := pendingDelivery(`{}`, 0)
		ev := event.ReturnIssued{Reference: "RET-2", OrderReference: "NEST-9"}
		begin(f, d)
		f.classifier.EXPECT().Classify(gomock.Any(), gomock.Any()).Return(ev, nil)
		f.runLocked("order:NEST-9")
		f.ledger.EXPECT().UpsertReturn(gomock.Any(), ev).
			Return(nil, errs.Wrapf(order.ErrReturnExceedsOrder, "return RET-2"))
		expectStatus(f, d, delivery.StatusRejected)

		res, err := f.useCase().Process(ctx, d.ID())

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusRejected, res.Status)
		assert.False(t, res.Requeue)
	})

	t.Run("outcome is recorded after cancellation", func(t *testing.T) {
		f := newIngestFixture(t)
		cctx, cancel := context.WithCancel(ctx)
		d := pendingDelivery(`{}`, 0)
		begin(f, d)
		f.classifier.EXPECT().Classify(gomock.Any(), gomock.Any()).Return(orderEvent(t, "NEST-1", productID), nil)
		f.locks.EXPECT().WithLock(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string, func(context.Context) error) error {
				cancel()
				return context.Canceled
			})
		f.deliveries.EXPECT().UpdateStatus(gomock.Any(), d.ID(), delivery.StatusPending, gomock.Any(), fixedNow).
			DoAndReturn(func(ctx context.Context, _ uuid.UUID, _ delivery.Status, _ string, _ time.Time) error {
				assert.NoError(t, ctx.Err())
				return nil
			})

		res, err := f.useCase().Process(cctx, d.ID())

		require.NoError(t, err)
		assert.True(t, res.Requeue)
	})
}

func TestIngest_Replay(t *testing.T) {
	ctx := context.Background()

	t.Run("failed delivery returns to pending", func(t *testing.T) {
		f := newIngestFixture(t)
		id := uuid.New()
		reset := delivery.Reconstruct(delivery.ReconstructParams{ID: id, EventID: "evt-1", Status: delivery.StatusPending})
		f.deliveries.EXPECT().ResetForReplay(gomock.Any(), id, gomock.Any()).Return(true, nil)
		f.deliveries.EXPECT().Get(gomock.Any(), id).Return(reset, nil)

		d, err := f.useCase().Replay(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusPending, d.Status())
	})

	t.Run("processed delivery cannot be replayed", func(t *testing.T) {
		f := newIngestFixture(t)
		id := uuid.New()
		done := delivery.Reconstruct(delivery.ReconstructParams{ID: id, EventID: "evt-1", Status: delivery.StatusProcessed})
		f.deliveries.EXPECT().ResetForReplay(gomock.Any(), id, gomock.Any()).Return(false, nil)
		f.deliveries.EXPECT().Get(gomock.Any(), id).Return(done, nil)

		_, err := f.useCase().Replay(ctx, id)

		require.Error(t, err)
		assert.True(t, errs.Is(err, delivery.ErrNotReplayable))
	})
}
