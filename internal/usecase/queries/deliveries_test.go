//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"nest/internal/domain/delivery"
	"nest/internal/infra"
	"nest/internal/pkg/errs"
	"nest/internal/usecase/queries"
	queriesmock "nest/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func failedDeliveries(n int, newest time.Time) []*delivery.Delivery {
	out := make([]*delivery.Delivery, 0, n)
	for i := range n {
		out = append(out, delivery.Reconstruct(delivery.ReconstructParams{
			ID:         uuid.New(),
			EventID:    "evt",
			Status:     delivery.StatusFailed,
			ReceivedAt: newest.Add(-time.Duration(i) * time.Second),
		}))
	}
	return out
}

func TestDeliveryQueries_ListByStatus(t *testing.T) {
	ctx := context.Background()
	newest := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	t.Run("full page returns a cursor at the last row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockDeliveryReadStore(ctrl)
		rows := failedDeliveries(3, newest)
		store.EXPECT().ListByStatusFirstPage(gomock.Any(), delivery.StatusFailed, int32(3)).Return(rows, nil)

		got, next, err := queries.NewDeliveryQueries(store).ListByStatus(ctx, delivery.StatusFailed, nil, 2)

		require.NoError(t, err)
		assert.Len(t, got, 2)
		require.NotNil(t, next)
		at, id, err := queries.DecodeAfterCursor(next.After)
		require.NoError(t, err)
		assert.Equal(t, rows[1].ID(), id)
		assert.True(t, at.Equal(rows[1].ReceivedAt()))
	})

	t.Run("cursor continues with keyset", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockDeliveryReadStore(ctrl)
		after := uuid.New()
		cursor := &queries.Cursor{After: queries.EncodeAfterCursor(newest, after)}
		store.EXPECT().ListByStatusKeyset(gomock.Any(), delivery.StatusFailed, newest, after, int32(queries.DefaultListLimit+1)).
			Return(failedDeliveries(1, newest.Add(-time.Minute)), nil)

		got, next, err := queries.NewDeliveryQueries(store).ListByStatus(ctx, delivery.StatusFailed, cursor, 0)

		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Nil(t, next)
	})

	t.Run("garbage cursor is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockDeliveryReadStore(ctrl)

		_, _, err := queries.NewDeliveryQueries(store).ListByStatus(ctx, delivery.StatusFailed, &queries.Cursor{After: "%%%"}, 10)

		assert.True(t, errs.Is(err, queries.ErrInvalidCursor))
	})
}

func TestDeliveryQueries_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockDeliveryReadStore(ctrl)
	id := uuid.New()
	store.EXPECT().FindByID(gomock.Any(), id).Return(nil, infra.WrapRepoErr("failed to get delivery", pgx.ErrNoRows))

	_, err := queries.NewDeliveryQueries(store).Get(context.Background(), id)

	assert.ErrorIs(t, err, queries.ErrDeliveryNotFound)
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, 5, queries.ValidateLimit(5))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(10_000))
}
