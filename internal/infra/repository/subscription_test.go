//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"nest/internal/domain/subscription"
	"nest/internal/infra"
	sqlc "nest/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionRepository_Upsert(t *testing.T) {
	state, err := subscription.NewState(uuid.New(), "nest", false, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), "evt-2")
	require.NoError(t, err)

	tests := []struct {
		name        string
		rows        int64
		mockErr     error
		wantApplied bool
		wantErr     bool
	}{
		{name: "newer state applied", rows: 1, wantApplied: true},
		{name: "stale state ignored", rows: 0, wantApplied: false},
		{name: "database error", mockErr: assert.AnError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockQueries)
			mockQueries.On("UpsertSubscriptionState", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.UpsertSubscriptionStateParams) bool {
				return p.Family == "nest" && !p.Active && p.EventID == "evt-2" && p.ChangedAt.Time.Equal(state.ChangedAt())
			})).Return(tt.rows, tt.mockErr)

			repo := NewSubscriptionRepository(mockQueries, mockQueries)
			applied, err := repo.Upsert(context.Background(), state)

			if tt.wantErr {
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantApplied, applied)
			mockQueries.AssertExpectations(t)
		})
	}
}
