//go:build unit

package delivery_test

import (
	"testing"

	"nest/internal/domain/delivery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	st, err := delivery.ParseStatus("unrecognized")
	require.NoError(t, err)
	assert.Equal(t, delivery.StatusUnrecognized, st)

	_, err = delivery.ParseStatus("lost")
	assert.ErrorIs(t, err, delivery.ErrInvalidStatus)
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		status     delivery.Status
		done       bool
		replayable bool
	}{
		{delivery.StatusPending, false, false},
		{delivery.StatusProcessed, true, false},
		{delivery.StatusReplayed, true, false},
		{delivery.StatusUnrecognized, false, true},
		{delivery.StatusRejected, false, true},
		{delivery.StatusFailed, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.done, tt.status.Done())
			assert.Equal(t, tt.replayable, tt.status.Replayable())
		})
	}
}

func TestReconstructCopiesPayload(t *testing.T) {
	payload := []byte(`{"id":"evt-1"}`)
	d := delivery.Reconstruct(delivery.ReconstructParams{Payload: payload, Status: delivery.StatusPending})

	payload[0] = 'x'

	assert.Equal(t, `{"id":"evt-1"}`, string(d.Payload()))
}
