package shared

import (
	"github.com/google/uuid"
)

// WriteOutcome reports what a ledger write did. Replayed is set when the
// event had already been applied and nothing changed.
type WriteOutcome struct {
	EntityID uuid.UUID
	UserID   uuid.UUID
	Replayed bool
}
