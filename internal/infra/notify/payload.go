package notify

import (
	"encoding/json"

	"nest/internal/pkg/errs"

	"github.com/google/uuid"
)

// EntityChange is the JSON body the store triggers publish on the
// entitlement and catalog channels.
type EntityChange struct {
	Table  string    `json:"table"`
	Op     string    `json:"op"`
	UserID uuid.UUID `json:"user_id"`
	ID     string    `json:"id"`
}

// ParseEntityChange decodes a trigger payload. A zero UserID means the change
// is not tied to one user.
func ParseEntityChange(payload string) (EntityChange, error) {
	var c EntityChange
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return EntityChange{}, errs.Wrap(err, "decode change notification")
	}
	if c.Table == "" {
		return EntityChange{}, errs.New("change notification without table")
	}
	return c, nil
}
