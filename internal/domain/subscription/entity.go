package subscription

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingFamily  = errors.New("subscription family is required")
	ErrMissingEventID = errors.New("subscription event id is required")
	ErrMissingTime    = errors.New("subscription change time is required")
)

// State is the subscription status of one user for one product family.
type State struct {
	userID    uuid.UUID
	family    string
	active    bool
	changedAt time.Time
	eventID   string
}

func NewState(userID uuid.UUID, family string, active bool, changedAt time.Time, eventID string) (*State, error) {
	if strings.TrimSpace(family) == "" {
		return nil, ErrMissingFamily
	}
	if eventID == "" {
		return nil, ErrMissingEventID
	}
	if changedAt.IsZero() {
		return nil, ErrMissingTime
	}
	return &State{
		userID:    userID,
		family:    family,
		active:    active,
		changedAt: changedAt.UTC(),
		eventID:   eventID,
	}, nil
}

func (s *State) UserID() uuid.UUID    { return s.userID }
func (s *State) Family() string       { return s.family }
func (s *State) IsActive() bool       { return s.active }
func (s *State) ChangedAt() time.Time { return s.changedAt }
func (s *State) EventID() string      { return s.eventID }

// Supersedes reports whether s should replace current under last-writer-wins.
// A later change wins; equal timestamps fall back to the greater event id so
// the outcome does not depend on delivery order and a replay is a no-op.
func (s *State) Supersedes(current *State) bool {
	if current == nil {
		return true
	}
	if s.changedAt.After(current.changedAt) {
		return true
	}
	if s.changedAt.Equal(current.changedAt) {
		return s.eventID > current.eventID
	}
	return false
}
