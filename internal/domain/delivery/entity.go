package delivery

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus = errors.New("invalid delivery status")
	ErrNotReplayable = errors.New("delivery cannot be replayed in its current status")
	// ErrSettled is returned when a status write reaches a delivery that is
	// already processed or replayed.
	ErrSettled = errors.New("delivery already settled")
)

type Status string

const (
	StatusPending      Status = "pending"
	StatusProcessed    Status = "processed"
	StatusReplayed     Status = "replayed"
	StatusUnrecognized Status = "unrecognized"
	StatusRejected     Status = "rejected"
	StatusFailed       Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusProcessed,
	StatusReplayed,
	StatusUnrecognized,
	StatusRejected,
	StatusFailed,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !slices.Contains(allStatuses, st) {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

// Done reports whether the delivery reached a state that a redelivery of the
// same event must not change.
func (s Status) Done() bool {
	return s == StatusProcessed || s == StatusReplayed
}

// Replayable statuses are the ones surfaced to operators for triage.
func (s Status) Replayable() bool {
	return s == StatusUnrecognized || s == StatusRejected || s == StatusFailed
}

// Delivery is one received webhook event and the outcome of processing it.
// The raw payload is kept verbatim for every status.
type Delivery struct {
	id          uuid.UUID
	eventID     string
	eventType   string
	status      Status
	payload     []byte
	reason      string
	attempts    int
	receivedAt  time.Time
	processedAt *time.Time
}

type ReconstructParams struct {
	ID          uuid.UUID
	EventID     string
	EventType   string
	Status      Status
	Payload     []byte
	Reason      string
	Attempts    int
	ReceivedAt  time.Time
	ProcessedAt *time.Time
}

func Reconstruct(p ReconstructParams) *Delivery {
	return &Delivery{
		id:          p.ID,
		eventID:     p.EventID,
		eventType:   p.EventType,
		status:      p.Status,
		payload:     slices.Clone(p.Payload),
		reason:      p.Reason,
		attempts:    p.Attempts,
		receivedAt:  p.ReceivedAt,
		processedAt: p.ProcessedAt,
	}
}

func (d *Delivery) ID() uuid.UUID           { return d.id }
func (d *Delivery) EventID() string         { return d.eventID }
func (d *Delivery) EventType() string       { return d.eventType }
func (d *Delivery) Status() Status          { return d.status }
func (d *Delivery) Payload() []byte         { return slices.Clone(d.payload) }
func (d *Delivery) Reason() string          { return d.reason }
func (d *Delivery) Attempts() int           { return d.attempts }
func (d *Delivery) ReceivedAt() time.Time   { return d.receivedAt }
func (d *Delivery) ProcessedAt() *time.Time { return d.processedAt }
