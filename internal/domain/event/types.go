package event

import (
	"encoding/json"
	"time"

	"nest/internal/domain/order"
	"nest/internal/domain/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is the provider's discriminator for a webhook event.
type Kind string

const (
	KindOrderCreated            Kind = "order.completed"
	KindReturnIssued            Kind = "return.created"
	KindSubscriptionActivated   Kind = "subscription.activated"
	KindSubscriptionDeactivated Kind = "subscription.deactivated"
	KindUnrecognized            Kind = "unrecognized"
)

func (k Kind) String() string {
	return string(k)
}

// Event is a closed set: OrderCreated, ReturnIssued, SubscriptionActivated,
// SubscriptionDeactivated and Unrecognized.
type Event interface {
	Kind() Kind
	Meta() Envelope
	// SubjectKey names the entity whose mutations must be serialized. Empty
	// for Unrecognized.
	SubjectKey() string
	isEvent()
}

// Envelope carries the fields shared by every provider event.
type Envelope struct {
	ID        string
	Type      string
	Live      bool
	Processed bool
	Created   time.Time
}

func (e Envelope) Meta() Envelope { return e }
func (Envelope) isEvent()         {}

type Contact struct {
	Email   user.Email
	Profile user.Profile
}

type OrderCreated struct {
	Envelope
	Reference string
	Customer  Contact
	// Owner is the recipient when one is named, otherwise the customer.
	Owner    Contact
	Gift     bool
	Items    []order.LineItem
	Discount decimal.Decimal
	Total    decimal.Decimal
	Coupons  []string
}

func (OrderCreated) Kind() Kind { return KindOrderCreated }

func (e OrderCreated) SubjectKey() string { return OrderSubjectKey(e.Reference) }

type ReturnIssued struct {
	Envelope
	Reference      string
	OrderReference string
	Items          []order.ReturnItem
	Amount         decimal.Decimal
	// Partial is only meaningful when PartialKnown is set, i.e. the order was
	// already stored at classification time. It is recomputed when applied.
	Partial      bool
	PartialKnown bool
}

func (ReturnIssued) Kind() Kind { return KindReturnIssued }

// Returns lock on the order they reverse.
func (e ReturnIssued) SubjectKey() string { return OrderSubjectKey(e.OrderReference) }

type SubscriptionChange struct {
	Envelope
	Contact   Contact
	Family    string
	ProductID uuid.UUID
}

func (e SubscriptionChange) SubjectKey() string {
	return SubscriptionSubjectKey(e.Contact.Email.Value(), e.Family)
}

type SubscriptionActivated struct {
	SubscriptionChange
}

func (SubscriptionActivated) Kind() Kind { return KindSubscriptionActivated }

type SubscriptionDeactivated struct {
	SubscriptionChange
}

func (SubscriptionDeactivated) Kind() Kind { return KindSubscriptionDeactivated }

// Unrecognized keeps the original payload for manual inspection.
type Unrecognized struct {
	Envelope
	Payload json.RawMessage
	Reason  string
}

func (Unrecognized) Kind() Kind { return KindUnrecognized }

func (Unrecognized) SubjectKey() string { return "" }

func OrderSubjectKey(reference string) string {
	return "order:" + reference
}

func SubscriptionSubjectKey(email, family string) string {
	return "subscription:" + email + ":" + family
}
