//go:build unit || e2e

package builder

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Item is one product line of an order or return payload.
type Item struct {
	Product  string
	Quantity int
	Price    string
}

// EventBuilder assembles provider webhook payloads the way the provider
// sends them: an envelope with a type discriminator and a data object.
type EventBuilder struct {
	ID        string
	Type      string
	Live      bool
	Created   time.Time
	Reference string
	Email     string
	Recipient string
	Items     []Item
	Discount  string
	Total     string
	Original  string
	Product   string
}

func NewOrderEvent(id, reference, email string, items ...Item) *EventBuilder {
	return &EventBuilder{
		ID:        id,
		Type:      "order.completed",
		Live:      true,
		Created:   time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
		Reference: reference,
		Email:     email,
		Items:     items,
		Discount:  "0",
	}
}

func NewReturnEvent(id, reference, orderReference string, items ...Item) *EventBuilder {
	return &EventBuilder{
		ID:        id,
		Type:      "return.created",
		Live:      true,
		Created:   time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC),
		Reference: reference,
		Original:  orderReference,
		Items:     items,
	}
}

func NewSubscriptionEvent(id string, active bool, email, product string) *EventBuilder {
	kind := "subscription.deactivated"
	if active {
		kind = "subscription.activated"
	}
	return &EventBuilder{
		ID:      id,
		Type:    kind,
		Live:    true,
		Created: time.Date(2025, 5, 3, 10, 0, 0, 0, time.UTC),
		Email:   email,
		Product: product,
	}
}

func (b *EventBuilder) With(mutate func(*EventBuilder)) *EventBuilder {
	mutate(b)
	return b
}

func (b *EventBuilder) WithTotal(total string) *EventBuilder {
	b.Total = total
	return b
}

func (b *EventBuilder) Build() map[string]any {
	data := map[string]any{}
	switch b.Type {
	case "order.completed":
		items := make([]map[string]any, 0, len(b.Items))
		for _, it := range b.Items {
			items = append(items, map[string]any{"product": it.Product, "quantity": it.Quantity, "priceInPayoutCurrency": it.Price})
		}
		data["reference"] = b.Reference
		data["customer"] = map[string]any{"email": b.Email, "first": "Ada", "last": "Lovelace"}
		if b.Recipient != "" {
			data["recipients"] = []map[string]any{{"recipient": map[string]any{"email": b.Recipient}}}
		}
		data["items"] = items
		data["discountInPayoutCurrency"] = b.Discount
		data["totalInPayoutCurrency"] = b.total()
	case "return.created":
		items := make([]map[string]any, 0, len(b.Items))
		for _, it := range b.Items {
			items = append(items, map[string]any{"product": it.Product, "quantity": it.Quantity})
		}
		data["reference"] = b.Reference
		data["original"] = map[string]any{"reference": b.Original}
		data["items"] = items
	default:
		data["contact"] = map[string]any{"email": b.Email}
		data["product"] = b.Product
	}
	return map[string]any{
		"id":      b.ID,
		"type":    b.Type,
		"live":    b.Live,
		"created": b.Created.UnixMilli(),
		"data":    data,
	}
}

// total defaults to the sum of the lines less the discount.
func (b *EventBuilder) total() string {
	if b.Total != "" {
		return b.Total
	}
	sum := decimal.Zero
	for _, it := range b.Items {
		sum = sum.Add(decimal.RequireFromString(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum.Sub(decimal.RequireFromString(b.Discount)).StringFixed(2)
}

func (b *EventBuilder) BuildRaw() json.RawMessage {
	raw, _ := json.Marshal(b.Build())
	return raw
}

// Batch wraps events into the provider's delivery envelope.
func Batch(events ...*EventBuilder) map[string]any {
	out := make([]map[string]any, 0, len(events))
	for _, e := range events {
		out = append(out, e.Build())
	}
	return map[string]any{"events": out}
}
