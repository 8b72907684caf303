package entitlement

import (
	"time"

	"nest/internal/domain/order"
	"nest/internal/domain/subscription"

	"github.com/google/uuid"
)

// Ledger is a read-only snapshot of everything a user has bought, returned
// and subscribed to. It is loaded from committed state without taking locks,
// so it may trail a concurrent writer.
type Ledger struct {
	UserID        uuid.UUID
	Orders        []*order.Order
	Returns       []*order.Return
	Subscriptions []*subscription.State
}

// Holding is one product still held through one order.
type Holding struct {
	ProductID      uuid.UUID
	OrderReference string
	Quantity       int
	OrderedAt      time.Time
}

// Holdings lists every line item quantity not reversed by a return.
func (l Ledger) Holdings() []Holding {
	var out []Holding
	for _, o := range l.Orders {
		rem := order.Remaining(o, l.Returns)
		for _, it := range o.Items() {
			q := rem[it.ProductID]
			if q <= 0 {
				continue
			}
			out = append(out, Holding{
				ProductID:      it.ProductID,
				OrderReference: o.Reference(),
				Quantity:       q,
				OrderedAt:      o.OrderedAt(),
			})
			// duplicate lines for the same product share one remaining count
			rem[it.ProductID] = 0
		}
	}
	return out
}

func (l Ledger) Subscription(family string) (*subscription.State, bool) {
	for _, s := range l.Subscriptions {
		if s.Family() == family {
			return s, true
		}
	}
	return nil, false
}
