package order

import (
	"slices"
	"strings"
	"time"

	"nest/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReturnItem struct {
	ProductID uuid.UUID
	Quantity  int
}

type Return struct {
	id             uuid.UUID
	reference      string
	eventID        string
	orderID        uuid.UUID
	orderReference string
	partial        bool
	items          []ReturnItem
	amount         decimal.Decimal
	returnedAt     time.Time
}

type NewReturnParams struct {
	Reference  string
	EventID    string
	Order      *Order
	Prior      []*Return
	Items      []ReturnItem
	Amount     decimal.Decimal
	ReturnedAt time.Time
}

// NewReturn validates the reversed items against what remains of the order
// and derives the partial flag.
func NewReturn(p NewReturnParams) (*Return, error) {
	if strings.TrimSpace(p.Reference) == "" {
		return nil, ErrMissingReference
	}
	if p.Order == nil {
		return nil, errs.Wrapf(ErrOrderMissing, "return %s", p.Reference)
	}
	if p.Amount.IsNegative() {
		return nil, errs.Wrapf(ErrNegativeAmount, "return %s", p.Reference)
	}
	partial, err := CheckReturn(p.Order, p.Prior, p.Reference, p.Items)
	if err != nil {
		return nil, err
	}

	return &Return{
		id:             uuid.New(),
		reference:      p.Reference,
		eventID:        p.EventID,
		orderID:        p.Order.ID(),
		orderReference: p.Order.Reference(),
		partial:        partial,
		items:          slices.Clone(p.Items),
		amount:         p.Amount,
		returnedAt:     p.ReturnedAt.UTC(),
	}, nil
}

type ReconstructReturnParams struct {
	ID             uuid.UUID
	Reference      string
	EventID        string
	OrderID        uuid.UUID
	OrderReference string
	Partial        bool
	Items          []ReturnItem
	Amount         decimal.Decimal
	ReturnedAt     time.Time
}

func ReconstructReturn(p ReconstructReturnParams) *Return {
	return &Return{
		id:             p.ID,
		reference:      p.Reference,
		eventID:        p.EventID,
		orderID:        p.OrderID,
		orderReference: p.OrderReference,
		partial:        p.Partial,
		items:          slices.Clone(p.Items),
		amount:         p.Amount,
		returnedAt:     p.ReturnedAt.UTC(),
	}
}

func (r *Return) ID() uuid.UUID           { return r.id }
func (r *Return) Reference() string       { return r.reference }
func (r *Return) EventID() string         { return r.eventID }
func (r *Return) OrderID() uuid.UUID      { return r.orderID }
func (r *Return) OrderReference() string  { return r.orderReference }
func (r *Return) IsPartial() bool         { return r.partial }
func (r *Return) Items() []ReturnItem     { return slices.Clone(r.items) }
func (r *Return) Amount() decimal.Decimal { return r.amount }
func (r *Return) ReturnedAt() time.Time   { return r.returnedAt }

// Remaining returns, per product, the quantity of the order not yet reversed
// by the given returns. Returns for other orders are ignored.
func Remaining(o *Order, returns []*Return) map[uuid.UUID]int {
	rem := o.Quantities()
	for _, r := range returns {
		if r.orderID != o.id {
			continue
		}
		for _, it := range r.items {
			rem[it.ProductID] = max(rem[it.ProductID]-it.Quantity, 0)
		}
	}
	return rem
}

func FullyReversed(o *Order, returns []*Return) bool {
	for _, q := range Remaining(o, returns) {
		if q > 0 {
			return false
		}
	}
	return true
}

// CheckReturn validates items against the order's remaining contents. Prior
// returns sharing the same reference are ignored so a replay validates the
// same way as the first delivery. partial is true when something of the
// order remains after applying the return.
func CheckReturn(o *Order, prior []*Return, reference string, items []ReturnItem) (partial bool, err error) {
	if len(items) == 0 {
		return false, errs.Wrapf(ErrEmptyReturn, "return %s", reference)
	}

	others := make([]*Return, 0, len(prior))
	for _, r := range prior {
		if r.reference != reference {
			others = append(others, r)
		}
	}

	rem := Remaining(o, others)
	if allZero(rem) {
		return false, errs.Wrapf(ErrOrderFullyReversed, "order %s", o.reference)
	}

	requested := make(map[uuid.UUID]int, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return false, errs.Wrapf(ErrInvalidQuantity, "return %s: product %s", reference, it.ProductID)
		}
		requested[it.ProductID] += it.Quantity
	}
	for productID, q := range requested {
		left, onOrder := rem[productID]
		if !onOrder {
			return false, errs.Wrapf(ErrReturnMismatch, "return %s: product %s is not on order %s", reference, productID, o.reference)
		}
		if q > left {
			return false, errs.Wrapf(ErrReturnExceedsOrder, "return %s: product %s quantity %d, remaining %d", reference, productID, q, left)
		}
		rem[productID] = left - q
	}

	return !allZero(rem), nil
}

func allZero(rem map[uuid.UUID]int) bool {
	for _, q := range rem {
		if q > 0 {
			return false
		}
	}
	return true
}
