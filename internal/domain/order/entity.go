package order

import (
	"slices"
	"strings"
	"time"

	"nest/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LineItem struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// NewLineItem derives the subtotal from quantity and unit price.
func NewLineItem(productID uuid.UUID, quantity int, unitPrice decimal.Decimal) LineItem {
	return LineItem{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

type Order struct {
	id        uuid.UUID
	reference string
	eventID   string
	userID    uuid.UUID
	items     []LineItem
	discount  decimal.Decimal
	total     decimal.Decimal
	gift      bool
	live      bool
	coupons   []string
	orderedAt time.Time
}

type NewOrderParams struct {
	Reference string
	EventID   string
	UserID    uuid.UUID
	Items     []LineItem
	Discount  decimal.Decimal
	Total     decimal.Decimal
	Gift      bool
	Live      bool
	Coupons   []string
	OrderedAt time.Time
}

func NewOrder(p NewOrderParams) (*Order, error) {
	if strings.TrimSpace(p.Reference) == "" {
		return nil, ErrMissingReference
	}
	if err := ValidateTotals(p.Reference, p.Items, p.Discount, p.Total); err != nil {
		return nil, err
	}

	return &Order{
		id:        uuid.New(),
		reference: p.Reference,
		eventID:   p.EventID,
		userID:    p.UserID,
		items:     slices.Clone(p.Items),
		discount:  p.Discount,
		total:     p.Total,
		gift:      p.Gift,
		live:      p.Live,
		coupons:   slices.Clone(p.Coupons),
		orderedAt: p.OrderedAt.UTC(),
	}, nil
}

func Reconstruct(id uuid.UUID, p NewOrderParams) *Order {
	return &Order{
		id:        id,
		reference: p.Reference,
		eventID:   p.EventID,
		userID:    p.UserID,
		items:     slices.Clone(p.Items),
		discount:  p.Discount,
		total:     p.Total,
		gift:      p.Gift,
		live:      p.Live,
		coupons:   slices.Clone(p.Coupons),
		orderedAt: p.OrderedAt.UTC(),
	}
}

// ValidateTotals checks total == sum(subtotals) - discount using exact decimal
// arithmetic.
func ValidateTotals(reference string, items []LineItem, discount, total decimal.Decimal) error {
	if len(items) == 0 {
		return errs.Wrapf(ErrEmptyOrder, "order %s", reference)
	}
	if discount.IsNegative() || total.IsNegative() {
		return errs.Wrapf(ErrNegativeAmount, "order %s", reference)
	}
	sum := decimal.Zero
	for _, it := range items {
		if it.Quantity <= 0 {
			return errs.Wrapf(ErrInvalidQuantity, "order %s: product %s", reference, it.ProductID)
		}
		sum = sum.Add(it.Subtotal)
	}
	if expected := sum.Sub(discount); !expected.Equal(total) {
		return errs.Wrapf(ErrTotalMismatch, "order %s: total %s, items %s, discount %s", reference, total, sum, discount)
	}
	return nil
}

func (o *Order) ID() uuid.UUID             { return o.id }
func (o *Order) Reference() string         { return o.reference }
func (o *Order) EventID() string           { return o.eventID }
func (o *Order) UserID() uuid.UUID         { return o.userID }
func (o *Order) Items() []LineItem         { return slices.Clone(o.items) }
func (o *Order) Discount() decimal.Decimal { return o.discount }
func (o *Order) Total() decimal.Decimal    { return o.total }
func (o *Order) IsGift() bool              { return o.gift }
func (o *Order) IsLive() bool              { return o.live }
func (o *Order) Coupons() []string         { return slices.Clone(o.coupons) }
func (o *Order) OrderedAt() time.Time      { return o.orderedAt }

// Quantities sums line items per product.
func (o *Order) Quantities() map[uuid.UUID]int {
	q := make(map[uuid.UUID]int, len(o.items))
	for _, it := range o.items {
		q[it.ProductID] += it.Quantity
	}
	return q
}

func (o *Order) IsPaid() bool {
	return o.total.IsPositive()
}
