package event

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"nest/internal/domain/order"
	"nest/internal/domain/product"
	"nest/internal/domain/user"
	"nest/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Catalog resolves provider product ids. found is false for unknown aliases;
// err is reserved for lookup failures.
type Catalog interface {
	ProductByAlias(ctx context.Context, alias string) (p *product.Product, found bool, err error)
}

// OrderLookup returns a stored order and its returns, or a nil order when the
// reference is unknown.
type OrderLookup interface {
	OrderWithReturns(ctx context.Context, reference string) (*order.Order, []*order.Return, error)
}

type Classifier struct {
	catalog Catalog
	orders  OrderLookup
}

func NewClassifier(catalog Catalog, orders OrderLookup) *Classifier {
	return &Classifier{catalog: catalog, orders: orders}
}

// Classify maps a raw provider event to exactly one typed Event.
//
// Unknown discriminators and missing or malformed fields yield an
// Unrecognized event together with an error marked errs.ErrClassification.
// Recognized payloads that are internally inconsistent yield a nil event and
// an error marked errs.ErrValidation. Any other error is a lookup failure and
// may be retried.
func (c *Classifier) Classify(ctx context.Context, raw json.RawMessage) (Event, error) {
	var env rawEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return unrecognized(Envelope{}, raw, errs.Classification("malformed envelope: %v", err))
	}

	meta := Envelope{
		ID:        env.ID,
		Type:      env.Type,
		Live:      env.Live,
		Processed: env.Processed,
	}
	if env.Created != nil {
		meta.Created = time.UnixMilli(*env.Created).UTC()
	}

	if meta.ID == "" {
		return unrecognized(meta, raw, errs.Classification("missing event id"))
	}

	var (
		ev  Event
		err error
	)
	switch Kind(env.Type) {
	case KindOrderCreated:
		ev, err = c.classifyOrder(ctx, meta, env.Data)
	case KindReturnIssued:
		ev, err = c.classifyReturn(ctx, meta, env.Data)
	case KindSubscriptionActivated, KindSubscriptionDeactivated:
		ev, err = c.classifySubscription(ctx, meta, env.Data)
	default:
		err = errs.Classification("unknown event type %q", env.Type)
	}
	if err != nil {
		if errs.Is(err, errs.ErrClassification) {
			return unrecognized(meta, raw, err)
		}
		return nil, err
	}
	return ev, nil
}

func unrecognized(meta Envelope, raw json.RawMessage, cause error) (Event, error) {
	payload := make(json.RawMessage, len(raw))
	copy(payload, raw)
	return Unrecognized{Envelope: meta, Payload: payload, Reason: cause.Error()}, cause
}

func (c *Classifier) classifyOrder(ctx context.Context, meta Envelope, data json.RawMessage) (Event, error) {
	if meta.Created.IsZero() {
		return nil, errs.Classification("order event %s: missing created", meta.ID)
	}
	var d rawOrder
	if err := decodeData(data, &d); err != nil {
		return nil, err
	}
	if d.Reference == "" {
		return nil, errs.Classification("order event %s: missing reference", meta.ID)
	}
	if d.Customer == nil {
		return nil, errs.Classification("order %s: missing customer", d.Reference)
	}
	customer, err := d.Customer.contact()
	if err != nil {
		return nil, errs.Classification("order %s: customer: %v", d.Reference, err)
	}

	owner := customer
	gift := false
	switch len(d.Recipients) {
	case 0:
	case 1:
		if d.Recipients[0].Recipient == nil {
			return nil, errs.Classification("order %s: empty recipient", d.Reference)
		}
		owner, err = d.Recipients[0].Recipient.contact()
		if err != nil {
			return nil, errs.Classification("order %s: recipient: %v", d.Reference, err)
		}
		gift = owner.Email != customer.Email
	default:
		return nil, errs.Classification("order %s: %d recipients, cannot determine owner", d.Reference, len(d.Recipients))
	}

	if len(d.Items) == 0 {
		return nil, errs.Classification("order %s: missing items", d.Reference)
	}
	items := make([]order.LineItem, 0, len(d.Items))
	for i, it := range d.Items {
		p, err := c.resolveProduct(ctx, d.Reference, i, it.Product)
		if err != nil {
			return nil, err
		}
		if it.Quantity == nil {
			return nil, errs.Classification("order %s: item %d: missing quantity", d.Reference, i)
		}
		line, err := lineItem(p, *it.Quantity, it.Price, it.Subtotal)
		if err != nil {
			return nil, errs.Classification("order %s: item %d: %v", d.Reference, i, err)
		}
		items = append(items, line)
	}

	if !d.Total.Valid {
		return nil, errs.Classification("order %s: missing totalInPayoutCurrency", d.Reference)
	}
	discount := decimal.Zero
	if d.Discount.Valid {
		discount = d.Discount.Decimal
	}
	if err := order.ValidateTotals(d.Reference, items, discount, d.Total.Decimal); err != nil {
		return nil, err
	}

	return OrderCreated{
		Envelope:  meta,
		Reference: d.Reference,
		Customer:  customer,
		Owner:     owner,
		Gift:      gift,
		Items:     items,
		Discount:  discount,
		Total:     d.Total.Decimal,
		Coupons:   d.Coupons,
	}, nil
}

// lineItem prefers the subtotal the provider charged; the unit price alone is
// multiplied out.
func lineItem(p *product.Product, quantity int, price, subtotal decimal.NullDecimal) (order.LineItem, error) {
	if quantity <= 0 {
		return order.LineItem{}, errs.New("quantity must be positive")
	}
	switch {
	case subtotal.Valid:
		unit := subtotal.Decimal
		if quantity > 1 {
			unit = subtotal.Decimal.DivRound(decimal.NewFromInt(int64(quantity)), 4)
		}
		if price.Valid {
			unit = price.Decimal
		}
		return order.LineItem{ProductID: p.ID(), Quantity: quantity, UnitPrice: unit, Subtotal: subtotal.Decimal}, nil
	case price.Valid:
		return order.NewLineItem(p.ID(), quantity, price.Decimal), nil
	default:
		return order.LineItem{}, errs.New("missing subtotalInPayoutCurrency and priceInPayoutCurrency")
	}
}

func (c *Classifier) classifyReturn(ctx context.Context, meta Envelope, data json.RawMessage) (Event, error) {
	if meta.Created.IsZero() {
		return nil, errs.Classification("return event %s: missing created", meta.ID)
	}
	var d rawReturn
	if err := decodeData(data, &d); err != nil {
		return nil, err
	}
	if d.Reference == "" {
		return nil, errs.Classification("return event %s: missing reference", meta.ID)
	}
	if d.Original == nil || d.Original.Reference == "" {
		return nil, errs.Classification("return %s: missing original.reference", d.Reference)
	}
	if len(d.Items) == 0 {
		return nil, errs.Classification("return %s: missing items", d.Reference)
	}

	items := make([]order.ReturnItem, 0, len(d.Items))
	for i, it := range d.Items {
		p, err := c.resolveProduct(ctx, d.Reference, i, it.Product)
		if err != nil {
			return nil, err
		}
		if it.Quantity == nil || *it.Quantity <= 0 {
			return nil, errs.Classification("return %s: item %d: missing or invalid quantity", d.Reference, i)
		}
		items = append(items, order.ReturnItem{ProductID: p.ID(), Quantity: *it.Quantity})
	}

	amount := decimal.Zero
	if d.Amount.Valid {
		amount = d.Amount.Decimal
	}

	ev := ReturnIssued{
		Envelope:       meta,
		Reference:      d.Reference,
		OrderReference: d.Original.Reference,
		Items:          items,
		Amount:         amount,
	}

	if c.orders != nil {
		o, prior, err := c.orders.OrderWithReturns(ctx, ev.OrderReference)
		if err != nil {
			return nil, errs.Wrapf(err, "look up order %s", ev.OrderReference)
		}
		if o != nil {
			partial, err := order.CheckReturn(o, prior, ev.Reference, ev.Items)
			if err != nil {
				return nil, err
			}
			ev.Partial = partial
			ev.PartialKnown = true
		}
	}
	return ev, nil
}

func (c *Classifier) classifySubscription(ctx context.Context, meta Envelope, data json.RawMessage) (Event, error) {
	if meta.Created.IsZero() {
		return nil, errs.Classification("subscription event %s: missing created", meta.ID)
	}
	var d rawSubscription
	if err := decodeData(data, &d); err != nil {
		return nil, err
	}

	var account rawAccount
	if len(d.Account) > 0 && d.Account[0] == '{' {
		if err := json.Unmarshal(d.Account, &account); err != nil {
			return nil, errs.Classification("subscription event %s: malformed account: %v", meta.ID, err)
		}
	}

	rc := d.Contact
	if rc == nil {
		rc = account.Contact
	}
	if rc == nil {
		return nil, errs.Classification("subscription event %s: missing contact", meta.ID)
	}
	merged := *rc
	if merged.Language == "" {
		merged.Language = account.Language
	}
	if merged.Country == "" {
		merged.Country = account.Country
	}
	contact, err := merged.contact()
	if err != nil {
		return nil, errs.Classification("subscription event %s: contact: %v", meta.ID, err)
	}

	alias, err := productAlias(d.Product)
	if err != nil {
		return nil, errs.Classification("subscription event %s: %v", meta.ID, err)
	}
	p, err := c.resolveProduct(ctx, meta.ID, 0, alias)
	if err != nil {
		return nil, err
	}

	change := SubscriptionChange{
		Envelope:  meta,
		Contact:   contact,
		Family:    p.Family(),
		ProductID: p.ID(),
	}
	if Kind(meta.Type) == KindSubscriptionActivated {
		return SubscriptionActivated{SubscriptionChange: change}, nil
	}
	return SubscriptionDeactivated{SubscriptionChange: change}, nil
}

func (c *Classifier) resolveProduct(ctx context.Context, ref string, idx int, alias string) (*product.Product, error) {
	if strings.TrimSpace(alias) == "" {
		return nil, errs.Classification("%s: item %d: missing product", ref, idx)
	}
	p, found, err := c.catalog.ProductByAlias(ctx, alias)
	if err != nil {
		return nil, errs.Wrapf(err, "resolve product %q", alias)
	}
	if !found {
		return nil, errs.Classification("%s: item %d: unknown product %q", ref, idx, alias)
	}
	return p, nil
}

func decodeData(data json.RawMessage, v any) error {
	if len(data) == 0 || string(data) == "null" {
		return errs.Classification("missing data")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errs.Classification("malformed data: %v", err)
	}
	return nil
}

// productAlias accepts either a bare product id or an expanded product object.
func productAlias(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", errs.New("missing product")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var obj struct {
		Product string `json:"product"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", errs.Newf("malformed product: %v", err)
	}
	return obj.Product, nil
}

type rawEnvelope struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Live      bool            `json:"live"`
	Processed bool            `json:"processed"`
	Created   *int64          `json:"created"`
	Data      json.RawMessage `json:"data"`
}

type rawContact struct {
	Email    string `json:"email"`
	First    string `json:"first"`
	Last     string `json:"last"`
	Language string `json:"language"`
	Country  string `json:"country"`
}

func (rc rawContact) contact() (Contact, error) {
	email, err := user.NewEmail(rc.Email)
	if err != nil {
		return Contact{}, err
	}
	return Contact{
		Email: email,
		Profile: user.Profile{
			First:    rc.First,
			Last:     rc.Last,
			Language: rc.Language,
			Country:  rc.Country,
		}.WithDefaults(),
	}, nil
}

type rawOrder struct {
	Reference  string      `json:"reference"`
	Customer   *rawContact `json:"customer"`
	Recipients []struct {
		Recipient *rawContact `json:"recipient"`
	} `json:"recipients"`
	Items    []rawOrderItem      `json:"items"`
	Discount decimal.NullDecimal `json:"discountInPayoutCurrency"`
	Total    decimal.NullDecimal `json:"totalInPayoutCurrency"`
	Coupons  []string            `json:"coupons"`
}

type rawOrderItem struct {
	Product  string              `json:"product"`
	Quantity *int                `json:"quantity"`
	Subtotal decimal.NullDecimal `json:"subtotalInPayoutCurrency"`
	Price    decimal.NullDecimal `json:"priceInPayoutCurrency"`
}

type rawReturn struct {
	Reference string `json:"reference"`
	Original  *struct {
		Reference string `json:"reference"`
	} `json:"original"`
	Items []struct {
		Product  string `json:"product"`
		Quantity *int   `json:"quantity"`
	} `json:"items"`
	Amount decimal.NullDecimal `json:"totalReturnInPayoutCurrency"`
}

type rawSubscription struct {
	Account json.RawMessage `json:"account"`
	Contact *rawContact     `json:"contact"`
	Product json.RawMessage `json:"product"`
}

type rawAccount struct {
	Contact  *rawContact `json:"contact"`
	Language string      `json:"language"`
	Country  string      `json:"country"`
}
