package entitlement

import (
	"slices"
	"time"

	"nest/internal/domain/order"
	"nest/internal/domain/product"

	"github.com/google/uuid"
)

// Resolver answers ownership questions for a ledger against a catalog
// snapshot. Demo products never count as owned.
type Resolver struct {
	catalog *product.Catalog
}

func NewResolver(catalog *product.Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// owned returns the non-demo products held through at least one order.
func (r *Resolver) owned(l Ledger) map[uuid.UUID]*product.Product {
	out := make(map[uuid.UUID]*product.Product)
	for _, h := range l.Holdings() {
		p, ok := r.catalog.ByID(h.ProductID)
		if !ok || p.IsDemo() {
			continue
		}
		out[p.ID()] = p
	}
	return out
}

func (r *Resolver) OwnsAnyInSet(l Ledger, productIDs []uuid.UUID) bool {
	owned := r.owned(l)
	for _, id := range productIDs {
		if _, ok := owned[id]; ok {
			return true
		}
	}
	return false
}

// HighestVersionInSet returns the maximum version among owned products in
// productIDs. ok is false when none is owned.
func (r *Resolver) HighestVersionInSet(l Ledger, productIDs []uuid.UUID) (version int, ok bool) {
	owned := r.owned(l)
	for _, id := range productIDs {
		p, held := owned[id]
		if !held {
			continue
		}
		if !ok || p.Version() > version {
			version, ok = p.Version(), true
		}
	}
	return version, ok
}

func (r *Resolver) HighestVersionInFamily(l Ledger, family string) (int, bool) {
	return r.HighestVersionInSet(l, r.catalog.IDsInFamily(family))
}

func (r *Resolver) OwnsAnyInFamily(l Ledger, family string) bool {
	return r.OwnsAnyInSet(l, r.catalog.IDsInFamily(family))
}

// OwnsCurrentInSet is true only when the user holds the family's highest
// known version; older versions alone are not enough.
func (r *Resolver) OwnsCurrentInSet(l Ledger, family string) bool {
	current, ok := r.catalog.CurrentVersion(family)
	if !ok {
		return false
	}
	highest, owns := r.HighestVersionInFamily(l, family)
	return owns && highest == current
}

// EarliestOrderDate is the date of the user's first order, reversed or not.
func (r *Resolver) EarliestOrderDate(l Ledger) (time.Time, bool) {
	var (
		earliest time.Time
		found    bool
	)
	for _, o := range l.Orders {
		if !found || o.OrderedAt().Before(earliest) {
			earliest, found = o.OrderedAt(), true
		}
	}
	return earliest, found
}

// OwnsAnyPaid is true when some order with a positive total has not been
// fully reversed.
func (r *Resolver) OwnsAnyPaid(l Ledger) bool {
	for _, o := range l.Orders {
		if o.IsPaid() && !order.FullyReversed(o, l.Returns) {
			return true
		}
	}
	return false
}

// OwnedProducts lists owned products ordered by family then version.
func (r *Resolver) OwnedProducts(l Ledger) []*product.Product {
	owned := r.owned(l)
	out := make([]*product.Product, 0, len(owned))
	for _, p := range owned {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *product.Product) int {
		if a.Family() != b.Family() {
			if a.Family() < b.Family() {
				return -1
			}
			return 1
		}
		return a.Version() - b.Version()
	})
	return out
}

type FamilySummary struct {
	Family         string
	HighestVersion int
	OwnsAny        bool
	OwnsCurrent    bool
	Subscribed     bool
}

type Summary struct {
	UserID            uuid.UUID
	Products          []*product.Product
	Families          []FamilySummary
	EarliestOrderDate *time.Time
	OwnsAnyPaid       bool
}

// Summarize evaluates every family the user owns or is subscribed to.
func (r *Resolver) Summarize(l Ledger) Summary {
	products := r.OwnedProducts(l)

	var families []string
	for _, p := range products {
		if !slices.Contains(families, p.Family()) {
			families = append(families, p.Family())
		}
	}
	for _, s := range l.Subscriptions {
		if !slices.Contains(families, s.Family()) {
			families = append(families, s.Family())
		}
	}
	slices.Sort(families)

	s := Summary{
		UserID:      l.UserID,
		Products:    products,
		Families:    make([]FamilySummary, 0, len(families)),
		OwnsAnyPaid: r.OwnsAnyPaid(l),
	}
	for _, f := range families {
		fs := r.Family(l, f)
		s.Families = append(s.Families, fs)
	}
	if t, ok := r.EarliestOrderDate(l); ok {
		s.EarliestOrderDate = &t
	}
	return s
}

func (r *Resolver) Family(l Ledger, family string) FamilySummary {
	fs := FamilySummary{Family: family}
	fs.HighestVersion, fs.OwnsAny = r.HighestVersionInFamily(l, family)
	fs.OwnsCurrent = r.OwnsCurrentInSet(l, family)
	if st, ok := l.Subscription(family); ok {
		fs.Subscribed = st.IsActive()
	}
	return fs
}
