package product

import (
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidName    = errors.New("product name is required")
	ErrInvalidFamily  = errors.New("product family is required")
	ErrInvalidVersion = errors.New("product version must be positive")
	ErrNegativePrice  = errors.New("product price must not be negative")
)

// Product is one version of an offering. The name doubles as an alias so the
// provider may reference a product by either.
type Product struct {
	id      uuid.UUID
	name    string
	aliases []string
	family  string
	version int
	price   decimal.Decimal
	demo    bool
}

func NewProduct(name, family string, version int, price decimal.Decimal, aliases []string, demo bool) (*Product, error) {
	name = strings.TrimSpace(name)
	family = strings.TrimSpace(family)
	if name == "" {
		return nil, ErrInvalidName
	}
	if family == "" {
		return nil, ErrInvalidFamily
	}
	if version <= 0 {
		return nil, ErrInvalidVersion
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}

	return &Product{
		id:      uuid.New(),
		name:    name,
		aliases: normalizeAliases(name, aliases),
		family:  family,
		version: version,
		price:   price,
		demo:    demo,
	}, nil
}

func Reconstruct(id uuid.UUID, name, family string, version int, price decimal.Decimal, aliases []string, demo bool) *Product {
	return &Product{
		id:      id,
		name:    name,
		aliases: normalizeAliases(name, aliases),
		family:  family,
		version: version,
		price:   price,
		demo:    demo,
	}
}

func (p *Product) ID() uuid.UUID          { return p.id }
func (p *Product) Name() string           { return p.name }
func (p *Product) Aliases() []string      { return slices.Clone(p.aliases) }
func (p *Product) Family() string         { return p.family }
func (p *Product) Version() int           { return p.version }
func (p *Product) Price() decimal.Decimal { return p.price }
func (p *Product) IsDemo() bool           { return p.demo }

func (p *Product) HasAlias(alias string) bool {
	return slices.Contains(p.aliases, strings.ToLower(strings.TrimSpace(alias)))
}

func normalizeAliases(name string, aliases []string) []string {
	out := []string{strings.ToLower(name)}
	for _, a := range aliases {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" || slices.Contains(out, a) {
			continue
		}
		out = append(out, a)
	}
	return out
}
