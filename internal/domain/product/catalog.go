package product

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Catalog is an immutable snapshot of every known product.
type Catalog struct {
	byID     map[uuid.UUID]*Product
	byAlias  map[string]*Product
	families map[string][]*Product
}

func NewCatalog(products []*Product) *Catalog {
	c := &Catalog{
		byID:     make(map[uuid.UUID]*Product, len(products)),
		byAlias:  make(map[string]*Product, len(products)),
		families: make(map[string][]*Product),
	}
	for _, p := range products {
		c.byID[p.ID()] = p
		for _, a := range p.aliases {
			c.byAlias[a] = p
		}
		c.families[p.Family()] = append(c.families[p.Family()], p)
	}
	for _, members := range c.families {
		slices.SortFunc(members, func(a, b *Product) int { return a.Version() - b.Version() })
	}
	return c
}

func (c *Catalog) ByID(id uuid.UUID) (*Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

func (c *Catalog) ByAlias(alias string) (*Product, bool) {
	p, ok := c.byAlias[strings.ToLower(strings.TrimSpace(alias))]
	return p, ok
}

// Family returns the members of a family ordered by version.
func (c *Catalog) Family(family string) []*Product {
	return slices.Clone(c.families[family])
}

func (c *Catalog) IDsInFamily(family string) []uuid.UUID {
	members := c.families[family]
	ids := make([]uuid.UUID, 0, len(members))
	for _, p := range members {
		ids = append(ids, p.ID())
	}
	return ids
}

// CurrentVersion is the highest non-demo version known in the family.
func (c *Catalog) CurrentVersion(family string) (int, bool) {
	members := c.families[family]
	for i := len(members) - 1; i >= 0; i-- {
		if !members[i].IsDemo() {
			return members[i].Version(), true
		}
	}
	return 0, false
}

func (c *Catalog) Len() int {
	return len(c.byID)
}
