package readstore

import (
	"context"
	"strings"
	"sync"

	"nest/internal/domain/product"
	"nest/internal/infra"
	"nest/internal/infra/repository/converter"
	sqlc "nest/internal/infra/sqlc/generated"
	"nest/internal/pkg/config"
	"nest/internal/pkg/pgconv"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type CatalogReadQueries interface {
	ListProducts(ctx context.Context, db sqlc.DBTX) ([]sqlc.Products, error)
	FindProductByAlias(ctx context.Context, db sqlc.DBTX, alias string) (sqlc.Products, error)
}

// CatalogReadStore serves product lookups for classification. Alias hits are
// cached for CacheTTL; misses are never cached so a newly defined product is
// visible on the next delivery.
type CatalogReadStore struct {
	queries CatalogReadQueries
	db      sqlc.DBTX
	aliases *expirable.LRU[string, *product.Product]

	mu       sync.Mutex
	snapshot *product.Catalog
}

func NewCatalogReadStore(queries CatalogReadQueries, db sqlc.DBTX, cfg config.CatalogConfig) *CatalogReadStore {
	size := cfg.CacheSize
	if size <= 0 {
		size = 512
	}
	return &CatalogReadStore{
		queries: queries,
		db:      db,
		aliases: expirable.NewLRU[string, *product.Product](size, nil, cfg.CacheTTL),
	}
}

func (s *CatalogReadStore) ProductByAlias(ctx context.Context, alias string) (*product.Product, bool, error) {
	key := strings.ToLower(strings.TrimSpace(alias))
	if p, ok := s.aliases.Get(key); ok {
		return p, true, nil
	}

	row, err := s.queries.FindProductByAlias(ctx, s.db, key)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, false, nil
		}
		return nil, false, infra.WrapRepoErr("failed to find product by alias", err)
	}
	p, err := converter.ProductFromRow(row)
	if err != nil {
		return nil, false, err
	}
	s.aliases.Add(key, p)
	return p, true, nil
}

// Snapshot returns the full catalog, loading it once until Invalidate.
func (s *CatalogReadStore) Snapshot(ctx context.Context) (*product.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot != nil {
		return s.snapshot, nil
	}

	rows, err := s.queries.ListProducts(ctx, s.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	products := make([]*product.Product, 0, len(rows))
	for _, row := range rows {
		p, err := converter.ProductFromRow(row)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	s.snapshot = product.NewCatalog(products)
	return s.snapshot, nil
}

// Invalidate drops every cached product. It is called when the catalog
// changes, either locally after a bootstrap or through a notification.
func (s *CatalogReadStore) Invalidate() {
	s.aliases.Purge()
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()
}
