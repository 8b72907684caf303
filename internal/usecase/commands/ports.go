package commands

import (
	"context"
	"encoding/json"

	"nest/internal/domain/event"
	"nest/internal/domain/product"
)

// EventClassifier maps a raw provider payload to a typed event.
type EventClassifier interface {
	Classify(ctx context.Context, raw json.RawMessage) (event.Event, error)
}

// LockFactory serializes work on one subject across workers and replicas.
type LockFactory interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// CatalogCache is invalidated whenever product definitions change.
type CatalogCache interface {
	Invalidate()
}

// ProductDefinitionSource yields the products to bootstrap into the catalog.
type ProductDefinitionSource interface {
	Load(ctx context.Context) ([]*product.Product, error)
}
