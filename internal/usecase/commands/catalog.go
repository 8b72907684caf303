package commands

import (
	"context"
	"log/slog"

	"nest/internal/domain/product"
	"nest/internal/usecase/shared"
)

type BootstrapResult struct {
	Products int
}

type CatalogCommands interface {
	// Bootstrap upserts every product definition by name and drops cached
	// catalog lookups.
	Bootstrap(ctx context.Context) (*BootstrapResult, error)
}

type catalogUseCaseImpl struct {
	uow    shared.UnitOfWork
	source ProductDefinitionSource
	cache  CatalogCache
	logger *slog.Logger
}

func NewCatalogUseCase(uow shared.UnitOfWork, source ProductDefinitionSource, cache CatalogCache, logger *slog.Logger) CatalogCommands {
	return &catalogUseCaseImpl{uow: uow, source: source, cache: cache, logger: logger}
}

func (uc *catalogUseCaseImpl) Bootstrap(ctx context.Context) (*BootstrapResult, error) {
	defs, err := uc.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		uc.logger.Info("no product definitions to bootstrap")
		return &BootstrapResult{}, nil
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, def := range defs {
			if _, err := tx.Products().Upsert(ctx, def); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate()

	uc.logger.Info("catalog bootstrapped", "products", len(defs), "names", productNames(defs))
	return &BootstrapResult{Products: len(defs)}, nil
}

func productNames(ps []*product.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name())
	}
	return out
}
