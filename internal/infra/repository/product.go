package repository

import (
	"context"

	"nest/internal/domain/product"
	"nest/internal/infra"
	"nest/internal/infra/repository/converter"
	sqlc "nest/internal/infra/sqlc/generated"
)

type ProductQueries interface {
	UpsertProduct(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertProductParams) (sqlc.Products, error)
	ListProducts(ctx context.Context, db sqlc.DBTX) ([]sqlc.Products, error)
}

type ProductRepository struct {
	queries ProductQueries
	db      sqlc.DBTX
}

func NewProductRepository(queries ProductQueries, db sqlc.DBTX) *ProductRepository {
	return &ProductRepository{
		queries: queries,
		db:      db,
	}
}

// Upsert stores the definition keyed by name and returns it with its stored id.
func (r *ProductRepository) Upsert(ctx context.Context, p *product.Product) (*product.Product, error) {
	row, err := r.queries.UpsertProduct(ctx, r.db, converter.ProductToUpsertParams(p))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to upsert product "+p.Name(), err)
	}
	return converter.ProductFromRow(row)
}

func (r *ProductRepository) List(ctx context.Context) ([]*product.Product, error) {
	rows, err := r.queries.ListProducts(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	out := make([]*product.Product, 0, len(rows))
	for _, row := range rows {
		p, err := converter.ProductFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
