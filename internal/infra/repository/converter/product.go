package converter

import (
	"nest/internal/domain/product"
	sqlc "nest/internal/infra/sqlc/generated"
	"nest/internal/pkg/errs"
	"nest/internal/pkg/pgconv"
)

func ProductToUpsertParams(p *product.Product) sqlc.UpsertProductParams {
	return sqlc.UpsertProductParams{
		Name:    p.Name(),
		Aliases: p.Aliases(),
		Family:  p.Family(),
		Version: int32(p.Version()), // #nosec G115 -- versions are small positive integers
		Price:   pgconv.DecimalToNumeric(p.Price()),
		Demo:    p.IsDemo(),
	}
}

func ProductFromRow(row sqlc.Products) (*product.Product, error) {
	price, err := pgconv.DecimalFromNumeric(row.Price)
	if err != nil {
		return nil, errs.Wrapf(err, "product %s price", row.Name)
	}
	return product.Reconstruct(row.ID, row.Name, row.Family, int(row.Version), price, row.Aliases, row.Demo), nil
}
