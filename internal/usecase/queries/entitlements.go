package queries

import (
	"context"
	"strings"

	"nest/internal/domain/entitlement"
	"nest/internal/domain/product"
	"nest/internal/domain/user"
	"nest/internal/infra"
	sqlc "nest/internal/infra/sqlc/generated"
	"nest/internal/pkg/errs"
	"nest/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound   = errs.New("user not found")
	ErrInvalidEmail   = errs.Mark(errs.New("invalid email"), errs.ErrValidation)
	ErrUnknownProduct = errs.Mark(errs.New("unknown product"), errs.ErrValidation)
)

type LedgerReadStore interface {
	FindUser(ctx context.Context, db sqlc.DBTX, email user.Email) (*user.User, error)
	LedgerForUser(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) (entitlement.Ledger, error)
}

type CatalogReadStore interface {
	Snapshot(ctx context.Context) (*product.Catalog, error)
}

// EntitlementRequest selects what to evaluate besides the overall summary.
// Products are provider aliases.
type EntitlementRequest struct {
	Email    string
	Family   string
	Products []string
}

type ProductSetView struct {
	ProductIDs     []uuid.UUID
	OwnsAny        bool
	HighestVersion int
	HasVersion     bool
}

type EntitlementView struct {
	Email   string
	Summary entitlement.Summary
	Family  *entitlement.FamilySummary
	Set     *ProductSetView
}

type EntitlementQueries interface {
	Entitlements(ctx context.Context, req EntitlementRequest) (*EntitlementView, error)
}

type entitlementQueriesImpl struct {
	uow     shared.UnitOfWork
	ledgers LedgerReadStore
	catalog CatalogReadStore
	cache   *LedgerCache
}

// NewEntitlementQueries resolves ownership from committed state. cache may be
// nil to always read through.
func NewEntitlementQueries(uow shared.UnitOfWork, ledgers LedgerReadStore, catalog CatalogReadStore, cache *LedgerCache) EntitlementQueries {
	return &entitlementQueriesImpl{uow: uow, ledgers: ledgers, catalog: catalog, cache: cache}
}

func (q *entitlementQueriesImpl) Entitlements(ctx context.Context, req EntitlementRequest) (*EntitlementView, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, errs.Wrapf(ErrInvalidEmail, "%q", req.Email)
	}

	catalog, err := q.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := q.ledger(ctx, email)
	if err != nil {
		return nil, err
	}

	resolver := entitlement.NewResolver(catalog)
	view := &EntitlementView{
		Email:   email.Value(),
		Summary: resolver.Summarize(ledger),
	}
	if family := strings.TrimSpace(req.Family); family != "" {
		fs := resolver.Family(ledger, family)
		view.Family = &fs
	}
	if len(req.Products) > 0 {
		ids, err := productIDs(catalog, req.Products)
		if err != nil {
			return nil, err
		}
		set := &ProductSetView{
			ProductIDs: ids,
			OwnsAny:    resolver.OwnsAnyInSet(ledger, ids),
		}
		set.HighestVersion, set.HasVersion = resolver.HighestVersionInSet(ledger, ids)
		view.Set = set
	}
	return view, nil
}

func (q *entitlementQueriesImpl) ledger(ctx context.Context, email user.Email) (entitlement.Ledger, error) {
	var gen uint64
	if q.cache != nil {
		if l, ok := q.cache.lookup(email.Value()); ok {
			return l, nil
		}
		gen = q.cache.generationNow()
	}

	var ledger entitlement.Ledger
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, db sqlc.DBTX) error {
		u, err := q.ledgers.FindUser(ctx, db, email)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Wrapf(ErrUserNotFound, "%s", email)
			}
			return err
		}
		ledger, err = q.ledgers.LedgerForUser(ctx, db, u.ID())
		return err
	})
	if err != nil {
		return entitlement.Ledger{}, err
	}

	if q.cache != nil {
		q.cache.store(gen, email.Value(), ledger)
	}
	return ledger, nil
}

func productIDs(catalog *product.Catalog, aliases []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(aliases))
	for _, a := range aliases {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		p, ok := catalog.ByAlias(a)
		if !ok {
			return nil, errs.Wrapf(ErrUnknownProduct, "%q", a)
		}
		ids = append(ids, p.ID())
	}
	return ids, nil
}
