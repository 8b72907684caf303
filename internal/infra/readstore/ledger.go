package readstore

import (
	"context"

	"nest/internal/domain/entitlement"
	"nest/internal/domain/order"
	"nest/internal/domain/subscription"
	"nest/internal/domain/user"
	"nest/internal/infra"
	"nest/internal/infra/repository/converter"
	sqlc "nest/internal/infra/sqlc/generated"
	"nest/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type LedgerReadQueries interface {
	FindUserByEmail(ctx context.Context, db sqlc.DBTX, email string) (sqlc.Users, error)
	FindOrderByReference(ctx context.Context, db sqlc.DBTX, reference string) (sqlc.Orders, error)
	ListOrdersByUser(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) ([]sqlc.Orders, error)
	ListOrderLineItems(ctx context.Context, db sqlc.DBTX, orderIds []uuid.UUID) ([]sqlc.OrderLineItems, error)
	ListReturnsByOrders(ctx context.Context, db sqlc.DBTX, orderIds []uuid.UUID) ([]sqlc.ListReturnsByOrdersRow, error)
	ListReturnLineItems(ctx context.Context, db sqlc.DBTX, returnIds []uuid.UUID) ([]sqlc.ReturnLineItems, error)
	ListSubscriptionStatesByUser(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) ([]sqlc.SubscriptionStates, error)
}

// LedgerReadStore assembles entitlement ledgers. Callers pass a read-only
// transaction so orders and returns come from one snapshot.
type LedgerReadStore struct {
	queries LedgerReadQueries
}

func NewLedgerReadStore(queries LedgerReadQueries) *LedgerReadStore {
	return &LedgerReadStore{queries: queries}
}

// FindUser returns a NOT_FOUND repository error for unknown emails.
func (s *LedgerReadStore) FindUser(ctx context.Context, db sqlc.DBTX, email user.Email) (*user.User, error) {
	row, err := s.queries.FindUserByEmail(ctx, db, email.Value())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return converter.UserFromRow(row)
}

func (s *LedgerReadStore) LedgerForUser(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) (entitlement.Ledger, error) {
	ledger := entitlement.Ledger{UserID: userID}

	rows, err := s.queries.ListOrdersByUser(ctx, db, userID)
	if err != nil {
		return ledger, infra.WrapRepoErr("failed to list orders", err)
	}
	ledger.Orders, err = s.ordersFromRows(ctx, db, rows)
	if err != nil {
		return ledger, err
	}
	ledger.Returns, err = s.returnsForOrders(ctx, db, ledger.Orders)
	if err != nil {
		return ledger, err
	}

	states, err := s.queries.ListSubscriptionStatesByUser(ctx, db, userID)
	if err != nil {
		return ledger, infra.WrapRepoErr("failed to list subscription states", err)
	}
	ledger.Subscriptions = make([]*subscription.State, 0, len(states))
	for _, row := range states {
		st, err := converter.SubscriptionFromRow(row)
		if err != nil {
			return ledger, err
		}
		ledger.Subscriptions = append(ledger.Subscriptions, st)
	}
	return ledger, nil
}

// OrderWithReturns returns a nil order without error when the reference is
// unknown.
func (s *LedgerReadStore) OrderWithReturns(ctx context.Context, db sqlc.DBTX, reference string) (*order.Order, []*order.Return, error) {
	row, err := s.queries.FindOrderByReference(ctx, db, reference)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil, nil
		}
		return nil, nil, infra.WrapRepoErr("failed to find order "+reference, err)
	}
	orders, err := s.ordersFromRows(ctx, db, []sqlc.Orders{row})
	if err != nil {
		return nil, nil, err
	}
	returns, err := s.returnsForOrders(ctx, db, orders)
	if err != nil {
		return nil, nil, err
	}
	return orders[0], returns, nil
}

// BoundOrders answers order lookups on a fixed connection, for callers that
// classify events outside a transaction.
type BoundOrders struct {
	store *LedgerReadStore
	db    sqlc.DBTX
}

func NewBoundOrders(store *LedgerReadStore, db sqlc.DBTX) *BoundOrders {
	return &BoundOrders{store: store, db: db}
}

func (b *BoundOrders) OrderWithReturns(ctx context.Context, reference string) (*order.Order, []*order.Return, error) {
	return b.store.OrderWithReturns(ctx, b.db, reference)
}

func (s *LedgerReadStore) ordersFromRows(ctx context.Context, db sqlc.DBTX, rows []sqlc.Orders) ([]*order.Order, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	items, err := s.queries.ListOrderLineItems(ctx, db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order line items", err)
	}
	out := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		o, err := converter.OrderFromRows(row, items)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *LedgerReadStore) returnsForOrders(ctx context.Context, db sqlc.DBTX, orders []*order.Order) ([]*order.Return, error) {
	if len(orders) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	rows, err := s.queries.ListReturnsByOrders(ctx, db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list returns", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	returnIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		returnIDs = append(returnIDs, row.ID)
	}
	items, err := s.queries.ListReturnLineItems(ctx, db, returnIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list return line items", err)
	}
	out := make([]*order.Return, 0, len(rows))
	for _, row := range rows {
		r, err := converter.ReturnFromRows(row, items)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
