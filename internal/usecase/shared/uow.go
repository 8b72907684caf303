package shared

import (
	"context"
	"time"

	"nest/internal/domain/delivery"
	"nest/internal/domain/order"
	"nest/internal/domain/product"
	"nest/internal/domain/subscription"
	"nest/internal/domain/user"
	sqlc "nest/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// CommandReads: Direct access to command reads for classification outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Products() ProductRepository
	Users() UserRepository
	Orders() OrderRepository
	Returns() ReturnRepository
	Subscriptions() SubscriptionRepository
	Deliveries() DeliveryRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

// CommandReads are the lookups the classifier and ledger writer need. Inside
// a Tx they see uncommitted writes of that transaction.
type CommandReads interface {
	OrderWithReturns(ctx context.Context, reference string) (*order.Order, []*order.Return, error)
}

type ProductRepository interface {
	Upsert(ctx context.Context, p *product.Product) (*product.Product, error)
	List(ctx context.Context) ([]*product.Product, error)
}

type UserRepository interface {
	UpsertByEmail(ctx context.Context, email user.Email, profile user.Profile, now time.Time) (*user.User, error)
	FindByEmail(ctx context.Context, email user.Email) (*user.User, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, o *order.Order) (inserted bool, err error)
	FindByReference(ctx context.Context, reference string, forUpdate bool) (*order.Order, error)
	FindByEventID(ctx context.Context, eventID string) (*order.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*order.Order, error)
}

type ReturnRepository interface {
	Insert(ctx context.Context, ret *order.Return) (inserted bool, err error)
	Exists(ctx context.Context, reference, eventID string) (bool, error)
	ListByOrders(ctx context.Context, orderIDs []uuid.UUID) ([]*order.Return, error)
}

type SubscriptionRepository interface {
	Upsert(ctx context.Context, s *subscription.State) (applied bool, err error)
	Find(ctx context.Context, userID uuid.UUID, family string) (*subscription.State, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*subscription.State, error)
}

type DeliveryRepository interface {
	Record(ctx context.Context, eventID, eventType string, payload []byte) (*delivery.Delivery, error)
	IncrementAttempts(ctx context.Context, id uuid.UUID) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status delivery.Status, reason string, at time.Time) error
	ResetForReplay(ctx context.Context, id uuid.UUID, reason string) (bool, error)
	Get(ctx context.Context, id uuid.UUID) (*delivery.Delivery, error)
}
