package notify

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Listener is one dedicated connection that receives notifications.
type Listener interface {
	Listen(ctx context.Context, channel string) error
	Unlisten(ctx context.Context, channel string) error
	WaitForNotification(ctx context.Context) (Notification, error)
	Close(ctx context.Context) error
}

type Connector interface {
	Connect(ctx context.Context) (Listener, error)
}

// PoolConnector takes connections out of a pgx pool for listening. The
// connection is hijacked so LISTEN state never leaks back into the pool.
type PoolConnector struct {
	pool *pgxpool.Pool
}

func NewPoolConnector(pool *pgxpool.Pool) *PoolConnector {
	return &PoolConnector{pool: pool}
}

func (c *PoolConnector) Connect(ctx context.Context) (Listener, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &pgxListener{conn: conn.Hijack()}, nil
}

type pgxListener struct {
	conn *pgx.Conn
}

func (l *pgxListener) Listen(ctx context.Context, channel string) error {
	_, err := l.conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize())
	return err
}

func (l *pgxListener) Unlisten(ctx context.Context, channel string) error {
	_, err := l.conn.Exec(ctx, "UNLISTEN "+pgx.Identifier{channel}.Sanitize())
	return err
}

func (l *pgxListener) WaitForNotification(ctx context.Context) (Notification, error) {
	n, err := l.conn.WaitForNotification(ctx)
	if err != nil {
		return Notification{}, err
	}
	return Notification{Channel: n.Channel, Payload: n.Payload}, nil
}

func (l *pgxListener) Close(ctx context.Context) error {
	return l.conn.Close(ctx)
}
