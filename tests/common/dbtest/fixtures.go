//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by a pool, a connection and a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestUser(t *testing.T, db DBLike, email string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `INSERT INTO users (id, email, first_name, last_name, language, country)
		VALUES ($1, $2, 'Test', 'User', 'en', 'US') ON CONFLICT (email) DO NOTHING`,
		userID, email)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		require.NoError(t, db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID))
	}

	return userID
}

func ProductID(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(), "SELECT id FROM products WHERE name = $1", name).Scan(&id)
	require.NoError(t, err, "product %s not found", name)
	return id
}

// DeliveryStatus returns the stored status of the delivery for eventID, or
// the empty string when none exists.
func DeliveryStatus(t *testing.T, db DBLike, eventID string) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM webhook_deliveries WHERE event_id = $1", eventID).Scan(&status)
	if err != nil {
		return ""
	}
	return status
}

func CountRows(t *testing.T, db DBLike, table string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}

// WaitForDelivery polls until the delivery for eventID leaves pending.
func WaitForDelivery(t *testing.T, db DBLike, eventID string, timeout time.Duration) string {
	t.Helper()

	var status string
	require.Eventually(t, func() bool {
		status = DeliveryStatus(t, db, eventID)
		return status != "" && status != "pending"
	}, timeout, 20*time.Millisecond, "delivery %s still pending", eventID)
	return status
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// referenceTables survive ResetDB. The catalog is loaded once per process
// from the product definitions.
var referenceTables = []string{"products"}

// ResetDB truncates every table except the reference tables.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND NOT (tablename = ANY($1))`, referenceTables)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
