//go:build unit

package pgconv_test

import (
	"fmt"
	"math/big"
	"testing"

	"nest/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalNumericConversion(t *testing.T) {
	t.Run("keeps exact value", func(t *testing.T) {
		in := decimal.RequireFromString("49.95")

		out, err := pgconv.DecimalFromNumeric(pgconv.DecimalToNumeric(in))

		require.NoError(t, err)
		assert.True(t, in.Equal(out), "want %s got %s", in, out)
	})

	t.Run("null numeric is zero", func(t *testing.T) {
		out, err := pgconv.DecimalFromNumeric(pgtype.Numeric{})

		require.NoError(t, err)
		assert.True(t, out.IsZero())
	})

	t.Run("NaN is rejected", func(t *testing.T) {
		_, err := pgconv.DecimalFromNumeric(pgtype.Numeric{NaN: true, Valid: true})

		assert.ErrorIs(t, err, pgconv.ErrInvalidNumericValue)
	})

	t.Run("reads numeric produced by the driver", func(t *testing.T) {
		n := pgtype.Numeric{Int: big.NewInt(12345), Exp: -2, Valid: true}

		out, err := pgconv.DecimalFromNumeric(n)

		require.NoError(t, err)
		assert.Equal(t, "123.45", out.String())
	})
}

func TestPgErrorClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, pgconv.IsUniqueViolation(fmt.Errorf("insert: %w", unique)))
	assert.False(t, pgconv.IsUniqueViolation(fk))
	assert.True(t, pgconv.IsForeignKeyViolation(fk))
	assert.True(t, pgconv.IsNoRows(fmt.Errorf("wrapped: %w", pgx.ErrNoRows)))
	assert.False(t, pgconv.IsNoRows(unique))
}
