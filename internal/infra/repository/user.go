package repository

import (
	"context"
	"time"

	"nest/internal/domain/user"
	"nest/internal/infra"
	"nest/internal/infra/repository/converter"
	sqlc "nest/internal/infra/sqlc/generated"
)

type UserQueries interface {
	UpsertUserByEmail(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertUserByEmailParams) (sqlc.Users, error)
	FindUserByEmail(ctx context.Context, db sqlc.DBTX, email string) (sqlc.Users, error)
}

type UserRepository struct {
	queries UserQueries
	db      sqlc.DBTX
}

func NewUserRepository(queries UserQueries, db sqlc.DBTX) *UserRepository {
	return &UserRepository{
		queries: queries,
		db:      db,
	}
}

// UpsertByEmail returns the user for email, creating it with profile when it
// does not exist yet. An existing profile is never overwritten.
func (r *UserRepository) UpsertByEmail(ctx context.Context, email user.Email, profile user.Profile, now time.Time) (*user.User, error) {
	row, err := r.queries.UpsertUserByEmail(ctx, r.db, converter.UserToUpsertParams(email, profile, now))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to upsert user", err)
	}
	return converter.UserFromRow(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	row, err := r.queries.FindUserByEmail(ctx, r.db, email.Value())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return converter.UserFromRow(row)
}
