package converter

import (
	"time"

	"nest/internal/domain/user"
	sqlc "nest/internal/infra/sqlc/generated"
	"nest/internal/pkg/errs"
	"nest/internal/pkg/pgconv"
)

func UserToUpsertParams(email user.Email, profile user.Profile, now time.Time) sqlc.UpsertUserByEmailParams {
	profile = profile.WithDefaults()
	return sqlc.UpsertUserByEmailParams{
		Email:     email.Value(),
		FirstName: profile.First,
		LastName:  profile.Last,
		Language:  profile.Language,
		Country:   profile.Country,
		CreatedAt: pgconv.TimeToPgtype(now),
	}
}

func UserFromRow(row sqlc.Users) (*user.User, error) {
	email, err := user.NewEmail(row.Email)
	if err != nil {
		return nil, errs.Wrapf(err, "user %s email", row.ID)
	}
	profile := user.Profile{
		First:    row.FirstName,
		Last:     row.LastName,
		Language: row.Language,
		Country:  row.Country,
	}
	return user.Reconstruct(row.ID, email, profile, pgconv.TimeFromPgtype(row.CreatedAt)), nil
}
