//go:build unit || e2e

package builder

import (
	"time"

	"nest/internal/domain/user"
)

type UserBuilder struct {
	Email   string
	Profile user.Profile
	Now     time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		Email:   "buyer@example.com",
		Profile: user.Profile{First: "Ada", Last: "Lovelace"},
		Now:     time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithProfile(p user.Profile) *UserBuilder {
	u.Profile = p
	return u
}

func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	return user.NewUser(email, u.Profile, u.Now), nil
}
