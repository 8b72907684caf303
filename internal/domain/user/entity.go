package user

import (
	"time"

	"github.com/google/uuid"
)

// Defaults applied when the provider omits contact details.
const (
	DefaultFirstName = "John"
	DefaultLastName  = "Doe"
	DefaultLanguage  = "en"
	DefaultCountry   = "US"
)

type Profile struct {
	First    string
	Last     string
	Language string
	Country  string
}

// WithDefaults fills empty fields.
func (p Profile) WithDefaults() Profile {
	if p.First == "" {
		p.First = DefaultFirstName
	}
	if p.Last == "" {
		p.Last = DefaultLastName
	}
	if p.Language == "" {
		p.Language = DefaultLanguage
	}
	if p.Country == "" {
		p.Country = DefaultCountry
	}
	return p
}

// User is keyed by normalised email. Ownership is derived from orders, never
// stored on the user.
type User struct {
	id        uuid.UUID
	email     Email
	profile   Profile
	createdAt time.Time
}

func NewUser(email Email, profile Profile, now time.Time) *User {
	return &User{
		id:        uuid.New(),
		email:     email,
		profile:   profile.WithDefaults(),
		createdAt: now.UTC(),
	}
}

func Reconstruct(id uuid.UUID, email Email, profile Profile, createdAt time.Time) *User {
	return &User{
		id:        id,
		email:     email,
		profile:   profile,
		createdAt: createdAt.UTC(),
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) Profile() Profile     { return u.profile }
func (u *User) CreatedAt() time.Time { return u.createdAt }
