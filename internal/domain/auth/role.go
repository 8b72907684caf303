package auth

import (
	"nest/internal/pkg/errs"
)

var ErrInvalidRole = errs.New("invalid role")

// Role is carried in query API tokens. Operators may replay deliveries;
// viewers may only read.
type Role string

const (
	RoleViewer   Role = "viewer"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

var roleRank = map[Role]int{
	RoleViewer:   1,
	RoleOperator: 2,
	RoleAdmin:    3,
}

func NewRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleRank[r]; !ok {
		return "", errs.Wrapf(ErrInvalidRole, "%q", s)
	}
	return r, nil
}

func (r Role) String() string {
	return string(r)
}

// AtLeast reports whether r ranks at or above min. Unknown roles rank below
// everything.
func (r Role) AtLeast(min Role) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	want, ok := roleRank[min]
	return ok && have >= want
}

// Principal is the authenticated caller of the query API.
type Principal struct {
	Subject string
	Role    Role
}
