package domain

import "fmt"

// Role is the capability set attached to a session.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleWarehouse Role = "warehouse"
	RoleAdmin     Role = "admin"
)

// ParseRole validates s as a role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleCustomer, RoleWarehouse, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

func (r Role) String() string { return string(r) }
