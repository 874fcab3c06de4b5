package user

import "strings"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleMerchant Role = "merchant"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleMerchant:
		return true
	default:
		return false
	}
}

func (r Role) IsMerchant() bool {
	return r == RoleMerchant
}

// ParseRole converts a request value into a Role. An empty value defaults to
// customer.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RoleCustomer, nil
	}
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}
