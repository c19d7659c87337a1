package model

import "time"

// Role partitions accounts. Buyers and sellers live in separate credential stores.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// Roles lists every supported role in a stable order.
var Roles = []Role{RoleBuyer, RoleSeller}

// ParseRole converts a path segment such as "seller" into a Role.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Credential is a registered account. ID is an opaque identifier that is
// stable for the life of the account and distinct from Username.
type Credential struct {
	ID           string
	Role         Role
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
