package enum

// Role represents a user's role in the marketplace
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleFarmer Role = "farmer"
	RoleAdmin  Role = "admin"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleFarmer, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
