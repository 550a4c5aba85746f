package enum

// UserRole is the role attached to an authenticated account
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleDriver   UserRole = "driver"
	UserRoleCustomer UserRole = "customer"
)

// IsValid checks if the role is a known value
func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleDriver || r == UserRoleCustomer
}

func (r UserRole) String() string {
	return string(r)
}
