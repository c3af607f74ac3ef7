package models

type UserRole string

const (
	RoleAdmin   UserRole = "Admin"
	RoleCashier UserRole = "Cashier"
	RoleKitchen UserRole = "Kitchen"
	RoleServer  UserRole = "Server"
)

var UserRoles = []UserRole{RoleAdmin, RoleCashier, RoleKitchen, RoleServer}

func (r UserRole) Valid() bool {
	for _, known := range UserRoles {
		if r == known {
			return true
		}
	}
	return false
}

// User is a staff account. Password is stored and compared in plaintext.
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Password string   `json:"password,omitempty"`
	Role     UserRole `json:"role"`
}

// Public returns a copy without the credential, for API responses.
func (u User) Public() User {
	u.Password = ""
	return u
}
