package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// User representa la identidad de un usuario del sistema. Las credenciales
// las gestiona el proveedor de identidad; el motor de conteos solo lee
// id, username, role y el flag active.
type User struct {
	ID        string
	Username  string
	Role      string // admin, manager, user
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
