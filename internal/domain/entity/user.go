package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Estados de User.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, staff
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName nombre para mostrar.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsActive indica si el usuario puede iniciar sesión.
func (u *User) IsActive() bool { return u.Status == UserActive }
