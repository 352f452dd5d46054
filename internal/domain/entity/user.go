package entity

import "time"

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User miembro de una organización. Role guarda el valor tal cual llegó (p.ej. "admin", "pharmacist");
// las decisiones de acceso siempre pasan por access.NormalizeRole.
type User struct {
	ID             string
	OrganizationID string
	Email          string
	PasswordHash   string // bcrypt
	Name           string
	Role           string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
