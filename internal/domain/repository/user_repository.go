package repository

import (
	"context"

	"github.com/jhoicas/seraphine/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// CreateMember persiste el usuario asignando firstRole si la organización no tiene miembros
	// y role en otro caso, de forma atómica. Escribe el rol asignado en user.Role.
	CreateMember(ctx context.Context, user *entity.User, firstRole, role string) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]*entity.User, error)
	UpdateRole(ctx context.Context, id, role string) error
}
